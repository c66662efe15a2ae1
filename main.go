package MashDB

import (
	"github.com/mashdb/MashDB/db"
	"github.com/mashdb/MashDB/store"
)

type Instance struct {
	Store *store.Store
}

func Open(st *store.Store) *Instance {
	return &Instance{
		Store: st,
	}
}

func (instance *Instance) Engine() *db.Engine {
	return db.NewEngine(instance.Store)
}
