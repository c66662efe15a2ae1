package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"

	"github.com/mashdb/MashDB"
	"github.com/mashdb/MashDB/db"
)

// Server is a TCP SQL server that exposes the MashDB engine. Each connection
// gets its own engine session over the shared store; writes are serialized
// through a single mutex.
type Server struct {
	listener   net.Listener
	instance   *MashDB.Instance
	authConfig *AuthConfig
	mu         sync.Mutex
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewServer creates a new SQL server over the given MashDB instance.
func NewServer(instance *MashDB.Instance, authConfig *AuthConfig) *Server {
	return &Server{
		instance:   instance,
		authConfig: authConfig,
		done:       make(chan struct{}),
	}
}

// Start begins listening for connections on the specified address.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	log.Printf("SQL Server listening on %s", addr)

	go s.acceptLoop()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				log.Printf("Accept error: %v", err)
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	log.Printf("Client connected: %s", conn.RemoteAddr())

	engine := s.instance.Engine()
	state := &ConnectionState{}
	reader := bufio.NewReader(conn)

	for {
		select {
		case <-s.done:
			return
		default:
		}

		// One statement per line.
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("Read error from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}

		if strings.ToLower(query) == "quit" || strings.ToLower(query) == "exit" {
			log.Printf("Client disconnected: %s", conn.RemoteAddr())
			return
		}

		var response Response
		if strings.HasPrefix(strings.ToUpper(query), "AUTH ") {
			response = s.handleAuth(query, state)
		} else if s.authConfig != nil && s.authConfig.Enabled && !state.IsAuthenticated() {
			response = Response{
				Success: false,
				Error:   "authentication required: AUTH JWT <token>",
			}
		} else {
			response = s.executeQuery(engine, query)
		}

		data, err := EncodeResponse(response)
		if err != nil {
			log.Printf("Failed to encode response: %v", err)
			continue
		}

		if _, err := conn.Write(data); err != nil {
			log.Printf("Write error to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

func (s *Server) executeQuery(engine *db.Engine, query string) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := engine.Execute(query)
	if err != nil {
		return Response{
			Success: false,
			Error:   err.Error(),
		}
	}

	switch r := result.(type) {
	case db.QueryResult:
		data := make([][]string, len(r.Rows))
		for i, row := range r.Rows {
			cells := make([]string, len(r.Columns))
			for j, column := range r.Columns {
				cells[j] = row[column].Canonical()
			}
			data[i] = cells
		}

		qr := QueryResponse{
			Columns:     r.Columns,
			Data:        data,
			RecordsRead: r.RecordsRead,
			TimeMs:      r.ExecutionTimeSec * 1000,
		}
		payload, _ := json.Marshal(qr)
		return Response{
			Success: true,
			Type:    "query",
			Result:  payload,
		}

	case db.ExecResult:
		er := ExecResponse{
			DatabasesCreated: r.DatabasesCreated,
			TablesCreated:    r.TablesCreated,
			RowsWritten:      r.RowsWritten,
			RowsUpdated:      r.RowsUpdated,
			RowsDeleted:      r.RowsDeleted,
			TimeMs:           r.ExecutionTimeSec * 1000,
		}
		payload, _ := json.Marshal(er)
		return Response{
			Success: true,
			Type:    "exec",
			Result:  payload,
		}

	default:
		return Response{
			Success: true,
			Type:    "unknown",
		}
	}
}
