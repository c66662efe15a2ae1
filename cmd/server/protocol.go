// Package main provides a TCP SQL server for MashDB.
package main

import (
	"encoding/json"
)

// Response represents the server's response to a query. Requests are plain
// text: one SQL statement per line.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type,omitempty"` // "query", "exec", or "auth"
	Result  json.RawMessage `json:"result,omitempty"`
}

// QueryResponse contains tabular query results. Values travel in their
// canonical text form.
type QueryResponse struct {
	Columns     []string   `json:"columns"`
	Data        [][]string `json:"data"`
	RecordsRead int        `json:"records_read"`
	TimeMs      float64    `json:"time_ms"`
}

// ExecResponse contains write statement results.
type ExecResponse struct {
	DatabasesCreated int     `json:"databases_created,omitempty"`
	TablesCreated    int     `json:"tables_created,omitempty"`
	RowsWritten      int     `json:"rows_written,omitempty"`
	RowsUpdated      int     `json:"rows_updated,omitempty"`
	RowsDeleted      int     `json:"rows_deleted,omitempty"`
	TimeMs           float64 `json:"time_ms"`
}

// AuthResponse reports the outcome of an AUTH command.
type AuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Subject       string `json:"subject,omitempty"`
	ExpiresIn     int    `json:"expires_in,omitempty"`
}

// EncodeResponse serializes a Response to JSON with a newline.
func EncodeResponse(resp Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
