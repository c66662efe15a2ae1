package main

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mashdb/MashDB"
	"github.com/mashdb/MashDB/store"
)

func setupTestServer(t *testing.T, authConfig *AuthConfig) (*Server, func()) {
	t.Helper()

	instance := MashDB.Open(store.NewMemoryStore())
	server := NewServer(instance, authConfig)
	if err := server.Start(":0"); err != nil { // :0 picks a free port
		t.Fatalf("Failed to start server: %v", err)
	}

	return server, func() {
		server.Stop()
	}
}

// testClient keeps one connection open so statements share a session.
type testClient struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dialTestServer(t *testing.T, addr string) *testClient {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return &testClient{conn: conn, reader: bufio.NewReader(conn)}
}

func (c *testClient) send(t *testing.T, query string) Response {
	t.Helper()

	if _, err := c.conn.Write([]byte(query + "\n")); err != nil {
		t.Fatalf("Failed to send query: %v", err)
	}

	line, err := c.reader.ReadString('\n')
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}

	var resp Response
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	return resp
}

func TestServerStartStop(t *testing.T) {
	server, cleanup := setupTestServer(t, nil)
	defer cleanup()

	if server.Addr() == "" {
		t.Error("Expected non-empty address")
	}
}

func TestServerCreateDatabase(t *testing.T) {
	server, cleanup := setupTestServer(t, nil)
	defer cleanup()

	client := dialTestServer(t, server.Addr())
	resp := client.send(t, "CREATE DATABASE testdb")
	if !resp.Success {
		t.Errorf("Expected success, got error: %s", resp.Error)
	}
	if resp.Type != "exec" {
		t.Errorf("Expected exec type, got: %s", resp.Type)
	}

	var er ExecResponse
	if err := json.Unmarshal(resp.Result, &er); err != nil {
		t.Fatalf("Failed to parse exec result: %v", err)
	}
	if er.DatabasesCreated != 1 {
		t.Errorf("Expected 1 database created, got: %d", er.DatabasesCreated)
	}
}

func TestServerWorkflow(t *testing.T) {
	server, cleanup := setupTestServer(t, nil)
	defer cleanup()

	client := dialTestServer(t, server.Addr())

	for _, statement := range []string{
		"CREATE DATABASE mydb",
		"CREATE TABLE users (id INTEGER UNIQUE, name TEXT)",
		"INSERT INTO users (id, name) VALUES (1, 'Alice')",
		"INSERT INTO users (id, name) VALUES (2, 'Bob')",
	} {
		resp := client.send(t, statement)
		if !resp.Success {
			t.Fatalf("%q failed: %s", statement, resp.Error)
		}
	}

	resp := client.send(t, "SELECT name FROM users ORDER BY id")
	if !resp.Success {
		t.Fatalf("SELECT failed: %s", resp.Error)
	}
	if resp.Type != "query" {
		t.Errorf("Expected query type, got: %s", resp.Type)
	}

	var qr QueryResponse
	if err := json.Unmarshal(resp.Result, &qr); err != nil {
		t.Fatalf("Failed to parse query result: %v", err)
	}
	if len(qr.Data) != 2 || qr.Data[0][0] != "Alice" || qr.Data[1][0] != "Bob" {
		t.Errorf("Unexpected data: %v", qr.Data)
	}
}

func TestServerErrorResponse(t *testing.T) {
	server, cleanup := setupTestServer(t, nil)
	defer cleanup()

	client := dialTestServer(t, server.Addr())
	resp := client.send(t, "FROB everything")
	if resp.Success {
		t.Error("Expected failure for invalid statement")
	}
	if resp.Error == "" {
		t.Error("Expected error message")
	}
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func TestServerAuth(t *testing.T) {
	const secret = "test-secret"
	server, cleanup := setupTestServer(t, &AuthConfig{Enabled: true, JWTSecret: secret})
	defer cleanup()

	client := dialTestServer(t, server.Addr())

	// Statements are rejected until the connection authenticates.
	resp := client.send(t, "CREATE DATABASE locked")
	if resp.Success {
		t.Fatal("Expected rejection before auth")
	}

	token := signTestToken(t, secret, jwt.MapClaims{
		"sub": "tester",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	resp = client.send(t, "AUTH JWT "+token)
	if !resp.Success {
		t.Fatalf("AUTH failed: %s", resp.Error)
	}

	var ar AuthResponse
	if err := json.Unmarshal(resp.Result, &ar); err != nil {
		t.Fatalf("Failed to parse auth result: %v", err)
	}
	if !ar.Authenticated || ar.Subject != "tester" {
		t.Errorf("Unexpected auth response: %+v", ar)
	}

	resp = client.send(t, "CREATE DATABASE unlocked")
	if !resp.Success {
		t.Errorf("Expected success after auth, got: %s", resp.Error)
	}
}

func TestServerAuthBadToken(t *testing.T) {
	server, cleanup := setupTestServer(t, &AuthConfig{Enabled: true, JWTSecret: "right-secret"})
	defer cleanup()

	client := dialTestServer(t, server.Addr())

	token := signTestToken(t, "wrong-secret", jwt.MapClaims{"sub": "intruder"})
	resp := client.send(t, "AUTH JWT "+token)
	if resp.Success {
		t.Error("Expected rejection of token signed with wrong secret")
	}
}
