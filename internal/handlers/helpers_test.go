package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"

	"github.com/stretchr/testify/require"
)

// doRequest runs one request through the full router and returns the
// recorded response.
func doRequest(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// seedUser creates a user directly in the fake store and returns the user
// with a valid session token.
func seedUser(t *testing.T, server *Server, fake *storeFake, username string) (*models.User, string) {
	t.Helper()

	user, err := fake.CreateUser(context.Background(), username, "$2a$10$fakehash")
	require.NoError(t, err)

	token, err := server.Sessions.GenerateToken(user.ID)
	require.NoError(t, err)

	return user, token
}
