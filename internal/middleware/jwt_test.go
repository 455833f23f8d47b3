package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	sm := NewSessionManager("test-secret")
	userID := primitive.NewObjectID()

	token, err := sm.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := sm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, "fritter-api", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	sm := NewSessionManager("test-secret")
	other := NewSessionManager("other-secret")

	token, err := sm.GenerateToken(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = sm.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestRequireSession(t *testing.T) {
	sm := NewSessionManager("test-secret")
	userID := primitive.NewObjectID()

	var gotUserID primitive.ObjectID
	var called bool
	handler := sm.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		called = true
	}))

	token, err := sm.GenerateToken(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc",
		"malformed token": "Bearer garbage",
	}
	for name, header := range cases {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, name)
		assert.False(t, called, name)
	}
}
