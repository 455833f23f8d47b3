package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFreetAndListByAuthor(t *testing.T) {
	server, fake := newTestServer()
	router := server.Routes(nil)
	ctx := context.Background()

	_, aliceToken := seedUser(t, server, fake, "alice")
	bob, _ := seedUser(t, server, fake, "bob")

	rec := doRequest(t, router, http.MethodPost, "/api/freets", aliceToken,
		CreateFreetRequest{Content: "hello world"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Message string            `json:"message"`
		Freet   api.FreetResponse `json:"freet"`
	}
	decodeBody(t, rec, &created)
	assert.Equal(t, "alice", created.Freet.Author)
	assert.Equal(t, "hello world", created.Freet.Content)

	_, err := fake.CreateFreet(ctx, bob.ID, "from bob")
	require.NoError(t, err)

	var listed []api.FreetResponse
	rec = doRequest(t, router, http.MethodGet, "/api/freets?author=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "alice", listed[0].Author)

	rec = doRequest(t, router, http.MethodGet, "/api/freets", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &listed)
	assert.Len(t, listed, 2)
}

func TestUpdateFreetRequiresAuthor(t *testing.T) {
	server, fake := newTestServer()
	router := server.Routes(nil)
	ctx := context.Background()

	alice, aliceToken := seedUser(t, server, fake, "alice")
	_, bobToken := seedUser(t, server, fake, "bob")

	freet, err := fake.CreateFreet(ctx, alice.ID, "original")
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPut, "/api/freets/"+freet.ID.Hex(), bobToken,
		EditFreetRequest{Content: "hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/freets/"+freet.ID.Hex(), aliceToken,
		EditFreetRequest{Content: "edited"})
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := fake.GetFreet(ctx, freet.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteFreetLeavesCommentsBehind(t *testing.T) {
	server, fake := newTestServer()
	router := server.Routes(nil)
	ctx := context.Background()

	alice, token := seedUser(t, server, fake, "alice")
	freet, err := fake.CreateFreet(ctx, alice.ID, "doomed")
	require.NoError(t, err)
	comment, err := fake.AddComment(ctx, alice.ID, freet.ID, "will be orphaned")
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodDelete, "/api/freets/"+freet.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Orphan-tolerant: the comment survives its freet.
	orphan, err := fake.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, freet.ID, orphan.FreetID)
}

func TestFreetContentValidation(t *testing.T) {
	server, fake := newTestServer()
	router := server.Routes(nil)

	_, token := seedUser(t, server, fake, "alice")

	rec := doRequest(t, router, http.MethodPost, "/api/freets", token,
		CreateFreetRequest{Content: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
