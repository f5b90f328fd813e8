package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/types"
)

func (e *testEnv) userID(t *testing.T, token string) uuid.UUID {
	t.Helper()
	claims, err := e.auth.ValidateToken(token)
	require.NoError(t, err)
	return claims.UserID
}

func TestMeEndpoint(t *testing.T) {
	env := setupAPITest(t)
	token := env.register(t, "alice")

	w := env.do(t, "GET", "/api/v1/users/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.UserResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)

	w = env.do(t, "GET", "/api/v1/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserSubscriptionFlag(t *testing.T) {
	env := setupAPITest(t)
	aliceToken := env.register(t, "alice")
	bobToken := env.register(t, "bob")
	bobID := env.userID(t, bobToken)

	w := env.do(t, "POST", "/api/v1/users/"+bobID.String()+"/subscribe", "", aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "GET", "/api/v1/users/"+bobID.String(), "", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.UserResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.IsSubscribed)

	// Anonymous view of the same user.
	w = env.do(t, "GET", "/api/v1/users/"+bobID.String(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.False(t, resp.IsSubscribed)
}

func TestSubscribeEndpointErrors(t *testing.T) {
	env := setupAPITest(t)
	aliceToken := env.register(t, "alice")
	aliceID := env.userID(t, aliceToken)
	bobToken := env.register(t, "bob")
	bobID := env.userID(t, bobToken)

	w := env.do(t, "POST", "/api/v1/users/"+aliceID.String()+"/subscribe", "", aliceToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "POST", "/api/v1/users/"+uuid.New().String()+"/subscribe", "", aliceToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, "POST", "/api/v1/users/"+bobID.String()+"/subscribe", "", aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "POST", "/api/v1/users/"+bobID.String()+"/subscribe", "", aliceToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, "DELETE", "/api/v1/users/"+bobID.String()+"/subscribe", "", aliceToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, "DELETE", "/api/v1/users/"+bobID.String()+"/subscribe", "", aliceToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionsEndpoint(t *testing.T) {
	env := setupAPITest(t)
	aliceToken := env.register(t, "alice")
	bobToken := env.register(t, "bob")
	bobID := env.userID(t, bobToken)

	w := env.do(t, "POST", "/api/v1/users/"+bobID.String()+"/subscribe", "", aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "GET", "/api/v1/users/subscriptions?recipes_limit=3", "", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Subscriptions []types.SubscriptionResponse `json:"subscriptions"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Subscriptions, 1)
	assert.Equal(t, "bob", resp.Subscriptions[0].Username)
	assert.True(t, resp.Subscriptions[0].IsSubscribed)
}

func TestListUsersEndpoint(t *testing.T) {
	env := setupAPITest(t)
	env.register(t, "bob")
	env.register(t, "alice")

	w := env.do(t, "GET", "/api/v1/users", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []types.UserResponse `json:"users"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "alice", resp.Users[0].Username)
}

func TestDeleteMeEndpoint(t *testing.T) {
	env := setupAPITest(t)
	token := env.register(t, "alice")
	id := env.userID(t, token)

	w := env.do(t, "DELETE", "/api/v1/users/me", "", token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, "GET", "/api/v1/users/"+id.String(), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
