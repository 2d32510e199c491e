package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"proflow/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginEndpoint_DefaultUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, store := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)

	var response LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.NotNil(t, response.Member)
	assert.Equal(t, "t1", response.Member.ID, "default login picks the Project Manager")

	claims, err := utils.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, "t1", claims.MemberID)
	assert.Equal(t, "Project Manager", claims.Role)

	user := store.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "t1", user.ID)
}

func TestLoginEndpoint_UnknownMember(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{"memberId": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, store := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/login", map[string]string{"memberId": "t2"})
	require.NotNil(t, store.CurrentUser())

	rec := doJSON(t, router, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, store.CurrentUser())

	rec = doJSON(t, router, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
