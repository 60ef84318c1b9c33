package server

import (
	"net/http"
	"testing"

	"comunidad/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	_, app, _ := newTestServer(t)

	status, body := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"user":     "maria_g",
		"email":    "Maria@Example.com",
		"password": "secreto123",
	})
	require.Equal(t, http.StatusCreated, status)
	registered := asMap(t, body)
	assert.Equal(t, "registered", registered["message"])
	user := asMap(t, registered["user"])
	assert.Equal(t, "maria@example.com", user["email"])
	assert.NotContains(t, user, "password")

	status, body = doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"user":     "maria_g",
		"password": "secreto123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "logged in", asMap(t, body)["message"])

	status, body = doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"user":     "maria_g",
		"password": "incorrecto1",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", asMap(t, body)["error"])

	status, body = doJSON(t, app, http.MethodGet, "/usuarios", nil)
	require.Equal(t, http.StatusOK, status)
	users := asSlice(t, body)
	require.Len(t, users, 1)
	assert.NotContains(t, asMap(t, users[0]), "password")
}

func TestRegister_Errors(t *testing.T) {
	_, app, db := newTestServer(t)
	seedUser(t, db, "taken")

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"missing password", map[string]string{"user": "nuevo", "email": "n@example.com"}, http.StatusBadRequest, models.CodeValidation},
		{"weak password", map[string]string{"user": "nuevo", "email": "n@example.com", "password": "short"}, http.StatusBadRequest, models.CodeValidation},
		{"bad email", map[string]string{"user": "nuevo", "email": "nope", "password": "secreto123"}, http.StatusBadRequest, models.CodeValidation},
		{"duplicate email", map[string]string{"user": "otro", "email": "taken@example.com", "password": "secreto123"}, http.StatusConflict, models.CodeConflict},
		{"duplicate username", map[string]string{"user": "taken", "email": "otro@example.com", "password": "secreto123"}, http.StatusConflict, models.CodeConflict},
		{"malformed body", `{"user":`, http.StatusBadRequest, models.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, http.MethodPost, "/register", tt.body)
			require.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, asMap(t, body)["code"])
		})
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	_, app, _ := newTestServer(t)

	status, body := doJSON(t, app, http.MethodPost, "/login", map[string]string{"user": "ghost", "password": "secreto123"})
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, asMap(t, body)["success"])
}
