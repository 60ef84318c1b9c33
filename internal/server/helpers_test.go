package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"comunidad/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"postId", "post ID"},
		{"medicationId", "medication ID"},
		{"somethingElseId", "something else ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"unauthorized", models.NewUnauthorizedError("no"), http.StatusUnauthorized},
		{"not found", models.NewNotFoundError("Post", 1), http.StatusNotFound},
		{"conflict", models.NewConflictError("dup"), http.StatusConflict},
		{"internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("pq: connection refused"))
	})

	status, body := doJSON(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusInternalServerError, status)
	m := asMap(t, body)
	assert.Equal(t, "Internal server error", m["error"])
	assert.Equal(t, models.CodeInternal, m["code"])
	assert.NotContains(t, m, "details")
}

func TestParseID(t *testing.T) {
	srv := &Server{}
	app := fiber.New()
	app.Get("/posts/:postId", func(c *fiber.Ctx) error {
		id, err := srv.parseID(c, "postId")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	status, body := doJSON(t, app, http.MethodGet, "/posts/12", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(12), asMap(t, body)["id"])

	for _, raw := range []string{"abc", "0", "-4"} {
		status, body = doJSON(t, app, http.MethodGet, "/posts/"+raw, nil)
		require.Equal(t, http.StatusBadRequest, status, raw)
		assert.Equal(t, "Invalid post ID", asMap(t, body)["error"])
	}
}

func TestFlexID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{`{"id":7}`, 7, false},
		{`{"id":"7"}`, 7, false},
		{`{"id":" 7 "}`, 7, false},
		{`{"id":null}`, 0, false},
		{`{"id":""}`, 0, false},
		{`{}`, 0, false},
		{`{"id":"seven"}`, 0, true},
		{`{"id":-1}`, 0, true},
		{`{"id":1.5}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v struct {
				ID flexID `json:"id"`
			}
			err := json.Unmarshal([]byte(tt.raw), &v)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.ID.value())
		})
	}
}
