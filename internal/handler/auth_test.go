package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/content-analytics/internal/handler"
	"github.com/sakif/content-analytics/internal/model"
	"github.com/sakif/content-analytics/internal/service"
)

func TestAuthHandler(t *testing.T) {
	stack := newTestStack(t)
	h := handler.NewAuthHandler(stack.auth, stack.logger)

	register := `{"username":"creator","password":"hunter22","email":"c@example.com","name":"Creator"}`

	t.Run("register", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleRegister(rr, request(http.MethodPost, "/api/auth/register", register, "", nil))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "passwordHash")
		user := decodeBody[model.User](t, rr)
		assert.Equal(t, "creator", user.Username)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleRegister(rr, request(http.MethodPost, "/api/auth/register", register, "", nil))

		assert.Equal(t, http.StatusConflict, rr.Code)
		body := decodeBody[handler.ErrorResponse](t, rr)
		assert.Equal(t, "conflict", body.Error)
	})

	t.Run("short password", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleRegister(rr, request(http.MethodPost, "/api/auth/register",
			`{"username":"other","password":"x"}`, "", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := decodeBody[handler.ErrorResponse](t, rr)
		assert.Equal(t, "password", body.Field)
	})

	t.Run("login", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleLogin(rr, request(http.MethodPost, "/api/auth/login",
			`{"username":"creator","password":"hunter22"}`, "", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		res := decodeBody[service.AuthResult](t, rr)
		assert.NotEmpty(t, res.Token)
		require.NotNil(t, res.User)
		assert.Equal(t, "Creator", res.User.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleLogin(rr, request(http.MethodPost, "/api/auth/login",
			`{"username":"creator","password":"wrong-one"}`, "", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("me without user", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleMe(rr, request(http.MethodGet, "/api/auth/me", "", "", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("me", func(t *testing.T) {
		id := stack.newUser(t, "viewer")
		rr := httptest.NewRecorder()
		h.HandleMe(rr, request(http.MethodGet, "/api/auth/me", "", id, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		user := decodeBody[model.User](t, rr)
		assert.Equal(t, id, user.ID)
	})
}
