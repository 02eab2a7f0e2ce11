package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/content-analytics/internal/auth"
	"github.com/sakif/content-analytics/internal/model"
	sqliteRepo "github.com/sakif/content-analytics/internal/repository/sqlite"
	"github.com/sakif/content-analytics/internal/service"
)

// testStack is the real service/repository chain over an in-memory database.
type testStack struct {
	db        *sqliteRepo.DB
	auth      *service.AuthService
	platforms *service.PlatformService
	contents  *service.ContentService
	logger    *slog.Logger
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tokens, err := auth.NewTokenService("handler-test-secret-0123456789")
	require.NoError(t, err)

	platforms := service.NewPlatformService(db, logger)
	return &testStack{
		db:        db,
		auth:      service.NewAuthService(db, tokens, auth.NewPasswordServiceWithCost(4), logger),
		platforms: platforms,
		contents:  service.NewContentService(db, platforms, logger),
		logger:    logger,
	}
}

// newUser inserts a user row directly and returns its ID.
func (s *testStack) newUser(t *testing.T, username string) string {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", Name: username}
	require.NoError(t, s.db.CreateUser(context.Background(), u))
	return u.ID
}

// request builds a request as seen by a handler behind auth.RequireAuth.
// pathParams become chi URL params.
func request(method, target, body, userID string, pathParams map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	for k, v := range pathParams {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = auth.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}
