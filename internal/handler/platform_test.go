package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/content-analytics/internal/handler"
	"github.com/sakif/content-analytics/internal/model"
)

func TestPlatformHandler_Create(t *testing.T) {
	stack := newTestStack(t)
	h := handler.NewPlatformHandler(stack.platforms, stack.contents, stack.logger)
	owner := stack.newUser(t, "owner")

	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantUsername string
	}{
		{
			name:         "tiktok handle",
			body:         `{"platformName":"TikTok","url":"https://www.tiktok.com/@dancer/video/77"}`,
			wantStatus:   http.StatusCreated,
			wantUsername: "@dancer",
		},
		{
			name:         "instagram account",
			body:         `{"platformName":"Instagram","url":"https://instagram.com/chef/"}`,
			wantStatus:   http.StatusCreated,
			wantUsername: "chef",
		},
		{
			name:         "youtube",
			body:         `{"platformName":"YouTube","url":"https://youtu.be/abc"}`,
			wantStatus:   http.StatusCreated,
			wantUsername: "YouTube Channel",
		},
		{
			name:       "unknown platform",
			body:       `{"platformName":"MySpace","url":"https://myspace.com/x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "broken json",
			body:       `{"platformName":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.HandleCreate(rr, request(http.MethodPost, "/api/platforms", tt.body, owner, nil))

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus != http.StatusCreated {
				return
			}
			p := decodeBody[model.Platform](t, rr)
			assert.Positive(t, p.ID)
			assert.Equal(t, owner, p.OwnerID)
			assert.Equal(t, tt.wantUsername, p.PlatformUsername)
		})
	}
}

func TestPlatformHandler_Ownership(t *testing.T) {
	stack := newTestStack(t)
	h := handler.NewPlatformHandler(stack.platforms, stack.contents, stack.logger)
	alice := stack.newUser(t, "alice")
	bob := stack.newUser(t, "bob")

	rr := httptest.NewRecorder()
	h.HandleCreate(rr, request(http.MethodPost, "/api/platforms",
		`{"platformName":"Twitter","url":"https://x.com/alice"}`, alice, nil))
	require.Equal(t, http.StatusCreated, rr.Code)
	p := decodeBody[model.Platform](t, rr)
	id := map[string]string{"id": fmt.Sprint(p.ID)}

	t.Run("owner can read", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleGet(rr, request(http.MethodGet, "/api/platforms/x", "", alice, id))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleGet(rr, request(http.MethodGet, "/api/platforms/x", "", bob, id))
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = httptest.NewRecorder()
		h.HandleDelete(rr, request(http.MethodDelete, "/api/platforms/x", "", bob, id))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("other user's list is empty", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleList(rr, request(http.MethodGet, "/api/platforms", "", bob, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleGet(rr, request(http.MethodGet, "/api/platforms/x", "", alice, map[string]string{"id": "abc"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleGet(rr, request(http.MethodGet, "/api/platforms/x", "", alice, map[string]string{"id": "9999"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleDelete(rr, request(http.MethodDelete, "/api/platforms/x", "", alice, id))
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = httptest.NewRecorder()
		h.HandleGet(rr, request(http.MethodGet, "/api/platforms/x", "", alice, id))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestPlatformHandler_ByNameAndStats(t *testing.T) {
	stack := newTestStack(t)
	h := handler.NewPlatformHandler(stack.platforms, stack.contents, stack.logger)
	ch := handler.NewContentHandler(stack.contents, stack.logger)
	owner := stack.newUser(t, "owner")

	rr := httptest.NewRecorder()
	h.HandleCreate(rr, request(http.MethodPost, "/api/platforms",
		`{"platformName":"YouTube","url":"https://youtube.com/@me"}`, owner, nil))
	require.Equal(t, http.StatusCreated, rr.Code)
	yt := decodeBody[model.Platform](t, rr)

	for _, vid := range []string{"a1", "b2"} {
		rr := httptest.NewRecorder()
		body := fmt.Sprintf(`{"platformId":%d,"platformContentId":%q}`, yt.ID, vid)
		ch.HandleCreate(rr, request(http.MethodPost, "/api/content", body, owner, nil))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	t.Run("by name ignores case", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleGetByName(rr, request(http.MethodGet, "/api/platforms/byName/x", "", owner,
			map[string]string{"name": "youtube"}))
		require.Equal(t, http.StatusOK, rr.Code)
		p := decodeBody[model.Platform](t, rr)
		assert.Equal(t, yt.ID, p.ID)
	})

	t.Run("by name not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleGetByName(rr, request(http.MethodGet, "/api/platforms/byName/x", "", owner,
			map[string]string{"name": "TikTok"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("stats", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleStats(rr, request(http.MethodGet, "/api/platforms/stats", "", owner, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		stats := decodeBody[map[model.PlatformName]model.PlatformStats](t, rr)
		assert.Equal(t, int64(2), stats[model.PlatformYouTube].ContentCount)
	})

	t.Run("contents", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.HandleContents(rr, request(http.MethodGet, "/api/platforms/x/content", "", owner,
			map[string]string{"id": fmt.Sprint(yt.ID)}))
		require.Equal(t, http.StatusOK, rr.Code)
		contents := decodeBody[[]model.Content](t, rr)
		assert.Len(t, contents, 2)
	})
}
