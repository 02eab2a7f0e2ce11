package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/sakif/content-analytics/internal/apperror"
	"github.com/sakif/content-analytics/internal/model"
	"github.com/sakif/content-analytics/internal/repository"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeStore is an in-memory implementation of every repository interface.
// Set the *Err fields to simulate database failures.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]*model.User
	platforms map[int64]*model.Platform
	contents  []model.Content
	nextID    int64

	createPlatformErr error
	createContentErr  error
}

var (
	_ repository.UserRepository     = (*fakeStore)(nil)
	_ repository.PlatformRepository = (*fakeStore)(nil)
	_ repository.ContentRepository  = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*model.User),
		platforms: make(map[int64]*model.Platform),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return apperror.Conflict("user", user.Username)
		}
	}
	user.ID = "user-" + strconv.FormatInt(f.id(), 10)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (f *fakeStore) CreatePlatform(_ context.Context, p *model.Platform) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createPlatformErr != nil {
		return f.createPlatformErr
	}
	p.ID = f.id()
	p.CreatedAt = time.Now()
	stored := *p
	f.platforms[p.ID] = &stored
	return nil
}

func (f *fakeStore) GetPlatform(_ context.Context, id int64) (*model.Platform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.platforms[id]
	if !ok {
		return nil, apperror.NotFound("platform", strconv.FormatInt(id, 10))
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) ListPlatforms(_ context.Context, ownerID string) ([]model.Platform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Platform{}
	for _, p := range f.platforms {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) DeletePlatform(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.platforms[id]; !ok {
		return apperror.NotFound("platform", strconv.FormatInt(id, 10))
	}
	delete(f.platforms, id)
	kept := f.contents[:0]
	for _, c := range f.contents {
		if c.PlatformID != id {
			kept = append(kept, c)
		}
	}
	f.contents = kept
	return nil
}

func (f *fakeStore) PlatformStats(_ context.Context, ownerID string) (map[model.PlatformName]model.PlatformStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := make(map[model.PlatformName]model.PlatformStats)
	for _, p := range f.platforms {
		if p.OwnerID != ownerID {
			continue
		}
		s := stats[p.PlatformName]
		for _, c := range f.contents {
			if c.PlatformID == p.ID {
				s.ContentCount++
			}
		}
		stats[p.PlatformName] = s
	}
	return stats, nil
}

func (f *fakeStore) CreateContent(_ context.Context, c *model.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createContentErr != nil {
		return f.createContentErr
	}
	c.ID = f.id()
	c.CreatedAt = time.Now()
	f.contents = append(f.contents, *c)
	return nil
}

func (f *fakeStore) ListContents(_ context.Context, ownerID string, opts repository.ListOptions) ([]model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Content{}
	for i := len(f.contents) - 1; i >= 0; i-- {
		if f.contents[i].OwnerID == ownerID {
			out = append(out, f.contents[i])
		}
	}
	if opts.Offset >= len(out) {
		return []model.Content{}, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (f *fakeStore) ListContentsByPlatform(_ context.Context, platformID int64) ([]model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Content{}
	for _, c := range f.contents {
		if c.PlatformID == platformID {
			out = append(out, c)
		}
	}
	return out, nil
}

// mustCreatePlatform is a test helper that fails the test on error.
func mustCreatePlatform(t *testing.T, svc *PlatformService, ownerID, name string) *model.Platform {
	t.Helper()
	p, err := svc.Create(context.Background(), ownerID, name, "")
	if err != nil {
		t.Fatalf("Create(%s) error = %v", name, err)
	}
	return p
}
