package ingest

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/sakif/content-analytics/internal/model"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeDirectory is an in-memory PlatformDirectory that counts calls.
type fakeDirectory struct {
	mu        sync.Mutex
	platforms []model.Platform
	listErr   error
	createErr error
	payload   []byte // returned verbatim by CreatePlatform when set

	listCalls   int
	createCalls int
	created     []model.PlatformName
	createdURLs []string
}

func (f *fakeDirectory) ListPlatforms(_ context.Context, _ string) ([]model.Platform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Platform(nil), f.platforms...), nil
}

func (f *fakeDirectory) CreatePlatform(_ context.Context, name model.PlatformName, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.created = append(f.created, name)
	f.createdURLs = append(f.createdURLs, url)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.payload, nil
}

// fakeCatalog is an in-memory ContentCatalog that records requests.
type fakeCatalog struct {
	mu        sync.Mutex
	createErr error
	requests  []ContentRequest
	nextID    int64
}

func (f *fakeCatalog) CreateContent(_ context.Context, req ContentRequest) (*model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	return &model.Content{
		ID:                f.nextID,
		PlatformID:        req.PlatformID,
		PlatformContentID: req.PlatformContentID,
		ContentType:       req.ContentType,
		Title:             req.Title,
		URL:               req.URL,
	}, nil
}
