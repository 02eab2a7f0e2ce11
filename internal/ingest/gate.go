package ingest

import "sync"

// Gate is an advisory busy flag keyed by user. The HTTP ingest handler uses
// it to refuse a second submission while one is still running for the same
// user. Nothing inside the pipeline consults it.
type Gate struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewGate() *Gate {
	return &Gate{busy: make(map[string]struct{})}
}

// TryAcquire marks key busy. It returns false if key is already busy.
// On success the caller must call the returned release func exactly once.
func (g *Gate) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, taken := g.busy[key]; taken {
		return nil, false
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, true
}

// Busy reports whether key currently holds the gate.
func (g *Gate) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, taken := g.busy[key]
	return taken
}
