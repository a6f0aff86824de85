package store

import (
	"context"
	"sync"

	"tinyurl.local/internal/app/tinyurl"
)

// Memory is a process-local map. It backs local runs and tests; mappings are
// lost on restart.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

var _ tinyurl.MappingStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Name() string { return MemoryName }

func (s *Memory) Put(ctx context.Context, m tinyurl.Mapping) tinyurl.Result {
	if f, ok := contextFailure(MemoryName, ctx.Err()); ok {
		return tinyurl.Failed(f)
	}
	s.mu.Lock()
	s.m[m.ID] = m.URL
	s.mu.Unlock()
	return tinyurl.OK("")
}

func (s *Memory) Get(ctx context.Context, id string) tinyurl.Result {
	if f, ok := contextFailure(MemoryName, ctx.Err()); ok {
		return tinyurl.Failed(f)
	}
	s.mu.RLock()
	url, ok := s.m[id]
	s.mu.RUnlock()
	if !ok || url == "" {
		return tinyurl.NotFound()
	}
	return tinyurl.OK(url)
}

func (s *Memory) Ping(context.Context) error { return nil }

// Len reports how many mappings are held.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
