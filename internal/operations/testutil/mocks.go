package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"filmeda/internal/operations"
)

// MockSection is a configurable implementation of operations.Section
type MockSection struct {
	IDValue   string
	NameValue string

	// ExecuteFunc replaces the default, which returns an empty outcome
	ExecuteFunc func(ctx context.Context, env *operations.Environment) (*operations.Outcome, error)

	// Call tracking
	mu           sync.Mutex
	ExecuteCalls int
	ExecuteArgs  []ExecuteCall
}

// ExecuteCall tracks arguments passed to Execute
type ExecuteCall struct {
	Ctx  context.Context
	Env  *operations.Environment
	Time time.Time
}

// NewMockSection creates a mock that succeeds
func NewMockSection(id string) *MockSection {
	return &MockSection{IDValue: id, NameValue: "Mock " + id}
}

// NewFailingSection creates a mock whose Execute returns err
func NewFailingSection(id string, err error) *MockSection {
	m := NewMockSection(id)
	m.ExecuteFunc = func(context.Context, *operations.Environment) (*operations.Outcome, error) {
		return nil, err
	}
	return m
}

// NewPanickingSection creates a mock whose Execute panics
func NewPanickingSection(id string) *MockSection {
	m := NewMockSection(id)
	m.ExecuteFunc = func(context.Context, *operations.Environment) (*operations.Outcome, error) {
		panic(fmt.Sprintf("%s exploded", id))
	}
	return m
}

// ID returns the section ID
func (m *MockSection) ID() string {
	return m.IDValue
}

// Name returns the section name
func (m *MockSection) Name() string {
	return m.NameValue
}

// Execute records the call and runs ExecuteFunc
func (m *MockSection) Execute(ctx context.Context, env *operations.Environment) (*operations.Outcome, error) {
	m.mu.Lock()
	m.ExecuteCalls++
	m.ExecuteArgs = append(m.ExecuteArgs, ExecuteCall{Ctx: ctx, Env: env, Time: time.Now()})
	m.mu.Unlock()

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, env)
	}
	return &operations.Outcome{RowsIn: env.Table.Len(), Summary: "mock"}, nil
}

// GetExecuteCalls returns the number of Execute calls
func (m *MockSection) GetExecuteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ExecuteCalls
}

// MemoryStore keeps artifacts in memory
type MemoryStore struct {
	mu    sync.Mutex
	files map[string]*bytes.Buffer
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]*bytes.Buffer)}
}

type memoryFile struct {
	*bytes.Buffer
}

func (memoryFile) Close() error { return nil }

// Create implements operations.ArtifactStore
func (s *MemoryStore) Create(name string) (io.WriteCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := &bytes.Buffer{}
	s.files[name] = buf
	return memoryFile{buf}, name, nil
}

// Remove implements operations.ArtifactStore
func (s *MemoryStore) Remove(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, location)
	return nil
}

// Names returns the stored artifact names, sorted
func (s *MemoryStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bytes returns an artifact's content
func (s *MemoryStore) Bytes(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if buf, ok := s.files[name]; ok {
		return buf.Bytes()
	}
	return nil
}
