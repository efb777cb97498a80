package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tbarron/m365prof/internal/shared"
)

// MemoryStore implements [Store] entirely in memory. It backs tests and the
// provision --dry-run mode, where the write sequence should be exercised
// without touching the persistent hive.
type MemoryStore struct {
	mu     sync.RWMutex
	closed bool
	nodes  map[string]struct{}
	attrs  map[string]map[string]Value
}

// NewMemoryStore creates an empty in-memory settings store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: make(map[string]struct{}),
		attrs: make(map[string]map[string]Value),
	}
}

// Exists reports whether a node exists at path.
func (s *MemoryStore) Exists(path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nodes[path]
	return ok, nil
}

// CreateNode creates the node at path along with any missing ancestors.
func (s *MemoryStore) CreateNode(path string) error {
	if path == "" {
		return fmt.Errorf("node path is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return shared.ErrStoreClosed
	}
	for _, ancestor := range ancestry(path) {
		s.nodes[ancestor] = struct{}{}
	}
	return nil
}

// SetAttr sets a named attribute on an existing node.
func (s *MemoryStore) SetAttr(path, name string, v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return shared.ErrStoreClosed
	}
	if _, ok := s.nodes[path]; !ok {
		return fmt.Errorf("node does not exist: %s", path)
	}

	if s.attrs[path] == nil {
		s.attrs[path] = make(map[string]Value)
	}
	if v.Kind == Binary {
		// Copy so later mutation of the caller's slice cannot leak in.
		b := make([]byte, len(v.Bytes))
		copy(b, v.Bytes)
		v.Bytes = b
	}
	s.attrs[path][name] = v
	return nil
}

// GetAttr returns a named attribute of a node.
func (s *MemoryStore) GetAttr(path, name string) (Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.attrs[path][name]
	if !ok {
		return Value{}, fmt.Errorf("attribute not found: %s on %s", name, path)
	}
	return v, nil
}

// Children returns the names of the immediate child nodes of path, sorted.
func (s *MemoryStore) Children(path string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := path + "/"
	var children []string
	for p := range s.nodes {
		rest, ok := strings.CutPrefix(p, prefix)
		if ok && rest != "" && !strings.Contains(rest, "/") {
			children = append(children, rest)
		}
	}

	sort.Strings(children)
	return children, nil
}

// Attrs returns all attributes of a node keyed by name.
func (s *MemoryStore) Attrs(path string) (map[string]Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs := make(map[string]Value, len(s.attrs[path]))
	for name, v := range s.attrs[path] {
		attrs[name] = v
	}
	return attrs, nil
}

// DeleteTree removes the node at path and all of its descendants.
func (s *MemoryStore) DeleteTree(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[path]; !ok {
		return fmt.Errorf("node not found: %s", path)
	}

	prefix := path + "/"
	for p := range s.nodes {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(s.nodes, p)
			delete(s.attrs, p)
		}
	}
	return nil
}

// Close marks the store closed; later mutations fail with
// [shared.ErrStoreClosed]. Closing twice is fine.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
