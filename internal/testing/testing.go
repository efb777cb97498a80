// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/tbarron/m365prof/internal/store"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// LimitedStore wraps a [store.Store] and fails every mutating call once the
// write budget is spent. Existence checks and reads never count against it.
type LimitedStore struct {
	store.Store
	maxWrites int
	written   int
}

func NewLimitedStore(inner store.Store, maxWrites int) *LimitedStore {
	return &LimitedStore{Store: inner, maxWrites: maxWrites}
}

func (l *LimitedStore) spend() error {
	if l.written >= l.maxWrites {
		return errors.New("write limit exceeded")
	}
	l.written++
	return nil
}

func (l *LimitedStore) CreateNode(path string) error {
	if err := l.spend(); err != nil {
		return err
	}
	return l.Store.CreateNode(path)
}

func (l *LimitedStore) SetAttr(path, name string, v store.Value) error {
	if err := l.spend(); err != nil {
		return err
	}
	return l.Store.SetAttr(path, name, v)
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
