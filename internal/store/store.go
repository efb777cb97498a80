// package store provides the hierarchical settings-store boundary the
// provisioning tool writes profiles into.
//
// The store is a tree of nodes addressed by slash-separated paths; each node
// carries named attributes of one of three kinds (string, dword, binary).
// Store is the single seam between profile provisioning and persistence: the
// SQLite implementation backs real runs, the in-memory implementation backs
// tests and dry runs.
package store

import "bytes"

// Kind identifies the value type of an attribute.
type Kind int

const (
	String Kind = iota
	DWord
	Binary
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case DWord:
		return "dword"
	case Binary:
		return "binary"
	default:
		return ""
	}
}

// Value is a typed attribute value. Exactly one of Str, Word, or Bytes is
// meaningful, selected by Kind.
type Value struct {
	Kind  Kind
	Str   string
	Word  uint32
	Bytes []byte
}

// StringValue builds a string-kinded Value.
func StringValue(s string) Value { return Value{Kind: String, Str: s} }

// DWordValue builds a dword-kinded Value.
func DWordValue(v uint32) Value { return Value{Kind: DWord, Word: v} }

// BinaryValue builds a binary-kinded Value.
func BinaryValue(b []byte) Value { return Value{Kind: Binary, Bytes: b} }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case String:
		return v.Str == o.Str
	case DWord:
		return v.Word == o.Word
	case Binary:
		return bytes.Equal(v.Bytes, o.Bytes)
	default:
		return false
	}
}

// Store is the contract against the external hierarchical settings store.
//
// CreateNode creates every missing ancestor of path as well, mirroring
// create-key semantics of the settings hives this tool targets. SetAttr
// requires the node to already exist. Writes are individually durable but the
// store offers no transaction spanning several of them; callers that issue
// write sequences own the resulting partial-failure risk.
type Store interface {
	// Exists reports whether a node exists at path.
	Exists(path string) (bool, error)

	// CreateNode creates the node at path, along with any missing ancestors.
	// Creating an existing node is a no-op.
	CreateNode(path string) error

	// SetAttr sets a named attribute on an existing node, replacing any
	// previous value regardless of kind.
	SetAttr(path, name string, v Value) error

	// GetAttr returns a named attribute of a node.
	GetAttr(path, name string) (Value, error)

	// Children returns the names of the immediate child nodes of path,
	// sorted lexicographically.
	Children(path string) ([]string, error)

	// Attrs returns all attributes of a node keyed by name.
	Attrs(path string) (map[string]Value, error)

	// DeleteTree removes the node at path and all of its descendants,
	// including their attributes.
	DeleteTree(path string) error

	// Close releases the underlying resources.
	Close() error
}
