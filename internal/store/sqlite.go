package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// SQLiteStore implements [Store] on top of the sqlite hive schema created by
// the shared migrations (nodes + attrs tables).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database connection as a settings store.
// Foreign-key enforcement comes from the DSN the shared database opener
// builds; a PRAGMA here would only bind to whichever pooled connection ran it.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Exists reports whether a node exists at path.
func (s *SQLiteStore) Exists(path string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM nodes WHERE path = ?)", path).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check node existence: %w", err)
	}
	return exists, nil
}

// CreateNode creates the node at path along with any missing ancestors.
func (s *SQLiteStore) CreateNode(path string) error {
	if path == "" {
		return fmt.Errorf("node path is empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ancestor := range ancestry(path) {
		if _, err := tx.Exec("INSERT OR IGNORE INTO nodes (path) VALUES (?)", ancestor); err != nil {
			return fmt.Errorf("failed to create node %s: %w", ancestor, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit node creation: %w", err)
	}
	return nil
}

// SetAttr sets a named attribute on an existing node.
func (s *SQLiteStore) SetAttr(path, name string, v Value) error {
	exists, err := s.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("node does not exist: %s", path)
	}

	query := `
		INSERT INTO attrs (path, name, kind, str_value, dword_value, blob_value) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path, name) DO UPDATE SET
			kind = excluded.kind,
			str_value = excluded.str_value,
			dword_value = excluded.dword_value,
			blob_value = excluded.blob_value
	`

	_, err = s.db.Exec(query, path, name, int(v.Kind), v.Str, int64(v.Word), v.Bytes)
	if err != nil {
		return fmt.Errorf("failed to set attribute %s on %s: %w", name, path, err)
	}
	return nil
}

// GetAttr returns a named attribute of a node.
func (s *SQLiteStore) GetAttr(path, name string) (Value, error) {
	var (
		kind  int
		str   sql.NullString
		dword sql.NullInt64
		blob  []byte
	)

	query := "SELECT kind, str_value, dword_value, blob_value FROM attrs WHERE path = ? AND name = ?"
	err := s.db.QueryRow(query, path, name).Scan(&kind, &str, &dword, &blob)
	if err == sql.ErrNoRows {
		return Value{}, fmt.Errorf("attribute not found: %s on %s", name, path)
	}
	if err != nil {
		return Value{}, fmt.Errorf("failed to query attribute: %w", err)
	}

	return scanValue(kind, str, dword, blob), nil
}

// Children returns the names of the immediate child nodes of path, sorted.
func (s *SQLiteStore) Children(path string) ([]string, error) {
	prefix := path + "/"
	rows, err := s.db.Query("SELECT path FROM nodes WHERE path LIKE ? ESCAPE '\\' ORDER BY path", likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan node path: %w", err)
		}
		rest := strings.TrimPrefix(p, prefix)
		if rest != "" && !strings.Contains(rest, "/") {
			children = append(children, rest)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	sort.Strings(children)
	return children, nil
}

// Attrs returns all attributes of a node keyed by name.
func (s *SQLiteStore) Attrs(path string) (map[string]Value, error) {
	rows, err := s.db.Query("SELECT name, kind, str_value, dword_value, blob_value FROM attrs WHERE path = ?", path)
	if err != nil {
		return nil, fmt.Errorf("failed to query attributes: %w", err)
	}
	defer rows.Close()

	attrs := make(map[string]Value)
	for rows.Next() {
		var (
			name  string
			kind  int
			str   sql.NullString
			dword sql.NullInt64
			blob  []byte
		)
		if err := rows.Scan(&name, &kind, &str, &dword, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}
		attrs[name] = scanValue(kind, str, dword, blob)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return attrs, nil
}

// DeleteTree removes the node at path and all of its descendants.
//
// Attribute rows are deleted explicitly rather than left to the cascade, so
// the tree comes out clean even on a handle opened without foreign keys.
func (s *SQLiteStore) DeleteTree(path string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	prefix := likePrefix(path + "/")
	if _, err := tx.Exec(
		"DELETE FROM attrs WHERE path = ? OR path LIKE ? ESCAPE '\\'",
		path, prefix,
	); err != nil {
		return fmt.Errorf("failed to delete tree attributes %s: %w", path, err)
	}

	result, err := tx.Exec(
		"DELETE FROM nodes WHERE path = ? OR path LIKE ? ESCAPE '\\'",
		path, prefix,
	)
	if err != nil {
		return fmt.Errorf("failed to delete tree %s: %w", path, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("node not found: %s", path)
	}
	return tx.Commit()
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ancestry lists every prefix path of p from the root down, p included.
func ancestry(p string) []string {
	parts := strings.Split(p, "/")
	paths := make([]string, 0, len(parts))
	for i := range parts {
		paths = append(paths, strings.Join(parts[:i+1], "/"))
	}
	return paths
}

// likePrefix escapes LIKE metacharacters in prefix and appends the wildcard.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

// scanValue converts the three nullable value columns into a Value by kind.
func scanValue(kind int, str sql.NullString, dword sql.NullInt64, blob []byte) Value {
	v := Value{Kind: Kind(kind)}
	switch v.Kind {
	case String:
		v.Str = str.String
	case DWord:
		v.Word = uint32(dword.Int64)
	case Binary:
		v.Bytes = blob
	}
	return v
}
