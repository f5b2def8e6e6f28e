package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Store is the on-disk symbol database queried by `girdoc search` and the
// MCP server. One row per symbol, grouped by indexed namespace.
type Store struct {
	conn *sql.DB
}

// OpenStore opens (creating if needed) the DuckDB database at path.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening symbol store: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) initSchema() error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_namespace_id START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS seq_symbol_id START 1;`,

		`CREATE TABLE IF NOT EXISTS namespaces (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			version TEXT NOT NULL,
			indexed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(name, version)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_namespaces_name ON namespaces (name)`,

		`CREATE TABLE IF NOT EXISTS symbols (
			id INTEGER PRIMARY KEY,
			namespace_id INTEGER NOT NULL REFERENCES namespaces(id),
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			ctype TEXT,
			c_identifier TEXT,
			summary TEXT,
			href TEXT NOT NULL,
			deprecated BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_symbols_namespace ON symbols (namespace_id)`,
		`CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols (name)`,
		`CREATE INDEX IF NOT EXISTS idx_symbols_identifier ON symbols (c_identifier)`,
	}
	for _, q := range queries {
		if _, err := s.conn.Exec(q); err != nil {
			return fmt.Errorf("executing %q: %w", q, err)
		}
	}
	return nil
}

// UpsertNamespace returns the id for a name/version pair, creating the row
// on first sight.
func (s *Store) UpsertNamespace(name, version string) (int, error) {
	var id int
	err := s.conn.QueryRow(
		`SELECT id FROM namespaces WHERE name = ? AND version = ?`,
		name, version,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("checking namespace: %w", err)
	}

	if _, err := s.conn.Exec(
		`INSERT INTO namespaces (id, name, version) VALUES (nextval('seq_namespace_id'), ?, ?)`,
		name, version,
	); err != nil {
		return 0, fmt.Errorf("inserting namespace: %w", err)
	}
	if err := s.conn.QueryRow(`SELECT currval('seq_namespace_id')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("getting namespace id: %w", err)
	}
	return id, nil
}

// Replace re-indexes a namespace: its previous symbols are dropped and the
// given index stored in their place.
func (s *Store) Replace(ix *Index) error {
	nsID, err := s.UpsertNamespace(ix.Meta.Namespace, ix.Meta.Version)
	if err != nil {
		return err
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM symbols WHERE namespace_id = ?`, nsID); err != nil {
		return fmt.Errorf("clearing symbols: %w", err)
	}
	for _, sym := range ix.Symbols {
		if _, err := tx.Exec(
			`INSERT INTO symbols (id, namespace_id, kind, name, ctype, c_identifier, summary, href, deprecated)
			 VALUES (nextval('seq_symbol_id'), ?, ?, ?, ?, ?, ?, ?, ?)`,
			nsID, sym.Kind, sym.Name, sym.CType, sym.Identifier, sym.Summary, sym.Href, sym.Deprecated,
		); err != nil {
			return fmt.Errorf("inserting symbol %s: %w", sym.Name, err)
		}
	}
	if _, err := tx.Exec(
		`UPDATE namespaces SET indexed_at = CURRENT_TIMESTAMP WHERE id = ?`, nsID,
	); err != nil {
		return fmt.Errorf("touching namespace: %w", err)
	}
	return tx.Commit()
}

// StoredSymbol is a symbol row joined with its namespace.
type StoredSymbol struct {
	Namespace string
	Version   string
	Symbol
}

const storedColumns = `n.name, n.version, s.kind, s.name, s.ctype, s.c_identifier, s.summary, s.href, s.deprecated`

func scanStored(rows interface {
	Scan(dest ...any) error
}) (StoredSymbol, error) {
	var r StoredSymbol
	var ctype, identifier, summary sql.NullString
	err := rows.Scan(&r.Namespace, &r.Version, &r.Kind, &r.Name, &ctype, &identifier, &summary, &r.Href, &r.Deprecated)
	r.CType = ctype.String
	r.Identifier = identifier.String
	r.Summary = summary.String
	return r, err
}

// Search returns symbols whose name, C identifier, or summary contains the
// query, case-insensitively. Exact name matches sort first.
func (s *Store) Search(query string, namespace string, limit int) ([]StoredSymbol, error) {
	if limit <= 0 {
		limit = 20
	}
	lowered := strings.ToLower(query)
	pattern := "%" + lowered + "%"

	var nsFilter string
	params := []any{pattern, pattern, pattern}
	if namespace != "" {
		nsFilter = ` AND n.name = ?`
		params = append(params, namespace)
	}
	params = append(params, lowered, limit)

	rows, err := s.conn.Query(fmt.Sprintf(`
		SELECT %s
		FROM symbols s JOIN namespaces n ON n.id = s.namespace_id
		WHERE (lower(s.name) LIKE ? OR lower(s.c_identifier) LIKE ? OR lower(s.summary) LIKE ?)%s
		ORDER BY (lower(s.name) = ?) DESC, length(s.name), s.name
		LIMIT ?`, storedColumns, nsFilter),
		params...,
	)
	if err != nil {
		return nil, fmt.Errorf("searching symbols: %w", err)
	}
	defer rows.Close()

	var results []StoredSymbol
	for rows.Next() {
		r, err := scanStored(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning symbol: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// LookupIdentifier returns the symbol declared under a C identifier, or nil.
func (s *Store) LookupIdentifier(identifier string) (*StoredSymbol, error) {
	row := s.conn.QueryRow(fmt.Sprintf(`
		SELECT %s
		FROM symbols s JOIN namespaces n ON n.id = s.namespace_id
		WHERE s.c_identifier = ?
		LIMIT 1`, storedColumns), identifier)

	r, err := scanStored(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Namespaces lists the indexed namespaces as Name-Version strings.
func (s *Store) Namespaces() ([]string, error) {
	rows, err := s.conn.Query(`SELECT name, version FROM namespaces ORDER BY name, version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name, version string
		if err := rows.Scan(&name, &version); err != nil {
			return nil, err
		}
		out = append(out, name+"-"+version)
	}
	return out, rows.Err()
}
