// Package store persists documents in a SQL database. The default driver is
// the pure Go sqlite driver; postgres is available for a shared database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/iw2rmb/remindr/document"
)

var ErrNotFound = errors.New("store: document not found")

// Driver names a supported database.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type Config struct {
	Driver Driver
	DSN    string
}

// Summary is a document listing row.
type Summary struct {
	ID        int64
	Title     string
	UpdatedAt time.Time
}

// Repository reads and writes documents.
type Repository struct {
	db     *sql.DB
	driver Driver
	log    *zap.Logger
}

// Open connects, pings and migrates the database.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (*Repository, error) {
	if log == nil {
		log = zap.NewNop()
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", driver)
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("store: empty dsn")
	}

	db, err := sql.Open(string(driver), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driver, err)
	}

	r := &Repository{db: db, driver: driver, log: log.With(zap.String("driver", string(driver)))}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) migrate(ctx context.Context) error {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.driver == DriverPostgres {
		id = "BIGSERIAL PRIMARY KEY"
	}
	stmt := `CREATE TABLE IF NOT EXISTS documents (
	id ` + id + `,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '[]',
	updated_at BIGINT NOT NULL DEFAULT 0
)`
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// rebind rewrites "?" placeholders to "$n" for postgres.
func (r *Repository) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

// List returns every document ordered by id.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, title, updated_at FROM documents ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var updated int64
		if err := rows.Scan(&s.ID, &s.Title, &updated); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		s.UpdatedAt = fromMillis(updated)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return out, nil
}

// Get loads one document with its nodes.
func (r *Repository) Get(ctx context.Context, id int64) (*document.Document, error) {
	var title, content string
	err := r.db.QueryRowContext(ctx, r.rebind("SELECT title, content FROM documents WHERE id = ?"), id).Scan(&title, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %d: %w", id, err)
	}
	nodes, err := document.DecodeNodes([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("store: get %d: %w", id, err)
	}
	return &document.Document{ID: id, Title: title, Nodes: nodes}, nil
}

// Create inserts an empty document and returns it.
func (r *Repository) Create(ctx context.Context, title string) (*document.Document, error) {
	doc := &document.Document{Title: title, Nodes: []document.Node{document.NewText("", nil)}}
	content, err := document.EncodeNodes(doc.Nodes)
	if err != nil {
		return nil, fmt.Errorf("store: create: %w", err)
	}
	q := r.rebind("INSERT INTO documents (title, content, updated_at) VALUES (?, ?, ?) RETURNING id")
	if err := r.db.QueryRowContext(ctx, q, title, string(content), nowMillis()).Scan(&doc.ID); err != nil {
		return nil, fmt.Errorf("store: create: %w", err)
	}
	r.log.Debug("document created", zap.Int64("document", doc.ID))
	return doc, nil
}

// Save writes the title and nodes of doc.
func (r *Repository) Save(ctx context.Context, doc *document.Document) error {
	content, err := document.EncodeNodes(doc.Nodes)
	if err != nil {
		return fmt.Errorf("store: save %d: %w", doc.ID, err)
	}
	res, err := r.db.ExecContext(ctx,
		r.rebind("UPDATE documents SET title = ?, content = ?, updated_at = ? WHERE id = ?"),
		doc.Title, string(content), nowMillis(), doc.ID)
	if err != nil {
		return fmt.Errorf("store: save %d: %w", doc.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	r.log.Debug("document saved", zap.Int64("document", doc.ID), zap.Int("nodes", len(doc.Nodes)))
	return nil
}

// Delete removes a document.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.rebind("DELETE FROM documents WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("store: delete %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	r.log.Debug("document deleted", zap.Int64("document", id))
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func nowMillis() int64 { return time.Now().UnixMilli() }

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
