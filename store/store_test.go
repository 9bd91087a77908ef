package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/iw2rmb/remindr/document"
	"github.com/iw2rmb/remindr/richtext"
)

func openTemp(t *testing.T) *Repository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "remindr.db")
	r, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn}, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRepository_CreateGetSave(t *testing.T) {
	ctx := context.Background()
	r := openTemp(t)

	doc, err := r.Create(ctx, "Groceries")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if doc.ID == 0 || len(doc.Nodes) != 1 {
		t.Fatalf("create: got id=%d nodes=%d", doc.ID, len(doc.Nodes))
	}

	doc.Title = "Weekly groceries"
	doc.Nodes = append(doc.Nodes,
		document.NewHeading("Fruit", 2),
		document.NewText("apples", []richtext.Span{{Start: 0, End: 6, Style: richtext.Bold}}),
	)
	if err := r.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := r.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Weekly groceries" || len(got.Nodes) != 3 {
		t.Fatalf("get: got title=%q nodes=%d", got.Title, len(got.Nodes))
	}
	if got.Nodes[2].ID != doc.Nodes[2].ID || len(got.Nodes[2].Spans()) != 1 {
		t.Fatalf("node 2: got %+v, want %+v", got.Nodes[2], doc.Nodes[2])
	}
}

func TestRepository_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	r := openTemp(t)

	for _, title := range []string{"a", "b", "c"} {
		if _, err := r.Create(ctx, title); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	list, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list: got %d rows, want 3", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].Title != want {
			t.Fatalf("row %d: got %q, want %q", i, list[i].Title, want)
		}
		if list[i].UpdatedAt.IsZero() {
			t.Fatalf("row %d: missing updated_at", i)
		}
	}
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	r := openTemp(t)

	if _, err := r.Get(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get: got %v, want ErrNotFound", err)
	}
	if err := r.Save(ctx, &document.Document{ID: 42}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("save: got %v, want ErrNotFound", err)
	}
	if err := r.Delete(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: got %v, want ErrNotFound", err)
	}
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	r := openTemp(t)

	doc, err := r.Create(ctx, "tmp")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: got %v, want ErrNotFound", err)
	}
}

func TestOpen_RejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Config{Driver: "mysql", DSN: "x"}, nil); err == nil {
		t.Fatalf("unsupported driver must fail")
	}
	if _, err := Open(ctx, Config{Driver: DriverSQLite}, nil); err == nil {
		t.Fatalf("empty dsn must fail")
	}
}

func TestRebind(t *testing.T) {
	pg := &Repository{driver: DriverPostgres}
	if got, want := pg.rebind("UPDATE t SET a = ?, b = ? WHERE id = ?"), "UPDATE t SET a = $1, b = $2 WHERE id = $3"; got != want {
		t.Fatalf("rebind: got %q, want %q", got, want)
	}
	lite := &Repository{driver: DriverSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("sqlite rebind: got %q", got)
	}
}
