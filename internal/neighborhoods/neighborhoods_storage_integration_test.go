package neighborhoods

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-wasteops/internal/identity"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open("sqlite3", "file:neighborhoods_test?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqldb.Close()
	})

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.NewCreateTable().Model((*Neighborhood)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestBunRepository_CreateAndGetByKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunNeighborhoodRepository(db)
	ctx := context.Background()

	record := &Neighborhood{
		ID:        identity.NeighborhoodUUID("de-pijp"),
		Key:       "de-pijp",
		Name:      "De Pijp",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	fetched, err := repo.GetByKey(ctx, "de-pijp")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if fetched.Name != "De Pijp" {
		t.Fatalf("GetByKey() returned %+v", fetched)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 neighborhood got %d", len(all))
	}
}

func TestBunRepository_MissingNeighborhoodMapsToNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunNeighborhoodRepository(db)

	_, err := repo.GetByKey(context.Background(), "atlantis")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}
