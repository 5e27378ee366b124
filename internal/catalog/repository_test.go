package catalog

import (
	"context"
	"reflect"
	"testing"

	"github.com/esihle/storefront-backend/pkg/config"
	"github.com/esihle/storefront-backend/pkg/db"
	"github.com/esihle/storefront-backend/pkg/migrate"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{
		DSN:    "file:" + t.Name() + "?mode=memory&cache=shared",
		Driver: config.DBDriverSQLite,
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if err := migrate.Run(ctx, sqlDB, client.Driver(), "", "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(client.DB())
}

func TestRepositorySeedAndRead(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	fixtures := fixtureProducts(t)

	inserted, err := repo.Seed(ctx, fixtures)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if inserted != 4 {
		t.Fatalf("expected 4 inserts, got %d", inserted)
	}

	got, err := repo.Products(ctx)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []string{"1", "2", "3", "4"}) {
		t.Fatalf("unexpected order %v", ids(got))
	}

	serum := got[0]
	if !serum.Price.Equal(price(t, "89.99")) {
		t.Fatalf("unexpected price %s", serum.Price)
	}
	if serum.OriginalPrice == nil || !serum.OriginalPrice.Equal(price(t, "119.99")) {
		t.Fatalf("unexpected original price %v", serum.OriginalPrice)
	}
	if !reflect.DeepEqual(serum.Ingredients, fixtures[0].Ingredients) {
		t.Fatalf("ingredients did not round trip: %v", serum.Ingredients)
	}
	if serum.Usage != fixtures[0].Usage || serum.Rating != 4.8 || !serum.Featured || !serum.InStock {
		t.Fatalf("unexpected serum %+v", serum)
	}
	if got[1].OriginalPrice != nil {
		t.Fatalf("cream should have no original price")
	}
}

func TestRepositorySeedUpdatesExistingRows(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	fixtures := fixtureProducts(t)
	if _, err := repo.Seed(ctx, fixtures); err != nil {
		t.Fatalf("seed: %v", err)
	}

	fixtures[2].Price = price(t, "39.00")
	fixtures[2].InStock = false
	inserted, err := repo.Seed(ctx, fixtures)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected no new rows, got %d", inserted)
	}

	got, err := repo.Products(ctx)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got))
	}
	if !got[2].Price.Equal(price(t, "39")) || got[2].InStock {
		t.Fatalf("row was not updated: %+v", got[2])
	}
}

func TestRepositoryIsACatalogSource(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	if _, err := repo.Seed(ctx, fixtureProducts(t)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store, err := Load(ctx, repo, nil)
	if err != nil {
		t.Fatalf("load from repository: %v", err)
	}
	if got := ids(store.Featured()); !reflect.DeepEqual(got, []string{"1", "2", "4"}) {
		t.Fatalf("unexpected featured %v", got)
	}
}
