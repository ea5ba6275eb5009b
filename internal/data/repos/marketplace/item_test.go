package marketplace

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/experience-marketplace/internal/data/db"
	"github.com/yungbote/experience-marketplace/internal/data/repos/testutil"
	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
)

func TestItemRepoPagingAndImages(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewItemRepo(conn, testutil.Logger(t))
	m := testutil.SeedMarketplace(t, ctx, tx, "exp_"+uuid.NewString(), "Books")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var items []*types.MarketplaceItem
	for i := 0; i < 5; i++ {
		items = append(items, testutil.SeedItem(t, ctx, tx, m.ID, fmt.Sprintf("item-%d", i), base.Add(time.Duration(i)*time.Minute)))
	}
	testutil.SeedItemImage(t, ctx, tx, items[4].ID, "https://cdn.example.com/old-inactive.png", false, base)
	testutil.SeedItemImage(t, ctx, tx, items[4].ID, "https://cdn.example.com/first.png", true, base.Add(time.Second))
	testutil.SeedItemImage(t, ctx, tx, items[4].ID, "https://cdn.example.com/second.png", true, base.Add(2*time.Second))

	page, err := repo.ListVisible(dbc, m.ID, types.Page{Limit: 2, Skip: 0})
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(page) != 2 || page[0].ID != items[4].ID || page[1].ID != items[3].ID {
		t.Fatalf("ListVisible: expected newest first, got %+v", page)
	}
	if url := page[0].ImageURL(); url == nil || *url != "https://cdn.example.com/first.png" {
		t.Fatalf("ImageURL: got %v", url)
	}
	if page[1].ImageURL() != nil {
		t.Fatalf("ImageURL: expected nil for item without images")
	}

	tail, err := repo.ListVisible(dbc, m.ID, types.Page{Limit: 10, Skip: 4})
	if err != nil || len(tail) != 1 || tail[0].ID != items[0].ID {
		t.Fatalf("ListVisible tail: %+v %v", tail, err)
	}

	total, err := repo.CountVisible(dbc, m.ID)
	if err != nil || total != 5 {
		t.Fatalf("CountVisible: %d %v", total, err)
	}

	deleted, err := repo.SoftDelete(dbc, m.ID, items[2].ID, base.Add(time.Hour))
	if err != nil || deleted == nil || deleted.Title != "item-2" {
		t.Fatalf("SoftDelete: %+v %v", deleted, err)
	}
	total, err = repo.CountVisible(dbc, m.ID)
	if err != nil || total != 4 {
		t.Fatalf("CountVisible after delete: %d %v", total, err)
	}
}

func TestItemRepoScopedLookupAndDelete(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewItemRepo(conn, testutil.Logger(t))
	experienceID := "exp_" + uuid.NewString()
	m := testutil.SeedMarketplace(t, ctx, tx, experienceID, "Books")
	other := testutil.SeedMarketplace(t, ctx, tx, experienceID, "Games")

	created, err := repo.Create(dbc, &types.MarketplaceItem{
		MarketplaceID: m.ID,
		Title:         "Pen",
		Description:   "Blue pen",
		PriceInCents:  150,
		PostedBy:      "U1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetVisible(dbc, m.ID, created.ID)
	if err != nil || got == nil || got.PriceInCents != 150 {
		t.Fatalf("GetVisible: %+v %v", got, err)
	}
	wrong, err := repo.GetVisible(dbc, other.ID, created.ID)
	if err != nil || wrong != nil {
		t.Fatalf("GetVisible through another marketplace should miss: %+v %v", wrong, err)
	}

	miss, err := repo.SoftDelete(dbc, other.ID, created.ID, time.Now().UTC())
	if err != nil || miss != nil {
		t.Fatalf("SoftDelete through another marketplace should miss: %+v %v", miss, err)
	}

	if _, err := repo.SoftDelete(dbc, m.ID, created.ID, time.Now().UTC()); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	again, err := repo.SoftDelete(dbc, m.ID, created.ID, time.Now().UTC())
	if err != nil || again != nil {
		t.Fatalf("second SoftDelete should miss: %+v %v", again, err)
	}
	gone, err := repo.GetVisible(dbc, m.ID, created.ID)
	if err != nil || gone != nil {
		t.Fatalf("GetVisible after delete: %+v %v", gone, err)
	}
}

func TestItemRepoCreateRejectsUnknownMarketplace(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewItemRepo(conn, testutil.Logger(t))
	_, err := repo.Create(dbc, &types.MarketplaceItem{
		MarketplaceID: uuid.New(),
		Title:         "Orphan",
		Description:   "No parent",
		PriceInCents:  1,
		PostedBy:      "U1",
	})
	if !db.IsForeignKeyViolation(err) {
		t.Fatalf("expected FK violation, got %v", err)
	}
}
