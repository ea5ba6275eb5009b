package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
	"github.com/yungbote/experience-marketplace/internal/pkg/pointers"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

func TestItemCreateIsOpenToAnyPoster(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")

	item, err := h.items.Create(h.dbc(), m.ID.String(), itemInput("Lamp", 2500, "user_stranger"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.PostedBy != "user_stranger" || item.PriceInCents != 2500 || !item.State.IsActive() {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.MarketplaceID != m.ID {
		t.Fatalf("item should belong to %s, got %s", m.ID, item.MarketplaceID)
	}
}

func TestItemCreateRejects(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")

	if _, err := h.items.Create(h.dbc(), uuid.NewString(), itemInput("Lamp", 100, "u")); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("unknown marketplace should be NotFound, got %v", err)
	}
	if _, err := h.items.Create(h.dbc(), "nope", itemInput("Lamp", 100, "u")); !errors.Is(err, pkgerrors.ErrInvalidIdentifier) {
		t.Fatalf("bad id should be InvalidIdentifier, got %v", err)
	}

	// Payload problems are reported before the marketplace is looked up.
	_, err := h.items.Create(h.dbc(), uuid.NewString(), itemInput("Lamp", -5, "u"))
	var ve *validation.ValidationError
	if !errors.As(err, &ve) || ve.Fields["priceInCents"] != "Price must be a positive number" {
		t.Fatalf("expected price validation error, got %v", err)
	}

	if _, err := h.marketplaces.SetActive(h.dbc(), m.ID.String(), validation.MarketplaceStatusInput{Active: pointers.Bool(false)}, admin()); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := h.items.Create(h.dbc(), m.ID.String(), itemInput("Lamp", 100, "u")); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("inactive marketplace should refuse items, got %v", err)
	}
}

func TestItemListPaging(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	var created []*types.MarketplaceItem
	for i := 0; i < 12; i++ {
		created = append(created, h.createItem(t, m.ID, fmt.Sprintf("item-%02d", i)))
	}

	first, err := h.items.List(h.dbc(), m.ID.String(), types.Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first.Items) != validation.DefaultPageLimit || first.Total != 12 || !first.HasMore {
		t.Fatalf("first page: len=%d total=%d hasMore=%v", len(first.Items), first.Total, first.HasMore)
	}
	if first.Items[0].ID != created[11].ID {
		t.Fatalf("expected newest item first, got %s", first.Items[0].Title)
	}

	rest, err := h.items.List(h.dbc(), m.ID.String(), types.Page{Limit: 10, Skip: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rest.Items) != 2 || rest.HasMore || rest.Items[1].ID != created[0].ID {
		t.Fatalf("second page: %+v", rest)
	}

	wide, err := h.items.List(h.dbc(), m.ID.String(), types.Page{Limit: 500})
	if err != nil || len(wide.Items) != 12 || wide.HasMore {
		t.Fatalf("clamped page: %+v %v", wide, err)
	}

	past, err := h.items.List(h.dbc(), m.ID.String(), types.Page{Limit: 5, Skip: 50})
	if err != nil || len(past.Items) != 0 || past.Total != 12 || past.HasMore {
		t.Fatalf("page past the end: %+v %v", past, err)
	}
	if past.Items == nil {
		t.Fatalf("empty page must render as [], not null")
	}

	if _, err := h.items.Delete(h.dbc(), m.ID.String(), created[3].ID.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	after, _ := h.items.List(h.dbc(), m.ID.String(), types.Page{Limit: 100})
	if after.Total != 11 || len(after.Items) != 11 {
		t.Fatalf("deleted items must drop out of the listing: total=%d", after.Total)
	}
}

func TestItemListUnknownMarketplace(t *testing.T) {
	h := newHarness(t)
	if _, err := h.items.List(h.dbc(), uuid.NewString(), types.Page{}); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestItemGet(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	other := h.createMarketplace(t, "Records")
	item := h.createItem(t, m.ID, "Lamp")

	detail, err := h.items.Get(h.dbc(), m.ID.String(), item.ID.String())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.ExperienceID != testExperience || detail.MarketplaceID != m.ID || detail.ImageURL != nil {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	if _, err := h.items.Get(h.dbc(), other.ID.String(), item.ID.String()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("item under another marketplace should be NotFound, got %v", err)
	}
	if _, err := h.items.Get(h.dbc(), m.ID.String(), "1234"); !errors.Is(err, pkgerrors.ErrInvalidIdentifier) {
		t.Fatalf("bad item id should be InvalidIdentifier, got %v", err)
	}
}

func TestItemDeleteIsPermissiveAndScoped(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	other := h.createMarketplace(t, "Records")
	item := h.createItem(t, m.ID, "Lamp")

	if _, err := h.items.Delete(h.dbc(), other.ID.String(), item.ID.String()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("delete through the wrong marketplace should be NotFound, got %v", err)
	}

	deleted, err := h.items.Delete(h.dbc(), m.ID.String(), item.ID.String())
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != item.ID || deleted.Title != "Lamp" {
		t.Fatalf("unexpected delete result: %+v", deleted)
	}

	if _, err := h.items.Delete(h.dbc(), m.ID.String(), item.ID.String()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("second delete should be NotFound, got %v", err)
	}
	if _, err := h.items.Get(h.dbc(), m.ID.String(), item.ID.String()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("deleted item should read as NotFound, got %v", err)
	}
}

func TestItemAddImage(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	item := h.createItem(t, m.ID, "Lamp")

	img, err := h.items.AddImage(h.dbc(), m.ID.String(), item.ID.String(), ImageUpload{
		Filename:    "lamp.png",
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("\x89PNG"),
	})
	if err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	wantPrefix := fmt.Sprintf("marketplaces/%s/items/%s/", m.ID, item.ID)
	if !strings.HasPrefix(img.StorageKey, wantPrefix) || !strings.HasSuffix(img.StorageKey, ".png") {
		t.Fatalf("unexpected storage key %q", img.StorageKey)
	}
	if _, ok := h.store.objects[img.StorageKey]; !ok {
		t.Fatalf("object was not uploaded")
	}

	detail, err := h.items.Get(h.dbc(), m.ID.String(), item.ID.String())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.ImageURL == nil || *detail.ImageURL != "https://cdn.test/"+img.StorageKey {
		t.Fatalf("imageUrl should point at the upload, got %v", detail.ImageURL)
	}
}

func TestItemAddImageRejects(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	item := h.createItem(t, m.ID, "Lamp")

	_, err := h.items.AddImage(h.dbc(), m.ID.String(), item.ID.String(), ImageUpload{
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Size:        3,
		Body:        strings.NewReader("abc"),
	})
	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("non-image upload should fail validation, got %v", err)
	}

	_, err = h.items.AddImage(h.dbc(), m.ID.String(), uuid.NewString(), ImageUpload{
		Filename: "x.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x"),
	})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("unknown item should be NotFound, got %v", err)
	}

	h.store.failNext = errors.New("bucket unavailable")
	_, err = h.items.AddImage(h.dbc(), m.ID.String(), item.ID.String(), ImageUpload{
		Filename: "x.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x"),
	})
	if err == nil || errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("upload failure should surface as an internal error, got %v", err)
	}
	if len(h.store.objects) != 0 {
		t.Fatalf("no objects should be stored, got %d", len(h.store.objects))
	}
}

func TestItemAddImageWithoutStorage(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	item := h.createItem(t, m.ID, "Lamp")

	svc := NewItemService(testLogger(t), nil, nil, nil, nil, h.clock)
	_, err := svc.AddImage(h.dbc(), m.ID.String(), item.ID.String(), ImageUpload{
		Filename: "x.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x"),
	})
	if !errors.Is(err, pkgerrors.ErrStorageDisabled) {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
}
