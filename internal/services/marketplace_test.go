package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
	"github.com/yungbote/experience-marketplace/internal/pkg/pointers"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

func TestMarketplaceCreateAndList(t *testing.T) {
	h := newHarness(t)

	empty, err := h.marketplaces.List(h.dbc(), testExperience)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}

	first := h.createMarketplace(t, "Books")
	second := h.createMarketplace(t, "Records")
	if !first.State.IsActive() || first.ExperienceID != testExperience || first.TakeRate != 10 {
		t.Fatalf("unexpected marketplace: %+v", first)
	}
	if !first.CreatedAt.Equal(testStart) {
		t.Fatalf("CreatedAt should come from the clock, got %v", first.CreatedAt)
	}

	list, err := h.marketplaces.List(h.dbc(), testExperience)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	other, err := h.marketplaces.List(h.dbc(), "exp_other")
	if err != nil || len(other) != 0 {
		t.Fatalf("other experience should be empty: %v %v", other, err)
	}
}

func TestMarketplaceCreateValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.marketplaces.Create(h.dbc(), testExperience, marketplaceInput("", 150))
	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["title"] == "" || ve.Fields["takeRate"] == "" {
		t.Fatalf("expected title and takeRate failures, got %v", ve.Fields)
	}

	_, err = h.marketplaces.Create(h.dbc(), "  ", marketplaceInput("Books", 5))
	if !errors.As(err, &ve) || ve.Fields["experienceId"] != "Missing experienceId" {
		t.Fatalf("expected missing experienceId, got %v", err)
	}

	list, _ := h.marketplaces.List(h.dbc(), testExperience)
	if len(list) != 0 {
		t.Fatalf("rejected creates must not persist, got %d rows", len(list))
	}
}

func TestMarketplaceGet(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")

	got, err := h.marketplaces.Get(h.dbc(), m.ID.String(), testExperience)
	if err != nil || got.ID != m.ID {
		t.Fatalf("Get: %+v %v", got, err)
	}

	if _, err := h.marketplaces.Get(h.dbc(), m.ID.String(), "exp_other"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("cross-experience read should be NotFound, got %v", err)
	}
	if _, err := h.marketplaces.Get(h.dbc(), uuid.NewString(), testExperience); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("unknown id should be NotFound, got %v", err)
	}
	if _, err := h.marketplaces.Get(h.dbc(), "not-a-uuid", testExperience); !errors.Is(err, pkgerrors.ErrInvalidIdentifier) {
		t.Fatalf("bad id should be InvalidIdentifier, got %v", err)
	}
}

func TestMarketplaceRenameAuthorization(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")

	_, err := h.marketplaces.Rename(h.dbc(), m.ID.String(), validation.MarketplaceUpdateInput{Title: pointers.String("X")}, customer())
	if !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("customer rename should be Forbidden, got %v", err)
	}

	// A non-admin is refused before the payload is looked at.
	_, err = h.marketplaces.Rename(h.dbc(), m.ID.String(), validation.MarketplaceUpdateInput{}, customer())
	if !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("customer rename with bad payload should still be Forbidden, got %v", err)
	}

	_, err = h.marketplaces.Rename(h.dbc(), m.ID.String(), validation.MarketplaceUpdateInput{Title: pointers.String("X")}, noCaller())
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("anonymous rename should be Unauthorized, got %v", err)
	}

	_, err = h.marketplaces.Rename(h.dbc(), uuid.NewString(), validation.MarketplaceUpdateInput{Title: pointers.String("X")}, admin())
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("rename of unknown marketplace should be NotFound, got %v", err)
	}

	got, _ := h.marketplaces.Get(h.dbc(), m.ID.String(), testExperience)
	if got.Title != "Books" {
		t.Fatalf("refused renames must not change the title, got %q", got.Title)
	}
}

func TestMarketplaceRenameByAdmin(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	h.clock.Advance(time.Hour)

	_, err := h.marketplaces.Rename(h.dbc(), m.ID.String(), validation.MarketplaceUpdateInput{Title: pointers.String(strings.Repeat("a", 101))}, admin())
	var ve *validation.ValidationError
	if !errors.As(err, &ve) || ve.Fields["title"] != "Title is too long" {
		t.Fatalf("expected title validation error, got %v", err)
	}

	renamed, err := h.marketplaces.Rename(h.dbc(), m.ID.String(), validation.MarketplaceUpdateInput{Title: pointers.String("Rare Books")}, admin())
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Title != "Rare Books" || !renamed.UpdatedAt.Equal(h.clock.Now()) {
		t.Fatalf("unexpected rename result: %+v", renamed)
	}

	got, err := h.marketplaces.Get(h.dbc(), m.ID.String(), testExperience)
	if err != nil || got.Title != "Rare Books" || got.TakeRate != m.TakeRate {
		t.Fatalf("reload after rename: %+v %v", got, err)
	}
}

func TestMarketplaceStatusToggle(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	id := m.ID.String()

	if _, err := h.marketplaces.SetActive(h.dbc(), id, validation.MarketplaceStatusInput{Active: pointers.Bool(false)}, customer()); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("customer toggle should be Forbidden, got %v", err)
	}

	off, err := h.marketplaces.SetActive(h.dbc(), id, validation.MarketplaceStatusInput{Active: pointers.Bool(false)}, admin())
	if err != nil || off.State.IsActive() {
		t.Fatalf("deactivate: %+v %v", off, err)
	}
	if _, err := h.marketplaces.Get(h.dbc(), id, testExperience); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("inactive marketplace should read as NotFound, got %v", err)
	}
	if _, err := h.marketplaces.Rename(h.dbc(), id, validation.MarketplaceUpdateInput{Title: pointers.String("X")}, admin()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("renaming an inactive marketplace should be NotFound, got %v", err)
	}
	list, _ := h.marketplaces.List(h.dbc(), testExperience)
	if len(list) != 1 {
		t.Fatalf("inactive marketplaces stay listed, got %d", len(list))
	}

	on, err := h.marketplaces.SetActive(h.dbc(), id, validation.MarketplaceStatusInput{Active: pointers.Bool(true)}, admin())
	if err != nil || !on.State.IsActive() {
		t.Fatalf("reactivate: %+v %v", on, err)
	}
	if _, err := h.marketplaces.SetActive(h.dbc(), id, validation.MarketplaceStatusInput{}, admin()); err == nil {
		t.Fatalf("missing active flag should fail validation")
	}
}

func TestMarketplaceArchive(t *testing.T) {
	h := newHarness(t)
	m := h.createMarketplace(t, "Books")
	keep := h.createMarketplace(t, "Records")
	id := m.ID.String()

	if _, err := h.marketplaces.Archive(h.dbc(), id, customer()); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("customer archive should be Forbidden, got %v", err)
	}

	archived, err := h.marketplaces.Archive(h.dbc(), id, admin())
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if !archived.State.IsDeleted() || !archived.DeletedAt.Valid {
		t.Fatalf("archive should mark the row deleted: %+v", archived)
	}

	if _, err := h.marketplaces.Archive(h.dbc(), id, admin()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("second archive should be NotFound, got %v", err)
	}
	if _, err := h.marketplaces.SetActive(h.dbc(), id, validation.MarketplaceStatusInput{Active: pointers.Bool(true)}, admin()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("deleted marketplaces cannot be reactivated, got %v", err)
	}

	list, _ := h.marketplaces.List(h.dbc(), testExperience)
	if len(list) != 1 || list[0].ID != keep.ID {
		t.Fatalf("archived marketplace should drop out of the listing, got %+v", list)
	}
}
