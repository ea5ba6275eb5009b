package marketplace

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestStateTransitions(t *testing.T) {
	if !StateActive.CanTransitionTo(StateInactive) || !StateInactive.CanTransitionTo(StateActive) {
		t.Fatalf("active and inactive should toggle")
	}
	if StateDeleted.CanTransitionTo(StateActive) || StateDeleted.CanTransitionTo(StateInactive) {
		t.Fatalf("deleted must be terminal")
	}
	if State("archived").Valid() {
		t.Fatalf("unknown state should be invalid")
	}
}

func TestMarketplaceJSONExposesActive(t *testing.T) {
	m := Marketplace{ID: uuid.New(), ExperienceID: "exp_1", Title: "Books", TakeRate: 10, State: StateActive}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["active"] != true {
		t.Fatalf("expected active=true, got %v", out["active"])
	}
	if out["deletedAt"] != nil {
		t.Fatalf("expected deletedAt=null, got %v", out["deletedAt"])
	}
	if _, ok := out["state"]; ok {
		t.Fatalf("state should not be rendered")
	}

	m.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	m.State = StateDeleted
	raw, _ = json.Marshal(&m)
	_ = json.Unmarshal(raw, &out)
	if out["active"] != false {
		t.Fatalf("deleted marketplace must render active=false")
	}
	if m.Visible() {
		t.Fatalf("deleted marketplace must not be visible")
	}
}

func TestItemImageURLPicksFirstActive(t *testing.T) {
	item := &MarketplaceItem{Images: []MarketplaceItemImage{
		{StorageLocation: "https://cdn/old.png", Active: false},
		{StorageLocation: "https://cdn/a.png", Active: true},
		{StorageLocation: "https://cdn/b.png", Active: true},
	}}
	got := item.ImageURL()
	if got == nil || *got != "https://cdn/a.png" {
		t.Fatalf("unexpected image url: %v", got)
	}
	if (&MarketplaceItem{}).ImageURL() != nil {
		t.Fatalf("item without images should have nil image url")
	}
}
