package services

import (
	"testing"
	"time"

	"github.com/yungbote/experience-marketplace/internal/data/repos/testutil"
)

func TestMembershipList(t *testing.T) {
	h := newHarness(t)
	older := testutil.SeedMembership(t, h.ctx, h.db, testExperience, "user_a", "customer", testStart)
	newer := testutil.SeedMembership(t, h.ctx, h.db, testExperience, "user_b", "admin", testStart.Add(time.Hour))
	testutil.SeedMembership(t, h.ctx, h.db, "exp_other", "user_c", "customer", testStart)

	rows, err := h.memberships.List(h.dbc(), testExperience)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != newer.ID || rows[1].ID != older.ID {
		t.Fatalf("expected newest first scoped rows, got %+v", rows)
	}

	if _, err := h.memberships.List(h.dbc(), ""); err == nil {
		t.Fatalf("blank experience id should fail")
	}
}
