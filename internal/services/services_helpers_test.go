package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/experience-marketplace/internal/data/repos"
	"github.com/yungbote/experience-marketplace/internal/data/repos/testutil"
	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/clock"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/pkg/pointers"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
	"github.com/yungbote/experience-marketplace/internal/services/access"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

const (
	testExperience = "exp_test"
	adminUser      = "user_admin"
	customerUser   = "user_customer"
)

var testStart = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type memStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	types    map[string]string
	failNext error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memStore) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.objects[key] = buf.Bytes()
	s.types[key] = contentType
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return errors.New("object not found")
	}
	delete(s.objects, key)
	delete(s.types, key)
	return nil
}

func (s *memStore) PublicURL(key string) string { return "https://cdn.test/" + key }

type harness struct {
	db           *gorm.DB
	ctx          context.Context
	clock        *clock.Fixed
	verifier     *access.StaticVerifier
	store        *memStore
	marketplaces MarketplaceService
	items        ItemService
	memberships  MembershipService
	views        ViewService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	conn := testutil.SQLite(t)
	log := testutil.Logger(t)
	clk := clock.NewFixed(testStart)
	verifier := &access.StaticVerifier{
		TrustTokens: true,
		Tiers: map[string]types.AccessTier{
			adminUser + ":" + testExperience:    types.TierAdmin,
			customerUser + ":" + testExperience: types.TierCustomer,
		},
	}
	store := newMemStore()

	marketplaceRepo := repos.NewMarketplaceRepo(conn, log)
	itemRepo := repos.NewItemRepo(conn, log)
	imageRepo := repos.NewItemImageRepo(conn, log)
	membershipRepo := repos.NewMembershipRepo(conn, log)

	h := &harness{
		db:       conn,
		ctx:      context.Background(),
		clock:    clk,
		verifier: verifier,
		store:    store,
	}
	h.marketplaces = NewMarketplaceService(log, marketplaceRepo, verifier, clk)
	h.items = NewItemService(log, marketplaceRepo, itemRepo, imageRepo, store, clk)
	h.memberships = NewMembershipService(log, membershipRepo)
	h.views = NewViewService(log, h.marketplaces, h.items, verifier)
	return h
}

func (h *harness) dbc() dbctx.Context { return dbctx.Context{Ctx: h.ctx} }

func (h *harness) createMarketplace(t *testing.T, title string) *types.Marketplace {
	t.Helper()
	m, err := h.marketplaces.Create(h.dbc(), testExperience, marketplaceInput(title, 10))
	if err != nil {
		t.Fatalf("create marketplace: %v", err)
	}
	h.clock.Advance(time.Second)
	return m
}

func (h *harness) createItem(t *testing.T, marketplaceID uuid.UUID, title string) *types.MarketplaceItem {
	t.Helper()
	item, err := h.items.Create(h.dbc(), marketplaceID.String(), itemInput(title, 1500, "user_poster"))
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	h.clock.Advance(time.Second)
	return item
}

func marketplaceInput(title string, takeRate float64) validation.MarketplaceCreateInput {
	return validation.MarketplaceCreateInput{Title: pointers.String(title), TakeRate: pointers.Float64(takeRate)}
}

func itemInput(title string, price float64, postedBy string) validation.ItemCreateInput {
	return validation.ItemCreateInput{
		Title:        pointers.String(title),
		Description:  pointers.String(title + " in good condition"),
		PriceInCents: pointers.Float64(price),
		PostedBy:     pointers.String(postedBy),
	}
}

func admin() types.Identity    { return types.Identity{UserID: adminUser} }
func customer() types.Identity { return types.Identity{UserID: customerUser} }
func noCaller() types.Identity { return types.Identity{} }

func testLogger(t *testing.T) *logger.Logger { return testutil.Logger(t) }
