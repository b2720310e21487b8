package investment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openraise/fundbridge-backend/internal/data/repos/investment"
	"github.com/openraise/fundbridge-backend/internal/data/repos/testutil"
	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
)

func TestCreateForcesPendingStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := investment.NewInvestmentRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("investor"))
	c := testutil.SeedCampaign(t, ctx, tx, u.ID, "1000")

	inv := &types.Investment{
		ID:            uuid.New(),
		UserID:        u.ID,
		CampaignID:    c.ID,
		Amount:        decimal.RequireFromString("50"),
		PaymentID:     testutil.UniquePaymentID(),
		PaymentStatus: types.PaymentCompleted,
		PaymentMethod: "card",
	}
	created, err := repo.Create(ctx, tx, inv)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PaymentStatus != types.PaymentPending {
		t.Errorf("new investment must start pending, got %s", created.PaymentStatus)
	}
}

func TestCreateDuplicatePaymentIDConflicts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := investment.NewInvestmentRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("dup"))
	c := testutil.SeedCampaign(t, ctx, tx, u.ID, "1000")
	paymentID := testutil.UniquePaymentID()
	testutil.SeedInvestment(t, ctx, tx, u.ID, c.ID, "50", paymentID)

	_, err := repo.Create(ctx, tx, &types.Investment{
		ID:            uuid.New(),
		UserID:        u.ID,
		CampaignID:    c.ID,
		Amount:        decimal.RequireFromString("75"),
		PaymentID:     paymentID,
		PaymentMethod: "card",
	})
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate payment id, got %v", err)
	}
}

func TestGetByPaymentID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := investment.NewInvestmentRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("lookup"))
	c := testutil.SeedCampaign(t, ctx, tx, u.ID, "1000")
	paymentID := testutil.UniquePaymentID()
	seeded := testutil.SeedInvestment(t, ctx, tx, u.ID, c.ID, "50", paymentID)

	got, err := repo.GetByPaymentID(ctx, tx, paymentID)
	if err != nil {
		t.Fatalf("get by payment id: %v", err)
	}
	if got == nil || got.ID != seeded.ID {
		t.Fatalf("expected investment %s, got %+v", seeded.ID, got)
	}

	absent, err := repo.GetByPaymentID(ctx, tx, testutil.UniquePaymentID())
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if absent != nil {
		t.Fatal("expected nil for unknown payment id")
	}
}

func TestTransitionStatusSwapsOnce(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := investment.NewInvestmentRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("cas"))
	c := testutil.SeedCampaign(t, ctx, tx, u.ID, "1000")
	inv := testutil.SeedInvestment(t, ctx, tx, u.ID, c.ID, "50", testutil.UniquePaymentID())

	hash := testutil.PtrString("0xabc")
	swapped, err := repo.TransitionStatus(ctx, tx, inv.ID, types.PaymentPending, types.PaymentCompleted, hash)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if !swapped {
		t.Fatal("first transition should swap")
	}

	// Same conditional write again: the stored status no longer matches.
	swapped, err = repo.TransitionStatus(ctx, tx, inv.ID, types.PaymentPending, types.PaymentCompleted, hash)
	if err != nil {
		t.Fatalf("replay transition: %v", err)
	}
	if swapped {
		t.Fatal("replayed transition must not swap")
	}

	got, err := repo.GetByID(ctx, tx, inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PaymentStatus != types.PaymentCompleted {
		t.Errorf("status: got %s, want completed", got.PaymentStatus)
	}
	if got.TransactionHash == nil || *got.TransactionHash != "0xabc" {
		t.Errorf("transaction hash not recorded: %v", got.TransactionHash)
	}
}

func TestTransitionStatusUnknownInvestment(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := investment.NewInvestmentRepo(db, testutil.Logger(t))

	swapped, err := repo.TransitionStatus(context.Background(), tx, uuid.New(), types.PaymentPending, types.PaymentCompleted, nil)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if swapped {
		t.Fatal("unknown investment must not swap")
	}
}

func TestListByUserAndCampaign(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := investment.NewInvestmentRepo(db, testutil.Logger(t))
	ctx := context.Background()

	investor := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("lister"))
	other := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("other"))
	c := testutil.SeedCampaign(t, ctx, tx, investor.ID, "1000")
	mine := testutil.SeedInvestment(t, ctx, tx, investor.ID, c.ID, "50", testutil.UniquePaymentID())
	theirs := testutil.SeedInvestment(t, ctx, tx, other.ID, c.ID, "60", testutil.UniquePaymentID())

	byUser, err := repo.ListByUserID(ctx, tx, investor.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(byUser) != 1 || byUser[0].ID != mine.ID {
		t.Fatalf("list by user: got %d rows", len(byUser))
	}
	if byUser[0].Campaign == nil || byUser[0].Campaign.ID != c.ID {
		t.Error("user listing should preload the campaign")
	}

	byCampaign, err := repo.ListByCampaignID(ctx, tx, c.ID)
	if err != nil {
		t.Fatalf("list by campaign: %v", err)
	}
	if len(byCampaign) != 2 {
		t.Fatalf("list by campaign: got %d rows, want 2", len(byCampaign))
	}
	ids := map[uuid.UUID]bool{}
	for _, inv := range byCampaign {
		ids[inv.ID] = true
		if inv.User == nil {
			t.Error("campaign listing should preload the investor")
		}
	}
	if !ids[mine.ID] || !ids[theirs.ID] {
		t.Error("expected both investments in campaign listing")
	}
}
