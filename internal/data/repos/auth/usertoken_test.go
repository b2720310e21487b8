package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openraise/fundbridge-backend/internal/data/repos/auth"
	"github.com/openraise/fundbridge-backend/internal/data/repos/testutil"
	types "github.com/openraise/fundbridge-backend/internal/domain"
)

func seedToken(t *testing.T, ctx context.Context, repo auth.UserTokenRepo, userID uuid.UUID, expiresAt time.Time) *types.UserToken {
	t.Helper()
	tok, err := repo.Create(ctx, nil, &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  "access-" + uuid.NewString(),
		RefreshToken: "refresh-" + uuid.NewString(),
		ExpiresAt:    expiresAt,
	})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return tok
}

func TestUserTokenLookups(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := auth.NewUserTokenRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("token"))
	tok := seedToken(t, ctx, repo, u.ID, time.Now().Add(time.Hour))

	byAccess, err := repo.GetByAccessToken(ctx, nil, tok.AccessToken)
	if err != nil {
		t.Fatalf("get by access token: %v", err)
	}
	if byAccess == nil || byAccess.ID != tok.ID {
		t.Fatal("expected token by access token")
	}

	byRefresh, err := repo.GetByRefreshToken(ctx, nil, tok.RefreshToken)
	if err != nil {
		t.Fatalf("get by refresh token: %v", err)
	}
	if byRefresh == nil || byRefresh.ID != tok.ID {
		t.Fatal("expected token by refresh token")
	}

	absent, err := repo.GetByAccessToken(ctx, nil, "access-"+uuid.NewString())
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if absent != nil {
		t.Fatal("expected nil for unknown access token")
	}
}

func TestUserTokenDeletes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := auth.NewUserTokenRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("deltoken"))
	first := seedToken(t, ctx, repo, u.ID, time.Now().Add(time.Hour))
	second := seedToken(t, ctx, repo, u.ID, time.Now().Add(time.Hour))

	if err := repo.DeleteByIDs(ctx, nil, []uuid.UUID{first.ID}); err != nil {
		t.Fatalf("delete by ids: %v", err)
	}
	if got, _ := repo.GetByAccessToken(ctx, nil, first.AccessToken); got != nil {
		t.Fatal("deleted token still present")
	}
	if got, _ := repo.GetByAccessToken(ctx, nil, second.AccessToken); got == nil {
		t.Fatal("sibling token should survive DeleteByIDs")
	}

	if err := repo.DeleteByIDs(ctx, nil, nil); err != nil {
		t.Fatalf("empty DeleteByIDs should be a no-op: %v", err)
	}

	if err := repo.DeleteByUserID(ctx, nil, u.ID); err != nil {
		t.Fatalf("delete by user id: %v", err)
	}
	if got, _ := repo.GetByAccessToken(ctx, nil, second.AccessToken); got != nil {
		t.Fatal("DeleteByUserID should remove every session")
	}
}

func TestDeleteExpired(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := auth.NewUserTokenRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, testutil.UniqueEmail("expired"))
	stale := seedToken(t, ctx, repo, u.ID, time.Now().Add(-time.Hour))
	live := seedToken(t, ctx, repo, u.ID, time.Now().Add(time.Hour))

	if err := repo.DeleteExpired(ctx, nil); err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if got, _ := repo.GetByAccessToken(ctx, nil, stale.AccessToken); got != nil {
		t.Fatal("expired token should be gone")
	}
	if got, _ := repo.GetByAccessToken(ctx, nil, live.AccessToken); got == nil {
		t.Fatal("live token should survive")
	}
}
