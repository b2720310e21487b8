package services_test

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/openraise/fundbridge-backend/internal/data/repos/auth"
	"github.com/openraise/fundbridge-backend/internal/data/repos/testutil"
	"github.com/openraise/fundbridge-backend/internal/data/repos/user"
	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/ctxutil"
	"github.com/openraise/fundbridge-backend/internal/services"
)

func newAuthService(t *testing.T) services.AuthService {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return services.NewAuthService(
		db, log,
		user.NewUserRepo(db, log),
		auth.NewUserTokenRepo(db, log),
		"test-secret",
		time.Minute,
		time.Hour,
	)
}

func registerUser(t *testing.T, svc services.AuthService, email, password string) *types.User {
	t.Helper()
	db := testutil.DB(t)
	u, err := svc.RegisterUser(context.Background(), services.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("user_id = ?", u.ID).Delete(&types.UserToken{})
		db.Unscoped().Where("id = ?", u.ID).Delete(&types.User{})
	})
	return u
}

func TestRegisterUser(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	email := testutil.UniqueEmail("register")
	u := registerUser(t, svc, "  "+email+"  ", "hunter22")
	if u.Email != email {
		t.Errorf("email should be normalized, got %q", u.Email)
	}
	if u.Password == "hunter22" {
		t.Error("password must be stored hashed")
	}
	if u.KYCStatus != types.KYCPending {
		t.Errorf("new user kyc: got %s", u.KYCStatus)
	}

	if _, err := svc.RegisterUser(ctx, services.RegisterInput{
		Email:     email,
		Password:  "other",
		FirstName: "A",
		LastName:  "B",
	}); !apperr.IsConflict(err) {
		t.Fatalf("duplicate email: expected conflict, got %v", err)
	}

	if _, err := svc.RegisterUser(ctx, services.RegisterInput{Email: "", Password: "x", FirstName: "A", LastName: "B"}); !apperr.IsValidation(err) {
		t.Error("missing email: expected validation")
	}
	if _, err := svc.RegisterUser(ctx, services.RegisterInput{Email: testutil.UniqueEmail("nopw"), FirstName: "A", LastName: "B"}); !apperr.IsValidation(err) {
		t.Error("missing password: expected validation")
	}
}

func TestLoginRefreshLogout(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	email := testutil.UniqueEmail("login")
	registerUser(t, svc, email, "hunter22")

	if _, _, err := svc.LoginUser(ctx, email, "wrong"); !apperr.IsUnauthorized(err) {
		t.Fatalf("wrong password: expected unauthorized, got %v", err)
	}
	if _, _, err := svc.LoginUser(ctx, testutil.UniqueEmail("ghost"), "hunter22"); !apperr.IsUnauthorized(err) {
		t.Fatalf("unknown email: expected unauthorized, got %v", err)
	}

	access, refresh, err := svc.LoginUser(ctx, email, "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("login must issue both tokens")
	}

	// Round-trip the access token the way the middleware does.
	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.RefreshToken != refresh {
		t.Fatal("context should carry the stored refresh token")
	}

	newAccess, newRefresh, err := svc.RefreshUser(authed)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newRefresh == refresh {
		t.Error("refresh must rotate the refresh token")
	}

	// The rotated-out token is dead.
	stale := ctxutil.WithRequestData(ctx, &ctxutil.RequestData{RefreshToken: refresh})
	if _, _, err := svc.RefreshUser(stale); !apperr.IsUnauthorized(err) {
		t.Fatalf("stale refresh: expected unauthorized, got %v", err)
	}

	authed2, err := svc.SetContextFromToken(ctx, newAccess)
	if err != nil {
		t.Fatalf("set context after rotation: %v", err)
	}
	if err := svc.LogoutUser(authed2); err != nil {
		t.Fatalf("logout: %v", err)
	}
	rd2 := ctxutil.GetRequestData(authed2)
	if rd2 == nil {
		t.Fatal("expected request data after rotation")
	}
	deadCtx := ctxutil.WithRequestData(ctx, &ctxutil.RequestData{RefreshToken: rd2.RefreshToken})
	if _, _, err := svc.RefreshUser(deadCtx); !apperr.IsUnauthorized(err) {
		t.Fatalf("refresh after logout: expected unauthorized, got %v", err)
	}
}

type failingTokenRepo struct {
	auth.UserTokenRepo
}

func (failingTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error) {
	return nil, apperr.E("user_token", "get_by_access_token", apperr.ErrPersistence)
}

func TestSetContextFromTokenSurvivesTokenStoreFailure(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	issuing := newAuthService(t)
	email := testutil.UniqueEmail("storefail")
	registerUser(t, issuing, email, "hunter22")
	access, _, err := issuing.LoginUser(ctx, email, "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Same secret, broken token store: the token still authenticates, the
	// context just carries no refresh token.
	svc := services.NewAuthService(
		db, log,
		user.NewUserRepo(db, log),
		failingTokenRepo{},
		"test-secret",
		time.Minute,
		time.Hour,
	)
	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil {
		t.Fatal("expected request data despite the store failure")
	}
	if rd.RefreshToken != "" {
		t.Errorf("refresh token should stay empty when the store lookup fails, got %q", rd.RefreshToken)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.SetContextFromToken(ctx, "not-a-jwt"); err == nil {
		t.Fatal("garbage token should fail")
	}

	same, err := svc.SetContextFromToken(ctx, "")
	if err != nil {
		t.Fatalf("empty token: %v", err)
	}
	if ctxutil.GetRequestData(same) != nil {
		t.Fatal("empty token must not attach request data")
	}
}
