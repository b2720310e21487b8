package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/http/handlers"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

type fundingStub struct {
	paymentID string
	outcome   types.PaymentStatus
	hash      string
	calls     int
	err       error
}

func (f *fundingStub) ApplyOutcome(ctx context.Context, paymentID string, outcome types.PaymentStatus, transactionHash string) (*types.Investment, error) {
	f.calls++
	f.paymentID = paymentID
	f.outcome = outcome
	f.hash = transactionHash
	if f.err != nil {
		return nil, f.err
	}
	return &types.Investment{PaymentID: paymentID, PaymentStatus: outcome}, nil
}

func newCallbackRouter(t *testing.T, stub *fundingStub, callbackToken string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	router := gin.New()
	handler := handlers.NewPaymentHandler(log, stub, callbackToken)
	router.POST("/api/payments/callback", handler.Callback)
	return router
}

func postCallback(router *gin.Engine, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Callback-Token", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCallbackAcceptsSnakeCase(t *testing.T) {
	stub := &fundingStub{}
	router := newCallbackRouter(t, stub, "")

	w := postCallback(router, `{"payment_id":"pay_1","payment_status":"Completed","transaction_hash":"0xabc"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if stub.paymentID != "pay_1" || stub.outcome != types.PaymentCompleted || stub.hash != "0xabc" {
		t.Fatalf("unexpected call: %+v", stub)
	}
}

func TestCallbackAcceptsCamelCase(t *testing.T) {
	stub := &fundingStub{}
	router := newCallbackRouter(t, stub, "")

	w := postCallback(router, `{"paymentId":"pay_2","paymentStatus":"failed","txHash":"0xdef"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if stub.paymentID != "pay_2" || stub.outcome != types.PaymentFailed || stub.hash != "0xdef" {
		t.Fatalf("unexpected call: %+v", stub)
	}
}

func TestCallbackRejectsBadPayload(t *testing.T) {
	stub := &fundingStub{}
	router := newCallbackRouter(t, stub, "")

	for _, body := range []string{
		`not json`,
		`{"payment_status":"completed"}`,
		`{"payment_id":"pay_3"}`,
	} {
		w := postCallback(router, body, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: got %d, want 400", body, w.Code)
		}
	}
	if stub.calls != 0 {
		t.Fatalf("rejected payloads must not reach the service, got %d calls", stub.calls)
	}
}

func TestCallbackTokenCheck(t *testing.T) {
	stub := &fundingStub{}
	router := newCallbackRouter(t, stub, "sekrit")
	body := `{"payment_id":"pay_4","status":"completed"}`

	if w := postCallback(router, body, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got %d, want 401", w.Code)
	}
	if w := postCallback(router, body, "wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: got %d, want 401", w.Code)
	}
	if stub.calls != 0 {
		t.Fatal("unauthenticated callbacks must not reach the service")
	}
	if w := postCallback(router, body, "sekrit"); w.Code != http.StatusOK {
		t.Fatalf("valid token: got %d, want 200", w.Code)
	}
}

func TestCallbackMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.E("investment", "apply_outcome", apperr.ErrNotFound), http.StatusNotFound},
		{apperr.E("investment", "apply_outcome", apperr.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{apperr.Validation("investment", "apply_outcome", "outcome must be completed, failed or refunded"), http.StatusBadRequest},
	}
	for _, c := range cases {
		stub := &fundingStub{err: c.err}
		router := newCallbackRouter(t, stub, "")
		w := postCallback(router, `{"payment_id":"pay_5","status":"refunded"}`, "")
		if w.Code != c.want {
			t.Errorf("%v: got %d, want %d", c.err, w.Code, c.want)
		}
	}
}
