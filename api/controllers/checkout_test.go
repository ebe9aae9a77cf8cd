package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cocobloom/storefront-backend/api/middleware"
	"github.com/cocobloom/storefront-backend/internal/checkout"
	"github.com/cocobloom/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

type stubCheckoutService struct {
	submission *checkout.Submission
	err        error
	sessionID  string
	input      checkout.SubmitInput
}

func (s *stubCheckoutService) Submit(_ context.Context, sessionID string, input checkout.SubmitInput) (*checkout.Submission, error) {
	s.sessionID = sessionID
	s.input = input
	return s.submission, s.err
}

func checkoutRequestWithBody(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithSessionID(req.Context(), "session-1"))
}

func TestCheckoutSubmitSuccess(t *testing.T) {
	svc := &stubCheckoutService{submission: &checkout.Submission{
		Order:       &models.Order{Code: "ORD-20250810-ABCD", Total: 83},
		WhatsAppURL: "https://wa.me/212607076940?text=Hello",
	}}
	handler := CheckoutSubmit(svc, nil)

	body := `{"name":"Sara","phone":"0600000001","city":"Casablanca","address":"12 Rue des Fleurs","consent":true}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, checkoutRequestWithBody(body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.sessionID != "session-1" {
		t.Fatalf("expected session forwarded, got %q", svc.sessionID)
	}
	if !svc.input.Consent || svc.input.Phone != "0600000001" {
		t.Fatalf("unexpected input forwarded: %+v", svc.input)
	}

	var envelope struct {
		Data checkout.Submission `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Order.Code != "ORD-20250810-ABCD" {
		t.Fatalf("unexpected order code: %s", envelope.Data.Order.Code)
	}
	if envelope.Data.WhatsAppURL == "" {
		t.Fatalf("expected a whatsapp url")
	}
}

func TestCheckoutSubmitRequiresConsent(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := CheckoutSubmit(svc, nil)

	body := `{"name":"Sara","phone":"0600000001","city":"Casablanca","address":"12 Rue des Fleurs","consent":false}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, checkoutRequestWithBody(body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.sessionID != "" {
		t.Fatalf("service should not be called on validation failure")
	}
}

func TestCheckoutSubmitEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := CheckoutSubmit(svc, nil)

	body := `{"name":"Sara","phone":"0600000001","city":"Casablanca","address":"12 Rue des Fleurs","consent":true}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, checkoutRequestWithBody(body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
