package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cocobloom/storefront-backend/api/middleware"
	cartsvc "github.com/cocobloom/storefront-backend/internal/cart"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

type stubCartService struct {
	view       *cartsvc.View
	err        error
	sessionID  string
	addInput   cartsvc.AddItemInput
	promoCode  string
	setQtyArgs struct {
		productID string
		qty       int
	}
}

func (s *stubCartService) Get(_ context.Context, sessionID string) (*cartsvc.View, error) {
	s.sessionID = sessionID
	return s.view, s.err
}

func (s *stubCartService) AddItem(_ context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.View, error) {
	s.sessionID = sessionID
	s.addInput = input
	return s.view, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, sessionID, productID string) (*cartsvc.View, error) {
	s.sessionID = sessionID
	return s.view, s.err
}

func (s *stubCartService) SetQty(_ context.Context, sessionID, productID string, qty int) (*cartsvc.View, error) {
	s.sessionID = sessionID
	s.setQtyArgs.productID = productID
	s.setQtyArgs.qty = qty
	return s.view, s.err
}

func (s *stubCartService) Clear(_ context.Context, sessionID string) (*cartsvc.View, error) {
	s.sessionID = sessionID
	return s.view, s.err
}

func (s *stubCartService) ApplyPromo(_ context.Context, sessionID, code string) (*cartsvc.View, error) {
	s.sessionID = sessionID
	s.promoCode = code
	return s.view, s.err
}

func (s *stubCartService) RemovePromo(_ context.Context, sessionID string) (*cartsvc.View, error) {
	s.sessionID = sessionID
	return s.view, s.err
}

func sessionRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), "session-1"))
}

func TestCartFetchSuccess(t *testing.T) {
	svc := &stubCartService{view: &cartsvc.View{ItemsCount: 2, Subtotal: 120}}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.sessionID != "session-1" {
		t.Fatalf("expected session forwarded, got %q", svc.sessionID)
	}

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Subtotal != 120 {
		t.Fatalf("unexpected subtotal: %d", envelope.Data.Subtotal)
	}
}

func TestCartAddItemForwardsInput(t *testing.T) {
	svc := &stubCartService{view: &cartsvc.View{}}
	handler := CartAddItem(svc, nil)

	body := `{"product_id":"rose-oil","name":"Rose Oil","qty":2,"unit_price":60,"variant_selections":{"size":"250ml"}}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.addInput.ProductID != "rose-oil" || svc.addInput.Qty != 2 || svc.addInput.UnitPrice != 60 {
		t.Fatalf("unexpected input forwarded: %+v", svc.addInput)
	}
	if svc.addInput.VariantSelections["size"] != "250ml" {
		t.Fatalf("variant selections not forwarded: %+v", svc.addInput.VariantSelections)
	}
}

func TestCartAddItemRejectsMissingProduct(t *testing.T) {
	svc := &stubCartService{view: &cartsvc.View{}}
	handler := CartAddItem(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"name":"Rose Oil"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartSetQtyUsesRouteParam(t *testing.T) {
	svc := &stubCartService{view: &cartsvc.View{}}

	router := chi.NewRouter()
	router.Put("/api/v1/cart/items/{productId}", CartSetQty(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, sessionRequest(http.MethodPut, "/api/v1/cart/items/rose-oil", `{"qty":3}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.setQtyArgs.productID != "rose-oil" || svc.setQtyArgs.qty != 3 {
		t.Fatalf("unexpected args: %+v", svc.setQtyArgs)
	}
}

func TestPromoApplyUnknownCode(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "promo code not found")}
	handler := PromoApply(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/promo", `{"code":"NOPE"}`))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if svc.promoCode != "NOPE" {
		t.Fatalf("expected code forwarded, got %q", svc.promoCode)
	}
}

func TestCartFetchNilService(t *testing.T) {
	handler := CartFetch(nil, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
