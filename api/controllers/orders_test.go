package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cocobloom/storefront-backend/internal/orders"
	"github.com/cocobloom/storefront-backend/pkg/db/models"
	"github.com/cocobloom/storefront-backend/pkg/enums"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

type stubOrdersService struct {
	order  *models.Order
	list   []models.Order
	err    error
	code   string
	phone  string
	status enums.OrderStatus
	filter orders.ListFilter
}

func (s *stubOrdersService) Track(_ context.Context, code, phone string) (*models.Order, error) {
	s.code = code
	s.phone = phone
	return s.order, s.err
}

func (s *stubOrdersService) Get(_ context.Context, code string) (*models.Order, error) {
	s.code = code
	return s.order, s.err
}

func (s *stubOrdersService) List(_ context.Context, filter orders.ListFilter) ([]models.Order, error) {
	s.filter = filter
	return s.list, s.err
}

func (s *stubOrdersService) AdvanceStatus(_ context.Context, code string, next enums.OrderStatus) (*models.Order, error) {
	s.code = code
	s.status = next
	return s.order, s.err
}

func TestOrderTrackSuccess(t *testing.T) {
	svc := &stubOrdersService{order: &models.Order{Code: "ORD-20250810-ABCD", Status: enums.OrderStatusShipped}}
	handler := OrderTrack(svc, nil)

	body := `{"code":"ORD-20250810-ABCD","phone":"0600000001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/track", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.code != "ORD-20250810-ABCD" || svc.phone != "0600000001" {
		t.Fatalf("unexpected args forwarded: code=%q phone=%q", svc.code, svc.phone)
	}

	var envelope struct {
		Data models.Order `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != enums.OrderStatusShipped {
		t.Fatalf("unexpected status: %s", envelope.Data.Status)
	}
}

func TestOrderTrackRequiresPhone(t *testing.T) {
	svc := &stubOrdersService{}
	handler := OrderTrack(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/track", strings.NewReader(`{"code":"ORD-20250810-ABCD"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.code != "" {
		t.Fatalf("service should not be called on validation failure")
	}
}

func TestOrderTrackNotFound(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
	handler := OrderTrack(svc, nil)

	body := `{"code":"ORD-20250810-ABCD","phone":"0600000009"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/track", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminOrderAdvanceStatus(t *testing.T) {
	svc := &stubOrdersService{order: &models.Order{Code: "ORD-20250810-ABCD", Status: enums.OrderStatusPacked}}

	router := chi.NewRouter()
	router.Post("/api/v1/admin/orders/{code}/status", AdminOrderAdvanceStatus(svc, nil))

	body := `{"status":"packed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/orders/ORD-20250810-ABCD/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.code != "ORD-20250810-ABCD" || svc.status != enums.OrderStatusPacked {
		t.Fatalf("unexpected args forwarded: code=%q status=%q", svc.code, svc.status)
	}
}

func TestAdminOrderAdvanceStatusRegression(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cannot move order backwards")}

	router := chi.NewRouter()
	router.Post("/api/v1/admin/orders/{code}/status", AdminOrderAdvanceStatus(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/orders/ORD-20250810-ABCD/status", strings.NewReader(`{"status":"received"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestAdminOrderListForwardsFilter(t *testing.T) {
	svc := &stubOrdersService{list: []models.Order{{Code: "ORD-20250810-ABCD"}}}
	handler := AdminOrderList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders?status=shipped&limit=10", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.filter.Status != "shipped" || svc.filter.Limit != 10 {
		t.Fatalf("unexpected filter: %+v", svc.filter)
	}
}
