package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/api/middleware"
	"github.com/Aman2975/hugli-backend/internal/checkout"
	"github.com/Aman2975/hugli-backend/pkg/db/models"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
)

type stubCheckoutService struct {
	draft      *checkout.Draft
	order      *models.Order
	err        error
	lastUserID *uuid.UUID
	submitted  bool
}

func (s *stubCheckoutService) Get(ctx context.Context, owner string) (*checkout.Draft, error) {
	return s.draft, s.err
}

func (s *stubCheckoutService) SaveCustomerInfo(ctx context.Context, owner string, info checkout.CustomerInfo) (*checkout.Draft, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.draft.CustomerInfo = info
	return s.draft, nil
}

func (s *stubCheckoutService) SaveDeliveryInfo(ctx context.Context, owner string, info checkout.DeliveryInfo) (*checkout.Draft, error) {
	return s.draft, s.err
}

func (s *stubCheckoutService) SavePreferences(ctx context.Context, owner string, prefs checkout.Preferences) (*checkout.Draft, error) {
	return s.draft, s.err
}

func (s *stubCheckoutService) Advance(ctx context.Context, owner string) (*checkout.Draft, error) {
	return s.draft, s.err
}

func (s *stubCheckoutService) Back(ctx context.Context, owner string) (*checkout.Draft, error) {
	return s.draft, s.err
}

func (s *stubCheckoutService) Submit(ctx context.Context, owner string, userID *uuid.UUID) (*models.Order, error) {
	s.submitted = true
	s.lastUserID = userID
	return s.order, s.err
}

func TestCheckoutGetDraft(t *testing.T) {
	svc := &stubCheckoutService{draft: &checkout.Draft{Step: checkout.StepCustomerInfo}}
	handler := CheckoutGetDraft(svc, nil)

	req := withCartOwner(httptest.NewRequest(http.MethodGet, "/api/checkout/draft", nil), "guest:abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data checkout.Draft `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Step != checkout.StepCustomerInfo {
		t.Fatalf("unexpected step %v", envelope.Data.Step)
	}
}

func TestCheckoutSaveCustomerInfo(t *testing.T) {
	svc := &stubCheckoutService{draft: &checkout.Draft{Step: checkout.StepCustomerInfo}}
	handler := CheckoutSaveCustomerInfo(svc, nil)

	payload := `{"name":"Aman","email":"aman@example.com","phone":"9876543210"}`
	req := withCartOwner(httptest.NewRequest(http.MethodPut, "/api/checkout/draft/customer-info", strings.NewReader(payload)), "guest:abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.draft.CustomerInfo.Email != "aman@example.com" {
		t.Fatalf("customer info not forwarded: %+v", svc.draft.CustomerInfo)
	}
}

func TestCheckoutAdvanceMapsValidationError(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")}
	handler := CheckoutAdvance(svc, nil)

	req := withCartOwner(httptest.NewRequest(http.MethodPost, "/api/checkout/draft/advance", nil), "guest:abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutSubmitGuest(t *testing.T) {
	svc := &stubCheckoutService{order: &models.Order{ID: uuid.New()}}
	handler := CheckoutSubmit(svc, nil, nil)

	req := withCartOwner(httptest.NewRequest(http.MethodPost, "/api/checkout/submit", nil), "guest:abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if !svc.submitted {
		t.Fatalf("expected submit to be called")
	}
	if svc.lastUserID != nil {
		t.Fatalf("guest submit should not carry a user id")
	}
}

func TestCheckoutSubmitAuthenticated(t *testing.T) {
	userID := uuid.New()
	svc := &stubCheckoutService{order: &models.Order{ID: uuid.New(), UserID: &userID}}
	handler := CheckoutSubmit(svc, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/submit", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = withCartOwner(req, "user:"+userID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastUserID == nil || *svc.lastUserID != userID {
		t.Fatalf("expected user id to be forwarded, got %v", svc.lastUserID)
	}
}

func TestCheckoutSubmitEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := CheckoutSubmit(svc, nil, nil)

	req := withCartOwner(httptest.NewRequest(http.MethodPost, "/api/checkout/submit", nil), "guest:abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !svc.submitted {
		t.Fatalf("expected submit to be attempted")
	}
}
