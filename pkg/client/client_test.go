package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestCreateOrderRequest(t *testing.T) {
	const expectedURL = "http://api.test/api/orders"
	respBody := `{"data":{"orderId":"ord_123"}}`

	var capturedURL, capturedMethod string
	var capturedHeaders http.Header

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedMethod = req.Method
		capturedHeaders = req.Header.Clone()

		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		var payload map[string]any
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		items, ok := payload["items"].([]any)
		if !ok || len(items) != 1 {
			t.Fatalf("unexpected items %+v", payload["items"])
		}

		return &http.Response{
			StatusCode: http.StatusCreated,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	c := New("http://api.test/api",
		WithHTTPClient(&http.Client{Transport: rt}),
		WithTokenSource(StaticToken("tok-123")),
	)

	raw, err := c.CreateOrder(context.Background(), OrderPayload{
		Items: []OrderItemInput{{
			ID:       "stickers",
			Name:     "Stickers",
			Quantity: 2,
			Options:  map[string]any{"size": "medium"},
		}},
		CustomerInfo: CustomerInfoInput{Name: "Asha", Email: "asha@example.com", Phone: "+91 98765 43210"},
		DeliveryInfo: DeliveryInfoInput{DeliveryType: "pickup", DeliveryDate: "2026-09-10"},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedMethod != http.MethodPost {
		t.Fatalf("unexpected method %q", capturedMethod)
	}
	if capturedHeaders.Get("Authorization") != "Bearer tok-123" {
		t.Fatalf("missing bearer token, got %q", capturedHeaders.Get("Authorization"))
	}

	var decoded map[string]map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if decoded["data"]["orderId"] != "ord_123" {
		t.Fatalf("unexpected response %s", raw)
	}
}

func TestErrorBodyMessageIsSurfaced(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusConflict,
			Body:       io.NopCloser(strings.NewReader(`{"error":{"code":"STATE_CONFLICT","message":"order already completed"}}`)),
			Header:     http.Header{},
		}, nil
	})

	c := New("http://api.test/api", WithHTTPClient(&http.Client{Transport: rt}))

	_, err := c.AdminUpdateOrderStatus(context.Background(), "ord_123", "confirmed")
	if err == nil {
		t.Fatal("expected error")
	}
	var coded *pkgerrors.Error
	if !errors.As(err, &coded) {
		t.Fatalf("expected coded error, got %T", err)
	}
	if coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected code %q", coded.Code())
	}
	if !strings.Contains(err.Error(), "order already completed") {
		t.Fatalf("server message lost: %v", err)
	}
}

func TestUnparsableErrorBodyFallsBack(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("<html>upstream exploded</html>")),
			Header:     http.Header{},
		}, nil
	})

	c := New("http://api.test/api", WithHTTPClient(&http.Client{Transport: rt}))

	_, err := c.SubmitContact(context.Background(), ContactPayload{Name: "Asha"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP error, status 502") {
		t.Fatalf("expected generic fallback, got %v", err)
	}
}

func TestUnauthenticatedCallOmitsBearerHeader(t *testing.T) {
	var capturedHeaders http.Header
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedHeaders = req.Header.Clone()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"data":[]}`)),
			Header:     http.Header{},
		}, nil
	})

	c := New("http://api.test/api", WithHTTPClient(&http.Client{Transport: rt}))
	if _, err := c.ListProducts(context.Background()); err != nil {
		t.Fatalf("list products: %v", err)
	}
	if capturedHeaders.Get("Authorization") != "" {
		t.Fatalf("unexpected auth header %q", capturedHeaders.Get("Authorization"))
	}
}

func TestAdminListOrdersQueryParams(t *testing.T) {
	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"data":[]}`)),
			Header:     http.Header{},
		}, nil
	})

	c := New("http://api.test/api", WithHTTPClient(&http.Client{Transport: rt}))
	if _, err := c.AdminListOrders(context.Background(), "pending", "abc"); err != nil {
		t.Fatalf("admin list orders: %v", err)
	}
	if !strings.Contains(capturedURL, "status=pending") || !strings.Contains(capturedURL, "cursor=abc") {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
}
