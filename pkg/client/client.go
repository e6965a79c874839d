// Package client is a small Go SDK for the Hugli backend API. Each method
// performs one JSON round trip; there are no retries and no caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/types"
)

const (
	defaultBaseURL             = "http://localhost:5000/api"
	errorBodyReadLimit   int64 = 4096
	defaultClientTimeout       = 15 * time.Second
)

// TokenSource supplies the bearer token attached to authenticated calls.
// An empty string means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource holding a fixed token.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }

// Client wraps HTTP access to the backend for orders, contact, auth, and
// admin operations.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenSource sets the bearer token source for authenticated calls.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// New builds a client against the provided base URL. An empty baseURL
// falls back to the local development default.
func New(baseURL string, opts ...Option) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	return client
}

// OrderItemInput is one cart line sent with an order submission.
type OrderItemInput struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Quantity    int            `json:"quantity"`
	Options     map[string]any `json:"options,omitempty"`
}

// CustomerInfoInput carries the step-1 customer fields.
type CustomerInfoInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

// DeliveryInfoInput carries the step-2 delivery fields.
type DeliveryInfoInput struct {
	DeliveryType        string `json:"deliveryType"`
	DeliveryAddress     string `json:"deliveryAddress,omitempty"`
	DeliveryDate        string `json:"deliveryDate"`
	DeliveryTime        string `json:"deliveryTime,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// PreferencesInput carries the step-3 contact preferences.
type PreferencesInput struct {
	Urgency              string `json:"urgency,omitempty"`
	ContactMethod        string `json:"contactMethod,omitempty"`
	PreferredContactTime string `json:"preferredContactTime,omitempty"`
}

// OrderPayload is the full order-creation request body.
type OrderPayload struct {
	Items        []OrderItemInput  `json:"items"`
	CustomerInfo CustomerInfoInput `json:"customerInfo"`
	DeliveryInfo DeliveryInfoInput `json:"deliveryInfo"`
	Preferences  PreferencesInput  `json:"preferences"`
}

// ContactPayload is the contact-form submission body.
type ContactPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Message     string `json:"message,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
}

// Credentials is the password-login request body. Identifier is an email
// address or a phone number.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RegisterPayload is the signup request body.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Password string `json:"password"`
}

// OTPRequest asks the server to send a one-time code.
type OTPRequest struct {
	Identifier string `json:"identifier"`
	Purpose    string `json:"purpose,omitempty"`
}

// OTPVerify redeems a one-time code.
type OTPVerify struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
	Purpose    string `json:"purpose,omitempty"`
}

// CreateOrder submits a completed order draft.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/orders", payload)
}

// ListMyOrders fetches the authenticated user's orders.
func (c *Client) ListMyOrders(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/orders", nil)
}

// GetOrder fetches one of the authenticated user's orders.
func (c *Client) GetOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil)
}

// SubmitContact sends a contact-form message.
func (c *Client) SubmitContact(ctx context.Context, payload ContactPayload) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/contact", payload)
}

// ListProducts fetches the public print-product catalog.
func (c *Client) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/products", nil)
}

// Register creates a customer account.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/auth/register", payload)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/auth/login", creds)
}

// AdminLogin exchanges admin credentials for a bearer token.
func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/auth/admin/login", creds)
}

// SendOTP asks the server to issue a one-time code.
func (c *Client) SendOTP(ctx context.Context, req OTPRequest) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/auth/send-otp", req)
}

// VerifyOTP redeems a one-time code.
func (c *Client) VerifyOTP(ctx context.Context, req OTPVerify) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/auth/verify-otp", req)
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/auth/profile", nil)
}

// Logout revokes the current session server-side.
func (c *Client) Logout(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil)
}

// AdminListOrders fetches all orders, optionally filtered by status.
func (c *Client) AdminListOrders(ctx context.Context, status, cursor string) (json.RawMessage, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	path := "/admin/orders"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

// AdminUpdateOrderStatus moves an order through its lifecycle.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, orderID, status string) (json.RawMessage, error) {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/admin/orders/"+url.PathEscape(orderID)+"/status", body)
}

// AdminDeleteOrder removes an order.
func (c *Client) AdminDeleteOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, "/admin/orders/"+url.PathEscape(orderID), nil)
}

// AdminListContacts fetches contact messages, optionally filtered by status.
func (c *Client) AdminListContacts(ctx context.Context, status, cursor string) (json.RawMessage, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	path := "/admin/contacts"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

// AdminUpdateContactStatus marks a contact message read or replied.
func (c *Client) AdminUpdateContactStatus(ctx context.Context, messageID, status string) (json.RawMessage, error) {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/admin/contacts/"+url.PathEscape(messageID)+"/status", body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "api client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.Token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromResponse(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return json.RawMessage(raw), nil
}

// errorFromResponse surfaces the server-provided message when the error body
// parses, and a generic status message otherwise.
func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		code := pkgerrors.Code(envelope.Error.Code)
		if code == "" {
			code = codeForStatus(resp.StatusCode)
		}
		return pkgerrors.New(code, envelope.Error.Message)
	}

	return pkgerrors.New(codeForStatus(resp.StatusCode), fmt.Sprintf("HTTP error, status %d", resp.StatusCode))
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	default:
		return pkgerrors.CodeDependency
	}
}
