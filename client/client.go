package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Session is the single holder of the bearer credentials. It replaces the
// historical pattern of every call site reading shared storage directly: the
// client reads the token from here, and the 401 path clears it here, once.
type Session struct {
	Token string
	Role  string

	// OnUnauthorized is invoked after the session is cleared on a 401
	// (typically to navigate the user back to login). Optional.
	OnUnauthorized func()
}

// Clear drops the stored credentials.
func (s *Session) Clear() {
	s.Token = ""
	s.Role = ""
}

// Client talks to the back-office API. All methods take a context and are
// attempted exactly once: no retry, no backoff, no local timeout beyond what
// the supplied http.Client or context impose.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *Session
}

// New creates a client for the given base URL (without the /api suffix).
func New(baseURL string, session *Session) *Client {
	if session == nil {
		session = &Session{}
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Session:    session,
	}
}

// do performs one API request and returns the raw response body of a 2xx
// answer. 401 clears the session and fires its hook; any other non-2xx
// becomes an APIError carrying the server's message verbatim when present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	u := c.BaseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Session.Token)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.Session.Clear()
		if c.Session.OnUnauthorized != nil {
			c.Session.OnUnauthorized()
		}
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, raw)
	}
	return raw, nil
}

func apiError(status int, raw []byte) *APIError {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Details any    `json:"details"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			msg = body.Message
		} else if body.Error != "" {
			msg = body.Error
		}
	}
	if msg == "" {
		msg = "request failed"
	}
	return &APIError{StatusCode: status, Message: msg, Details: body.Details}
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

// Login exchanges credentials for a bearer token and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	raw, err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := decodeItem(raw, &out); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	c.Session.Token = out.Token
	c.Session.Role = out.Role
	return nil
}

// ListVehicleTypes: GET /vehicle/type
func (c *Client) ListVehicleTypes(ctx context.Context, page, size int) (Page[VehicleType], error) {
	raw, err := c.do(ctx, http.MethodGet, "/vehicle/type", pageQuery(page, size), nil)
	if err != nil {
		return Page[VehicleType]{}, err
	}
	return decodePage[VehicleType](raw)
}

// ListVehicleDetails: GET /vehicle/type/detail scoped to a type when
// vehicleTypeID is non-zero.
func (c *Client) ListVehicleDetails(ctx context.Context, vehicleTypeID uint, page, size int) (Page[VehicleTypeDetail], error) {
	q := pageQuery(page, size)
	if vehicleTypeID != 0 {
		q.Set("vehicleTypeId", strconv.FormatUint(uint64(vehicleTypeID), 10))
	}
	raw, err := c.do(ctx, http.MethodGet, "/vehicle/type/detail", q, nil)
	if err != nil {
		return Page[VehicleTypeDetail]{}, err
	}
	return decodePage[VehicleTypeDetail](raw)
}

// ListCustomers: GET /customers
func (c *Client) ListCustomers(ctx context.Context, page, size int) (Page[Customer], error) {
	raw, err := c.do(ctx, http.MethodGet, "/customers", pageQuery(page, size), nil)
	if err != nil {
		return Page[Customer]{}, err
	}
	return decodePage[Customer](raw)
}

// CreateCustomer: POST /customer
func (c *Client) CreateCustomer(ctx context.Context, cust Customer) (*Customer, error) {
	raw, err := c.do(ctx, http.MethodPost, "/customer", nil, cust)
	if err != nil {
		return nil, err
	}
	var out Customer
	if err := decodeItem(raw, &out); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	return &out, nil
}

// ListQuotes: GET /quote
func (c *Client) ListQuotes(ctx context.Context, page, size int) (Page[Quote], error) {
	raw, err := c.do(ctx, http.MethodGet, "/quote", pageQuery(page, size), nil)
	if err != nil {
		return Page[Quote]{}, err
	}
	return decodePage[Quote](raw)
}

// GetQuote: GET /quote/{id}
func (c *Client) GetQuote(ctx context.Context, id uint) (*Quote, error) {
	raw, err := c.do(ctx, http.MethodGet, "/quote/"+strconv.FormatUint(uint64(id), 10), nil, nil)
	if err != nil {
		return nil, err
	}
	var out Quote
	if err := decodeItem(raw, &out); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	return &out, nil
}

// DeleteQuote: DELETE /quote/{id}
func (c *Client) DeleteQuote(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/quote/"+strconv.FormatUint(uint64(id), 10), nil, nil)
	return err
}

// ListPaymentPlans: GET /payment-plans
func (c *Client) ListPaymentPlans(ctx context.Context, page, size int) (Page[PaymentPlan], error) {
	raw, err := c.do(ctx, http.MethodGet, "/payment-plans", pageQuery(page, size), nil)
	if err != nil {
		return Page[PaymentPlan]{}, err
	}
	return decodePage[PaymentPlan](raw)
}
