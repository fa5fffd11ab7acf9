package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPayment is returned when the gateway does not report a
// transaction as VALID.
var ErrInvalidPayment = errors.New("invalid payment")

// Gateway creates payment sessions and validates callbacks.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (string, error)
	Validate(ctx context.Context, valID string) error
}

// SessionRequest carries what the gateway needs to open a session.
type SessionRequest struct {
	TrxID      string
	Amount     float64
	Email      string
	SuccessURL string
	FailURL    string
	CancelURL  string
	IPNURL     string
}

// SSLCommerz is the sandbox gateway client. Both APIs are form-encoded
// HTTP endpoints.
type SSLCommerz struct {
	storeID     string
	storePass   string
	sessionURL  string
	validateURL string
	client      *http.Client
}

// NewSSLCommerz builds the gateway client.
func NewSSLCommerz(storeID, storePass, sessionURL, validateURL string) *SSLCommerz {
	return &SSLCommerz{
		storeID:     storeID,
		storePass:   storePass,
		sessionURL:  sessionURL,
		validateURL: validateURL,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateSession opens a gateway session and returns the redirect URL the
// customer is sent to.
func (g *SSLCommerz) CreateSession(ctx context.Context, req SessionRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", g.storeID)
	form.Set("store_passwd", g.storePass)
	form.Set("total_amount", strconv.FormatFloat(req.Amount, 'f', 2, 64))
	form.Set("tran_id", req.TrxID)
	form.Set("currency", "BDT")
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("ipn_url", req.IPNURL)
	form.Set("shipping_method", "Courier")
	form.Set("product_name", "Auction item")
	form.Set("product_category", "General")
	form.Set("product_profile", "general")
	form.Set("cus_name", "Customer")
	form.Set("cus_email", req.Email)
	form.Set("cus_add1", "Dhaka")
	form.Set("cus_city", "Dhaka")
	form.Set("cus_postcode", "1000")
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", "01711111111")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.sessionURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Status         string `json:"status"`
		GatewayPageURL string `json:"GatewayPageURL"`
		FailedReason   string `json:"failedreason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.GatewayPageURL == "" {
		return "", fmt.Errorf("gateway session failed: %s", body.FailedReason)
	}
	return body.GatewayPageURL, nil
}

// Validate confirms a callback's val_id against the validation API.
func (g *SSLCommerz) Validate(ctx context.Context, valID string) error {
	query := url.Values{}
	query.Set("val_id", valID)
	query.Set("store_id", g.storeID)
	query.Set("store_passwd", g.storePass)
	query.Set("format", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.validateURL+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.Status != "VALID" && body.Status != "VALIDATED" {
		return ErrInvalidPayment
	}
	return nil
}
