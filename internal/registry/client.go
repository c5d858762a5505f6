// Package registry looks up taxpayer (GSTIN) and bank branch (IFSC) records over HTTP.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"onebill/internal/config"
	"onebill/internal/domain"
	"onebill/internal/gst"
	"onebill/internal/logger"
	"onebill/internal/port"
)

var _ port.TaxpayerRegistry = (*Client)(nil)

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// Client implements port.TaxpayerRegistry against an Appyflow-style GSTIN API
// and a Razorpay-style IFSC API.
type Client struct {
	gstinEndpoint string
	gstinKey      string
	ifscEndpoint  string
	client        *http.Client
}

// NewClient creates a registry client from config.
func NewClient(cfg *config.RegistryConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		gstinEndpoint: cfg.GSTINEndpoint,
		gstinKey:      cfg.GSTINKey,
		ifscEndpoint:  strings.TrimRight(cfg.IFSCEndpoint, "/"),
		client:        &http.Client{Timeout: timeout},
	}
}

// gstinResponse covers the shapes returned by the provider across API versions.
type gstinResponse struct {
	Error        bool           `json:"error"`
	Message      string         `json:"message"`
	TaxpayerInfo *taxpayerBlock `json:"taxpayerInfo"`
	Taxpayer     *taxpayerBlock `json:"taxpayer"`
	Data         *struct {
		Taxpayer *taxpayerBlock `json:"taxpayer"`
	} `json:"data"`
}

type taxpayerBlock struct {
	LegalName string `json:"lgnm"`
	TradeName string `json:"tradeNam"`
	Status    string `json:"sts"`
	Pradr     *struct {
		Addr addressBlock `json:"addr"`
	} `json:"pradr"`
}

type addressBlock struct {
	BuildingNo   string `json:"bno"`
	BuildingName string `json:"bnm"`
	Street       string `json:"st"`
	Locality     string `json:"loc"`
	City         string `json:"city"`
	District     string `json:"dst"`
	State        string `json:"stcd"`
	Pincode      string `json:"pncd"`
}

func (a addressBlock) String() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.BuildingNo, a.BuildingName, a.Street, a.Locality, a.City, a.District} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (r *gstinResponse) taxpayer() *taxpayerBlock {
	switch {
	case r.TaxpayerInfo != nil:
		return r.TaxpayerInfo
	case r.Taxpayer != nil:
		return r.Taxpayer
	case r.Data != nil && r.Data.Taxpayer != nil:
		return r.Data.Taxpayer
	}
	return nil
}

// LookupGSTIN fetches the public registration for gstin. The format is checked
// locally first; the state encoded in the GSTIN overrides the state the API reports.
func (c *Client) LookupGSTIN(ctx context.Context, gstin string) (*port.Taxpayer, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if v := gst.ValidateGSTIN(gstin); !v.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGSTIN, v.Error)
	}
	if c.gstinKey == "" {
		return nil, fmt.Errorf("GSTIN lookup: %w", domain.ErrRegistryUnavailable)
	}

	q := url.Values{}
	q.Set("gstNo", gstin)
	q.Set("key_secret", c.gstinKey)

	body, err := c.get(ctx, c.gstinEndpoint+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp gstinResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling GSTIN response: %w", err)
	}
	if resp.Error {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, resp.Message)
	}
	tp := resp.taxpayer()
	if tp == nil {
		return nil, fmt.Errorf("%w: empty taxpayer record", domain.ErrNotFound)
	}

	var addr addressBlock
	if tp.Pradr != nil {
		addr = tp.Pradr.Addr
	}

	out := &port.Taxpayer{
		GSTIN:     gstin,
		LegalName: tp.LegalName,
		TradeName: tp.TradeName,
		Status:    tp.Status,
		Address:   addr.String(),
		Pincode:   addr.Pincode,
	}
	if out.LegalName == "" {
		out.LegalName = tp.TradeName
	}

	reported := normalizeState(addr.State)
	state, _ := gst.StateOf(gstin)
	if reported.Name != "" && reported.Name != state.Name {
		logger.FromContext(ctx).Warn("registry state disagrees with GSTIN, using GSTIN",
			zap.String("gstin", gstin),
			zap.String("reported", reported.Name),
			zap.String("gstin_state", state.Name),
		)
	}
	out.State = state.Name
	out.StateCode = state.Code
	return out, nil
}

// normalizeState maps a provider state value ("PUNJAB" or "03") onto the jurisdiction table.
func normalizeState(raw string) gst.State {
	raw = strings.TrimSpace(raw)
	if code, ok := gst.StateCode(raw); ok {
		s, _ := gst.StateByCode(code)
		return s
	}
	if s, ok := gst.StateByCode(raw); ok {
		return s
	}
	return gst.State{}
}

type ifscResponse struct {
	IFSC    string `json:"IFSC"`
	Bank    string `json:"BANK"`
	Branch  string `json:"BRANCH"`
	City    string `json:"CITY"`
	State   string `json:"STATE"`
	Address string `json:"ADDRESS"`
}

// LookupIFSC fetches the bank branch for ifsc.
func (c *Client) LookupIFSC(ctx context.Context, ifsc string) (*port.BankBranch, error) {
	ifsc = strings.ToUpper(strings.TrimSpace(ifsc))
	if !ifscPattern.MatchString(ifsc) {
		return nil, fmt.Errorf("%w: IFSC must be 11 characters like HDFC0001234", domain.ErrInvalidInput)
	}

	body, err := c.get(ctx, c.ifscEndpoint+"/"+url.PathEscape(ifsc))
	if err != nil {
		return nil, err
	}

	var resp ifscResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling IFSC response: %w", err)
	}
	return &port.BankBranch{
		IFSC:    resp.IFSC,
		Bank:    resp.Bank,
		Branch:  resp.Branch,
		City:    resp.City,
		State:   resp.State,
		Address: resp.Address,
	}, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling registry API: %w: %v", domain.ErrRegistryUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, newRateLimitError(fmt.Errorf("registry API error (status %d)", resp.StatusCode), resp.Header.Get("Retry-After"))
	default:
		return nil, fmt.Errorf("%w: registry API error (status %d): %s", domain.ErrRegistryUnavailable, resp.StatusCode, truncate(string(body), 200))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
