// Package hsn provides in-memory lookups over the HSN/SAC master list.
package hsn

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"onebill/internal/domain"
	"onebill/internal/gst"
)

// RateEntry holds a valid GST rate and optional condition for an HSN code.
type RateEntry struct {
	Rate          decimal.Decimal `json:"rate"`
	ConditionDesc string          `json:"condition_desc,omitempty"`
}

// Suggestion is a search hit for autocomplete.
type Suggestion struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	DefaultRate decimal.Decimal `json:"default_rate"`
	Common      bool            `json:"common"`
}

// Catalog provides fast in-memory lookups for HSN/SAC code existence, rates and search.
// It is immutable after construction and safe for concurrent access.
type Catalog struct {
	byCode map[string][]RateEntry
	descs  map[string]string
	codes  []string
	common []gst.HSNEntry
}

// NewCatalog builds a Catalog from the common autocomplete table plus master entries.
func NewCatalog(master []domain.HSNCode) *Catalog {
	c := &Catalog{
		byCode: make(map[string][]RateEntry, len(master)),
		descs:  make(map[string]string, len(master)),
		common: gst.CommonHSNSAC(),
	}
	for i := range master {
		e := &master[i]
		c.add(e.Code, e.Description, RateEntry{Rate: e.GSTRate, ConditionDesc: e.Condition})
	}
	for _, e := range c.common {
		if _, ok := c.byCode[e.Code]; !ok {
			c.add(e.Code, e.Description, RateEntry{Rate: e.DefaultRate})
		}
	}
	sort.Strings(c.codes)
	return c
}

func (c *Catalog) add(code, desc string, rate RateEntry) {
	if _, ok := c.byCode[code]; !ok {
		c.codes = append(c.codes, code)
		c.descs[code] = desc
	}
	c.byCode[code] = append(c.byCode[code], rate)
}

// Len returns the number of distinct codes in the catalogue.
func (c *Catalog) Len() int {
	return len(c.codes)
}

// Exists returns true if the code (or a prefix of it) is in the master list.
// It checks exact match first, then falls back from 8→6→4 digit prefixes.
func (c *Catalog) Exists(code string) bool {
	return c.Rates(code) != nil
}

// Rates returns valid rate entries for the given code, with prefix fallback.
func (c *Catalog) Rates(code string) []RateEntry {
	if len(c.byCode) == 0 || code == "" {
		return nil
	}
	if rates, ok := c.byCode[code]; ok {
		return rates
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if rates, ok := c.byCode[code[:prefixLen]]; ok {
				return rates
			}
		}
	}
	return nil
}

// RateMatches checks if rate matches any valid rate for this code.
// Returns whether a match was found and the list of valid rates.
func (c *Catalog) RateMatches(code string, rate decimal.Decimal) (matched bool, validRates []RateEntry) {
	validRates = c.Rates(code)
	for i := range validRates {
		if validRates[i].Rate.Equal(rate) {
			return true, validRates
		}
	}
	return false, validRates
}

// DefaultRate returns the first known rate for code.
func (c *Catalog) DefaultRate(code string) (decimal.Decimal, bool) {
	rates := c.Rates(code)
	if len(rates) == 0 {
		return decimal.Zero, false
	}
	return rates[0].Rate, true
}

// Search matches query against codes (prefix) and descriptions (case-insensitive substring).
// Common entries are listed first. A limit <= 0 means 20.
func (c *Catalog) Search(query string, limit int) []Suggestion {
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Suggestion{}
	}

	out := make([]Suggestion, 0, limit)
	seen := make(map[string]bool)
	matches := func(code, desc string) bool {
		return strings.HasPrefix(code, q) || strings.Contains(strings.ToLower(desc), q)
	}

	for _, e := range c.common {
		if len(out) == limit {
			return out
		}
		if matches(e.Code, e.Description) {
			seen[e.Code] = true
			out = append(out, Suggestion{
				Code: e.Code, Description: e.Description, Type: e.Type,
				DefaultRate: e.DefaultRate, Common: true,
			})
		}
	}
	for _, code := range c.codes {
		if len(out) == limit {
			break
		}
		if seen[code] || !matches(code, c.descs[code]) {
			continue
		}
		out = append(out, Suggestion{
			Code:        code,
			Description: c.descs[code],
			Type:        SupplyType(code),
			DefaultRate: c.byCode[code][0].Rate,
		})
	}
	return out
}

// SupplyType classifies a code as service (SAC, chapter 99) or goods (HSN).
func SupplyType(code string) string {
	if strings.HasPrefix(code, "99") {
		return gst.SupplyService
	}
	return gst.SupplyGoods
}
