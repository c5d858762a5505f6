package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"onebill/internal/domain"
	"onebill/internal/gst"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// LineItemInput is a line item as submitted. Numeric fields accept JSON numbers
// or numeric strings.
type LineItemInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	HSNSAC          string `json:"hsn_sac"`
	Quantity        any    `json:"quantity"`
	UnitPrice       any    `json:"unit_price"`
	DiscountPercent any    `json:"discount_percent"`
	GSTRate         any    `json:"gst_rate"`
}

// toLineItem converts in. Strict mode rejects malformed numbers; lenient mode
// treats them as zero.
func (in LineItemInput) toLineItem(strict bool, idx int) (gst.LineItem, error) {
	item := gst.LineItem{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		HSNSAC:      strings.TrimSpace(in.HSNSAC),
	}

	var err error
	if item.Quantity, err = number(in.Quantity, strict, fmt.Sprintf("line_items[%d].quantity", idx)); err != nil {
		return item, err
	}
	if item.UnitPrice, err = number(in.UnitPrice, strict, fmt.Sprintf("line_items[%d].unit_price", idx)); err != nil {
		return item, err
	}
	if item.DiscountPercent, err = number(in.DiscountPercent, strict, fmt.Sprintf("line_items[%d].discount_percent", idx)); err != nil {
		return item, err
	}
	if item.GSTRate, err = number(in.GSTRate, strict, fmt.Sprintf("line_items[%d].gst_rate", idx)); err != nil {
		return item, err
	}
	return item, nil
}

// toLineItems converts every item, stopping at the first malformed number in strict mode.
func toLineItems(items []LineItemInput, strict bool) ([]gst.LineItem, error) {
	out := make([]gst.LineItem, 0, len(items))
	for i, in := range items {
		item, err := in.toLineItem(strict, i)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// number converts a raw numeric field. field names the value in strict-mode errors.
func number(raw any, strict bool, field string) (decimal.Decimal, error) {
	if !strict {
		return gst.CoerceNumber(raw), nil
	}
	d, err := gst.ParseNumber(raw)
	if err != nil {
		var inv *gst.InvalidNumberError
		if errors.As(err, &inv) {
			inv.Field = field
			return decimal.Zero, inv
		}
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// parseDate parses an optional YYYY-MM-DD date. Blank returns fallback.
func parseDate(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, raw)
	}
	return t, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return offset, limit
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// exportPageSize bounds each repository read when a report walks a whole date window.
	exportPageSize = 500
)
