package gst

import "github.com/shopspring/decimal"

var standardRates = []int64{0, 5, 12, 18, 28}

// GSTRates returns the standard GST slabs in ascending order.
func GSTRates() []decimal.Decimal {
	out := make([]decimal.Decimal, len(standardRates))
	for i, r := range standardRates {
		out[i] = decimal.NewFromInt(r)
	}
	return out
}

// IsStandardRate reports whether rate is one of the GST slabs.
func IsStandardRate(rate decimal.Decimal) bool {
	for _, r := range standardRates {
		if rate.Equal(decimal.NewFromInt(r)) {
			return true
		}
	}
	return false
}

// Supply types for HSNEntry.Type.
const (
	SupplyGoods   = "goods"
	SupplyService = "service"
)

// HSNEntry is a commonly used HSN (goods) or SAC (service) code.
type HSNEntry struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	DefaultRate decimal.Decimal `json:"default_rate"`
}

var commonHSNSAC = []struct {
	code, description, kind string
	rate                    int64
}{
	{"998311", "Management consulting", SupplyService, 18},
	{"998312", "Business consulting", SupplyService, 18},
	{"998313", "IT consulting", SupplyService, 18},
	{"998314", "IT design & development", SupplyService, 18},
	{"998315", "Hosting & IT infrastructure", SupplyService, 18},
	{"998316", "IT support services", SupplyService, 18},
	{"998361", "Graphic design services", SupplyService, 18},
	{"998362", "Photography services", SupplyService, 18},
	{"998363", "Video production", SupplyService, 18},
	{"998364", "Content writing", SupplyService, 18},
	{"998365", "Translation services", SupplyService, 18},
	{"998371", "Advertising services", SupplyService, 18},
	{"998391", "Accounting & audit", SupplyService, 18},
	{"998392", "Tax preparation", SupplyService, 18},
	{"998393", "Legal services", SupplyService, 18},
	{"997212", "Renting of residential", SupplyService, 0},
	{"997213", "Renting of commercial", SupplyService, 18},
	{"4901", "Printed books", SupplyGoods, 0},
	{"8471", "Computers", SupplyGoods, 18},
	{"8517", "Mobile phones", SupplyGoods, 12},
	{"9403", "Furniture", SupplyGoods, 18},
	{"6109", "T-shirts", SupplyGoods, 5},
}

// CommonHSNSAC returns the autocomplete table of frequently used codes.
// It is a convenience list, not a rate authority.
func CommonHSNSAC() []HSNEntry {
	out := make([]HSNEntry, len(commonHSNSAC))
	for i, e := range commonHSNSAC {
		out[i] = HSNEntry{
			Code:        e.code,
			Description: e.description,
			Type:        e.kind,
			DefaultRate: decimal.NewFromInt(e.rate),
		}
	}
	return out
}
