package gst

import (
	"fmt"
	"regexp"
	"strings"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// GSTINExample is the canonical sample shown to users in format errors.
const GSTINExample = "22AAAAA0000A1Z5"

// GSTINValidation is the outcome of ValidateGSTIN. Failures are values, not errors:
// Reason carries one of ErrMissingInput, ErrFormat or ErrUnknownJurisdiction.
type GSTINValidation struct {
	Valid     bool   `json:"valid"`
	StateCode string `json:"state_code,omitempty"`
	StateName string `json:"state_name,omitempty"`
	Error     string `json:"error,omitempty"`
	Reason    error  `json:"-"`
}

// ValidateGSTIN checks gstin against the 15-character GSTIN grammar and the jurisdiction table.
// The check digit is not recomputed.
func ValidateGSTIN(gstin string) GSTINValidation {
	if gstin == "" {
		return GSTINValidation{Error: "GSTIN is required", Reason: ErrMissingInput}
	}

	normalized := strings.ToUpper(gstin)
	if !gstinPattern.MatchString(normalized) {
		return GSTINValidation{
			Error:  "Invalid GSTIN format. Expected: " + GSTINExample,
			Reason: ErrFormat,
		}
	}

	code := normalized[:2]
	state, ok := StateByCode(code)
	if !ok {
		return GSTINValidation{
			Error:  fmt.Sprintf("Invalid state code: %s", code),
			Reason: ErrUnknownJurisdiction,
		}
	}

	return GSTINValidation{Valid: true, StateCode: state.Code, StateName: state.Name}
}

// StateCodeOf returns the first two characters of gstin, which encode its jurisdiction.
func StateCodeOf(gstin string) (string, bool) {
	if len(gstin) < 2 {
		return "", false
	}
	return gstin[:2], true
}

// StateOf resolves the jurisdiction encoded in gstin without validating the rest of it.
func StateOf(gstin string) (State, bool) {
	code, ok := StateCodeOf(gstin)
	if !ok {
		return State{}, false
	}
	return StateByCode(code)
}
