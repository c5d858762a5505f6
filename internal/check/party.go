package check

import (
	"context"
	"fmt"
	"strings"

	"onebill/internal/gst"
)

// PartyRules returns the rules over the business and client identities.
func PartyRules() []*Rule {
	return []*Rule{
		{
			key: "fmt.business.gstin", name: "Format: Business GSTIN", sev: SeverityError,
			fn: func(_ context.Context, d *Draft) []Result {
				return []Result{gstinCheck("business.gstin", d.BusinessGSTIN)}
			},
		},
		{
			key: "fmt.client.gstin", name: "Format: Client GSTIN", sev: SeverityError,
			fn: func(_ context.Context, d *Draft) []Result {
				return []Result{gstinCheck("client.gstin", d.ClientGSTIN)}
			},
		},
		{
			key: "xf.business.gstin_state", name: "Cross-field: Business GSTIN State", sev: SeverityWarning,
			fn: func(_ context.Context, d *Draft) []Result {
				return []Result{stateMatchCheck("business.state", d.BusinessGSTIN, d.BusinessState)}
			},
		},
		{
			key: "xf.client.gstin_state", name: "Cross-field: Client GSTIN State", sev: SeverityWarning,
			fn: func(_ context.Context, d *Draft) []Result {
				return []Result{stateMatchCheck("client.state", d.ClientGSTIN, d.ClientState)}
			},
		},
		{
			key: "logic.parties.distinct", name: "Logical: Distinct Parties", sev: SeverityError,
			fn: func(_ context.Context, d *Draft) []Result {
				b, c := strings.ToUpper(d.BusinessGSTIN), strings.ToUpper(d.ClientGSTIN)
				if b == "" || c == "" {
					return []Result{{Passed: true, FieldPath: "client.gstin", Message: "GSTIN missing on one side, skipping"}}
				}
				if b == c {
					return []Result{{
						FieldPath: "client.gstin", Expected: "GSTIN different from business", Actual: c,
						Message: "client GSTIN is the same as the business GSTIN",
					}}
				}
				return []Result{{Passed: true, FieldPath: "client.gstin", Message: "business and client GSTINs differ"}}
			},
		},
	}
}

func gstinCheck(fieldPath, value string) Result {
	if value == "" {
		return Result{Passed: true, FieldPath: fieldPath, Message: fmt.Sprintf("%s is empty, skipping format check", fieldPath)}
	}
	v := gst.ValidateGSTIN(value)
	if !v.Valid {
		return Result{FieldPath: fieldPath, Expected: gst.GSTINExample, Actual: value, Message: v.Error}
	}
	return Result{Passed: true, FieldPath: fieldPath, Actual: value, Message: fmt.Sprintf("%s is valid (%s)", fieldPath, v.StateName)}
}

func stateMatchCheck(fieldPath, gstin, stateName string) Result {
	state, ok := gst.StateOf(gstin)
	if !ok || stateName == "" || !gst.ValidateGSTIN(gstin).Valid {
		return Result{Passed: true, FieldPath: fieldPath, Message: fmt.Sprintf("%s: nothing to compare, skipping", fieldPath)}
	}
	if !strings.EqualFold(state.Name, stateName) {
		return Result{
			FieldPath: fieldPath, Expected: state.Name, Actual: stateName,
			Message: fmt.Sprintf("%s %q does not match GSTIN state %s (%s); the GSTIN wins", fieldPath, stateName, state.Code, state.Name),
		}
	}
	return Result{Passed: true, FieldPath: fieldPath, Expected: state.Name, Actual: stateName, Message: fmt.Sprintf("%s matches GSTIN", fieldPath)}
}
