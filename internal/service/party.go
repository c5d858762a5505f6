package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"onebill/internal/domain"
	"onebill/internal/gst"
	"onebill/internal/logger"
)

// partyLocation is a validated GSTIN with the state it places the party in.
type partyLocation struct {
	GSTIN     string
	State     string
	StateCode string
}

// resolveParty validates gstin and derives the party's state. A GSTIN's state prefix
// wins over the free-text state; without a GSTIN the state name is matched against the
// jurisdiction table and kept as typed when it does not match.
func resolveParty(ctx context.Context, gstin, state string) (partyLocation, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	state = strings.TrimSpace(state)

	if gstin == "" {
		loc := partyLocation{State: state}
		if code, ok := gst.StateCode(state); ok {
			loc.StateCode = code
			loc.State, _ = gst.StateName(code)
		}
		return loc, nil
	}

	v := gst.ValidateGSTIN(gstin)
	if !v.Valid {
		return partyLocation{}, fmt.Errorf("%w: %s", domain.ErrInvalidGSTIN, v.Error)
	}
	if state != "" && !strings.EqualFold(state, v.StateName) {
		logger.FromContext(ctx).Warn("state overridden by GSTIN prefix",
			zap.String("gstin", gstin),
			zap.String("given_state", state),
			zap.String("gstin_state", v.StateName),
		)
	}
	return partyLocation{GSTIN: gstin, State: v.StateName, StateCode: v.StateCode}, nil
}
