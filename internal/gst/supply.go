package gst

import "strings"

// UnknownPlace is reported when neither the registry nor the caller can name the client's state.
const UnknownPlace = "Unknown"

// SupplyParties carries the jurisdiction hints for the two sides of a supply.
type SupplyParties struct {
	BusinessGSTIN string `json:"business_gstin"`
	ClientGSTIN   string `json:"client_gstin"`
	BusinessState string `json:"business_state"`
	ClientState   string `json:"client_state"`
}

// PlaceOfSupply is the jurisdiction classification of a single invoice.
// PlaceOfSupplyCode is empty when the classification fell back to state names.
type PlaceOfSupply struct {
	IsIntraState      bool   `json:"is_intra_state"`
	PlaceOfSupply     string `json:"place_of_supply"`
	PlaceOfSupplyCode string `json:"place_of_supply_code,omitempty"`
	BusinessStateName string `json:"business_state_name"`
	ClientStateName   string `json:"client_state_name"`
}

// ResolvePlaceOfSupply classifies a supply as intra- or inter-state.
// When both GSTINs are present their state codes decide, regardless of the state names.
// Otherwise the free-text state names are compared.
func ResolvePlaceOfSupply(p SupplyParties) PlaceOfSupply {
	businessCode, okBusiness := StateCodeOf(p.BusinessGSTIN)
	clientCode, okClient := StateCodeOf(p.ClientGSTIN)

	if okBusiness && okClient {
		clientName := registryNameOr(clientCode, p.ClientState)
		return PlaceOfSupply{
			IsIntraState:      businessCode == clientCode,
			PlaceOfSupply:     clientName,
			PlaceOfSupplyCode: clientCode,
			BusinessStateName: registryNameOr(businessCode, p.BusinessState),
			ClientStateName:   clientName,
		}
	}

	place := p.ClientState
	if place == "" {
		place = UnknownPlace
	}
	return PlaceOfSupply{
		IsIntraState:      IsIntraState(p.BusinessState, p.ClientState),
		PlaceOfSupply:     place,
		BusinessStateName: p.BusinessState,
		ClientStateName:   p.ClientState,
	}
}

// IsIntraState compares two state names case-insensitively.
// Missing data on either side is treated as intra-state (CGST+SGST).
func IsIntraState(businessState, clientState string) bool {
	if businessState == "" || clientState == "" {
		return true
	}
	return strings.EqualFold(businessState, clientState)
}

func registryNameOr(code, fallback string) string {
	if name, ok := StateName(code); ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return UnknownPlace
}
