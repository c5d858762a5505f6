package gst

import "strings"

// State is a GST jurisdiction: a state or union territory and its two-digit code.
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var states = [...]State{
	{Code: "01", Name: "Jammu & Kashmir"},
	{Code: "02", Name: "Himachal Pradesh"},
	{Code: "03", Name: "Punjab"},
	{Code: "04", Name: "Chandigarh"},
	{Code: "05", Name: "Uttarakhand"},
	{Code: "06", Name: "Haryana"},
	{Code: "07", Name: "Delhi"},
	{Code: "08", Name: "Rajasthan"},
	{Code: "09", Name: "Uttar Pradesh"},
	{Code: "10", Name: "Bihar"},
	{Code: "11", Name: "Sikkim"},
	{Code: "12", Name: "Arunachal Pradesh"},
	{Code: "13", Name: "Nagaland"},
	{Code: "14", Name: "Manipur"},
	{Code: "15", Name: "Mizoram"},
	{Code: "16", Name: "Tripura"},
	{Code: "17", Name: "Meghalaya"},
	{Code: "18", Name: "Assam"},
	{Code: "19", Name: "West Bengal"},
	{Code: "20", Name: "Jharkhand"},
	{Code: "21", Name: "Odisha"},
	{Code: "22", Name: "Chhattisgarh"},
	{Code: "23", Name: "Madhya Pradesh"},
	{Code: "24", Name: "Gujarat"},
	{Code: "26", Name: "Dadra & Nagar Haveli and Daman & Diu"},
	{Code: "27", Name: "Maharashtra"},
	{Code: "28", Name: "Andhra Pradesh (Old)"},
	{Code: "29", Name: "Karnataka"},
	{Code: "30", Name: "Goa"},
	{Code: "31", Name: "Lakshadweep"},
	{Code: "32", Name: "Kerala"},
	{Code: "33", Name: "Tamil Nadu"},
	{Code: "34", Name: "Puducherry"},
	{Code: "35", Name: "Andaman & Nicobar Islands"},
	{Code: "36", Name: "Telangana"},
	{Code: "37", Name: "Andhra Pradesh"},
	{Code: "38", Name: "Ladakh"},
	{Code: "97", Name: "Other Territory"},
}

var (
	stateByCode = make(map[string]State, len(states))
	codeByName  = make(map[string]string, len(states))
)

func init() {
	for _, s := range states {
		stateByCode[s.Code] = s
		codeByName[strings.ToLower(s.Name)] = s.Code
	}
}

// States returns a copy of the jurisdiction table in code order.
func States() []State {
	out := make([]State, len(states))
	copy(out, states[:])
	return out
}

// StateByCode looks up a jurisdiction by its two-digit code.
func StateByCode(code string) (State, bool) {
	s, ok := stateByCode[code]
	return s, ok
}

// StateName returns the name registered for code.
func StateName(code string) (string, bool) {
	s, ok := stateByCode[code]
	return s.Name, ok
}

// StateCode returns the code for a state name. Matching is case-insensitive but otherwise exact.
func StateCode(name string) (string, bool) {
	code, ok := codeByName[strings.ToLower(name)]
	return code, ok
}
