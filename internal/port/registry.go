package port

import "context"

// Taxpayer is the public registration record behind a GSTIN.
type Taxpayer struct {
	GSTIN     string `json:"gstin"`
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
	Status    string `json:"status"`
	Address   string `json:"address"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	Pincode   string `json:"pincode"`
}

// BankBranch is the branch record behind an IFSC code.
type BankBranch struct {
	IFSC    string `json:"ifsc"`
	Bank    string `json:"bank"`
	Branch  string `json:"branch"`
	City    string `json:"city"`
	State   string `json:"state"`
	Address string `json:"address"`
}

// TaxpayerRegistry looks up public GSTIN and IFSC records.
type TaxpayerRegistry interface {
	LookupGSTIN(ctx context.Context, gstin string) (*Taxpayer, error)
	LookupIFSC(ctx context.Context, ifsc string) (*BankBranch, error)
}
