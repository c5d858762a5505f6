package service_test

import (
	"github.com/shopspring/decimal"

	"onebill/internal/check"
	"onebill/internal/config"
	"onebill/internal/domain"
	"onebill/internal/hsn"
)

const (
	mhGSTIN = "27AAAAA0000A1Z5"
	mhBuyer = "27BBBBB1111B1Z5"
	kaGSTIN = "29BBBBB1111B1Z5"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func engineConfig() *config.EngineConfig {
	return &config.EngineConfig{DefaultCurrency: "INR", NumberTemplate: "INV-{YYYY}{MM}-{SEQ4}"}
}

func testChecker() *check.Checker {
	return check.NewChecker(hsn.NewCatalog([]domain.HSNCode{
		{Code: "998314", Description: "IT design and development services", GSTRate: dec("18")},
	}))
}
