// Command seedhsn converts the GST HSN/SAC master workbook into a SQL seed for hsn_codes.
// Goods come from the first sheet and services from SAC_Master.
//
//	go run ./cmd/seedhsn -in hsn_master.xlsx -out db/seeds/hsn_codes.sql
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"onebill/internal/gst"
	"onebill/internal/logger"
)

const batchSize = 500

type seedRow struct {
	code        string
	description string
	rate        decimal.Decimal
	condition   string
	parentCode  string
}

func main() {
	in := flag.String("in", "hsn_master.xlsx", "HSN/SAC master workbook")
	out := flag.String("out", "db/seeds/hsn_codes.sql", "SQL seed file to write")
	effective := flag.String("effective-from", "2017-07-01", "effective_from date for every row")
	flag.Parse()

	log, err := logger.New("info", "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log, *in, *out, *effective); err != nil {
		log.Fatal("seedhsn failed", zap.Error(err))
	}
}

func run(log *zap.Logger, inPath, outPath, effectiveFrom string) error {
	f, err := excelize.OpenFile(inPath)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	seen := make(map[string]bool)

	goods, err := parseGoodsSheet(f, seen)
	if err != nil {
		return fmt.Errorf("parse HSN sheet: %w", err)
	}
	log.Info("parsed goods sheet", zap.Int("rows", len(goods)))

	services, err := parseServicesSheet(f, seen)
	if err != nil {
		return fmt.Errorf("parse SAC sheet: %w", err)
	}
	log.Info("parsed services sheet", zap.Int("rows", len(services)))

	rows := append(goods, services...)

	nonStandard := 0
	for i := range rows {
		if !gst.IsStandardRate(rows[i].rate) {
			nonStandard++
		}
	}
	if nonStandard > 0 {
		log.Warn("rows carry rates outside the standard slabs", zap.Int("rows", nonStandard))
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := writeSeed(file, rows, effectiveFrom); err != nil {
		return err
	}

	log.Info("seed written",
		zap.Int("rows", len(rows)),
		zap.Int("batches", (len(rows)+batchSize-1)/batchSize),
		zap.String("path", outPath),
	)
	return nil
}

// parseGoodsSheet reads the goods master (sheet index 0).
// Columns: F=4-digit code, H=its description, I=6-digit, J=desc, K=8-digit, M=desc, N=rate.
// Data starts at row index 5.
func parseGoodsSheet(f *excelize.File, seen map[string]bool) ([]seedRow, error) {
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	var out []seedRow
	for i := 5; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 14 {
			continue
		}

		rate, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(cellVal(row, 13)), "%"))
		if err != nil {
			continue
		}

		for _, col := range [][2]int{{10, 12}, {8, 9}, {5, 7}} {
			if code := strings.TrimSpace(cellVal(row, col[0])); isNumeric(code) {
				out = addRow(out, seen, code, strings.TrimSpace(cellVal(row, col[1])), rate, "")
			}
		}
	}
	return out, nil
}

// parseServicesSheet reads SAC_Master.
// Columns: A=4-digit SAC, B=desc, C=6-digit SAC, D=desc, E=free-text rate.
// Data starts at row index 3.
func parseServicesSheet(f *excelize.File, seen map[string]bool) ([]seedRow, error) {
	rows, err := f.GetRows("SAC_Master")
	if err != nil {
		return nil, err
	}

	var out []seedRow
	for i := 3; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 5 {
			continue
		}

		code6, desc6 := strings.TrimSpace(cellVal(row, 2)), strings.TrimSpace(cellVal(row, 3))
		code4, desc4 := strings.TrimSpace(cellVal(row, 0)), strings.TrimSpace(cellVal(row, 1))

		for _, r := range parseSACRate(cellVal(row, 4)) {
			if isNumeric(code6) {
				out = addRow(out, seen, code6, desc6, r.rate, r.condition)
			}
			if isNumeric(code4) {
				out = addRow(out, seen, code4, desc4, r.rate, r.condition)
			}
		}
	}
	return out, nil
}

type sacRate struct {
	rate      decimal.Decimal
	condition string
}

// ratePattern matches a percentage and an optional parenthesised condition after it.
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%\s*(\([^)]*\))?`)

// parseSACRate extracts the rate(s) from a free-text SAC rate cell.
//
//	"18%"                                  -> 18
//	"Exempt"                               -> 0
//	"12%-18%"                              -> 12, 18
//	"1% (without ITC) or 5% (without ITC)" -> 1 "(without ITC)", 5 "(without ITC)"
func parseSACRate(s string) []sacRate {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	switch strings.ToLower(s) {
	case "exempt", "nil":
		return []sacRate{{rate: decimal.Zero, condition: "exempt"}}
	}

	seen := make(map[string]bool)
	var rates []sacRate
	for _, m := range ratePattern.FindAllStringSubmatch(s, -1) {
		rate, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		cond := strings.Trim(strings.TrimSpace(m[2]), "()")
		key := rate.String() + "|" + cond
		if seen[key] {
			continue
		}
		seen[key] = true
		rates = append(rates, sacRate{rate: rate, condition: cond})
	}
	return rates
}

func addRow(rows []seedRow, seen map[string]bool, code, description string, rate decimal.Decimal, condition string) []seedRow {
	key := code + "|" + rate.StringFixed(2) + "|" + condition
	if seen[key] {
		return rows
	}
	seen[key] = true

	parent := ""
	if len(code) > 4 {
		parent = code[:4]
	}
	return append(rows, seedRow{code: code, description: description, rate: rate, condition: condition, parentCode: parent})
}

func writeSeed(w io.Writer, rows []seedRow, effectiveFrom string) error {
	header := []string{
		"-- HSN/SAC seed generated by cmd/seedhsn.",
		fmt.Sprintf("-- %d rows in batches of %d.", len(rows), batchSize),
		"BEGIN;",
		"",
	}
	for _, line := range header {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		if err := writeBatch(w, rows[i:end], effectiveFrom); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := fmt.Fprintln(w, "\nCOMMIT;"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func writeBatch(w io.Writer, batch []seedRow, effectiveFrom string) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO hsn_codes (code, description, gst_rate, condition_desc, parent_code, effective_from) VALUES\n")

	for i := range batch {
		r := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}

		parent := "NULL"
		if r.parentCode != "" {
			parent = "'" + r.parentCode + "'"
		}

		fmt.Fprintf(&b, "  ('%s', '%s', %s, '%s', %s, '%s')",
			escapeSQL(r.code), escapeSQL(r.description), r.rate.StringFixed(2),
			escapeSQL(r.condition), parent, escapeSQL(effectiveFrom))
	}

	b.WriteString("\nON CONFLICT (code, gst_rate, condition_desc, effective_from) DO NOTHING;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
