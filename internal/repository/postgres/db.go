package postgres

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"onebill/internal/config"
	"onebill/internal/domain"
)

// NewDB creates a new PostgreSQL connection pool.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

// isUniqueViolation reports whether err is a duplicate-key error on constraint.
func isUniqueViolation(err error, constraint string) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") && strings.Contains(msg, constraint)
}

// buildDateWindow appends the optional date window of filter to clause, numbering
// placeholders from argN. col is the date column to compare.
func buildDateWindow(clause string, args []interface{}, col string, filter domain.ListFilter) (string, []interface{}) {
	argN := len(args) + 1
	if filter.From != nil {
		clause += fmt.Sprintf(" AND %s >= $%d", col, argN)
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		clause += fmt.Sprintf(" AND %s <= $%d", col, argN)
		args = append(args, *filter.To)
	}
	return clause, args
}
