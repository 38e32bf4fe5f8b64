package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dvloznov/finance-etl/internal/domain"
)

// Store is the embedded SQLite backend used for local runs and tests.
// Timestamps are stored as RFC 3339 text in UTC.
type Store struct {
	DB *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("sqlite.Open: creating database directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: %w", err)
	}
	// one connection: a single writer, and every caller sees the same
	// in-memory database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: ping: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// ReplaceAccounts implements store.Writer.
func (s *Store) ReplaceAccounts(ctx context.Context, accounts []domain.Account) error {
	rows := make([][]any, len(accounts))
	for i, a := range accounts {
		rows[i] = a.Values()
	}
	return s.replace(ctx, domain.AccountsTable, domain.AccountSchema, rows)
}

// ReplaceTransactions implements store.Writer.
func (s *Store) ReplaceTransactions(ctx context.Context, txs []domain.Transaction) error {
	rows := make([][]any, len(txs))
	for i, t := range txs {
		v := t.Values()
		v[1] = t.Date.UTC().Format(time.RFC3339Nano)
		rows[i] = v
	}
	return s.replace(ctx, domain.TransactionsTable, domain.TransactionSchema, rows)
}

// ReadAccounts implements store.Reader.
func (s *Store) ReadAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.DB.QueryContext(ctx, selectSQL(domain.AccountsTable, domain.AccountSchema))
	if err != nil {
		return nil, fmt.Errorf("ReadAccounts: query: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(a.Pointers()...); err != nil {
			return nil, fmt.Errorf("ReadAccounts: scanning: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ReadAccounts: iterating: %w", err)
	}
	return accounts, nil
}

// ReadTransactions implements store.Reader.
func (s *Store) ReadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := s.DB.QueryContext(ctx, selectSQL(domain.TransactionsTable, domain.TransactionSchema))
	if err != nil {
		return nil, fmt.Errorf("ReadTransactions: query: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var date string
		dest := t.Pointers()
		dest[1] = &date
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("ReadTransactions: scanning: %w", err)
		}
		t.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, fmt.Errorf("ReadTransactions: transaction_date %q: %w", date, err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ReadTransactions: iterating: %w", err)
	}
	return txs, nil
}

func (s *Store) replace(ctx context.Context, table string, cols []domain.Column, rows [][]any) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace %s: begin: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(table)); err != nil {
		return fmt.Errorf("replace %s: drop: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(table, cols)); err != nil {
		return fmt.Errorf("replace %s: create: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, cols))
	if err != nil {
		return fmt.Errorf("replace %s: prepare insert: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("replace %s: inserting row %d: %w", table, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace %s: commit: %w", table, err)
	}
	return nil
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func columnType(kind domain.ColumnKind) string {
	switch kind {
	case domain.KindFloat:
		return "REAL"
	case domain.KindBool:
		return "BOOLEAN"
	default:
		// timestamps included, see Store
		return "TEXT"
	}
}

func createTableSQL(table string, cols []domain.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quote(c.Name) + " " + columnType(c.Kind)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quote(table), strings.Join(defs, ", "))
}

func insertSQL(table string, cols []domain.Column) string {
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quote(c.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(table), strings.Join(names, ", "), strings.Join(marks, ", "))
}

func selectSQL(table string, cols []domain.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quote(c.Name)
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(names, ", "), quote(table))
}
