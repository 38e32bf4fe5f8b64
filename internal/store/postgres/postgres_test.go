package postgres

import (
	"strings"
	"testing"

	"github.com/dvloznov/finance-etl/internal/domain"
)

func TestCreateTableSQL(t *testing.T) {
	got := createTableSQL(domain.TransactionsTable, domain.TransactionSchema)

	for _, want := range []string{
		`CREATE TABLE "transactions" (`,
		`"transaction_date" TIMESTAMPTZ`,
		`"transaction_amount" DOUBLE PRECISION`,
		`"is_fraud" BOOLEAN`,
		`"transaction_description" TEXT`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("createTableSQL() missing %q in:\n%s", want, got)
		}
	}
}

func TestSelectSQL_QuotesMixedCaseColumns(t *testing.T) {
	got := selectSQL(domain.AccountsTable, domain.AccountSchema)

	if !strings.HasPrefix(got, `SELECT "account_id", "IBAN", "BIC", "SWIFT",`) {
		t.Errorf("selectSQL() = %s", got)
	}
	if !strings.HasSuffix(got, `FROM "customers"`) {
		t.Errorf("selectSQL() = %s", got)
	}
}
