package bigquery

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/finance-etl/internal/domain"
)

func TestInferredSchemaMatchesDomain(t *testing.T) {
	tests := []struct {
		name   string
		sample any
		cols   []domain.Column
	}{
		{"accounts", AccountRow{}, domain.AccountSchema},
		{"transactions", TransactionRow{}, domain.TransactionSchema},
	}

	wantType := map[domain.ColumnKind]bigquery.FieldType{
		domain.KindString:    bigquery.StringFieldType,
		domain.KindFloat:     bigquery.FloatFieldType,
		domain.KindBool:      bigquery.BooleanFieldType,
		domain.KindTimestamp: bigquery.TimestampFieldType,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := bigquery.InferSchema(tt.sample)
			if err != nil {
				t.Fatalf("InferSchema() error = %v", err)
			}
			if len(schema) != len(tt.cols) {
				t.Fatalf("schema has %d fields, want %d", len(schema), len(tt.cols))
			}
			for i, col := range tt.cols {
				if schema[i].Name != col.Name {
					t.Errorf("field %d name = %q, want %q", i, schema[i].Name, col.Name)
				}
				if schema[i].Type != wantType[col.Kind] {
					t.Errorf("field %s type = %v, want %v", col.Name, schema[i].Type, wantType[col.Kind])
				}
			}
		})
	}
}

func TestTransactionRowRoundTrip(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	tx := domain.Transaction{
		AccountID:    "FR2",
		Date:         time.Date(2024, 3, 1, 0, 30, 0, 123456789, cet),
		Amount:       42.5,
		Currency:     domain.CurrencyEUR,
		Description:  "Loyer",
		Type:         domain.TransactionTypeTransfer,
		IsSuspicious: true,
	}

	row := transactionRowFrom(tx)
	if row.TransactionDate.Location() != time.UTC {
		t.Errorf("TransactionDate location = %v, want UTC", row.TransactionDate.Location())
	}
	if row.TransactionDate.Nanosecond() != 123456000 {
		t.Errorf("TransactionDate nanos = %d, want microsecond truncation", row.TransactionDate.Nanosecond())
	}

	back := row.toDomain()
	if !back.Date.Equal(tx.Date.Truncate(time.Microsecond)) {
		t.Errorf("Date = %v, want %v", back.Date, tx.Date)
	}
	back.Date = tx.Date
	if back != tx {
		t.Errorf("toDomain() = %+v, want %+v", back, tx)
	}
}

func TestAccountRowRoundTrip(t *testing.T) {
	a := domain.Account{
		AccountID:      "PO1",
		IBAN:           "PT8900000000001234567890",
		AccountBalance: 1234.56,
		IsBlocked:      true,
		OwnerCountry:   "Portugal",
	}
	if got := accountRowFrom(a).toDomain(); got != a {
		t.Errorf("round trip = %+v, want %+v", got, a)
	}
}

func TestEncodeJSONLines(t *testing.T) {
	rows := []TransactionRow{
		{AccountID: "GE1", TransactionDate: time.Date(2024, 2, 13, 10, 0, 0, 0, time.UTC), Amount: 10},
		{AccountID: "GE2", TransactionDate: time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC), Amount: 20},
	}

	payload, err := encodeJSONLines(rows)
	if err != nil {
		t.Fatalf("encodeJSONLines() error = %v", err)
	}

	var lines []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(payload))
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["account_id"] != "GE1" || lines[0]["transaction_date"] != "2024-02-13T10:00:00Z" {
		t.Errorf("first line = %v", lines[0])
	}
	if _, ok := lines[1]["transaction_amount"]; !ok {
		t.Errorf("second line missing transaction_amount: %v", lines[1])
	}
}

func TestEncodeJSONLines_Empty(t *testing.T) {
	payload, err := encodeJSONLines([]AccountRow(nil))
	if err != nil {
		t.Fatalf("encodeJSONLines() error = %v", err)
	}
	if len(payload) != 0 {
		t.Errorf("payload = %q, want empty", payload)
	}
}

func TestSelectSQL(t *testing.T) {
	got := selectSQL("proj", "dataops_hub", domain.TransactionsTable, domain.TransactionSchema[:2])
	want := "SELECT `account_id`, `transaction_date` FROM `proj.dataops_hub.transactions`"
	if got != want {
		t.Errorf("selectSQL() = %q, want %q", got, want)
	}
}
