package etl

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/dvloznov/finance-etl/internal/domain"
)

var testProcessedAt = time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name         string
		isFraud      bool
		isSuspicious bool
		want         float64
	}{
		{"fraud", true, false, 1.0},
		{"fraud wins over suspicious", true, true, 1.0},
		{"suspicious", false, true, 0.7},
		{"clean", false, false, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskScore(tt.isFraud, tt.isSuspicious); got != tt.want {
				t.Errorf("RiskScore(%v, %v) = %v, want %v", tt.isFraud, tt.isSuspicious, got, tt.want)
			}
		})
	}
}

func ge1Account() domain.Account {
	return domain.Account{
		AccountID:      "GE1",
		AccountType:    domain.AccountTypeChecking,
		AccountStatus:  domain.AccountStatusActive,
		AccountBalance: 1000.0,
		OwnerCountry:   "Germany",
	}
}

func ge1Transaction() domain.Transaction {
	return domain.Transaction{
		AccountID: "GE1",
		Date:      time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC),
		Amount:    100.0,
		Currency:  domain.CurrencyEUR,
		Type:      domain.TransactionTypeDeposit,
	}
}

func TestTransform_SingleMatch(t *testing.T) {
	res := Transform([]domain.Transaction{ge1Transaction()}, []domain.Account{ge1Account()}, testProcessedAt)

	if len(res.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(res.Rows))
	}
	if res.Dropped != 0 {
		t.Errorf("Dropped = %d, want 0", res.Dropped)
	}

	want := domain.EnrichedTransaction{
		AccountID:           "GE1",
		TransactionDate:     time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC),
		TransactionAmount:   100.0,
		TransactionCurrency: "EUR",
		TransactionType:     "deposit",
		AccountType:         "Checking",
		AccountStatus:       "Active",
		AccountBalance:      1000.0,
		AccountOwnerCountry: "Germany",
		Amount:              100.0,
		RiskScore:           0.0,
		ProcessedAt:         testProcessedAt,
	}
	if !reflect.DeepEqual(res.Rows[0], want) {
		t.Errorf("row = %+v\nwant %+v", res.Rows[0], want)
	}
}

func TestTransform_UsesTransactionFlags(t *testing.T) {
	account := ge1Account()
	account.IsFraud = true
	account.IsSuspicious = true

	clean := ge1Transaction()
	suspicious := ge1Transaction()
	suspicious.IsSuspicious = true
	fraud := ge1Transaction()
	fraud.IsFraud = true

	res := Transform([]domain.Transaction{clean, suspicious, fraud}, []domain.Account{account}, testProcessedAt)

	wantScores := []float64{0.0, 0.7, 1.0}
	for i, row := range res.Rows {
		if row.RiskScore != wantScores[i] {
			t.Errorf("row %d RiskScore = %v, want %v", i, row.RiskScore, wantScores[i])
		}
	}
	if res.Rows[0].IsFraud || res.Rows[0].IsSuspicious {
		t.Errorf("account flags leaked into row: %+v", res.Rows[0])
	}
}

func TestTransform_DropsUnmatched(t *testing.T) {
	orphan := ge1Transaction()
	orphan.AccountID = "XX9"

	res := Transform([]domain.Transaction{orphan, ge1Transaction(), orphan}, []domain.Account{ge1Account()}, testProcessedAt)

	if len(res.Rows) != 1 || res.Rows[0].AccountID != "GE1" {
		t.Errorf("rows = %+v, want only GE1", res.Rows)
	}
	if res.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", res.Dropped)
	}
}

func TestTransform_DuplicateAccountsMultiplyRows(t *testing.T) {
	first := ge1Account()
	second := ge1Account()
	second.AccountType = domain.AccountTypeSavings

	res := Transform([]domain.Transaction{ge1Transaction()}, []domain.Account{first, second}, testProcessedAt)

	if len(res.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(res.Rows))
	}
	if res.Rows[0].AccountType != "Checking" || res.Rows[1].AccountType != "Savings" {
		t.Errorf("account types = %q, %q", res.Rows[0].AccountType, res.Rows[1].AccountType)
	}
}

func TestTransform_AccountsWithoutTransactions(t *testing.T) {
	res := Transform(nil, []domain.Account{ge1Account()}, testProcessedAt)
	if len(res.Rows) != 0 || res.Dropped != 0 {
		t.Errorf("Transform(nil) = %+v, want empty", res)
	}
}

func TestEngineTransform_MatchesSequential(t *testing.T) {
	var accounts []domain.Account
	for i := 1; i <= 7; i++ {
		a := ge1Account()
		a.AccountID = fmt.Sprintf("GE%d", i)
		accounts = append(accounts, a)
	}
	var txs []domain.Transaction
	for i := 0; i < 53; i++ {
		tx := ge1Transaction()
		tx.AccountID = fmt.Sprintf("GE%d", i%9+1) // GE8, GE9 are unmatched
		tx.Amount = float64(i)
		tx.IsFraud = i%5 == 0
		txs = append(txs, tx)
	}

	want := Transform(txs, accounts, testProcessedAt)

	for _, workers := range []int{1, 3, 8, 100} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			e := NewEngine(workers)
			defer e.Release()

			got, err := e.Transform(context.Background(), txs, accounts, testProcessedAt)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("parallel result differs: %d rows/%d dropped, want %d/%d",
					len(got.Rows), got.Dropped, len(want.Rows), want.Dropped)
			}
		})
	}
}

func TestChunkBounds(t *testing.T) {
	tests := []struct {
		n, parts int
		want     [][2]int
	}{
		{0, 4, nil},
		{3, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{10, 3, [][2]int{{0, 4}, {4, 8}, {8, 10}}},
		{8, 4, [][2]int{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
	}
	for _, tt := range tests {
		if got := chunkBounds(tt.n, tt.parts); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("chunkBounds(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
		}
	}
}
