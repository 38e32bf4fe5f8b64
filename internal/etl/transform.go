package etl

import (
	"time"

	"github.com/dvloznov/finance-etl/internal/domain"
)

// Risk scores, highest first.
const (
	RiskFraud      = 1.0
	RiskSuspicious = 0.7
	RiskNone       = 0.0
)

// Result is the output of the join.
type Result struct {
	Rows []domain.EnrichedTransaction
	// Dropped counts transactions with no matching account. They are not
	// part of the output.
	Dropped int
}

// RiskScore applies the first matching rule: fraud, then suspicious, then
// none.
func RiskScore(isFraud, isSuspicious bool) float64 {
	switch {
	case isFraud:
		return RiskFraud
	case isSuspicious:
		return RiskSuspicious
	default:
		return RiskNone
	}
}

// Transform inner-joins txs to accounts on account_id. Each transaction
// yields one row per matching account, in input order. The risk score reads
// the transaction's own flags. Every row carries processedAt.
func Transform(txs []domain.Transaction, accounts []domain.Account, processedAt time.Time) Result {
	return join(txs, indexAccounts(accounts), processedAt)
}

func indexAccounts(accounts []domain.Account) map[string][]domain.Account {
	index := make(map[string][]domain.Account, len(accounts))
	for _, a := range accounts {
		index[a.AccountID] = append(index[a.AccountID], a)
	}
	return index
}

func join(txs []domain.Transaction, index map[string][]domain.Account, processedAt time.Time) Result {
	res := Result{Rows: make([]domain.EnrichedTransaction, 0, len(txs))}
	for _, t := range txs {
		matches := index[t.AccountID]
		if len(matches) == 0 {
			res.Dropped++
			continue
		}
		for _, a := range matches {
			res.Rows = append(res.Rows, enrich(t, a, processedAt))
		}
	}
	return res
}

func enrich(t domain.Transaction, a domain.Account, processedAt time.Time) domain.EnrichedTransaction {
	return domain.EnrichedTransaction{
		AccountID:              t.AccountID,
		TransactionDate:        t.Date,
		TransactionAmount:      t.Amount,
		TransactionCurrency:    t.Currency,
		TransactionDescription: t.Description,
		TransactionType:        t.Type,
		IsFraud:                t.IsFraud,
		IsSuspicious:           t.IsSuspicious,
		AccountType:            a.AccountType,
		AccountStatus:          a.AccountStatus,
		AccountBalance:         a.AccountBalance,
		AccountOwnerCountry:    a.OwnerCountry,
		Amount:                 float64(t.Amount),
		RiskScore:              RiskScore(t.IsFraud, t.IsSuspicious),
		ProcessedAt:            processedAt,
	}
}
