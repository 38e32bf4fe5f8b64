package bigquery

import (
	"time"

	"github.com/dvloznov/finance-etl/internal/domain"
)

// AccountRow is the warehouse shape of domain.Account. The bigquery tags
// drive the table schema and query reads; the json tags drive load jobs.
type AccountRow struct {
	AccountID     string `bigquery:"account_id" json:"account_id"`
	IBAN          string `bigquery:"IBAN" json:"IBAN"`
	BIC           string `bigquery:"BIC" json:"BIC"`
	SWIFT         string `bigquery:"SWIFT" json:"SWIFT"`
	AccountNumber string `bigquery:"account_number" json:"account_number"`
	AccountType   string `bigquery:"account_type" json:"account_type"`
	AccountStatus string `bigquery:"account_status" json:"account_status"`

	AccountBalance float64 `bigquery:"account_balance" json:"account_balance"`

	IsFraud      bool `bigquery:"is_fraud" json:"is_fraud"`
	IsSuspicious bool `bigquery:"is_suspicious" json:"is_suspicious"`
	IsBlocked    bool `bigquery:"is_blocked" json:"is_blocked"`
	IsActive     bool `bigquery:"is_active" json:"is_active"`
	IsDeleted    bool `bigquery:"is_deleted" json:"is_deleted"`

	Owner        string `bigquery:"account_owner" json:"account_owner"`
	OwnerEmail   string `bigquery:"account_owner_email" json:"account_owner_email"`
	OwnerPhone   string `bigquery:"account_owner_phone" json:"account_owner_phone"`
	OwnerAddress string `bigquery:"account_owner_address" json:"account_owner_address"`
	OwnerCity    string `bigquery:"account_owner_city" json:"account_owner_city"`
	OwnerState   string `bigquery:"account_owner_state" json:"account_owner_state"`
	OwnerZip     string `bigquery:"account_owner_zip" json:"account_owner_zip"`
	OwnerCountry string `bigquery:"account_owner_country" json:"account_owner_country"`
}

// TransactionRow is the warehouse shape of domain.Transaction.
type TransactionRow struct {
	AccountID       string    `bigquery:"account_id" json:"account_id"`
	TransactionDate time.Time `bigquery:"transaction_date" json:"transaction_date"` // TIMESTAMP, microsecond precision
	Amount          float64   `bigquery:"transaction_amount" json:"transaction_amount"`
	Currency        string    `bigquery:"transaction_currency" json:"transaction_currency"`
	Description     string    `bigquery:"transaction_description" json:"transaction_description"`
	Type            string    `bigquery:"transaction_type" json:"transaction_type"`
	IsFraud         bool      `bigquery:"is_fraud" json:"is_fraud"`
	IsSuspicious    bool      `bigquery:"is_suspicious" json:"is_suspicious"`
}

func accountRowFrom(a domain.Account) AccountRow {
	return AccountRow{
		AccountID:      a.AccountID,
		IBAN:           a.IBAN,
		BIC:            a.BIC,
		SWIFT:          a.SWIFT,
		AccountNumber:  a.AccountNumber,
		AccountType:    a.AccountType,
		AccountStatus:  a.AccountStatus,
		AccountBalance: a.AccountBalance,
		IsFraud:        a.IsFraud,
		IsSuspicious:   a.IsSuspicious,
		IsBlocked:      a.IsBlocked,
		IsActive:       a.IsActive,
		IsDeleted:      a.IsDeleted,
		Owner:          a.Owner,
		OwnerEmail:     a.OwnerEmail,
		OwnerPhone:     a.OwnerPhone,
		OwnerAddress:   a.OwnerAddress,
		OwnerCity:      a.OwnerCity,
		OwnerState:     a.OwnerState,
		OwnerZip:       a.OwnerZip,
		OwnerCountry:   a.OwnerCountry,
	}
}

func (r AccountRow) toDomain() domain.Account {
	return domain.Account{
		AccountID:      r.AccountID,
		IBAN:           r.IBAN,
		BIC:            r.BIC,
		SWIFT:          r.SWIFT,
		AccountNumber:  r.AccountNumber,
		AccountType:    r.AccountType,
		AccountStatus:  r.AccountStatus,
		AccountBalance: r.AccountBalance,
		IsFraud:        r.IsFraud,
		IsSuspicious:   r.IsSuspicious,
		IsBlocked:      r.IsBlocked,
		IsActive:       r.IsActive,
		IsDeleted:      r.IsDeleted,
		Owner:          r.Owner,
		OwnerEmail:     r.OwnerEmail,
		OwnerPhone:     r.OwnerPhone,
		OwnerAddress:   r.OwnerAddress,
		OwnerCity:      r.OwnerCity,
		OwnerState:     r.OwnerState,
		OwnerZip:       r.OwnerZip,
		OwnerCountry:   r.OwnerCountry,
	}
}

func transactionRowFrom(t domain.Transaction) TransactionRow {
	return TransactionRow{
		AccountID:       t.AccountID,
		TransactionDate: t.Date.UTC().Truncate(time.Microsecond),
		Amount:          t.Amount,
		Currency:        t.Currency,
		Description:     t.Description,
		Type:            t.Type,
		IsFraud:         t.IsFraud,
		IsSuspicious:    t.IsSuspicious,
	}
}

func (r TransactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		AccountID:    r.AccountID,
		Date:         r.TransactionDate.UTC(),
		Amount:       r.Amount,
		Currency:     r.Currency,
		Description:  r.Description,
		Type:         r.Type,
		IsFraud:      r.IsFraud,
		IsSuspicious: r.IsSuspicious,
	}
}
