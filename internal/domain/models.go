package domain

import "time"

// Account is one synthetic customer account, stored in the customers table.
type Account struct {
	AccountID     string `json:"account_id"`
	IBAN          string `json:"IBAN"`
	BIC           string `json:"BIC"`
	SWIFT         string `json:"SWIFT"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	AccountStatus string `json:"account_status"`

	AccountBalance float64 `json:"account_balance"`

	IsFraud      bool `json:"is_fraud"`
	IsSuspicious bool `json:"is_suspicious"`
	IsBlocked    bool `json:"is_blocked"`
	IsActive     bool `json:"is_active"`
	IsDeleted    bool `json:"is_deleted"`

	Owner        string `json:"account_owner"`
	OwnerEmail   string `json:"account_owner_email"`
	OwnerPhone   string `json:"account_owner_phone"`
	OwnerAddress string `json:"account_owner_address"`
	OwnerCity    string `json:"account_owner_city"`
	OwnerState   string `json:"account_owner_state"`
	OwnerZip     string `json:"account_owner_zip"`
	OwnerCountry string `json:"account_owner_country"`
}

// Values returns the account fields in AccountSchema order.
func (a Account) Values() []any {
	return []any{
		a.AccountID, a.IBAN, a.BIC, a.SWIFT, a.AccountNumber,
		a.AccountType, a.AccountStatus, a.AccountBalance,
		a.IsFraud, a.IsSuspicious, a.IsBlocked, a.IsActive, a.IsDeleted,
		a.Owner, a.OwnerEmail, a.OwnerPhone, a.OwnerAddress,
		a.OwnerCity, a.OwnerState, a.OwnerZip, a.OwnerCountry,
	}
}

// Pointers returns pointers to the account fields in AccountSchema order,
// for scanning rows.
func (a *Account) Pointers() []any {
	return []any{
		&a.AccountID, &a.IBAN, &a.BIC, &a.SWIFT, &a.AccountNumber,
		&a.AccountType, &a.AccountStatus, &a.AccountBalance,
		&a.IsFraud, &a.IsSuspicious, &a.IsBlocked, &a.IsActive, &a.IsDeleted,
		&a.Owner, &a.OwnerEmail, &a.OwnerPhone, &a.OwnerAddress,
		&a.OwnerCity, &a.OwnerState, &a.OwnerZip, &a.OwnerCountry,
	}
}

// Transaction is one synthetic transaction, stored in the transactions table.
// AccountID references an Account; the reference is not enforced by the store.
type Transaction struct {
	AccountID   string    `json:"account_id"`
	Date        time.Time `json:"transaction_date"`
	Amount      float64   `json:"transaction_amount"`
	Currency    string    `json:"transaction_currency"`
	Description string    `json:"transaction_description"`
	Type        string    `json:"transaction_type"`

	IsFraud      bool `json:"is_fraud"`
	IsSuspicious bool `json:"is_suspicious"`
}

// Values returns the transaction fields in TransactionSchema order.
func (t Transaction) Values() []any {
	return []any{
		t.AccountID, t.Date, t.Amount, t.Currency, t.Description, t.Type,
		t.IsFraud, t.IsSuspicious,
	}
}

// Pointers returns pointers to the transaction fields in TransactionSchema
// order, for scanning rows.
func (t *Transaction) Pointers() []any {
	return []any{
		&t.AccountID, &t.Date, &t.Amount, &t.Currency, &t.Description, &t.Type,
		&t.IsFraud, &t.IsSuspicious,
	}
}

// EnrichedTransaction is a transaction joined to its account, with the
// derived amount, risk score and processing time.
type EnrichedTransaction struct {
	AccountID              string
	TransactionDate        time.Time
	TransactionAmount      float64
	TransactionCurrency    string
	TransactionDescription string
	TransactionType        string

	// Flags of the transaction itself; the account's flags are not projected.
	IsFraud      bool
	IsSuspicious bool

	AccountType         string
	AccountStatus       string
	AccountBalance      float64
	AccountOwnerCountry string

	Amount      float64
	RiskScore   float64
	ProcessedAt time.Time
}
