package domain

// Table names in the relational store.
const (
	AccountsTable     = "customers"
	TransactionsTable = "transactions"
)

// Account types.
const (
	AccountTypeChecking   = "Checking"
	AccountTypeSavings    = "Savings"
	AccountTypeInvestment = "Investment"
)

// Account statuses.
const (
	AccountStatusActive    = "Active"
	AccountStatusDormant   = "Dormant"
	AccountStatusSuspended = "Suspended"
)

// Transaction types.
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeTransfer   = "transfer"
	TransactionTypePayment    = "payment"
)

// CurrencyEUR is the only currency transactions are generated in.
const CurrencyEUR = "EUR"

var (
	AccountTypes     = []string{AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment}
	AccountStatuses  = []string{AccountStatusActive, AccountStatusDormant, AccountStatusSuspended}
	TransactionTypes = []string{TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer, TransactionTypePayment}
)

// ColumnKind is the logical type of a stored column.
type ColumnKind int

const (
	KindString ColumnKind = iota
	KindFloat
	KindBool
	KindTimestamp
)

// Column describes one column of a relational table.
type Column struct {
	Name string
	Kind ColumnKind
}

// AccountSchema lists the customers table columns in Account.Values order.
var AccountSchema = []Column{
	{"account_id", KindString},
	{"IBAN", KindString},
	{"BIC", KindString},
	{"SWIFT", KindString},
	{"account_number", KindString},
	{"account_type", KindString},
	{"account_status", KindString},
	{"account_balance", KindFloat},
	{"is_fraud", KindBool},
	{"is_suspicious", KindBool},
	{"is_blocked", KindBool},
	{"is_active", KindBool},
	{"is_deleted", KindBool},
	{"account_owner", KindString},
	{"account_owner_email", KindString},
	{"account_owner_phone", KindString},
	{"account_owner_address", KindString},
	{"account_owner_city", KindString},
	{"account_owner_state", KindString},
	{"account_owner_zip", KindString},
	{"account_owner_country", KindString},
}

// TransactionSchema lists the transactions table columns in
// Transaction.Values order.
var TransactionSchema = []Column{
	{"account_id", KindString},
	{"transaction_date", KindTimestamp},
	{"transaction_amount", KindFloat},
	{"transaction_currency", KindString},
	{"transaction_description", KindString},
	{"transaction_type", KindString},
	{"is_fraud", KindBool},
	{"is_suspicious", KindBool},
}

// ColumnNames returns the names of cols in order.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
