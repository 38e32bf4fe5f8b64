package generator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dvloznov/finance-etl/internal/domain"
	"github.com/dvloznov/finance-etl/internal/logger"
)

// Defaults for the size of a generation run.
const (
	DefaultCustomersPerCountry     = 2
	DefaultTransactionsPerCustomer = 10

	// maxDescriptionChars bounds transaction_description.
	maxDescriptionChars = 100
	// transactionWindowDays is how far back transaction dates may go.
	transactionWindowDays = 365
	ibanAccountDigits     = 20
)

// Writer persists generated records, replacing whatever the target tables
// held before.
type Writer interface {
	ReplaceAccounts(ctx context.Context, accounts []domain.Account) error
	ReplaceTransactions(ctx context.Context, txs []domain.Transaction) error
}

// Dataset is the output of one generation run.
type Dataset struct {
	Accounts     []domain.Account
	Transactions []domain.Transaction
}

// Generator builds synthetic accounts and transactions.
type Generator struct {
	locales *Locales
	rand    Rand
	now     func() time.Time

	customersPerCountry     int
	transactionsPerCustomer int
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the clock transaction dates are computed from.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithCounts overrides the number of accounts per country and transactions
// per account.
func WithCounts(customersPerCountry, transactionsPerCustomer int) Option {
	return func(g *Generator) {
		g.customersPerCountry = customersPerCountry
		g.transactionsPerCustomer = transactionsPerCustomer
	}
}

// New creates a Generator over the given locale table and random source.
func New(locales *Locales, rnd Rand, opts ...Option) *Generator {
	g := &Generator{
		locales:                 locales,
		rand:                    rnd,
		now:                     time.Now,
		customersPerCountry:     DefaultCustomersPerCountry,
		transactionsPerCustomer: DefaultTransactionsPerCustomer,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ErrInvalidAccountNumber is returned for account numbers that are empty or
// longer than the 20 digits an IBAN holds.
var ErrInvalidAccountNumber = errors.New("invalid account number")

// GenerateIBAN composes "<ISO code>89<account number padded to 20 digits>",
// always 24 characters.
func (g *Generator) GenerateIBAN(country, accountNumber string) (string, error) {
	loc, err := g.locales.ByCountry(country)
	if err != nil {
		return "", fmt.Errorf("GenerateIBAN: %w", err)
	}
	if n := len(accountNumber); n == 0 || n > ibanAccountDigits {
		return "", fmt.Errorf("GenerateIBAN: %w: %d digits", ErrInvalidAccountNumber, n)
	}
	padded := strings.Repeat("0", ibanAccountDigits-len(accountNumber)) + accountNumber
	return loc.ISOCode + "89" + padded, nil
}

// GenerateCustomer builds one account for country. The account_id depends
// only on (country, sequenceID); every other field is sampled.
func (g *Generator) GenerateCustomer(country string, sequenceID int) (domain.Account, error) {
	loc, err := g.locales.ByCountry(country)
	if err != nil {
		return domain.Account{}, fmt.Errorf("GenerateCustomer: %w", err)
	}

	accountNumber := strconv.Itoa(g.rand.IntRange(1000000000, 9999999999))
	iban, err := g.GenerateIBAN(country, accountNumber)
	if err != nil {
		return domain.Account{}, fmt.Errorf("GenerateCustomer: %w", err)
	}

	owner := loc.Name(g.rand)
	return domain.Account{
		AccountID:      loc.Prefix() + strconv.Itoa(sequenceID),
		IBAN:           iban,
		BIC:            fmt.Sprintf("BANK%dXXX", g.rand.IntRange(10000, 99999)),
		SWIFT:          fmt.Sprintf("SWIFT%d", g.rand.IntRange(10000, 99999)),
		AccountNumber:  accountNumber,
		AccountType:    g.rand.RandomString(domain.AccountTypes),
		AccountStatus:  g.rand.RandomString(domain.AccountStatuses),
		AccountBalance: round2(g.rand.Float64Range(1000, 1000000)),
		IsFraud:        chance(g.rand, 0.05),
		IsSuspicious:   chance(g.rand, 0.10),
		IsBlocked:      chance(g.rand, 0.03),
		IsActive:       chance(g.rand, 0.95),
		IsDeleted:      chance(g.rand, 0.01),
		Owner:          owner,
		OwnerEmail:     loc.Email(g.rand, owner),
		OwnerPhone:     loc.Phone(g.rand),
		OwnerAddress:   loc.StreetAddress(g.rand),
		OwnerCity:      loc.City(g.rand),
		OwnerState:     loc.State(g.rand),
		OwnerZip:       loc.Postcode(g.rand),
		OwnerCountry:   loc.Country,
	}, nil
}

// GenerateTransaction builds one transaction for account. The locale is
// resolved from the two-letter account_id prefix.
func (g *Generator) GenerateTransaction(account domain.Account) (domain.Transaction, error) {
	loc, err := g.locales.ByAccountID(account.AccountID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("GenerateTransaction: %w", err)
	}

	daysAgo := g.rand.IntRange(0, transactionWindowDays)
	return domain.Transaction{
		AccountID:    account.AccountID,
		Date:         g.now().UTC().AddDate(0, 0, -daysAgo),
		Amount:       round2(g.rand.Float64Range(10, 5000)),
		Currency:     domain.CurrencyEUR,
		Description:  loc.Text(g.rand, maxDescriptionChars),
		Type:         g.rand.RandomString(domain.TransactionTypes),
		IsFraud:      chance(g.rand, 0.02),
		IsSuspicious: chance(g.rand, 0.05),
	}, nil
}

// Generate builds the full dataset: for every supported country,
// customersPerCountry accounts with transactionsPerCustomer transactions each.
func (g *Generator) Generate() (*Dataset, error) {
	countries := g.locales.Countries()
	ds := &Dataset{
		Accounts:     make([]domain.Account, 0, len(countries)*g.customersPerCountry),
		Transactions: make([]domain.Transaction, 0, len(countries)*g.customersPerCountry*g.transactionsPerCustomer),
	}

	for _, country := range countries {
		for i := 1; i <= g.customersPerCountry; i++ {
			account, err := g.GenerateCustomer(country, i)
			if err != nil {
				return nil, err
			}
			ds.Accounts = append(ds.Accounts, account)

			for j := 0; j < g.transactionsPerCustomer; j++ {
				tx, err := g.GenerateTransaction(account)
				if err != nil {
					return nil, err
				}
				ds.Transactions = append(ds.Transactions, tx)
			}
		}
	}

	return ds, nil
}

// Run generates a dataset and replaces the customers and transactions tables
// with it. Nothing is retried; if persistence fails the dataset is lost.
func (g *Generator) Run(ctx context.Context, w Writer) (*Dataset, error) {
	log := logger.FromContext(ctx)

	ds, err := g.Generate()
	if err != nil {
		return nil, fmt.Errorf("Run: generating dataset: %w", err)
	}
	log.Info().
		Int("accounts", len(ds.Accounts)).
		Int("transactions", len(ds.Transactions)).
		Msg("Generated dataset")

	if err := w.ReplaceAccounts(ctx, ds.Accounts); err != nil {
		return nil, fmt.Errorf("Run: replacing %s: %w", domain.AccountsTable, err)
	}
	log.Debug().Str("table", domain.AccountsTable).Msg("Table replaced")

	if err := w.ReplaceTransactions(ctx, ds.Transactions); err != nil {
		return nil, fmt.Errorf("Run: replacing %s: %w", domain.TransactionsTable, err)
	}
	log.Debug().Str("table", domain.TransactionsTable).Msg("Table replaced")

	return ds, nil
}
