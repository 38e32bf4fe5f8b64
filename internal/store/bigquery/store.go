package bigquery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/finance-etl/internal/domain"
	"github.com/dvloznov/finance-etl/internal/logger"
)

// Store keeps the customers and transactions tables in a BigQuery dataset.
// Replacing a table is a single WRITE_TRUNCATE load job.
type Store struct {
	client    *bigquery.Client
	projectID string
	datasetID string
}

// New creates a Store with its own client. Close it when done.
func New(ctx context.Context, projectID, datasetID string) (*Store, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.New: creating client: %w", err)
	}
	return &Store{client: client, projectID: projectID, datasetID: datasetID}, nil
}

// Close closes the BigQuery client connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// ReplaceAccounts implements store.Writer.
func (s *Store) ReplaceAccounts(ctx context.Context, accounts []domain.Account) error {
	rows := make([]AccountRow, len(accounts))
	for i, a := range accounts {
		rows[i] = accountRowFrom(a)
	}
	if err := load(ctx, s, domain.AccountsTable, rows); err != nil {
		return fmt.Errorf("ReplaceAccounts: %w", err)
	}
	return nil
}

// ReplaceTransactions implements store.Writer.
func (s *Store) ReplaceTransactions(ctx context.Context, txs []domain.Transaction) error {
	rows := make([]TransactionRow, len(txs))
	for i, t := range txs {
		rows[i] = transactionRowFrom(t)
	}
	if err := load(ctx, s, domain.TransactionsTable, rows); err != nil {
		return fmt.Errorf("ReplaceTransactions: %w", err)
	}
	return nil
}

// ReadAccounts implements store.Reader.
func (s *Store) ReadAccounts(ctx context.Context) ([]domain.Account, error) {
	it, err := s.client.Query(selectSQL(s.projectID, s.datasetID, domain.AccountsTable, domain.AccountSchema)).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReadAccounts: query read: %w", err)
	}

	var accounts []domain.Account
	for {
		var r AccountRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadAccounts: iter next: %w", err)
		}
		accounts = append(accounts, r.toDomain())
	}
	return accounts, nil
}

// ReadTransactions implements store.Reader.
func (s *Store) ReadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	it, err := s.client.Query(selectSQL(s.projectID, s.datasetID, domain.TransactionsTable, domain.TransactionSchema)).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReadTransactions: query read: %w", err)
	}

	var txs []domain.Transaction
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadTransactions: iter next: %w", err)
		}
		txs = append(txs, r.toDomain())
	}
	return txs, nil
}

// load replaces table with rows, creating the dataset and table if needed.
// The table schema is inferred from the row type.
func load[T any](ctx context.Context, s *Store, table string, rows []T) error {
	log := logger.FromContext(ctx)

	var zero T
	schema, err := bigquery.InferSchema(zero)
	if err != nil {
		return fmt.Errorf("inferring schema for %s: %w", table, err)
	}

	payload, err := encodeJSONLines(rows)
	if err != nil {
		return fmt.Errorf("encoding %s rows: %w", table, err)
	}

	if err := s.ensureDataset(ctx); err != nil {
		return err
	}

	src := bigquery.NewReaderSource(bytes.NewReader(payload))
	src.SourceFormat = bigquery.JSON
	src.Schema = schema

	loader := s.client.DatasetInProject(s.projectID, s.datasetID).Table(table).LoaderFrom(src)
	loader.WriteDisposition = bigquery.WriteTruncate
	loader.CreateDisposition = bigquery.CreateIfNeeded

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("starting load job for %s: %w", table, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("wait for load job %s: %w", job.ID(), err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("load job %s failed: %w", job.ID(), err)
	}

	log.Debug().
		Str("table", table).
		Str("job_id", job.ID()).
		Int("bytes", len(payload)).
		Msg("Load job completed")
	return nil
}

func (s *Store) ensureDataset(ctx context.Context) error {
	ds := s.client.DatasetInProject(s.projectID, s.datasetID)
	err := ds.Create(ctx, &bigquery.DatasetMetadata{})
	var apiErr *googleapi.Error
	if err != nil && !(errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict) {
		return fmt.Errorf("creating dataset %s: %w", s.datasetID, err)
	}
	return nil
}

// encodeJSONLines encodes rows as newline-delimited JSON.
func encodeJSONLines[T any](rows []T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func selectSQL(projectID, datasetID, table string, cols []domain.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = "`" + c.Name + "`"
	}
	return fmt.Sprintf("SELECT %s FROM `%s.%s.%s`",
		strings.Join(names, ", "), projectID, datasetID, table)
}
