package sink

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/dvloznov/finance-etl/internal/domain"
	"github.com/dvloznov/finance-etl/internal/logger"
)

const (
	// PartitionColumn is the Hive partition column. It lives in the
	// directory name, not in the data files.
	PartitionColumn = "transaction_date"

	// SuccessMarker is written last, after every partition file.
	SuccessMarker = "_SUCCESS"

	// partitionValueFormat renders partition values the way Spark renders a
	// timestamp partition: UTC, microseconds, trailing zeros trimmed.
	partitionValueFormat = "2006-01-02 15:04:05.999999"
)

// Row is the Parquet layout of domain.EnrichedTransaction minus the
// partition column.
type Row struct {
	AccountID              string    `parquet:"account_id"`
	TransactionAmount      float64   `parquet:"transaction_amount"`
	TransactionCurrency    string    `parquet:"transaction_currency"`
	TransactionDescription string    `parquet:"transaction_description"`
	TransactionType        string    `parquet:"transaction_type"`
	IsFraud                bool      `parquet:"is_fraud"`
	IsSuspicious           bool      `parquet:"is_suspicious"`
	AccountType            string    `parquet:"account_type"`
	AccountStatus          string    `parquet:"account_status"`
	AccountBalance         float64   `parquet:"account_balance"`
	AccountOwnerCountry    string    `parquet:"account_owner_country"`
	Amount                 float64   `parquet:"amount"`
	RiskScore              float64   `parquet:"risk_score"`
	ProcessedAt            time.Time `parquet:"processed_at,timestamp(microsecond)"`
}

// RowFrom drops the partition column from t.
func RowFrom(t domain.EnrichedTransaction) Row {
	return Row{
		AccountID:              t.AccountID,
		TransactionAmount:      t.TransactionAmount,
		TransactionCurrency:    t.TransactionCurrency,
		TransactionDescription: t.TransactionDescription,
		TransactionType:        t.TransactionType,
		IsFraud:                t.IsFraud,
		IsSuspicious:           t.IsSuspicious,
		AccountType:            t.AccountType,
		AccountStatus:          t.AccountStatus,
		AccountBalance:         t.AccountBalance,
		AccountOwnerCountry:    t.AccountOwnerCountry,
		Amount:                 t.Amount,
		RiskScore:              t.RiskScore,
		ProcessedAt:            t.ProcessedAt.UTC(),
	}
}

// Partition is the rows sharing one transaction_date value.
type Partition struct {
	// Date is the transaction_date of every row, at microsecond precision.
	Date time.Time
	// Value is Date rendered as a partition value, e.g.
	// "2024-02-13 09:15:00.25".
	Value string
	Rows  []Row
}

// Dir is the Hive directory name of the partition, e.g.
// "transaction_date=2024-02-13 09%3A15%3A00".
func (p Partition) Dir() string {
	return PartitionColumn + "=" + EscapePathName(p.Value)
}

// PartitionValue renders t as a partition value in UTC.
func PartitionValue(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(partitionValueFormat)
}

// EscapePathName percent-encodes the characters Hive and Spark escape in
// partition directory names.
func EscapePathName(s string) string {
	var b strings.Builder
	for _, c := range []byte(s) {
		if needsEscape(c) {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func needsEscape(c byte) bool {
	if c < 0x20 || c == 0x7F {
		return true
	}
	switch c {
	case '"', '#', '%', '\'', '*', '/', ':', '=', '?', '\\', '{', '[', ']', '^':
		return true
	}
	return false
}

// SplitPartitions groups rows by transaction_date, one partition per
// distinct value. Partitions are sorted by date; rows keep their input order
// within a partition.
func SplitPartitions(rows []domain.EnrichedTransaction) []Partition {
	index := make(map[string]int)
	var parts []Partition
	for _, r := range rows {
		v := PartitionValue(r.TransactionDate)
		i, ok := index[v]
		if !ok {
			i = len(parts)
			index[v] = i
			parts = append(parts, Partition{
				Date:  r.TransactionDate.UTC().Truncate(time.Microsecond),
				Value: v,
			})
		}
		parts[i].Rows = append(parts[i].Rows, RowFrom(r))
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Date.Before(parts[j].Date) })
	return parts
}

// Writer overwrites one location with Hive-partitioned, snappy-compressed
// Parquet. A write is Reset, then WritePartition once per partition (safe to
// call concurrently), then Commit. There is no atomicity across partitions.
type Writer struct {
	store    ObjectStore
	location Location
	runID    string
}

// NewWriter writes to store, which must hold location. Part files are named
// after runID; an empty runID gets a fresh UUID.
func NewWriter(store ObjectStore, location Location, runID string) *Writer {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Writer{store: store, location: location, runID: runID}
}

// RunID names the part files of this write.
func (w *Writer) RunID() string { return w.runID }

// Location is where w writes.
func (w *Writer) Location() Location { return w.location }

// Reset deletes everything previously written to the location.
func (w *Writer) Reset(ctx context.Context) error {
	n, err := w.store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("Reset %s: %w", w.location, err)
	}
	log := logger.FromContext(ctx)
	log.Debug().
		Str("location", w.location.String()).
		Int("removed", n).
		Msg("Cleared output location")
	return nil
}

// WritePartition writes p as a single part file and returns its key.
func (w *Writer) WritePartition(ctx context.Context, p Partition) (string, error) {
	key := p.Dir() + "/part-00000-" + w.runID + ".snappy.parquet"

	out, err := w.store.Create(ctx, key)
	if err != nil {
		return "", fmt.Errorf("WritePartition %s: %w", p.Dir(), err)
	}

	pw := parquet.NewGenericWriter[Row](out, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(p.Rows); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("WritePartition %s: writing rows: %w", p.Dir(), err)
	}
	if err := pw.Close(); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("WritePartition %s: closing parquet writer: %w", p.Dir(), err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("WritePartition %s: %w", p.Dir(), err)
	}
	return key, nil
}

// Commit writes the success marker.
func (w *Writer) Commit(ctx context.Context) error {
	out, err := w.store.Create(ctx, SuccessMarker)
	if err != nil {
		return fmt.Errorf("Commit %s: %w", w.location, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("Commit %s: %w", w.location, err)
	}
	return nil
}
