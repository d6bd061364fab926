// Package transactioncsv reads and writes the fixed-column transaction CSV
// format (Date, Description, Amount, Category) at the engine boundary.
package transactioncsv

import (
	"fmt"
	"os"
	"path/filepath"

	"spendscope/internal/dateutils"
	"spendscope/internal/logging"
	"spendscope/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Row maps one CSV record.
type Row struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
}

// Read loads transactions from a CSV file. Rows with an unparseable date or
// amount, or an empty description, are skipped with a warning rather than
// failing the whole file.
func Read(filePath string, logger logging.Logger) ([]models.Transaction, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField(logging.FieldFile, filePath).Info("Reading transactions CSV")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []Row
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.toTransaction()
		if err != nil {
			logger.WithError(err).WithField("row", i+1).Warn("Skipping malformed CSV row")
			continue
		}
		txs = append(txs, tx)
	}

	logger.WithField(logging.FieldCount, len(txs)).Info("Read transactions from CSV")
	return txs, nil
}

func (r Row) toTransaction() (models.Transaction, error) {
	if r.Description == "" {
		return models.Transaction{}, fmt.Errorf("empty description")
	}
	date, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return models.Transaction{}, err
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}
	return models.Transaction{
		Date:        date,
		Description: r.Description,
		Amount:      amount,
		Category:    r.Category,
	}, nil
}

// Write saves categorized transactions as CSV, creating parent directories
// as needed. Amounts are written with two decimal places.
func Write(txs []models.CategorizedTransaction, filePath string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	).Info("Writing transactions CSV")

	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]Row, len(txs))
	for i, tx := range txs {
		rows[i] = Row{
			Date:        dateutils.ToISODate(tx.Date),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Category:    tx.Category,
		}
	}
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
