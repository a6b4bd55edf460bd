package dataset

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"purchase-intent-service/internal/core/domain"
	"purchase-intent-service/internal/core/ports/output"
)

// Identifier column stripped from the training set before display.
const rowIDColumn = "row_id"

// CSVReader serves the processed training set from the conventional
// data/processed layout, for exploratory display only.
type CSVReader struct {
	dataDir string
}

func NewCSVReader(dataDir string) *CSVReader {
	return &CSVReader{dataDir: dataDir}
}

var _ ports.TrainingDataReader = (*CSVReader)(nil)

func (r *CSVReader) path() string {
	return filepath.Join(r.dataDir, "processed", "train.csv")
}

// Read loads the full training set, dropping the row_id identifier column
// when present.
func (r *CSVReader) Read(ctx context.Context) (*domain.Frame, error) {
	file, err := os.Open(r.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrTrainingDataNotFound
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrTrainingDataNotFound
	}

	cols := records[0]
	rows := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(cols))
		for j := range cols {
			if j < len(rec) {
				row[j] = parseCell(rec[j])
			}
		}
		rows = append(rows, row)
	}

	frame, err := domain.NewFrame(cols, rows)
	if err != nil {
		return nil, err
	}
	return frame.DropColumn(rowIDColumn), nil
}

// parseCell keeps CSV cells usable as features: numbers and booleans decode,
// everything else stays a string.
func parseCell(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "True", "TRUE", "true":
		return true
	case "False", "FALSE", "false":
		return false
	}
	return s
}
