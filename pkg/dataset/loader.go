package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/width"

	"github.com/driveline-labs/survey-engine/pkg/apperrors"
	"github.com/driveline-labs/survey-engine/pkg/models"
)

// Load reads the survey CSV and maps its header onto the declared columns.
// A missing file falls back to the built-in demo dataset so the service
// stays usable without data mounted. Numeric cells that fail to parse keep
// their raw text with a NaN numeric slot; they never become silently wrong
// numbers.
func Load(csvPath string, columns []models.ColumnDescriptor, logger *zap.Logger) (*models.Dataset, error) {
	if csvPath == "" {
		logger.Info("No dataset path configured, using demo data")
		return Demo(columns), nil
	}

	f, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Dataset file not found, using demo data", zap.String("path", csvPath))
			return Demo(columns), nil
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", csvPath, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: %s has no header row", apperrors.ErrMalformedDataset, csvPath)
	}

	header := records[0]
	// Map each declared column to its position in the file.
	fileIdx := make([]int, 0, len(columns))
	kept := make([]models.ColumnDescriptor, 0, len(columns))
	for _, col := range columns {
		pos := -1
		for i, h := range header {
			if foldHeader(h) == foldHeader(col.Name) {
				pos = i
				break
			}
		}
		if pos < 0 {
			logger.Warn("Declared column missing from CSV header", zap.String("column", col.Name))
			continue
		}
		fileIdx = append(fileIdx, pos)
		kept = append(kept, col)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: no declared column found in %s header", apperrors.ErrMalformedDataset, csvPath)
	}

	ds := &models.Dataset{Columns: kept}
	for _, rec := range records[1:] {
		row := make([]models.Cell, len(kept))
		for i, pos := range fileIdx {
			raw := ""
			if pos < len(rec) {
				raw = strings.TrimSpace(rec[pos])
			}
			row[i] = makeCell(kept[i], raw)
		}
		ds.Rows = append(ds.Rows, row)
	}

	logger.Info("Dataset loaded",
		zap.String("path", csvPath),
		zap.Int("columns", len(ds.Columns)),
		zap.Int("rows", len(ds.Rows)))
	return ds, nil
}

// makeCell parses the numeric slot for numeric columns; everything else
// keeps raw text only.
func makeCell(col models.ColumnDescriptor, raw string) models.Cell {
	if col.Kind == models.KindNumeric {
		if v, err := strconv.ParseFloat(strings.TrimSpace(width.Fold.String(raw)), 64); err == nil {
			return models.NewNumCell(raw, v)
		}
	}
	return models.NewCell(raw)
}

func foldHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(s)))
}
