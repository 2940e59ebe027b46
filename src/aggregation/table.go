package aggregation

import (
	"cmp"
	"fmt"
	"slices"

	"widget-backend/src/helpers"
	"widget-backend/src/logger"
	"widget-backend/src/models"
)

// -----------------------------------------------------------------------------
// Per-item result
// -----------------------------------------------------------------------------

// MItemResult is the outcome of processing one identifier: a row, or a skip
// marker carrying the reason.
type MItemResult struct {
	ID  string
	Row models.MRow
	Err error
}

func Success(id string, row models.MRow) MItemResult {
	return MItemResult{ID: id, Row: row}
}

func Skip(id string, err error) MItemResult {
	if err == nil {
		err = fmt.Errorf("skipped")
	}
	return MItemResult{ID: id, Err: err}
}

func (r MItemResult) IsSkipped() bool {
	return r.Err != nil
}

// -----------------------------------------------------------------------------
// Table
// -----------------------------------------------------------------------------

// BuildTable drops skipped items, logging each one, and sorts the remaining
// rows descending by sortColumn. Equal values keep their input order; rows
// whose value is not numeric (or not available) go last.
//
// When every item was skipped the batch itself failed and an error is
// returned instead of an empty table.
func BuildTable(results []MItemResult, sortColumn string, log *logger.Logger) ([]models.MRow, error) {
	rows := make([]models.MRow, 0, len(results))
	var firstErr error

	for _, r := range results {
		if r.IsSkipped() {
			if firstErr == nil {
				firstErr = r.Err
			}
			if log != nil {
				log.Warning("Error processing %s: %v", r.ID, r.Err)
			}
			continue
		}
		rows = append(rows, r.Row)
	}

	if len(results) > 0 && len(rows) == 0 {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("all %d identifiers failed", len(results)), firstErr)
	}

	SortRows(rows, sortColumn)
	return rows, nil
}

// -----------------------------------------------------------------------------

// SortRows stable-sorts rows descending by column in place.
func SortRows(rows []models.MRow, column string) {
	slices.SortStableFunc(rows, func(a, b models.MRow) int {
		av, aok := SortKey(a, column)
		bv, bok := SortKey(b, column)
		switch {
		case aok && bok:
			return cmp.Compare(bv, av)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
}

// -----------------------------------------------------------------------------

// SortKey extracts a numeric value from row[column].
func SortKey(row models.MRow, column string) (float64, bool) {
	v, ok := row.Get(column)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case models.MReturn:
		return n.Value, n.Valid
	default:
		return 0, false
	}
}
