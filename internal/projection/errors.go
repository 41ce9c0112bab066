package projection

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn — признак отсутствия колонки в результате запроса (errors.Is).
	ErrMissingColumn = errors.New("column not found in query result")

	// ErrNonNumericValue — признак нечислового значения в колонке value (errors.Is).
	ErrNonNumericValue = errors.New("non-numeric metric value")

	// ErrShortRow — строка результата короче списка колонок (errors.Is).
	ErrShortRow = errors.New("query result row is shorter than its columns")
)

// MissingLabelColumnError — колонка, объявленная в labels, отсутствует в результате.
type MissingLabelColumnError struct {
	Metric string
	Column string
}

func (e *MissingLabelColumnError) Error() string {
	return fmt.Sprintf("metric %s: label column %q not found in query result", e.Metric, e.Column)
}

func (e *MissingLabelColumnError) Is(target error) bool { return target == ErrMissingColumn }

// MissingValueColumnError — колонка value не задана или отсутствует в результате.
type MissingValueColumnError struct {
	Metric string
	Column string
}

func (e *MissingValueColumnError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("metric %s: value column is not configured", e.Metric)
	}
	return fmt.Sprintf("metric %s: value column %q not found in query result", e.Metric, e.Column)
}

func (e *MissingValueColumnError) Is(target error) bool { return target == ErrMissingColumn }

// NonNumericValueError — значение колонки value нельзя привести к числу.
type NonNumericValueError struct {
	Metric string
	Column string
	Row    int
	Value  any
}

func (e *NonNumericValueError) Error() string {
	return fmt.Sprintf("metric %s: row %d: column %q value %v (%T) is not numeric",
		e.Metric, e.Row, e.Column, e.Value, e.Value)
}

func (e *NonNumericValueError) Is(target error) bool { return target == ErrNonNumericValue }

// ShortRowError — в строке нет ячейки для колонки, нужной метрике.
type ShortRowError struct {
	Metric string
	Row    int
	Column string
	Cells  int
}

func (e *ShortRowError) Error() string {
	return fmt.Sprintf("metric %s: row %d has %d cells, column %q is missing",
		e.Metric, e.Row, e.Cells, e.Column)
}

func (e *ShortRowError) Is(target error) bool { return target == ErrShortRow }
