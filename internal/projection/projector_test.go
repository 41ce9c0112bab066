package projection

import (
	"errors"
	"math/big"
	"testing"

	"github.com/Kargones/hanadb-exporter/internal/adapter/sqldb"
	"github.com/Kargones/hanadb-exporter/internal/metricsconfig"
	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryMetric() metricsconfig.Metric {
	return metricsconfig.Metric{
		Name:    "hanadb_memory_service_used",
		Labels:  []string{"HOST", "SERVICE"},
		Value:   "USED_MB",
		Unit:    "mb",
		Type:    metricsconfig.TypeGauge,
		Enabled: true,
	}
}

// TestProject_OrderMatchesRows проверяет порядок Sample и значений label-ов.
func TestProject_OrderMatchesRows(t *testing.T) {
	result := &sqldb.RawResult{
		Columns: []string{"USED_MB", "SERVICE", "HOST"},
		Rows: [][]any{
			{int64(100), "indexserver", "hana01"},
			{"250.5", []byte("nameserver"), "hana02"},
			{float32(3), "xsengine", "hana03"},
		},
	}

	samples, err := New(nil).Project(memoryMetric(), result)
	require.NoError(t, err)

	assert.Equal(t, []Sample{
		{LabelValues: []string{"hana01", "indexserver"}, Value: 100},
		{LabelValues: []string{"hana02", "nameserver"}, Value: 250.5},
		{LabelValues: []string{"hana03", "xsengine"}, Value: 3},
	}, samples)
}

func TestProject_EmptyValueAlwaysFails(t *testing.T) {
	metric := memoryMetric()
	metric.Value = ""

	for name, result := range map[string]*sqldb.RawResult{
		"нет строк":   {Columns: []string{"HOST", "SERVICE"}},
		"есть строки": {Columns: []string{"HOST", "SERVICE"}, Rows: [][]any{{"a", "b"}}},
		"nil":         nil,
	} {
		t.Run(name, func(t *testing.T) {
			samples, err := New(nil).Project(metric, result)
			assert.Nil(t, samples)

			var valueErr *MissingValueColumnError
			require.ErrorAs(t, err, &valueErr)
			assert.Equal(t, metric.Name, valueErr.Metric)
			assert.Empty(t, valueErr.Column)
		})
	}
}

func TestProject_MissingLabelColumn(t *testing.T) {
	result := &sqldb.RawResult{
		Columns: []string{"HOST", "USED_MB"},
		Rows:    [][]any{{"hana01", 1}},
	}

	_, err := New(nil).Project(memoryMetric(), result)

	var labelErr *MissingLabelColumnError
	require.ErrorAs(t, err, &labelErr)
	assert.Equal(t, "SERVICE", labelErr.Column)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestProject_MissingLabelColumnWithoutRows(t *testing.T) {
	result := &sqldb.RawResult{Columns: []string{"HOST", "USED_MB"}}

	_, err := New(nil).Project(memoryMetric(), result)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestProject_MissingValueColumn(t *testing.T) {
	result := &sqldb.RawResult{
		Columns: []string{"HOST", "SERVICE"},
		Rows:    [][]any{{"hana01", "indexserver"}},
	}

	_, err := New(nil).Project(memoryMetric(), result)

	var valueErr *MissingValueColumnError
	require.ErrorAs(t, err, &valueErr)
	assert.Equal(t, "USED_MB", valueErr.Column)
	assert.Contains(t, err.Error(), `"USED_MB"`)
}

func TestProject_NonNumericValue(t *testing.T) {
	result := &sqldb.RawResult{
		Columns: []string{"HOST", "SERVICE", "USED_MB"},
		Rows: [][]any{
			{"hana01", "indexserver", 1},
			{"hana02", "indexserver", "n/a"},
		},
	}

	_, err := New(nil).Project(memoryMetric(), result)

	var numErr *NonNumericValueError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, 1, numErr.Row)
	assert.Equal(t, "n/a", numErr.Value)
	assert.ErrorIs(t, err, ErrNonNumericValue)
}

func TestProject_ShortRow(t *testing.T) {
	tests := []struct {
		name   string
		row    []any
		column string
	}{
		{name: "нет ячейки value", row: []any{"hana01"}, column: "USED_MB"},
		{name: "нет ячейки label", row: []any{"hana01", 5}, column: "SERVICE"},
		{name: "пустая строка", row: []any{}, column: "USED_MB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &sqldb.RawResult{
				Columns: []string{"HOST", "USED_MB", "SERVICE"},
				Rows: [][]any{
					{"hana01", 1, "indexserver"},
					tt.row,
				},
			}

			var samples []Sample
			var err error
			require.NotPanics(t, func() {
				samples, err = New(nil).Project(memoryMetric(), result)
			})
			assert.Nil(t, samples)
			require.ErrorIs(t, err, ErrShortRow)

			var rowErr *ShortRowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, 1, rowErr.Row)
			assert.Equal(t, len(tt.row), rowErr.Cells)
			assert.Equal(t, tt.column, rowErr.Column)
		})
	}
}

func TestProject_NullValueSkipped(t *testing.T) {
	result := &sqldb.RawResult{
		Columns: []string{"HOST", "SERVICE", "USED_MB"},
		Rows: [][]any{
			{"hana01", "indexserver", nil},
			{"hana02", nil, int32(7)},
		},
	}

	samples, err := New(logging.NewNopLogger()).Project(memoryMetric(), result)
	require.NoError(t, err)
	assert.Equal(t, []Sample{{LabelValues: []string{"hana02", ""}, Value: 7}}, samples)
}

func TestProject_NoLabels(t *testing.T) {
	metric := metricsconfig.Metric{Name: "hanadb_uptime", Value: "_UPTIME", Type: metricsconfig.TypeGauge}
	result := &sqldb.RawResult{
		Columns: []string{"_UPTIME"},
		Rows:    [][]any{{uint64(3600)}},
	}

	samples, err := New(nil).Project(metric, result)
	require.NoError(t, err)
	assert.Equal(t, []Sample{{LabelValues: []string{}, Value: 3600}}, samples)
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{int(1), 1, true},
		{int8(-2), -2, true},
		{int16(3), 3, true},
		{uint8(4), 4, true},
		{uint32(5), 5, true},
		{true, 1, true},
		{false, 0, true},
		{" 12.5 ", 12.5, true},
		{[]byte("1e3"), 1000, true},
		{big.NewRat(3, 2), 1.5, true},
		{big.NewInt(42), 42, true},
		{big.NewFloat(0.25), 0.25, true},
		{"abc", 0, false},
		{struct{}{}, 0, false},
	}

	for _, tt := range tests {
		got, ok := toFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestLabelValue(t *testing.T) {
	assert.Equal(t, "", labelValue(nil))
	assert.Equal(t, "30015", labelValue(int64(30015)))
	assert.Equal(t, "1.5", labelValue(1.5))
	assert.Equal(t, "true", labelValue(true))
	assert.Equal(t, "0.75", labelValue(big.NewRat(3, 4)))
	assert.Equal(t, "x", labelValue([]byte("x")))
}
