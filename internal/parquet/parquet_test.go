package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/hotelpulse/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(OverrideRecord))
	require.NotNil(t, s)

	for _, colName := range []string{"chart_id", "annotation_index", "x", "y", "exported_at"} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestTotalsRecordStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(TotalsRecord))
	require.NotNil(t, s)

	for _, colName := range []string{"section_id", "series", "total", "rank"} {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestWriteOverridesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "overrides.parquet")
	exportedAt := time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)

	records := ConvertOverrideRecords([]schema.ChartOverride{
		{ChartID: "chart-general", Index: 0, X: 0.4, Y: 182000},
		{ChartID: "chart-general", Index: 7, X: 2, Y: -15000.5},
		{ChartID: "chart-otas", Index: 3, X: 1.1, Y: 90000},
	}, exportedAt)
	require.NoError(t, WriteOverridesParquet(records, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	got := readAll[OverrideRecord](t, outputPath)
	require.Len(t, got, 3)
	for i := range records {
		assert.Equal(t, records[i].ChartID, got[i].ChartID)
		assert.Equal(t, records[i].AnnotationIndex, got[i].AnnotationIndex)
		assert.InDelta(t, records[i].X, got[i].X, 1e-9)
		assert.InDelta(t, records[i].Y, got[i].Y, 1e-9)
		assert.WithinDuration(t, exportedAt, got[i].ExportedAt, time.Nanosecond)
	}
}

func TestWriteTotalsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "totals.parquet")

	ranked := schema.RankSeries(schema.Totals{
		PerPeriod: []float64{15, 20, 35},
		PerSeries: []schema.SeriesTotal{{Name: "A", Total: 60}, {Name: "B", Total: 10}},
		Ranking:   []string{"A", "B"},
	})
	records := ConvertTotalsRecords("general", ranked)
	require.NoError(t, WriteTotalsParquet(records, outputPath))

	got := readAll[TotalsRecord](t, outputPath)
	assert.Equal(t, []TotalsRecord{
		{SectionID: "general", Series: "A", Total: 60, Rank: 1},
		{SectionID: "general", Series: "B", Total: 10, Rank: 2},
	}, got)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteOverridesParquet([]OverrideRecord{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteTotalsParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestConvertOverrideRecordsEmpty(t *testing.T) {
	assert.Empty(t, ConvertOverrideRecords(nil, time.Now()))
	assert.Empty(t, ConvertTotalsRecords("x", nil))
}
