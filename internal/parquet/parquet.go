// Package parquet provides data structures and functions for exporting dashboard
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/hotelpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// OverrideRecord represents one saved label position.
// This struct maps to one entry of the annotation_positions store value.
type OverrideRecord struct {
	// ChartID is the chart the override belongs to
	ChartID string `parquet:"chart_id,snappy"`

	// AnnotationIndex is the positional index of the label
	AnnotationIndex int32 `parquet:"annotation_index,snappy"`

	// X is the saved x coordinate in chart-data space
	X float64 `parquet:"x,snappy"`

	// Y is the saved y coordinate in chart-data space
	Y float64 `parquet:"y,snappy"`

	// ExportedAt is when the export ran (stored as TIMESTAMP with nanosecond precision)
	ExportedAt time.Time `parquet:"exported_at,snappy"`
}

// TotalsRecord represents the total of one series within a section.
type TotalsRecord struct {
	// SectionID is the dashboard section the series belongs to
	SectionID string `parquet:"section_id,snappy"`

	// Series is the channel name
	Series string `parquet:"series,snappy"`

	// Total is the sum of the series over every period
	Total float64 `parquet:"total,snappy"`

	// Rank is the 1-based position in descending total order
	Rank int32 `parquet:"rank,snappy"`
}

// WriteOverridesParquet writes a slice of OverrideRecord structs to a Parquet file.
func WriteOverridesParquet(data []OverrideRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTotalsParquet writes a slice of TotalsRecord structs to a Parquet file.
func WriteTotalsParquet(data []TotalsRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

func writeParquet[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertOverrideRecords converts store overrides to OverrideRecord for Parquet export.
func ConvertOverrideRecords(rows []schema.ChartOverride, exportedAt time.Time) []OverrideRecord {
	result := make([]OverrideRecord, len(rows))
	for i, row := range rows {
		result[i] = OverrideRecord{
			ChartID:         row.ChartID,
			AnnotationIndex: int32(row.Index),
			X:               row.X,
			Y:               row.Y,
			ExportedAt:      exportedAt,
		}
	}
	return result
}

// ConvertTotalsRecords converts ranked series totals to TotalsRecord for Parquet export.
func ConvertTotalsRecords(sectionID string, ranked []schema.RankedSeries) []TotalsRecord {
	result := make([]TotalsRecord, len(ranked))
	for i, r := range ranked {
		result[i] = TotalsRecord{
			SectionID: sectionID,
			Series:    r.Name,
			Total:     r.Total,
			Rank:      int32(r.Rank),
		}
	}
	return result
}
