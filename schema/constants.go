package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the position store.
	DatabaseBackend string

	// LabelRole represents the semantic role of an annotation label.
	LabelRole string

	// SectionKind represents how a dashboard section is charted.
	SectionKind string

	// ImageFormat represents the file format of rendered charts.
	ImageFormat string
)

// All output modes supported.
const (
	CSVOut      OutputMode = "csv"
	TextOut     OutputMode = "text" // default
	JSONOut     OutputMode = "json"
	ParquetOut  OutputMode = "parquet"
	MarkdownOut OutputMode = "markdown"
	HTMLOut     OutputMode = "html"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All label roles supported.
const (
	TotalRole        LabelRole = "total"
	VariationRole    LabelRole = "variation"
	GrossRole        LabelRole = "gross"
	NetRole          LabelRole = "net"
	CancellationRole LabelRole = "cancellation"
)

// All section kinds supported.
const (
	StackedKind SectionKind = "stacked" // bars stacked by series
	TripletKind SectionKind = "triplet" // gross / net / cancellation lines
)

// All image formats supported.
const (
	SVGImage ImageFormat = "svg" // default
	PNGImage ImageFormat = "png"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:      {},
	TextOut:     {},
	JSONOut:     {},
	ParquetOut:  {},
	MarkdownOut: {},
	HTMLOut:     {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidImageFormats lists all valid image formats.
var ValidImageFormats = map[ImageFormat]struct{}{
	SVGImage: {},
	PNGImage: {},
}

// AllLabelRoles returns every label role in build order.
var AllLabelRoles = []LabelRole{TotalRole, VariationRole, GrossRole, NetRole, CancellationRole}
