package schema

// Custom string types for type safety.
type (
	// CheckID identifies one of the fixed validation checks.
	CheckID string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All validation checks supported.
const (
	GeometryCheck CheckID = "geometry"
	ShadersCheck  CheckID = "shaders"
	LayersCheck   CheckID = "layers"
	VariantsCheck CheckID = "variants"
)

// AllCheckIDs lists every check in its canonical registration order.
var AllCheckIDs = []CheckID{GeometryCheck, ShadersCheck, LayersCheck, VariantsCheck}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)
