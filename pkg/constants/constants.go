// Package constants provides shared constants used throughout progmatch.
// This includes the decision policy defaults, file permissions and the
// default input column names.
package constants

// Decision policy defaults
const (
	// AutoAcceptThreshold is the composite score at or above which the top
	// candidate is accepted without asking the operator
	AutoAcceptThreshold = 97.0

	// DisplayLimit is the number of ranked candidates shown to the operator
	DisplayLimit = 10

	// TerminationToken is the operator reply that ends the session early
	TerminationToken = "done"

	// UnableToMatch is the composite score label for unresolved results
	UnableToMatch = "unable to match"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Input table defaults
const (
	// DefaultNameColumn is the column holding program names
	DefaultNameColumn = "program"

	// DefaultCategoryColumn is the column holding the specialty
	DefaultCategoryColumn = "specialty"

	// DefaultExportFormat is the default export file format
	DefaultExportFormat = "csv"

	// DefaultExportDir is the default export directory
	DefaultExportDir = "."
)
