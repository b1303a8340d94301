package source

// Format identifies an import file's encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// RawTransaction is one unvalidated transaction record from an import file.
// Amount keeps whatever type the file carried (number or string).
type RawTransaction struct {
	Date        string `json:"date" yaml:"date"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Amount      any    `json:"amount" yaml:"amount"`

	// Line is the 1-based line (CSV, JSONL) or item index (YAML) in the file.
	Line int `json:"-" yaml:"-"`
}

// DiscoveredFile represents an import file found during directory scanning.
type DiscoveredFile struct {
	Path   string
	Name   string // file name without directory
	Format Format
}
