package domain

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// IsValid reports whether the format is one scriptscan can render
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	}
	return false
}

// IsMachineReadable reports whether the format must not be mixed with progress output
func (f OutputFormat) IsMachineReadable() bool {
	return f == OutputFormatJSON || f == OutputFormatYAML
}
