package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "scriptscan"

	// ConfigFileName is the config file written by init and searched first
	ConfigFileName = "scriptscan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "SCRIPTSCAN"
)

// Analysis names, used as task names and violation categories
const (
	AnalysisBraces   = "braces"
	AnalysisElements = "elements"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Exit codes shared by the commands
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitInternal = 2
)
