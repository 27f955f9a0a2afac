package domain

// CheckResult is the combined verdict of the check command
type CheckResult struct {
	Passed      bool             `json:"passed" yaml:"passed"`
	ExitCode    int              `json:"exit_code" yaml:"exit_code"`
	Document    string           `json:"document" yaml:"document"`
	Violations  []CheckViolation `json:"violations" yaml:"violations"`
	Summary     CheckSummary     `json:"summary" yaml:"summary"`
	Duration    int64            `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string           `json:"generated_at" yaml:"generated_at"`
	Version     string           `json:"version" yaml:"version"`
}

// CheckViolation represents a single failed check
type CheckViolation struct {
	Category string `json:"category" yaml:"category"`                     // braces, elements
	Rule     string `json:"rule" yaml:"rule"`                             // balanced-braces, element-present, etc.
	Severity string `json:"severity" yaml:"severity"`                     // error, warning
	Message  string `json:"message" yaml:"message"`                       // Human-readable description
	Location string `json:"location,omitempty" yaml:"location,omitempty"` // file:line if applicable
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	BracesChecked       bool `json:"braces_checked" yaml:"braces_checked"`
	ElementsChecked     bool `json:"elements_checked" yaml:"elements_checked"`
	TotalViolations     int  `json:"total_violations" yaml:"total_violations"`
	Balance             int  `json:"balance" yaml:"balance"`
	UnclosedBlocks      int  `json:"unclosed_blocks" yaml:"unclosed_blocks"`
	StructuralIssues    int  `json:"structural_issues" yaml:"structural_issues"`
	FailedElementChecks int  `json:"failed_element_checks" yaml:"failed_element_checks"`
}
