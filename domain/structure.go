package domain

import (
	"context"
	"io"
)

// DeclarationKind identifies the kind of construct a declaration line opens
type DeclarationKind string

const (
	DeclarationNone          DeclarationKind = ""
	DeclarationFunction      DeclarationKind = "function"
	DeclarationArrowFunction DeclarationKind = "arrow_function"
	DeclarationObject        DeclarationKind = "object"
	DeclarationEventListener DeclarationKind = "event_listener"
)

// Fixed construct labels for declarations that carry no name of their own
const (
	ArrowFunctionConstruct = "arrow_function"
	EventListenerConstruct = "event_listener"
	ObjectConstructPrefix  = "object_"
)

// Declaration is a recognized declaration site
type Declaration struct {
	Name string          `json:"name" yaml:"name"`
	Kind DeclarationKind `json:"kind" yaml:"kind"`
	Line int             `json:"line" yaml:"line"`
}

// BraceFrame is an open brace still waiting for its close,
// tagged with the construct that was current when it was pushed
type BraceFrame struct {
	Line      int    `json:"line" yaml:"line"`
	Construct string `json:"construct" yaml:"construct"`
}

// ConstructLabel returns the construct name, or "none" when the brace was
// opened before any declaration was recognized
func (f BraceFrame) ConstructLabel() string {
	if f.Construct == "" {
		return "none"
	}
	return f.Construct
}

// IssueKind classifies a structural issue
type IssueKind string

const (
	IssueMismatch        IssueKind = "mismatch"
	IssueOrphanClose     IssueKind = "orphan_close"
	IssueNegativeBalance IssueKind = "negative_balance"
	IssueIndentation     IssueKind = "indentation"
	IssueSyntax          IssueKind = "syntax"
)

// Severity of an issue
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is a single structural finding on a line of the script region
type Issue struct {
	Kind     IssueKind `json:"kind" yaml:"kind"`
	Severity Severity  `json:"severity" yaml:"severity"`
	Line     int       `json:"line" yaml:"line"`
	Message  string    `json:"message" yaml:"message"`

	// Set for mismatch issues only
	OpenedLine      int    `json:"opened_line,omitempty" yaml:"opened_line,omitempty"`
	OpenedConstruct string `json:"opened_construct,omitempty" yaml:"opened_construct,omitempty"`
	Construct       string `json:"construct,omitempty" yaml:"construct,omitempty"`
}

// ScanReport is the result of one structure scan over a script region
type ScanReport struct {
	// Balance is the running open-minus-close count when the scan stopped
	Balance int `json:"balance" yaml:"balance"`

	// Literal brace totals over the whole region, skipped lines included
	OpenBraces  int `json:"open_braces" yaml:"open_braces"`
	CloseBraces int `json:"close_braces" yaml:"close_braces"`

	LinesScanned int  `json:"lines_scanned" yaml:"lines_scanned"`
	Terminated   bool `json:"terminated" yaml:"terminated"`

	// Unclosed holds the remaining brace stack, most recent first
	Unclosed     []BraceFrame  `json:"unclosed" yaml:"unclosed"`
	Issues       []Issue       `json:"issues" yaml:"issues"`
	Declarations []Declaration `json:"declarations" yaml:"declarations"`
}

// Balanced reports whether the final brace balance is exactly zero
func (r *ScanReport) Balanced() bool {
	return r.Balance == 0
}

// IssuesOfKind returns the issues of the given kind in discovery order
func (r *ScanReport) IssuesOfKind(kind IssueKind) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			out = append(out, issue)
		}
	}
	return out
}

// RegionInfo locates the scanned script region inside the document
type RegionInfo struct {
	// StartLine is the document line holding the opening script tag
	StartLine int `json:"start_line" yaml:"start_line"`
	EndLine   int `json:"end_line" yaml:"end_line"`
	LineCount int `json:"line_count" yaml:"line_count"`
}

// BracesRequest represents a request for a brace/structure scan
type BracesRequest struct {
	Path        string
	Marker      string
	SyntaxCheck bool

	OutputFormat OutputFormat
	OutputWriter io.Writer
}

// BracesResponse is the complete brace analysis result for one document
type BracesResponse struct {
	Path         string      `json:"path" yaml:"path"`
	Marker       string      `json:"marker" yaml:"marker"`
	Region       RegionInfo  `json:"region" yaml:"region"`
	Report       *ScanReport `json:"report" yaml:"report"`
	SyntaxIssues []Issue     `json:"syntax_issues,omitempty" yaml:"syntax_issues,omitempty"`
	SyntaxCheck  bool        `json:"syntax_check" yaml:"syntax_check"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// ExitCode returns 0 when braces are balanced and 1 otherwise
func (r *BracesResponse) ExitCode() int {
	if r.Report != nil && r.Report.Balanced() {
		return 0
	}
	return 1
}

// BracesService defines the core logic for brace/structure analysis
type BracesService interface {
	Analyze(ctx context.Context, req BracesRequest) (*BracesResponse, error)
}
