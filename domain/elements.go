package domain

import (
	"context"
	"io"
)

// ElementSection groups element checks the way they are reported
type ElementSection string

const (
	SectionTemplate        ElementSection = "template"
	SectionElements        ElementSection = "elements"
	SectionFunctions       ElementSection = "functions"
	SectionHandlers        ElementSection = "handlers"
	SectionTemplateContent ElementSection = "template_content"
	SectionPotentialIssues ElementSection = "potential_issues"
)

// CheckStatus is the outcome of a single presence check
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusFail CheckStatus = "fail"
	CheckStatusWarn CheckStatus = "warn"
)

// ElementCheck is one presence check and its outcome
type ElementCheck struct {
	Section ElementSection `json:"section" yaml:"section"`
	Name    string         `json:"name" yaml:"name"`
	Status  CheckStatus    `json:"status" yaml:"status"`
	Detail  string         `json:"detail" yaml:"detail"`
}

// ElementsReport collects all presence checks for one document
type ElementsReport struct {
	TemplateFound  bool           `json:"template_found" yaml:"template_found"`
	TemplateLength int            `json:"template_length" yaml:"template_length"`
	Checks         []ElementCheck `json:"checks" yaml:"checks"`
	DebugLogCount  int            `json:"debug_log_count" yaml:"debug_log_count"`
	DebugLogs      []string       `json:"debug_logs,omitempty" yaml:"debug_logs,omitempty"`
}

// ChecksInSection returns the checks of one section in report order
func (r *ElementsReport) ChecksInSection(section ElementSection) []ElementCheck {
	var out []ElementCheck
	for _, c := range r.Checks {
		if c.Section == section {
			out = append(out, c)
		}
	}
	return out
}

// FailedCount returns the number of failed checks
func (r *ElementsReport) FailedCount() int {
	count := 0
	for _, c := range r.Checks {
		if c.Status == CheckStatusFail {
			count++
		}
	}
	return count
}

// ElementsRequest represents a request for element presence checks
type ElementsRequest struct {
	Path string

	OutputFormat OutputFormat
	OutputWriter io.Writer
}

// ElementsResponse is the element check result for one document
type ElementsResponse struct {
	Path        string          `json:"path" yaml:"path"`
	Report      *ElementsReport `json:"report" yaml:"report"`
	GeneratedAt string          `json:"generated_at" yaml:"generated_at"`
	Version     string          `json:"version" yaml:"version"`
}

// ElementsService defines the core logic for element presence checks
type ElementsService interface {
	Analyze(ctx context.Context, req ElementsRequest) (*ElementsResponse, error)
}
