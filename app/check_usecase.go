package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ludo-technologies/scriptscan/domain"
	"github.com/ludo-technologies/scriptscan/internal/constants"
	"github.com/ludo-technologies/scriptscan/internal/version"
)

// CheckOutputWriter renders a check result
type CheckOutputWriter interface {
	WriteCheck(result *domain.CheckResult, format domain.OutputFormat, writer io.Writer) error
}

// CheckPolicy decides which findings fail the check
type CheckPolicy struct {
	FailOnElements bool
	FailOnWarnings bool
}

// CheckRequest represents a request for the combined check
type CheckRequest struct {
	Path         string
	Marker       string
	SyntaxCheck  bool
	SkipElements bool

	OutputFormat domain.OutputFormat
	OutputWriter io.Writer
}

// CheckUseCase runs the brace scan and the element checks side by side
type CheckUseCase struct {
	bracesService   domain.BracesService
	elementsService domain.ElementsService
	executor        domain.ParallelExecutor
	formatter       CheckOutputWriter
	policy          CheckPolicy
	fileHelper      *FileHelper
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(
	bracesService domain.BracesService,
	elementsService domain.ElementsService,
	executor domain.ParallelExecutor,
	formatter CheckOutputWriter,
	policy CheckPolicy,
) *CheckUseCase {
	return &CheckUseCase{
		bracesService:   bracesService,
		elementsService: elementsService,
		executor:        executor,
		formatter:       formatter,
		policy:          policy,
		fileHelper:      NewFileHelper(),
	}
}

// bracesOutcome separates a script block that could not be located, which
// is a check failure, from errors that abort the check
type bracesOutcome struct {
	response     *domain.BracesResponse
	precondition error
}

type bracesTask struct {
	service domain.BracesService
	req     domain.BracesRequest
}

func (t *bracesTask) Name() string    { return constants.AnalysisBraces }
func (t *bracesTask) IsEnabled() bool { return true }

func (t *bracesTask) Execute(ctx context.Context) (interface{}, error) {
	response, err := t.service.Analyze(ctx, t.req)
	if err != nil {
		if domain.ErrorCode(err) == domain.ErrCodeMarkerNotFound {
			return &bracesOutcome{precondition: err}, nil
		}
		return nil, err
	}
	return &bracesOutcome{response: response}, nil
}

type elementsTask struct {
	service domain.ElementsService
	req     domain.ElementsRequest
	enabled bool
}

func (t *elementsTask) Name() string    { return constants.AnalysisElements }
func (t *elementsTask) IsEnabled() bool { return t.enabled }

func (t *elementsTask) Execute(ctx context.Context) (interface{}, error) {
	return t.service.Analyze(ctx, t.req)
}

// Execute runs the check and writes the result. An error means the check
// itself could not run; findings are reported through the result.
func (uc *CheckUseCase) Execute(ctx context.Context, req CheckRequest) (*domain.CheckResult, error) {
	start := time.Now()

	if err := uc.fileHelper.ValidateDocument(req.Path); err != nil {
		return nil, err
	}

	tasks := []domain.ExecutableTask{
		&bracesTask{
			service: uc.bracesService,
			req:     domain.BracesRequest{Path: req.Path, Marker: req.Marker, SyntaxCheck: req.SyntaxCheck},
		},
		&elementsTask{
			service: uc.elementsService,
			req:     domain.ElementsRequest{Path: req.Path},
			enabled: !req.SkipElements && uc.elementsService != nil,
		},
	}

	results, err := uc.executor.Execute(ctx, tasks)
	if err != nil {
		return nil, asDomainError(err, "check failed")
	}

	result := &domain.CheckResult{
		Document:    req.Path,
		Violations:  []domain.CheckViolation{},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}

	if outcome, ok := results[constants.AnalysisBraces].(*bracesOutcome); ok {
		uc.addBracesViolations(result, req.Path, outcome)
	}
	if response, ok := results[constants.AnalysisElements].(*domain.ElementsResponse); ok {
		uc.addElementViolations(result, response.Report)
	}

	result.Passed = true
	for _, v := range result.Violations {
		if v.Severity == string(domain.SeverityError) {
			result.Passed = false
			break
		}
	}
	result.ExitCode = constants.ExitOK
	if !result.Passed {
		result.ExitCode = constants.ExitFailure
	}
	result.Summary.TotalViolations = len(result.Violations)
	result.Duration = time.Since(start).Milliseconds()

	if req.OutputWriter != nil {
		if err := uc.formatter.WriteCheck(result, req.OutputFormat, req.OutputWriter); err != nil {
			return result, domain.NewOutputError("failed to write check result", err)
		}
	}

	return result, nil
}

func (uc *CheckUseCase) addBracesViolations(result *domain.CheckResult, path string, outcome *bracesOutcome) {
	result.Summary.BracesChecked = true

	if outcome.precondition != nil {
		result.Violations = append(result.Violations, domain.CheckViolation{
			Category: constants.AnalysisBraces,
			Rule:     "script-block",
			Severity: string(domain.SeverityError),
			Message:  outcome.precondition.Error(),
			Location: path,
		})
		return
	}

	response := outcome.response
	report := response.Report
	result.Summary.Balance = report.Balance
	result.Summary.UnclosedBlocks = len(report.Unclosed)
	result.Summary.StructuralIssues = len(report.Issues)

	if !report.Balanced() {
		result.Violations = append(result.Violations, domain.CheckViolation{
			Category: constants.AnalysisBraces,
			Rule:     "balanced-braces",
			Severity: string(domain.SeverityError),
			Message:  fmt.Sprintf("Braces are not balanced (difference %d)", report.Balance),
			Location: path,
			Actual:   strconv.Itoa(report.Balance),
		})
	}

	for _, issue := range report.Issues {
		severity := issue.Severity
		if severity == domain.SeverityWarning && uc.policy.FailOnWarnings {
			severity = domain.SeverityError
		}
		result.Violations = append(result.Violations, domain.CheckViolation{
			Category: constants.AnalysisBraces,
			Rule:     string(issue.Kind),
			Severity: string(severity),
			Message:  issue.Message,
			Location: documentLocation(path, response.Region, issue.Line),
		})
	}

	// Syntax findings are advisory and never fail the check
	for _, issue := range response.SyntaxIssues {
		result.Violations = append(result.Violations, domain.CheckViolation{
			Category: constants.AnalysisBraces,
			Rule:     string(domain.IssueSyntax),
			Severity: string(domain.SeverityWarning),
			Message:  issue.Message,
			Location: documentLocation(path, response.Region, issue.Line),
		})
	}
}

func (uc *CheckUseCase) addElementViolations(result *domain.CheckResult, report *domain.ElementsReport) {
	result.Summary.ElementsChecked = true
	result.Summary.FailedElementChecks = report.FailedCount()

	for _, check := range report.Checks {
		if check.Status == domain.CheckStatusPass {
			continue
		}
		severity := domain.SeverityWarning
		if check.Status == domain.CheckStatusFail && uc.policy.FailOnElements {
			severity = domain.SeverityError
		}
		result.Violations = append(result.Violations, domain.CheckViolation{
			Category: constants.AnalysisElements,
			Rule:     string(check.Section),
			Severity: string(severity),
			Message:  fmt.Sprintf("%s %s", check.Name, check.Detail),
		})
	}
}

// documentLocation converts a region line into a document path:line
func documentLocation(path string, region domain.RegionInfo, line int) string {
	if region.StartLine <= 0 {
		return fmt.Sprintf("%s:%d", path, line)
	}
	return fmt.Sprintf("%s:%d", path, region.StartLine+line-1)
}

// CheckUseCaseBuilder provides a builder pattern for creating CheckUseCase
type CheckUseCaseBuilder struct {
	bracesService   domain.BracesService
	elementsService domain.ElementsService
	executor        domain.ParallelExecutor
	formatter       CheckOutputWriter
	policy          CheckPolicy
}

// NewCheckUseCaseBuilder creates a new builder
func NewCheckUseCaseBuilder() *CheckUseCaseBuilder {
	return &CheckUseCaseBuilder{}
}

// WithBracesService sets the brace analysis service
func (b *CheckUseCaseBuilder) WithBracesService(s domain.BracesService) *CheckUseCaseBuilder {
	b.bracesService = s
	return b
}

// WithElementsService sets the element presence service
func (b *CheckUseCaseBuilder) WithElementsService(s domain.ElementsService) *CheckUseCaseBuilder {
	b.elementsService = s
	return b
}

// WithExecutor sets the task executor
func (b *CheckUseCaseBuilder) WithExecutor(e domain.ParallelExecutor) *CheckUseCaseBuilder {
	b.executor = e
	return b
}

// WithFormatter sets the result writer
func (b *CheckUseCaseBuilder) WithFormatter(f CheckOutputWriter) *CheckUseCaseBuilder {
	b.formatter = f
	return b
}

// WithPolicy sets which findings fail the check
func (b *CheckUseCaseBuilder) WithPolicy(p CheckPolicy) *CheckUseCaseBuilder {
	b.policy = p
	return b
}

// Build creates the CheckUseCase with the configured dependencies
func (b *CheckUseCaseBuilder) Build() (*CheckUseCase, error) {
	if b.bracesService == nil {
		return nil, fmt.Errorf("braces service is required")
	}
	if b.executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewCheckUseCase(b.bracesService, b.elementsService, b.executor, b.formatter, b.policy), nil
}
