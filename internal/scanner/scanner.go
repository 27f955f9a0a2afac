// Package scanner implements the heuristic brace/structure scan over the
// lines of an embedded script block.
//
// The scan is a single forward pass. It does not tokenize: braces inside
// strings, regular expressions or block comments are counted like any other
// brace, and only lines starting with "//" are treated as comments.
package scanner

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/scriptscan/domain"
)

// DefaultIndentWidth is the indentation unit leading whitespace must be a multiple of
const DefaultIndentWidth = 4

// Option configures a Scanner
type Option func(*Scanner)

// WithIndentWidth sets the indentation unit. Values below 1 are ignored.
func WithIndentWidth(width int) Option {
	return func(s *Scanner) {
		if width > 0 {
			s.indentWidth = width
		}
	}
}

// WithDeclarationHook registers a callback invoked for each declaration as it is recognized
func WithDeclarationHook(fn func(domain.Declaration)) Option {
	return func(s *Scanner) {
		s.onDeclaration = fn
	}
}

// WithLineHook registers a callback invoked for every line the pass visits, skipped or not
func WithLineHook(fn func(SourceLine)) Option {
	return func(s *Scanner) {
		s.onLine = fn
	}
}

// Scanner classifies declarations and tracks brace balance
type Scanner struct {
	indentWidth   int
	onDeclaration func(domain.Declaration)
	onLine        func(SourceLine)
}

// New creates a scanner with the given options
func New(opts ...Option) *Scanner {
	s := &Scanner{indentWidth: DefaultIndentWidth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan runs a default scanner over lines
func Scan(lines []SourceLine) *domain.ScanReport {
	return New().Scan(lines)
}

// scanState holds the accumulators of one pass
type scanState struct {
	balance      int
	stack        []domain.BraceFrame
	current      string
	issues       []domain.Issue
	declarations []domain.Declaration
	linesScanned int
	terminated   bool
}

// Scan performs the pass and assembles the report
func (s *Scanner) Scan(lines []SourceLine) *domain.ScanReport {
	st := &scanState{}

	for _, line := range lines {
		if s.onLine != nil {
			s.onLine(line)
		}
		if line.Skipped() {
			continue
		}
		st.linesScanned++

		s.recognize(st, line)
		if !st.countBraces(line) {
			st.terminated = true
			break
		}
		s.checkIndent(st, line)
	}

	report := &domain.ScanReport{
		Balance:      st.balance,
		LinesScanned: st.linesScanned,
		Terminated:   st.terminated,
		Unclosed:     make([]domain.BraceFrame, 0, len(st.stack)),
		Issues:       st.issues,
		Declarations: st.declarations,
	}
	for i := len(st.stack) - 1; i >= 0; i-- {
		report.Unclosed = append(report.Unclosed, st.stack[i])
	}
	for _, line := range lines {
		report.OpenBraces += strings.Count(line.Raw, "{")
		report.CloseBraces += strings.Count(line.Raw, "}")
	}
	if report.Issues == nil {
		report.Issues = []domain.Issue{}
	}
	if report.Declarations == nil {
		report.Declarations = []domain.Declaration{}
	}

	return report
}

// recognize updates the current construct when the line declares one.
// The current construct is never cleared; it carries over until the next declaration.
func (s *Scanner) recognize(st *scanState, line SourceLine) {
	c := Classify(line.Trimmed)
	if !c.IsDeclaration() {
		return
	}

	st.current = c.Construct()
	decl := domain.Declaration{
		Name: st.current,
		Kind: c.Kind,
		Line: line.Number,
	}
	st.declarations = append(st.declarations, decl)
	if s.onDeclaration != nil {
		s.onDeclaration(decl)
	}
}

// countBraces applies the line's opens, then its closes. It returns false
// when the balance went negative and the pass must stop.
func (st *scanState) countBraces(line SourceLine) bool {
	opens := strings.Count(line.Trimmed, "{")
	closes := strings.Count(line.Trimmed, "}")

	for i := 0; i < opens; i++ {
		st.balance++
		st.stack = append(st.stack, domain.BraceFrame{Line: line.Number, Construct: st.current})
	}

	for i := 0; i < closes; i++ {
		st.balance--
		if len(st.stack) == 0 {
			st.issues = append(st.issues, domain.Issue{
				Kind:     domain.IssueOrphanClose,
				Severity: domain.SeverityError,
				Line:     line.Number,
				Message:  "Extra closing brace",
			})
			continue
		}

		opened := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		if opened.Construct != "" && opened.Construct != st.current {
			st.issues = append(st.issues, domain.Issue{
				Kind:     domain.IssueMismatch,
				Severity: domain.SeverityWarning,
				Line:     line.Number,
				Message: fmt.Sprintf("Closing brace may not match opening brace from line %d (%s), current construct is %s",
					opened.Line, opened.Construct, st.current),
				OpenedLine:      opened.Line,
				OpenedConstruct: opened.Construct,
				Construct:       st.current,
			})
		}
	}

	if st.balance < 0 {
		st.issues = append(st.issues, domain.Issue{
			Kind:     domain.IssueNegativeBalance,
			Severity: domain.SeverityError,
			Line:     line.Number,
			Message:  fmt.Sprintf("Negative brace count: %d", st.balance),
		})
		return false
	}
	return true
}

func (s *Scanner) checkIndent(st *scanState, line SourceLine) {
	indent := line.Indent()
	if indent > 0 && indent%s.indentWidth != 0 {
		st.issues = append(st.issues, domain.Issue{
			Kind:     domain.IssueIndentation,
			Severity: domain.SeverityWarning,
			Line:     line.Number,
			Message:  fmt.Sprintf("Inconsistent indentation (expected multiple of %d, got %d)", s.indentWidth, indent),
		})
	}
}
