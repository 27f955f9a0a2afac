package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/scriptscan/domain"
)

// DefaultMaxFixHints is how many unclosed blocks the suggested fixes list
const DefaultMaxFixHints = 3

const ruleLine = "=================================================="

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headStyle = lipgloss.NewStyle().Bold(true)
)

// OutputFormatterImpl renders responses as text, JSON or YAML
type OutputFormatterImpl struct {
	maxFixHints int
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{maxFixHints: DefaultMaxFixHints}
}

// WithMaxFixHints sets how many unclosed blocks the suggested fixes list
func (f *OutputFormatterImpl) WithMaxFixHints(n int) *OutputFormatterImpl {
	if n >= 0 {
		f.maxFixHints = n
	}
	return f
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// writeStructured handles the machine readable formats shared by every response
func writeStructured(data interface{}, format domain.OutputFormat, writer io.Writer) (bool, error) {
	switch format {
	case domain.OutputFormatJSON:
		return true, WriteJSON(writer, data)
	case domain.OutputFormatYAML:
		return true, WriteYAML(writer, data)
	case domain.OutputFormatText, "":
		return false, nil
	default:
		return true, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteBraces writes the brace analysis in the specified format
func (f *OutputFormatterImpl) WriteBraces(response *domain.BracesResponse, format domain.OutputFormat, writer io.Writer) error {
	if handled, err := writeStructured(response, format, writer); handled {
		return err
	}
	return f.writeBracesText(response, writer)
}

// WriteElements writes the element checks in the specified format
func (f *OutputFormatterImpl) WriteElements(response *domain.ElementsResponse, format domain.OutputFormat, writer io.Writer) error {
	if handled, err := writeStructured(response, format, writer); handled {
		return err
	}
	return f.writeElementsText(response, writer)
}

// WriteCheck writes the check result in the specified format
func (f *OutputFormatterImpl) WriteCheck(result *domain.CheckResult, format domain.OutputFormat, writer io.Writer) error {
	if handled, err := writeStructured(result, format, writer); handled {
		return err
	}
	return f.writeCheckText(result, writer)
}

func (f *OutputFormatterImpl) writeBracesText(response *domain.BracesResponse, w io.Writer) error {
	report := response.Report

	fmt.Fprintln(w, headStyle.Render("🔍 JavaScript Brace Analysis"))
	fmt.Fprintln(w, ruleLine)
	fmt.Fprintf(w, "Document: %s (script block at lines %d-%d)\n",
		response.Path, response.Region.StartLine, response.Region.EndLine)

	fmt.Fprintf(w, "\n📊 Brace Analysis Results:\n")
	fmt.Fprintf(w, "   Total opening braces: %d\n", report.OpenBraces)
	fmt.Fprintf(w, "   Total closing braces: %d\n", report.CloseBraces)
	fmt.Fprintf(w, "   Final brace count: %d\n", report.Balance)
	fmt.Fprintf(w, "   Unclosed blocks: %d\n", len(report.Unclosed))

	if report.Balanced() {
		fmt.Fprintln(w, passStyle.Render("✅ Braces are balanced!"))
	} else {
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("❌ Braces are NOT balanced! Difference: %d", report.Balance)))
	}
	if report.Terminated {
		fmt.Fprintf(w, "   Scan stopped early after %d lines\n", report.LinesScanned)
	}

	if len(report.Unclosed) > 0 {
		fmt.Fprintf(w, "\n🔍 Unclosed blocks:\n")
		rows := make([][]string, 0, len(report.Unclosed))
		for _, frame := range report.Unclosed {
			rows = append(rows, []string{strconv.Itoa(frame.Line), frame.ConstructLabel()})
		}
		writeTable(w, []string{"Line", "Construct"}, rows)
	}

	if len(report.Issues) > 0 {
		fmt.Fprintf(w, "\n🚨 Issues found:\n")
		for _, issue := range report.Issues {
			fmt.Fprintf(w, "   %s\n", renderIssue(issue))
		}
	} else {
		fmt.Fprintf(w, "\n%s\n", passStyle.Render("✅ No major issues found!"))
	}

	if response.SyntaxCheck {
		if len(response.SyntaxIssues) > 0 {
			fmt.Fprintf(w, "\n🧩 Syntax errors:\n")
			for _, issue := range response.SyntaxIssues {
				fmt.Fprintf(w, "   %s\n", renderIssue(issue))
			}
		} else {
			fmt.Fprintf(w, "\n%s\n", passStyle.Render("✅ No syntax errors found"))
		}
	}

	fmt.Fprintf(w, "\n📋 Function Structure:\n")
	if len(report.Declarations) > 0 {
		rows := make([][]string, 0, len(report.Declarations))
		for _, decl := range report.Declarations {
			rows = append(rows, []string{decl.Name, string(decl.Kind), strconv.Itoa(decl.Line)})
		}
		writeTable(w, []string{"Construct", "Kind", "Starts At"}, rows)
	} else {
		fmt.Fprintf(w, "   (no declarations recognized)\n")
	}

	f.writeSuggestedFixes(report, w)
	return nil
}

// writeSuggestedFixes lists the most recently opened unclosed blocks
func (f *OutputFormatterImpl) writeSuggestedFixes(report *domain.ScanReport, w io.Writer) {
	if report.Balance <= 0 {
		return
	}
	fmt.Fprintf(w, "\n💡 Suggested fixes:\n")
	fmt.Fprintf(w, "   Add %d closing brace(s) to balance the code\n", report.Balance)

	n := f.maxFixHints
	if n > len(report.Unclosed) {
		n = len(report.Unclosed)
	}
	if n == 0 {
		return
	}
	fmt.Fprintf(w, "   Check these unclosed blocks:\n")
	for _, frame := range report.Unclosed[:n] {
		fmt.Fprintf(w, "     - %s starting at line %d\n", frame.ConstructLabel(), frame.Line)
	}
}

func (f *OutputFormatterImpl) writeElementsText(response *domain.ElementsResponse, w io.Writer) error {
	report := response.Report

	fmt.Fprintln(w, headStyle.Render("🔍 Element Presence Check"))
	fmt.Fprintln(w, ruleLine)
	fmt.Fprintf(w, "Document: %s\n\n", response.Path)

	for _, check := range report.ChecksInSection(domain.SectionTemplate) {
		fmt.Fprintf(w, "%s %s\n", statusGlyph(check.Status), check.Detail)
	}
	if !report.TemplateFound {
		return nil
	}

	sections := []struct {
		section domain.ElementSection
		title   string
	}{
		{domain.SectionElements, "📋 Elements Check:"},
		{domain.SectionFunctions, "📋 JavaScript Functions:"},
		{domain.SectionHandlers, "📋 Handler Registration:"},
	}
	for _, s := range sections {
		checks := report.ChecksInSection(s.section)
		if len(checks) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", s.title)
		for _, check := range checks {
			fmt.Fprintf(w, "%s %s %s\n", statusGlyph(check.Status), check.Name, check.Detail)
		}
	}

	if templateChecks := report.ChecksInSection(domain.SectionTemplateContent); report.TemplateLength > 0 || len(templateChecks) > 0 {
		fmt.Fprintf(w, "\n📋 Template Content (%d characters)\n", report.TemplateLength)
		for _, check := range templateChecks {
			fmt.Fprintf(w, "%s %s %s\n", statusGlyph(check.Status), check.Name, check.Detail)
		}
	}

	fmt.Fprintf(w, "\n🚨 Potential Issues:\n")
	for _, check := range report.ChecksInSection(domain.SectionPotentialIssues) {
		if check.Status == domain.CheckStatusWarn {
			fmt.Fprintf(w, "%s %s\n", statusGlyph(check.Status), check.Detail)
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", statusGlyph(check.Status), check.Name, check.Detail)
	}

	fmt.Fprintf(w, "\n📋 Debug Logs Found: %d\n", report.DebugLogCount)
	for _, log := range report.DebugLogs {
		fmt.Fprintf(w, "   %s\n", log)
	}

	return nil
}

func (f *OutputFormatterImpl) writeCheckText(result *domain.CheckResult, w io.Writer) error {
	if len(result.Violations) > 0 {
		rows := make([][]string, 0, len(result.Violations))
		for _, v := range result.Violations {
			rows = append(rows, []string{v.Severity, v.Category, v.Location, v.Message})
		}
		writeTable(w, []string{"Severity", "Category", "Location", "Message"}, rows)
		fmt.Fprintln(w)
	}

	s := result.Summary
	fmt.Fprintf(w, "Braces: balance %d, %d unclosed, %d structural issues\n",
		s.Balance, s.UnclosedBlocks, s.StructuralIssues)
	if s.ElementsChecked {
		fmt.Fprintf(w, "Elements: %d failed checks\n", s.FailedElementChecks)
	}

	if result.Passed {
		fmt.Fprintln(w, passStyle.Render(fmt.Sprintf("✅ Check passed: %s (%dms)", result.Document, result.Duration)))
	} else {
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("❌ Check failed: %s, %d violation(s)", result.Document, s.TotalViolations)))
	}
	return nil
}

func renderIssue(issue domain.Issue) string {
	text := fmt.Sprintf("Line %d: %s", issue.Line, issue.Message)
	if issue.Severity == domain.SeverityError {
		return failStyle.Render("❌ " + text)
	}
	return warnStyle.Render("⚠️  " + text)
}

func statusGlyph(status domain.CheckStatus) string {
	switch status {
	case domain.CheckStatusPass:
		return passStyle.Render("✅")
	case domain.CheckStatusWarn:
		return warnStyle.Render("⚠️ ")
	default:
		return failStyle.Render("❌")
	}
}

// writeTable renders a borderless, indented table
func writeTable(w io.Writer, header []string, rows [][]string) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
