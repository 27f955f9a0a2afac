// Package elements runs fixed presence checks for UI elements, functions
// and handler wiring against an HTML document.
package elements

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ludo-technologies/scriptscan/domain"
)

// Rules lists what the checker looks for
type Rules struct {
	TemplateMarker      string
	TemplateEnd         string
	ElementIDs          []string
	Functions           []string
	HandlerRegistration string
	TemplateContains    []string
	DuplicateID         string
	InitFunction        string
	LogPattern          string
	MaxLogSamples       int
}

// DefaultRules returns the timer checks
func DefaultRules() Rules {
	return Rules{
		TemplateMarker: `<template id="template-timer">`,
		TemplateEnd:    "</template>",
		ElementIDs: []string{
			"timer-start-btn",
			"timer-pause-btn",
			"timer-reset-btn",
			"timer-display",
			"timer-status",
			"timer-duration",
			"timer-sound",
			"progress-ring",
		},
		Functions: []string{
			"function attachTimerLogic",
			"function attachTimerEventListeners",
			"function startTimer",
			"function pauseTimer",
			"function resetTimer",
			"function updateDisplay",
		},
		HandlerRegistration: "'timer': attachTimerLogic",
		TemplateContains:    []string{"timer-start-btn", "timer-display"},
		DuplicateID:         "timer-duration",
		InitFunction:        "attachTimerLogic",
		LogPattern:          `(?i)console\.log\([^)]*timer[^)]*\)`,
		MaxLogSamples:       3,
	}
}

// Checker runs the presence checks
type Checker struct {
	rules      Rules
	logPattern *regexp.Regexp
}

// NewChecker compiles the rules into a checker
func NewChecker(rules Rules) (*Checker, error) {
	c := &Checker{rules: rules}
	if rules.LogPattern != "" {
		re, err := regexp.Compile(rules.LogPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid log pattern %q: %w", rules.LogPattern, err)
		}
		c.logPattern = re
	}
	return c, nil
}

// Check runs every check against the document. When the template is
// missing nothing else is checked.
func (c *Checker) Check(content string) *domain.ElementsReport {
	report := &domain.ElementsReport{Checks: []domain.ElementCheck{}}

	templateAt := strings.Index(content, c.rules.TemplateMarker)
	report.TemplateFound = c.rules.TemplateMarker != "" && templateAt != -1
	report.Checks = append(report.Checks, presence(domain.SectionTemplate, c.rules.TemplateMarker, report.TemplateFound,
		"template exists", "template not found"))
	if !report.TemplateFound {
		return report
	}

	for _, id := range c.rules.ElementIDs {
		found := strings.Contains(content, idAttr(id))
		report.Checks = append(report.Checks, presence(domain.SectionElements, id, found, "found", "NOT found"))
	}

	for _, fn := range c.rules.Functions {
		found := strings.Contains(content, fn)
		report.Checks = append(report.Checks, presence(domain.SectionFunctions, fn, found, "found", "NOT found"))
	}

	if c.rules.HandlerRegistration != "" {
		found := strings.Contains(content, c.rules.HandlerRegistration)
		report.Checks = append(report.Checks, presence(domain.SectionHandlers, c.rules.HandlerRegistration, found,
			"handler is registered", "handler NOT registered"))
	}

	c.checkTemplateContent(content, templateAt, report)
	c.checkPotentialIssues(content, report)
	c.collectDebugLogs(content, report)

	return report
}

func (c *Checker) checkTemplateContent(content string, templateAt int, report *domain.ElementsReport) {
	endRel := strings.Index(content[templateAt:], c.rules.TemplateEnd)
	if c.rules.TemplateEnd == "" || endRel == -1 {
		return
	}
	template := content[templateAt : templateAt+endRel]
	report.TemplateLength = utf8.RuneCountInString(template)

	for _, id := range c.rules.TemplateContains {
		found := strings.Contains(template, id)
		report.Checks = append(report.Checks, presence(domain.SectionTemplateContent, id, found,
			"in template", "NOT in template"))
	}
}

func (c *Checker) checkPotentialIssues(content string, report *domain.ElementsReport) {
	if c.rules.DuplicateID != "" {
		if n := strings.Count(content, idAttr(c.rules.DuplicateID)); n > 1 {
			report.Checks = append(report.Checks, domain.ElementCheck{
				Section: domain.SectionPotentialIssues,
				Name:    c.rules.DuplicateID,
				Status:  domain.CheckStatusWarn,
				Detail:  fmt.Sprintf("Multiple %s elements found: %d", c.rules.DuplicateID, n),
			})
		}
	}

	if c.rules.InitFunction != "" {
		found := strings.Contains(content, c.rules.InitFunction)
		report.Checks = append(report.Checks, presence(domain.SectionPotentialIssues, c.rules.InitFunction, found,
			"initialization function exists", "initialization function missing"))
	}
}

func (c *Checker) collectDebugLogs(content string, report *domain.ElementsReport) {
	if c.logPattern == nil {
		return
	}
	matches := c.logPattern.FindAllString(content, -1)
	report.DebugLogCount = len(matches)

	limit := c.rules.MaxLogSamples
	if limit > len(matches) {
		limit = len(matches)
	}
	if limit > 0 {
		report.DebugLogs = matches[:limit]
	}
}

func idAttr(id string) string {
	return fmt.Sprintf(`id="%s"`, id)
}

func presence(section domain.ElementSection, name string, found bool, passDetail, failDetail string) domain.ElementCheck {
	check := domain.ElementCheck{Section: section, Name: name, Status: domain.CheckStatusPass, Detail: passDetail}
	if !found {
		check.Status = domain.CheckStatusFail
		check.Detail = failDetail
	}
	return check
}
