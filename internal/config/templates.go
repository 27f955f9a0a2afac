package config

import (
	"fmt"
	"strings"
)

// Strictness represents how strictly the check command judges a document
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// StrictnessPreset holds the settings a strictness level implies
type StrictnessPreset struct {
	IndentWidth    int
	SyntaxCheck    bool
	FailOnElements bool
	FailOnWarnings bool
}

// GetStrictnessPresets returns presets for each strictness level
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			IndentWidth: 2,
		},
		StrictnessStandard: {
			IndentWidth: DefaultIndentWidth,
		},
		StrictnessStrict: {
			IndentWidth:    DefaultIndentWidth,
			SyntaxCheck:    true,
			FailOnElements: true,
			FailOnWarnings: true,
		},
	}
}

// TemplateOptions controls what init writes
type TemplateOptions struct {
	DocumentPath string
	Marker       string
	Strictness   Strictness
}

// DefaultTemplateOptions returns the options init uses without prompting
func DefaultTemplateOptions() TemplateOptions {
	return TemplateOptions{
		DocumentPath: DefaultDocumentPath,
		Marker:       DefaultMarker,
		Strictness:   StrictnessStandard,
	}
}

// GetFullConfigTemplate returns a commented YAML configuration with every setting
func GetFullConfigTemplate(opts TemplateOptions) string {
	preset, ok := GetStrictnessPresets()[opts.Strictness]
	if !ok {
		preset = GetStrictnessPresets()[StrictnessStandard]
	}
	if opts.DocumentPath == "" {
		opts.DocumentPath = DefaultDocumentPath
	}
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}

	defaults := DefaultConfig()
	el := defaults.Elements

	var b strings.Builder
	fmt.Fprintf(&b, "# scriptscan configuration (%s)\n", opts.Strictness)
	b.WriteString("# Values left out fall back to the built-in defaults.\n\n")

	b.WriteString("document:\n")
	b.WriteString("  # Document scanned when no path is given\n")
	fmt.Fprintf(&b, "  path: %s\n", yamlQuote(opts.DocumentPath))
	b.WriteString("  # Literal text inside the script block to scan\n")
	fmt.Fprintf(&b, "  marker: %s\n", yamlQuote(opts.Marker))
	fmt.Fprintf(&b, "  start_tag: %s\n", yamlQuote(defaults.Document.StartTag))
	fmt.Fprintf(&b, "  end_tag: %s\n\n", yamlQuote(defaults.Document.EndTag))

	b.WriteString("braces:\n")
	b.WriteString("  # Leading whitespace must be a multiple of this width\n")
	fmt.Fprintf(&b, "  indent_width: %d\n", preset.IndentWidth)
	b.WriteString("  # Parse the block and report syntax errors as well\n")
	fmt.Fprintf(&b, "  syntax_check: %t\n", preset.SyntaxCheck)
	b.WriteString("  # Unclosed blocks listed under suggested fixes\n")
	fmt.Fprintf(&b, "  max_fix_hints: %d\n\n", defaults.Braces.MaxFixHints)

	b.WriteString("elements:\n")
	fmt.Fprintf(&b, "  template_marker: %s\n", yamlQuote(el.TemplateMarker))
	fmt.Fprintf(&b, "  template_end: %s\n", yamlQuote(el.TemplateEnd))
	b.WriteString("  # Each id is looked up as id=\"...\"\n")
	writeYAMLList(&b, "element_ids", el.ElementIDs)
	writeYAMLList(&b, "functions", el.Functions)
	fmt.Fprintf(&b, "  handler_registration: %s\n", yamlQuote(el.HandlerRegistration))
	writeYAMLList(&b, "template_contains", el.TemplateContains)
	fmt.Fprintf(&b, "  duplicate_id: %s\n", yamlQuote(el.DuplicateID))
	fmt.Fprintf(&b, "  init_function: %s\n", yamlQuote(el.InitFunction))
	b.WriteString("  # Regular expression for debug log statements\n")
	fmt.Fprintf(&b, "  log_pattern: %s\n", yamlQuote(el.LogPattern))
	fmt.Fprintf(&b, "  max_log_samples: %d\n\n", el.MaxLogSamples)

	b.WriteString("check:\n")
	fmt.Fprintf(&b, "  fail_on_elements: %t\n", preset.FailOnElements)
	fmt.Fprintf(&b, "  fail_on_warnings: %t\n\n", preset.FailOnWarnings)

	b.WriteString("output:\n")
	b.WriteString("  # text, json or yaml\n")
	fmt.Fprintf(&b, "  format: %s\n\n", defaults.Output.Format)

	b.WriteString("performance:\n")
	fmt.Fprintf(&b, "  max_goroutines: %d\n", defaults.Performance.MaxGoroutines)
	fmt.Fprintf(&b, "  timeout_seconds: %d\n", defaults.Performance.TimeoutSeconds)

	return b.String()
}

// GetMinimalConfigTemplate returns a minimal configuration template
func GetMinimalConfigTemplate() string {
	return fmt.Sprintf(`# scriptscan configuration
document:
  path: %s
  marker: %s

braces:
  indent_width: %d

output:
  format: text
`, yamlQuote(DefaultDocumentPath), yamlQuote(DefaultMarker), DefaultIndentWidth)
}

// yamlQuote single-quotes s so markers, tags and patterns survive YAML parsing verbatim
func yamlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func writeYAMLList(b *strings.Builder, key string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "  %s: []\n", key)
		return
	}
	fmt.Fprintf(b, "  %s:\n", key)
	for _, item := range items {
		fmt.Fprintf(b, "    - %s\n", yamlQuote(item))
	}
}
