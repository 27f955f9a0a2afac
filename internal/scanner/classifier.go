package scanner

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/scriptscan/domain"
)

var (
	functionDeclPattern = regexp.MustCompile(`^\s*function\s+(\w+)\s*\(`)
	objectDeclPattern   = regexp.MustCompile(`^\s*(const|let|var)\s+(\w+)\s*=\s*\{`)

	// Plain substring checks, so "constructor" or "variable" also qualify
	arrowKeywords = []string{"function", "const", "let", "var"}
)

const eventListenerCall = "addEventListener"

// Classification is the outcome of classifying one trimmed line.
// Kind is DeclarationNone when the line declares nothing.
type Classification struct {
	Kind domain.DeclarationKind
	Name string
}

// IsDeclaration reports whether the line was recognized as a declaration
func (c Classification) IsDeclaration() bool {
	return c.Kind != domain.DeclarationNone
}

// Construct returns the construct label this declaration makes current
func (c Classification) Construct() string {
	switch c.Kind {
	case domain.DeclarationFunction:
		return c.Name
	case domain.DeclarationArrowFunction:
		return domain.ArrowFunctionConstruct
	case domain.DeclarationObject:
		return domain.ObjectConstructPrefix + c.Name
	case domain.DeclarationEventListener:
		return domain.EventListenerConstruct
	}
	return ""
}

// Classify recognizes a declaration on a trimmed line. Rules are tried in
// priority order and the first one whose shape matches claims the line.
// An arrow-shaped line ("=>" with "{") claims the line even when it carries
// no declaration keyword, so object and listener rules never see it.
func Classify(line string) Classification {
	if m := functionDeclPattern.FindStringSubmatch(line); m != nil {
		return Classification{Kind: domain.DeclarationFunction, Name: m[1]}
	}

	if strings.Contains(line, "=>") && strings.Contains(line, "{") {
		if containsAny(line, arrowKeywords) {
			return Classification{Kind: domain.DeclarationArrowFunction, Name: domain.ArrowFunctionConstruct}
		}
		return Classification{}
	}

	if m := objectDeclPattern.FindStringSubmatch(line); m != nil {
		return Classification{Kind: domain.DeclarationObject, Name: m[2]}
	}

	if strings.Contains(line, eventListenerCall) && strings.Contains(line, "{") {
		return Classification{Kind: domain.DeclarationEventListener, Name: domain.EventListenerConstruct}
	}

	return Classification{}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
