package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/ludo-technologies/scriptscan/domain"
)

// Parser wraps the tree-sitter JavaScript parser
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser creates a new JavaScript parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := javascript.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
	}
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// SyntaxIssues parses source and returns one issue per error or missing
// node. Lines are 1-based relative to the start of source.
func (p *Parser) SyntaxIssues(ctx context.Context, source []byte) ([]domain.Issue, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse script: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("no root node in parse tree")
	}

	issues := []domain.Issue{}
	collectSyntaxIssues(root, source, &issues)
	return issues, nil
}

// CheckSyntax parses source with a throwaway parser
func CheckSyntax(ctx context.Context, source []byte) ([]domain.Issue, error) {
	p := NewParser()
	defer p.Close()
	return p.SyntaxIssues(ctx, source)
}

// collectSyntaxIssues walks the tree. Error nodes are reported once and not descended into.
func collectSyntaxIssues(node *sitter.Node, source []byte, issues *[]domain.Issue) {
	if node == nil {
		return
	}

	line := int(node.StartPoint().Row) + 1
	switch {
	case node.IsMissing():
		*issues = append(*issues, domain.Issue{
			Kind:     domain.IssueSyntax,
			Severity: domain.SeverityError,
			Line:     line,
			Message:  fmt.Sprintf("Missing %q", node.Type()),
		})
		return
	case node.Type() == "ERROR":
		*issues = append(*issues, domain.Issue{
			Kind:     domain.IssueSyntax,
			Severity: domain.SeverityError,
			Line:     line,
			Message:  fmt.Sprintf("Unexpected syntax near %q", snippet(node.Content(source))),
		})
		return
	}

	if !node.HasError() {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectSyntaxIssues(node.Child(i), source, issues)
	}
}

const maxSnippet = 40

func snippet(s string) string {
	for i, r := range s {
		if r == '\n' {
			s = s[:i]
			break
		}
	}
	if len(s) > maxSnippet {
		return s[:maxSnippet] + "..."
	}
	return s
}
