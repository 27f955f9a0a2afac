package service

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/scriptscan/domain"
	"github.com/ludo-technologies/scriptscan/internal/config"
	"github.com/ludo-technologies/scriptscan/internal/ctxlog"
	"github.com/ludo-technologies/scriptscan/internal/testutil"
)

func analyzeBraces(t *testing.T, cfg *config.Config, content string) (*domain.BracesResponse, error) {
	t.Helper()
	path := testutil.WriteDocument(t, "index.html", content)
	return NewBracesService(cfg).Analyze(context.Background(), domain.BracesRequest{Path: path})
}

func TestBracesService_Balanced(t *testing.T) {
	resp, err := analyzeBraces(t, config.DefaultConfig(), testutil.ScriptDocument(testutil.BalancedScript()...))
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Report.Balance)
	assert.Equal(t, 3, resp.Report.OpenBraces)
	assert.Equal(t, 3, resp.Report.CloseBraces)
	assert.Empty(t, resp.Report.Unclosed)
	assert.Empty(t, resp.Report.Issues)
	assert.Equal(t, 0, resp.ExitCode())

	assert.Equal(t, testutil.ScriptStartLine, resp.Region.StartLine)
	assert.Equal(t, testutil.ScriptStartLine+11, resp.Region.EndLine)
	assert.Equal(t, 12, resp.Region.LineCount)
	assert.Equal(t, testutil.Marker, resp.Marker)
	assert.False(t, resp.SyntaxCheck)

	require.Len(t, resp.Report.Declarations, 2)
	assert.Equal(t, domain.Declaration{Name: "startTimer", Kind: domain.DeclarationFunction, Line: 3}, resp.Report.Declarations[0])
	assert.Equal(t, domain.Declaration{Name: "object_timerState", Kind: domain.DeclarationObject, Line: 9}, resp.Report.Declarations[1])
}

func TestBracesService_Unbalanced(t *testing.T) {
	resp, err := analyzeBraces(t, config.DefaultConfig(), testutil.ScriptDocument(testutil.UnbalancedScript()...))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Report.Balance)
	assert.Equal(t, 1, resp.ExitCode())
	assert.Equal(t, []domain.BraceFrame{
		{Line: 8, Construct: domain.EventListenerConstruct},
		{Line: 3, Construct: "startTimer"},
	}, resp.Report.Unclosed)
}

func TestBracesService_OnlyMarkedBlockIsScanned(t *testing.T) {
	// The leading script block holds a brace pair that must not be counted
	resp, err := analyzeBraces(t, config.DefaultConfig(), testutil.ScriptDocument("    let x = 1;"))
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Report.OpenBraces)
	assert.Equal(t, 0, resp.Report.CloseBraces)
}

func TestBracesService_IndentWidthFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Braces.IndentWidth = 2

	resp, err := analyzeBraces(t, cfg, testutil.ScriptDocument("  let x = 1;", "      let y = 2;"))
	require.NoError(t, err)
	assert.Empty(t, resp.Report.IssuesOfKind(domain.IssueIndentation))

	resp, err = analyzeBraces(t, config.DefaultConfig(), testutil.ScriptDocument("  let x = 1;"))
	require.NoError(t, err)
	assert.Len(t, resp.Report.IssuesOfKind(domain.IssueIndentation), 1)
}

func TestBracesService_MarkerOverride(t *testing.T) {
	doc := "<html>\n<script>\n// custom entry\nfunction go() {\n</script>\n</html>\n"
	path := testutil.WriteDocument(t, "page.html", doc)

	resp, err := NewBracesService(config.DefaultConfig()).Analyze(context.Background(), domain.BracesRequest{
		Path:   path,
		Marker: "// custom entry",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Report.Balance)
	assert.Equal(t, "// custom entry", resp.Marker)
}

func TestBracesService_PreconditionFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"no marker", "<html><script>let a = {};</script></html>", "could not find JavaScript marker"},
		{"no script tag", testutil.Marker + "\n</script>", "could not find script tag containing marker"},
		{"no closing tag", "<script>\n" + testutil.Marker + "\nlet a = 1;", "could not find closing script tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzeBraces(t, config.DefaultConfig(), tt.content)
			require.Error(t, err)
			assert.Equal(t, domain.ErrCodeMarkerNotFound, domain.ErrorCode(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestBracesService_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.html")
	_, err := NewBracesService(config.DefaultConfig()).Analyze(context.Background(), domain.BracesRequest{Path: path})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}

func TestBracesService_InvalidUTF8(t *testing.T) {
	doc := testutil.ScriptDocument("    var s = '\xff\xfe';", "    function ok() {", "    }")

	_, err := analyzeBraces(t, config.DefaultConfig(), doc)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
	assert.Contains(t, err.Error(), "as UTF-8")
}

func TestBracesService_SyntaxCheck(t *testing.T) {
	path := testutil.WriteDocument(t, "index.html", testutil.ScriptDocument(testutil.UnbalancedScript()...))

	resp, err := NewBracesService(config.DefaultConfig()).Analyze(context.Background(), domain.BracesRequest{
		Path:        path,
		SyntaxCheck: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.SyntaxCheck)
	assert.NotEmpty(t, resp.SyntaxIssues)
	// Syntax findings never change the scan verdict
	assert.Equal(t, 2, resp.Report.Balance)

	cfg := config.DefaultConfig()
	cfg.Braces.SyntaxCheck = true
	resp, err = analyzeBraces(t, cfg, testutil.ScriptDocument(testutil.BalancedScript()...))
	require.NoError(t, err)
	assert.True(t, resp.SyntaxCheck)
	assert.Empty(t, resp.SyntaxIssues)
}

func TestBracesService_LogsDeclarations(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&logs, true))
	path := testutil.WriteDocument(t, "index.html", testutil.ScriptDocument(testutil.BalancedScript()...))

	_, err := NewBracesService(config.DefaultConfig()).Analyze(ctx, domain.BracesRequest{Path: path})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "declaration found")
	assert.Contains(t, logs.String(), "name=startTimer")
	assert.Contains(t, logs.String(), "name=object_timerState")
}

func TestBracesService_ReportsProgressPerLine(t *testing.T) {
	pm := &mockProgressManager{}
	path := testutil.WriteDocument(t, "index.html", testutil.ScriptDocument(testutil.BalancedScript()...))

	_, err := NewBracesServiceWithProgress(config.DefaultConfig(), pm).Analyze(context.Background(), domain.BracesRequest{Path: path})
	require.NoError(t, err)

	require.NotNil(t, pm.task)
	assert.Equal(t, 12, pm.task.total)
	assert.Equal(t, 12, pm.task.incremented())
	assert.True(t, pm.task.completed)
}

func TestBracesService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := testutil.WriteDocument(t, "index.html", testutil.ScriptDocument(testutil.BalancedScript()...))

	_, err := NewBracesService(config.DefaultConfig()).Analyze(ctx, domain.BracesRequest{Path: path})
	assert.ErrorIs(t, err, context.Canceled)
}
