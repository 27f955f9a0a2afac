package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	"unicode/utf8"

	"github.com/ludo-technologies/scriptscan/domain"
	"github.com/ludo-technologies/scriptscan/internal/config"
	"github.com/ludo-technologies/scriptscan/internal/ctxlog"
	"github.com/ludo-technologies/scriptscan/internal/parser"
	"github.com/ludo-technologies/scriptscan/internal/scanner"
	"github.com/ludo-technologies/scriptscan/internal/version"
)

// BracesServiceImpl implements the BracesService interface
type BracesServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
}

// NewBracesService creates a new brace analysis service
func NewBracesService(cfg *config.Config) *BracesServiceImpl {
	return &BracesServiceImpl{config: cfg}
}

// NewBracesServiceWithProgress creates a brace analysis service that reports scan progress
func NewBracesServiceWithProgress(cfg *config.Config, pm domain.ProgressManager) *BracesServiceImpl {
	return &BracesServiceImpl{config: cfg, progress: pm}
}

// Analyze locates the marked script block in the document and scans it
func (s *BracesServiceImpl) Analyze(ctx context.Context, req domain.BracesRequest) (*domain.BracesResponse, error) {
	content, err := readDocument(req.Path)
	if err != nil {
		return nil, err
	}

	marker := req.Marker
	if marker == "" {
		marker = s.config.Document.Marker
	}

	locator := &scanner.Locator{
		Marker:   marker,
		StartTag: s.config.Document.StartTag,
		EndTag:   s.config.Document.EndTag,
	}
	region, err := locator.Locate(content)
	if err != nil {
		return nil, domain.NewMarkerNotFoundError(err.Error())
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("brace analysis cancelled: %w", ctx.Err())
	default:
	}

	lines := region.Lines()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("script block located",
		"path", req.Path, "start_line", region.StartLine, "end_line", region.EndLine(), "lines", len(lines))

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Scanning script block", len(lines))
	}

	sc := scanner.New(
		scanner.WithIndentWidth(s.config.Braces.IndentWidth),
		scanner.WithDeclarationHook(func(d domain.Declaration) {
			logger.Debug("declaration found", "kind", d.Kind, "name", d.Name, "line", d.Line)
		}),
		scanner.WithLineHook(func(scanner.SourceLine) {
			task.Increment(1)
		}),
	)
	report := sc.Scan(lines)
	task.Complete()

	if report.Terminated {
		logger.Debug("scan stopped on negative balance", "lines_scanned", report.LinesScanned)
	}

	response := &domain.BracesResponse{
		Path:   req.Path,
		Marker: marker,
		Region: domain.RegionInfo{
			StartLine: region.StartLine,
			EndLine:   region.EndLine(),
			LineCount: len(lines),
		},
		Report:      report,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}

	if req.SyntaxCheck || s.config.Braces.SyntaxCheck {
		issues, err := parser.CheckSyntax(ctx, []byte(region.Text))
		if err != nil {
			return nil, domain.NewAnalysisError("syntax check failed", err)
		}
		response.SyntaxCheck = true
		response.SyntaxIssues = issues
		logger.Debug("syntax check finished", "issues", len(issues))
	}

	return response, nil
}

// readDocument reads the whole document as UTF-8, mapping a missing file to FILE_NOT_FOUND
func readDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.NewFileNotFoundError(path, err)
		}
		return "", domain.NewInvalidInputError(fmt.Sprintf("failed to read %s", path), err)
	}
	if !utf8.Valid(content) {
		return "", domain.NewInvalidInputError(fmt.Sprintf("failed to decode %s as UTF-8", path), nil)
	}
	return string(content), nil
}
