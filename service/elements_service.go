package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ludo-technologies/scriptscan/domain"
	"github.com/ludo-technologies/scriptscan/internal/config"
	"github.com/ludo-technologies/scriptscan/internal/ctxlog"
	"github.com/ludo-technologies/scriptscan/internal/elements"
	"github.com/ludo-technologies/scriptscan/internal/version"
)

// ElementsServiceImpl implements the ElementsService interface
type ElementsServiceImpl struct {
	config *config.ElementsConfig
}

// NewElementsService creates a new element presence service
func NewElementsService(cfg *config.ElementsConfig) *ElementsServiceImpl {
	return &ElementsServiceImpl{config: cfg}
}

// Analyze runs every presence check against the document
func (s *ElementsServiceImpl) Analyze(ctx context.Context, req domain.ElementsRequest) (*domain.ElementsResponse, error) {
	checker, err := elements.NewChecker(s.config.Rules())
	if err != nil {
		return nil, domain.NewConfigError("invalid element rules", err)
	}

	content, err := readDocument(req.Path)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("element check cancelled: %w", ctx.Err())
	default:
	}

	report := checker.Check(content)
	ctxlog.FromContext(ctx).Debug("element checks finished",
		"path", req.Path, "checks", len(report.Checks), "failed", report.FailedCount())

	return &domain.ElementsResponse{
		Path:        req.Path,
		Report:      report,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}
