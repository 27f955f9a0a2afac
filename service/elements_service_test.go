package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/scriptscan/domain"
	"github.com/ludo-technologies/scriptscan/internal/config"
	"github.com/ludo-technologies/scriptscan/internal/testutil"
)

func TestElementsService_TimerDocument(t *testing.T) {
	cfg := config.DefaultConfig()
	path := testutil.WriteDocument(t, "index.html", testutil.TimerDocument())

	resp, err := NewElementsService(&cfg.Elements).Analyze(context.Background(), domain.ElementsRequest{Path: path})
	require.NoError(t, err)

	assert.Equal(t, path, resp.Path)
	assert.True(t, resp.Report.TemplateFound)
	assert.Equal(t, 0, resp.Report.FailedCount())
	assert.Len(t, resp.Report.ChecksInSection(domain.SectionElements), 8)
	assert.Len(t, resp.Report.ChecksInSection(domain.SectionFunctions), 6)
	assert.Equal(t, 2, resp.Report.DebugLogCount)
}

func TestElementsService_MissingElement(t *testing.T) {
	cfg := config.DefaultConfig()
	doc := strings.Replace(testutil.TimerDocument(), `id="timer-sound"`, `id="sound"`, 1)
	path := testutil.WriteDocument(t, "index.html", doc)

	resp, err := NewElementsService(&cfg.Elements).Analyze(context.Background(), domain.ElementsRequest{Path: path})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Report.FailedCount())
	for _, c := range resp.Report.ChecksInSection(domain.SectionElements) {
		if c.Name == "timer-sound" {
			assert.Equal(t, domain.CheckStatusFail, c.Status)
		}
	}
}

func TestElementsService_MissingFile(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := NewElementsService(&cfg.Elements).Analyze(context.Background(),
		domain.ElementsRequest{Path: filepath.Join(t.TempDir(), "nope.html")})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}

func TestElementsService_InvalidUTF8(t *testing.T) {
	doc := strings.Replace(testutil.TimerDocument(), "Ready", "Ready\xff", 1)
	path := testutil.WriteDocument(t, "index.html", doc)

	_, err := NewElementsService(&config.DefaultConfig().Elements).Analyze(context.Background(), domain.ElementsRequest{Path: path})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
}

func TestElementsService_InvalidRules(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Elements.LogPattern = "console.log("
	path := testutil.WriteDocument(t, "index.html", testutil.TimerDocument())

	_, err := NewElementsService(&cfg.Elements).Analyze(context.Background(), domain.ElementsRequest{Path: path})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
}
