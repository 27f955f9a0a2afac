package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ludo-technologies/scriptscan/domain"
)

// BracesOutputWriter renders a brace analysis
type BracesOutputWriter interface {
	WriteBraces(response *domain.BracesResponse, format domain.OutputFormat, writer io.Writer) error
}

// BracesUseCase orchestrates the brace analysis workflow
type BracesUseCase struct {
	service    domain.BracesService
	formatter  BracesOutputWriter
	fileHelper *FileHelper
}

// NewBracesUseCase creates a new brace analysis use case
func NewBracesUseCase(service domain.BracesService, formatter BracesOutputWriter) *BracesUseCase {
	return &BracesUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute analyzes the document and writes the report. The response is
// returned even when writing fails so callers can still pick an exit code.
func (uc *BracesUseCase) Execute(ctx context.Context, req domain.BracesRequest) (*domain.BracesResponse, error) {
	if err := uc.fileHelper.ValidateDocument(req.Path); err != nil {
		return nil, err
	}
	if req.OutputFormat != "" && !req.OutputFormat.IsValid() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", req.OutputFormat), nil)
	}

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, asDomainError(err, "brace analysis failed")
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.WriteBraces(response, req.OutputFormat, req.OutputWriter); err != nil {
			return response, domain.NewOutputError("failed to write brace report", err)
		}
	}

	return response, nil
}

// asDomainError keeps coded errors as they are and wraps anything else as an analysis error
func asDomainError(err error, message string) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return domain.NewAnalysisError(message, err)
}

// BracesUseCaseBuilder provides a builder pattern for creating BracesUseCase
type BracesUseCaseBuilder struct {
	service    domain.BracesService
	formatter  BracesOutputWriter
	fileHelper *FileHelper
}

// NewBracesUseCaseBuilder creates a new builder
func NewBracesUseCaseBuilder() *BracesUseCaseBuilder {
	return &BracesUseCaseBuilder{}
}

// WithService sets the brace analysis service
func (b *BracesUseCaseBuilder) WithService(service domain.BracesService) *BracesUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the report writer
func (b *BracesUseCaseBuilder) WithFormatter(formatter BracesOutputWriter) *BracesUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithFileHelper sets the file helper
func (b *BracesUseCaseBuilder) WithFileHelper(fileHelper *FileHelper) *BracesUseCaseBuilder {
	b.fileHelper = fileHelper
	return b
}

// Build creates the BracesUseCase with the configured dependencies
func (b *BracesUseCaseBuilder) Build() (*BracesUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("braces service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := &BracesUseCase{
		service:    b.service,
		formatter:  b.formatter,
		fileHelper: b.fileHelper,
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}
	return uc, nil
}
