package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/scriptscan/domain"
)

// ElementsOutputWriter renders element presence checks
type ElementsOutputWriter interface {
	WriteElements(response *domain.ElementsResponse, format domain.OutputFormat, writer io.Writer) error
}

// ElementsUseCase orchestrates the element presence workflow
type ElementsUseCase struct {
	service    domain.ElementsService
	formatter  ElementsOutputWriter
	fileHelper *FileHelper
}

// NewElementsUseCase creates a new element presence use case
func NewElementsUseCase(service domain.ElementsService, formatter ElementsOutputWriter) *ElementsUseCase {
	return &ElementsUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute runs the checks and writes the report. Failed checks are part of
// the report, not an error.
func (uc *ElementsUseCase) Execute(ctx context.Context, req domain.ElementsRequest) (*domain.ElementsResponse, error) {
	if err := uc.fileHelper.ValidateDocument(req.Path); err != nil {
		return nil, err
	}
	if req.OutputFormat != "" && !req.OutputFormat.IsValid() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", req.OutputFormat), nil)
	}

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, asDomainError(err, "element check failed")
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.WriteElements(response, req.OutputFormat, req.OutputWriter); err != nil {
			return response, domain.NewOutputError("failed to write element report", err)
		}
	}

	return response, nil
}
