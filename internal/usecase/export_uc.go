package usecase

import (
	"context"
	"fmt"
	"strings"

	"lecture-quiz/internal/domain"
)

// Exporter renders an assembled result set into one downloadable file.
// Implementations live in internal/infra/export.
type Exporter interface {
	ContentType() string
	FileExt() string
	Render(res *AssembledResult) ([]byte, error)
}

// ExportFile is what the HTTP layer streams back as an attachment.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportUseCase turns completed results into downloadable files.
// Export never mutates job state.
type ExportUseCase struct {
	results   *ResultsUseCase
	exporters map[string]Exporter
}

func NewExportUseCase(results *ResultsUseCase, exporters map[string]Exporter) *ExportUseCase {
	return &ExportUseCase{results: results, exporters: exporters}
}

// Export fails with domain.ErrUnknownFormat before touching the
// datastore, so a bad format can never affect anything.
func (uc *ExportUseCase) Export(ctx context.Context, videoID, format string) (*ExportFile, error) {
	exp, ok := uc.exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}

	res, err := uc.results.Assemble(ctx, videoID)
	if err != nil {
		return nil, err
	}

	data, err := exp.Render(res)
	if err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}
	return &ExportFile{
		Name:        fmt.Sprintf("lecture-%s%s", videoID, exp.FileExt()),
		ContentType: exp.ContentType(),
		Data:        data,
	}, nil
}
