package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "ehrqa/internal/errors"
	"ehrqa/internal/qa"
)

// WriteReportJSON serializes the QA report to an indented JSON file.
// encoding/json emits map keys in sorted order, so identical reports
// serialize to identical bytes.
func WriteReportJSON(path string, report *qa.Report, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apperrors.NewIOError("marshal report", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewIOError("create output directory", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("write %s", path), err)
	}

	logger.Info("wrote qa report", slog.String("path", path), slog.Int("bytes", len(data)))
	return nil
}
