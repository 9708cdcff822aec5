package tracing

import "errors"

var (
	ErrUnknownExporter = errors.New("unsupported exporter")
	ErrMissingFilePath = errors.New("file_path is required")
)
