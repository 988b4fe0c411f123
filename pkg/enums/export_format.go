package enums

import (
	"fmt"
	"strings"
)

// ExportFormat names a file format the quote can be written to.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

var validExportFormats = []ExportFormat{
	ExportFormatJSON,
	ExportFormatCSV,
	ExportFormatXLSX,
	ExportFormatPDF,
}

var exportContentTypes = map[ExportFormat]string{
	ExportFormatJSON: "application/json",
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExportFormatPDF:  "application/pdf",
}

// String implements fmt.Stringer.
func (f ExportFormat) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ExportFormat.
func (f ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ContentType returns the MIME type used when the file is downloaded.
func (f ExportFormat) ContentType() string {
	if ct, ok := exportContentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ParseExportFormat converts raw input (case-insensitive, optional leading dot) into an ExportFormat.
func ParseExportFormat(value string) (ExportFormat, error) {
	normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), ".")
	for _, candidate := range validExportFormats {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}
