// Package ingest validates uploads at the ingress boundary before anything
// touches the analysis pipeline.
package ingest

import (
	"fmt"
	"strings"

	"github.com/studyscope/pdf-summarizer/constants"
	"github.com/studyscope/pdf-summarizer/internal/common"
)

// ValidateUpload applies the ingress rules to an uploaded file: content type
// must be application/pdf, size at most 10 MiB, filename shaped like a PDF
// name, and the stream must open with the %PDF magic.
func ValidateUpload(filename, contentType string, data []byte) error {
	if contentType != "" && contentType != constants.PDFContentType {
		return common.NewAppError("UPLOAD_REJECTED",
			fmt.Sprintf("content type %q is not %s", contentType, constants.PDFContentType),
			common.ErrInvalidInput)
	}
	if len(data) == 0 {
		return common.NewAppError("UPLOAD_REJECTED", "empty file", common.ErrInvalidInput)
	}
	if len(data) > constants.MaxUploadBytes {
		return common.NewAppError("UPLOAD_REJECTED",
			fmt.Sprintf("file is %d bytes, limit is %d", len(data), constants.MaxUploadBytes),
			common.ErrInvalidInput)
	}
	if !constants.PDFFilenamePattern.MatchString(filename) {
		return common.NewAppError("UPLOAD_REJECTED",
			fmt.Sprintf("filename %q is not an acceptable pdf name", filename),
			common.ErrInvalidInput)
	}
	if !strings.HasPrefix(string(data[:min(len(data), 4)]), constants.PDFMagic) {
		return common.NewAppError("UPLOAD_REJECTED", "stream does not start with %PDF", common.ErrInvalidInput)
	}
	return nil
}
