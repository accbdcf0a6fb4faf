package constants

import "regexp"

// Upload limits for the ingress boundary.
const (
	// MaxUploadBytes caps accepted PDF uploads at 10 MiB.
	MaxUploadBytes = 10 * 1024 * 1024

	// PDFContentType is the only accepted content type.
	PDFContentType = "application/pdf"

	// PDFMagic is the required prefix of an uploaded byte stream.
	PDFMagic = "%PDF"
)

// PDFFilenamePattern matches acceptable upload filenames.
var PDFFilenamePattern = regexp.MustCompile(`^[\w\-. ]+\.pdf$`)
