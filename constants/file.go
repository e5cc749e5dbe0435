package constants

import "strings"

// Format tags reference documents are classified under.
const (
	PDF   = "PDF"
	WORD  = "WORD"
	EXCEL = "EXCEL"
)

// AllowedExtensions lists the file extensions an extraction run will pick up.
var AllowedExtensions = []string{"pdf", "docx", "xlsx"}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its format tag, or "" when the
// extension is not a supported reference-document type.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return WORD
	case "xlsx":
		return EXCEL
	default:
		return ""
	}
}

// AllowedExt reports whether ext (with or without dot, any case) is supported.
func AllowedExt(ext string) bool {
	return MapExtToFormat(ext) != ""
}
