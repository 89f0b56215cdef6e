package documentModel

import (
	"path/filepath"
	"strings"
)

type DocType string

const (
	PDF   DocType = "PDF"
	Excel DocType = "Excel"
	Word  DocType = "Word"
	CSV   DocType = "CSV"
)

type extensionInfo struct {
	kind        DocType
	contentType string
}

var allowedExtensions = map[string]extensionInfo{
	".pdf":  {PDF, "application/pdf"},
	".xlsx": {Excel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	".xls":  {Excel, "application/vnd.ms-excel"},
	".docx": {Word, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".doc":  {Word, "application/msword"},
	".csv":  {CSV, "text/csv"},
}

// extensionOrder is the order used in error messages.
var extensionOrder = []string{".pdf", ".xlsx", ".xls", ".docx", ".doc", ".csv"}

func AllowedExtensions() []string {
	out := make([]string, len(extensionOrder))
	copy(out, extensionOrder)
	return out
}

// KindOf reports the document type for a file name, matching the extension
// case-insensitively.
func KindOf(name string) (DocType, string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	info, ok := allowedExtensions[ext]
	if !ok {
		return "", ext, false
	}
	return info.kind, ext, true
}

func ContentTypeOf(ext string) string {
	if info, ok := allowedExtensions[strings.ToLower(ext)]; ok {
		return info.contentType
	}
	return "application/octet-stream"
}
