package extract

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// company-YYYYMMDD, optionally followed by _anything
var filenameMetadata = regexp.MustCompile(`^([A-Za-z0-9_-]+?)-(\d{8})(?:_|$)`)

type Metadata struct {
	Company string `json:"company,omitempty"`
	Year    int    `json:"year,omitempty"`
}

// MetadataFromFilename reads the company and report year from names such as
// aapl-20250628.pdf. Names that do not follow the pattern give empty metadata.
func MetadataFromFilename(name string) Metadata {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	m := filenameMetadata.FindStringSubmatch(stem)
	if m == nil {
		return Metadata{}
	}
	year, err := strconv.Atoi(m[2][:4])
	if err != nil {
		return Metadata{}
	}
	return Metadata{Company: strings.ToUpper(m[1]), Year: year}
}
