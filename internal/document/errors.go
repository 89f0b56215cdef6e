package document

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrMissingFile     = errors.New("no file provided")
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidName     = errors.New("invalid file name")
	ErrNotFound        = errors.New("document not found")
	ErrStorage         = errors.New("document storage failed")
)
