package ocr

import "errors"

var (
	ErrUnsupported = errors.New("ocr: unsupported file type")
	ErrNoText      = errors.New("ocr: no text recognized")
)
