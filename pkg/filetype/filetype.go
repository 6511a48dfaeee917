package filetype

import (
	ftype "github.com/h2non/filetype"
)

// DefaultType is the type used when we can't know/guess the filetype.
const DefaultType = "application/octet-stream"

// Match returns the mime-type (no charset) if it can guess from the first
// bytes, or the default content-type else.
func Match(buf []byte) string {
	mimetype := DefaultType
	if kind, err := ftype.Match(buf); err == nil && kind != ftype.Unknown {
		mimetype = kind.MIME.Value
	}
	return mimetype
}

// Extension returns the usual extension (without dot) for the content, or an
// empty string if it is not recognized.
func Extension(buf []byte) string {
	kind, err := ftype.Match(buf)
	if err != nil || kind == ftype.Unknown {
		return ""
	}
	return kind.Extension
}

// Matches returns true if the sniffed mime-type of buf is the expected one.
// Contents that can't be recognized are considered as matching.
func Matches(buf []byte, expected string) bool {
	mimetype := Match(buf)
	return mimetype == DefaultType || mimetype == expected
}
