package pipeline

import "github.com/dustin/go-humanize"

// UnsupportedTypeError is returned when the upload policy rejects a file type.
type UnsupportedTypeError struct {
	Extension string
}

func (e UnsupportedTypeError) Error() string {
	return "file type not allowed: " + e.Extension
}

// FileTooLargeError is returned when an upload exceeds the size ceiling.
type FileTooLargeError struct {
	Limit int64
}

func (e FileTooLargeError) Error() string {
	return "file is too large, maximum: " + humanize.IBytes(uint64(e.Limit))
}

// InvalidContentError is returned when a file's bytes do not match what its
// extension claims, e.g. a .png that does not decode.
type InvalidContentError struct {
	Name string
}

func (e InvalidContentError) Error() string {
	return "file content does not match its extension"
}
