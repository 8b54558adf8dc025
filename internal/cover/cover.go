// Package cover validates user-supplied cover images before the path is
// stored as a preference.
package cover

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
)

// DefaultLimitMB is the size cap used when none is configured.
const DefaultLimitMB = 2.0

const mebibyte = 1024 * 1024

// ErrUnsupportedType rejects anything other than JPEG, PNG or WebP.
var ErrUnsupportedType = errors.New("unsupported image type")

// ErrTooLarge rejects images over the size limit.
var ErrTooLarge = errors.New("image too large")

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Validate checks a MIME type (exact, case-sensitive) and a byte size
// against limitMB. The limit is inclusive; non-positive limits mean the
// default.
func Validate(mime string, size int64, limitMB float64) error {
	if !allowedTypes[mime] {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, mime)
	}
	if limitMB <= 0 {
		limitMB = DefaultLimitMB
	}
	if float64(size)/mebibyte > limitMB {
		return fmt.Errorf("%w: %s exceeds %s", ErrTooLarge,
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limitMB*mebibyte)))
	}
	return nil
}

// ValidateFile sniffs the type of the file at path and applies Validate.
func ValidateFile(path string, limitMB float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open cover image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat cover image: %w", err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read cover image: %w", err)
	}
	return Validate(http.DetectContentType(head[:n]), info.Size(), limitMB)
}
