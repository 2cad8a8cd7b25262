package pdfgen

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// CountPages returns the number of pages in a PDF document.
func CountPages(data []byte) (n int, err error) {
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return 0, &Error{Message: "not a PDF document"}
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, &Error{Message: "malformed PDF document"}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, &Error{Message: "failed to read PDF", Cause: err}
	}
	return r.NumPage(), nil
}
