package uploads

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// verifyPDF parses data as a PDF and requires at least one page. The parser
// panics on some malformed inputs, which is reported as an error.
func verifyPDF(data []byte) (err error) {
	if len(data) == 0 {
		return errors.New("empty pdf")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse pdf: %v", rec)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	if reader.NumPage() < 1 {
		return errors.New("pdf has no pages")
	}
	return nil
}
