package resume

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads every page of the PDF in r and returns the page texts in
// page order, separated by newlines. A page that yields no text contributes an
// empty string. A structurally invalid document fails with *ParseError.
func ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	// The pdf package panics on some malformed object graphs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &ParseError{Message: "malformed PDF", Cause: fmt.Errorf("%v", rec)}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", &ParseError{Message: "failed to open PDF", Cause: err}
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}

// ExtractFile opens the PDF at path and returns its text.
func ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &UploadError{Message: "failed to open uploaded file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", &UploadError{Message: "failed to stat uploaded file", Cause: err}
	}

	return ExtractText(f, info.Size())
}
