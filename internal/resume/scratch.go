package resume

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveScratch copies src into dir under a per-call unique name derived from
// filename and returns the written path. The caller owns removal.
func SaveScratch(dir, filename string, src io.Reader) (string, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", &UploadError{Message: "uploaded file has no name"}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &UploadError{Message: "failed to create upload directory", Cause: err}
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s", uuid.New().String(), base))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", &UploadError{Message: "failed to create scratch file", Cause: err}
	}

	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", &UploadError{Message: "failed to write scratch file", Cause: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", &UploadError{Message: "failed to close scratch file", Cause: err}
	}

	return path, nil
}
