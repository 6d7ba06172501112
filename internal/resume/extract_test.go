package resume

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/internship-finder/internal/resume/resumetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_SinglePage(t *testing.T) {
	data := resumetest.BuildPDF("Experienced in Python and JavaScript projects")

	text, err := ExtractText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Contains(t, text, "Experienced in Python and JavaScript projects")
}

func TestExtractText_PagesInOrder(t *testing.T) {
	data := resumetest.BuildPDF("first page HTML", "second page CSS")

	text, err := ExtractText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	first := strings.Index(text, "first page HTML")
	second := strings.Index(text, "second page CSS")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestExtractText_EmptyPageContributesNothing(t *testing.T) {
	data := resumetest.BuildPDF("", "Java")

	text, err := ExtractText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "Java", strings.TrimSpace(text))
}

func TestExtractText_NotAPDF(t *testing.T) {
	data := []byte("this is plain text, not a pdf")

	_, err := ExtractText(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestExtractText_Truncated(t *testing.T) {
	data := resumetest.BuildPDF("Python")
	data = data[:len(data)/2]

	_, err := ExtractText(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, resumetest.BuildPDF("Machine Learning"), 0o600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Machine Learning")
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)

	var uploadErr *UploadError
	assert.ErrorAs(t, err, &uploadErr)
}
