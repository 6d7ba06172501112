package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/internship-finder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PreservesRowOrder(t *testing.T) {
	csv := "Job_Title,Required_Skills\n" +
		"Backend Developer,\"Python, SQL\"\n" +
		"Graphic Designer,Photoshop\n" +
		"Web Developer,\"HTML, CSS, JavaScript\"\n"

	entries, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, types.CatalogEntry{Title: "Backend Developer", RequiredSkills: []string{"Python", "SQL"}}, entries[0])
	assert.Equal(t, types.CatalogEntry{Title: "Graphic Designer", RequiredSkills: []string{"Photoshop"}}, entries[1])
	assert.Equal(t, []string{"HTML", "CSS", "JavaScript"}, entries[2].RequiredSkills)
}

func TestParse_ExtraColumnsAndOrder(t *testing.T) {
	csv := "Company,Required_Skills,Location,Job_Title\n" +
		"Acme,Java,Remote,Java Engineer\n"

	entries, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Java Engineer", entries[0].Title)
	assert.Equal(t, []string{"Java"}, entries[0].RequiredSkills)
}

func TestParse_SplitsOnCommaSpaceOnly(t *testing.T) {
	csv := "Job_Title,Required_Skills\nData Scientist,\"Python,Machine Learning\"\n"

	entries, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"Python,Machine Learning"}, entries[0].RequiredSkills)
}

func TestParse_HeaderOnly(t *testing.T) {
	entries, err := Parse(strings.NewReader("Job_Title,Required_Skills\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		csv   string
		row   int
		field string
	}{
		{name: "empty file", csv: "", row: 0},
		{name: "missing skills column", csv: "Job_Title,Salary\nDev,100\n", row: 1, field: SkillsColumn},
		{name: "missing title column", csv: "Name,Required_Skills\nDev,Python\n", row: 1, field: TitleColumn},
		{name: "short row", csv: "Job_Title,Required_Skills\nBackend Developer,Python\nOrphan\n", row: 3, field: SkillsColumn},
		{name: "blank skills", csv: "Job_Title,Required_Skills\nBackend Developer,\n", row: 2, field: SkillsColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv))
			require.Error(t, err)

			var formatErr *DataFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.row, formatErr.Row)
			assert.Equal(t, tt.field, formatErr.Field)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job_listings.csv")
	require.NoError(t, os.WriteFile(path, []byte("Job_Title,Required_Skills\nFrontend Developer,\"HTML, CSS\"\n"), 0o600))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Frontend Developer", entries[0].Title)
}

func TestLoad_ErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Job_Title,Required_Skills\nDev\n"), 0o600))

	_, err := Load(path)
	var formatErr *DataFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, path, formatErr.Path)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	var formatErr *DataFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestLoad_BundledCatalog(t *testing.T) {
	entries, err := Load(filepath.Join("..", "..", "job_listings.csv"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
