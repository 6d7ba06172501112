package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jonathan/internship-finder/internal/types"
)

const (
	// TitleColumn is the header of the job title column.
	TitleColumn = "Job_Title"
	// SkillsColumn is the header of the required skills column.
	SkillsColumn = "Required_Skills"

	// skillSeparator splits the required skills cell.
	skillSeparator = ", "
)

// Load reads the catalog at path. It is called per request; nothing is cached.
func Load(path string) ([]types.CatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataFormatError{Path: path, Message: "failed to open catalog", Cause: err}
	}
	defer func() { _ = f.Close() }()

	entries, err := Parse(f)
	if err != nil {
		var formatErr *DataFormatError
		if errors.As(err, &formatErr) {
			formatErr.Path = path
		}
		return nil, err
	}
	return entries, nil
}

// Parse reads catalog rows from r in source order. The first record is a
// header naming at least the Job_Title and Required_Skills columns. Any row
// without a required-skills value fails the whole load.
func Parse(r io.Reader) ([]types.CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &DataFormatError{Message: "catalog is empty"}
	}
	if err != nil {
		return nil, &DataFormatError{Row: 1, Message: "unreadable header", Cause: err}
	}

	titleIdx, skillsIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case TitleColumn:
			titleIdx = i
		case SkillsColumn:
			skillsIdx = i
		}
	}
	if titleIdx < 0 {
		return nil, &DataFormatError{Row: 1, Field: TitleColumn, Message: "missing column"}
	}
	if skillsIdx < 0 {
		return nil, &DataFormatError{Row: 1, Field: SkillsColumn, Message: "missing column"}
	}

	var entries []types.CatalogEntry
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DataFormatError{Row: row, Message: "unreadable row", Cause: err}
		}

		if titleIdx >= len(record) {
			return nil, &DataFormatError{Row: row, Field: TitleColumn, Message: "missing value"}
		}
		if skillsIdx >= len(record) || strings.TrimSpace(record[skillsIdx]) == "" {
			return nil, &DataFormatError{Row: row, Field: SkillsColumn, Message: "missing value"}
		}

		entries = append(entries, types.CatalogEntry{
			Title:          record[titleIdx],
			RequiredSkills: strings.Split(record[skillsIdx], skillSeparator),
		})
	}

	return entries, nil
}
