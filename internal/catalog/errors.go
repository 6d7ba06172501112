// Package catalog loads the CSV job catalog and suggests jobs for a skill set.
package catalog

import "fmt"

// DataFormatError represents a catalog that does not have the expected shape.
// Row is 1-based and counts the header; zero means the file as a whole.
type DataFormatError struct {
	Path    string
	Row     int
	Field   string
	Message string
	Cause   error
}

func (e *DataFormatError) Error() string {
	loc := e.Path
	if e.Row > 0 {
		loc = fmt.Sprintf("%s row %d", e.Path, e.Row)
	}
	if e.Field != "" {
		loc = fmt.Sprintf("%s field %s", loc, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("catalog format error in %s: %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog format error in %s: %s", loc, e.Message)
}

func (e *DataFormatError) Unwrap() error {
	return e.Cause
}
