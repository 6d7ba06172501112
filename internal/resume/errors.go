// Package resume extracts plain text from uploaded PDF resumes.
package resume

import "fmt"

// UploadError represents a missing or unusable upload.
type UploadError struct {
	Message string
	Cause   error
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upload error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upload error: %s", e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// ParseError represents a PDF that could not be read.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
