// Package types provides type definitions for structured data used throughout the internship finder.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotAvailable is the company placeholder for listings that omit a company name.
const NotAvailable = "N/A"

// SkillSet is the set of canonical skill names found in a resume.
// Order carries no meaning; values are unique.
type SkillSet []string

// Query joins the skills with single spaces, the form listing sources expect.
func (s SkillSet) Query() string {
	return strings.Join(s, " ")
}

// ContactDetails holds the applicant's contact fields from the details step.
type ContactDetails struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// Validate checks that every contact field is present.
func (c *ContactDetails) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// ApplyRequest is the payload of the final "apply" step.
type ApplyRequest struct {
	JobTitle string `json:"job_title" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Validate checks that the job title and applicant name are present.
func (r *ApplyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CatalogEntry is one row of the job catalog.
type CatalogEntry struct {
	Title          string   `json:"title"`
	RequiredSkills []string `json:"required_skills"`
}

// Listing is a posting scraped from an external site.
type Listing struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Link    string `json:"link"`
}

// ListingGroup holds the listings returned by one external source.
type ListingGroup struct {
	Source   string    `json:"source"`
	Heading  string    `json:"heading"`
	Listings []Listing `json:"listings"`
}

// SessionState is the per-browser wizard state kept between requests.
type SessionState struct {
	Skills   SkillSet        `json:"skills,omitempty"`
	Uploaded bool            `json:"uploaded"`
	Contact  *ContactDetails `json:"contact,omitempty"`
}

// HasUpload reports whether the upload step has completed for this session.
func (s *SessionState) HasUpload() bool {
	return s != nil && s.Uploaded
}
