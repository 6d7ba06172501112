package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/jonathan/internship-finder/internal/types"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	pageUpload  = "upload.html"
	pageDetails = "details.html"
	pageJobs    = "jobs.html"
	pageError   = "error.html"
)

type detailsPage struct {
	Skills types.SkillSet
}

type jobsPage struct {
	Contact types.ContactDetails
	Jobs    []string
	Groups  []types.ListingGroup
}

type errorPage struct {
	Status     int
	StatusText string
}

// applyForm is the data behind one "Apply" button.
type applyForm struct {
	Title   string
	Contact types.ContactDetails
}

var pageFuncs = template.FuncMap{
	"applyForm": func(title string, contact types.ContactDetails) applyForm {
		return applyForm{Title: title, Contact: contact}
	},
}

// parsePages loads every embedded page template.
func parsePages() (*template.Template, error) {
	tmpl, err := template.New("pages").Funcs(pageFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return tmpl, nil
}

// render executes a page into a buffer first so a template failure never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, page, data); err != nil {
		log.Printf("[wizard] failed to render %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[wizard] failed to write %s: %v", page, err)
	}
}

// renderError logs err and shows the generic failure page with the mapped status.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	log.Printf("[wizard] %s %s failed (%d): %v", r.Method, r.URL.Path, status, err)
	s.render(w, status, pageError, errorPage{Status: status, StatusText: http.StatusText(status)})
}
