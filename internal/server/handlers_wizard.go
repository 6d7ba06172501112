package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/internship-finder/internal/pipeline"
	"github.com/jonathan/internship-finder/internal/resume"
	"github.com/jonathan/internship-finder/internal/server/middleware"
	"github.com/jonathan/internship-finder/internal/types"
)

// resumeField is the multipart field carrying the uploaded PDF.
const resumeField = "resume"

// handleIndex renders the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, pageUpload, nil)
}

// redirectToStart sends direct visits to later steps back to the upload form.
func (s *Server) redirectToStart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDetails accepts the resume upload, extracts skills, and renders the
// contact details form.
func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	maxBytes := s.cfg.MaxUploadBytes()
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.renderError(w, r, &resume.UploadError{Message: fmt.Sprintf("upload exceeds %d MB", s.cfg.MaxUploadMB), Cause: err})
			return
		}
		s.renderError(w, r, &resume.UploadError{Message: "expected a multipart form", Cause: err})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(resumeField)
	if err != nil {
		s.renderError(w, r, &resume.UploadError{Message: fmt.Sprintf("missing %q file field", resumeField), Cause: err})
		return
	}
	defer func() { _ = file.Close() }()

	found, err := pipeline.AnalyzeUpload(s.cfg.UploadDir, header.Filename, file)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	log.Printf("[wizard] session %s: %d skills found in %q", id, len(found), header.Filename)

	state := &types.SessionState{Skills: found, Uploaded: true}
	if err := s.store.Save(r.Context(), id, state); err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, pageDetails, detailsPage{Skills: found})
}

// handleJobs stores the contact details and renders catalog suggestions with
// external listings. A session without a completed upload is sent back to /.
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	id, state, ok := s.loadUploadedSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, &ErrValidation{Field: "(form)", Message: err.Error()})
		return
	}
	contact := types.ContactDetails{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Email: strings.TrimSpace(r.PostFormValue("email")),
		Phone: strings.TrimSpace(r.PostFormValue("phone")),
	}
	if err := contact.Validate(); err != nil {
		s.renderError(w, r, validationError(err))
		return
	}

	state.Contact = &contact
	if err := s.store.Save(r.Context(), id, state); err != nil {
		s.renderError(w, r, err)
		return
	}

	suggestions, err := pipeline.Suggest(r.Context(), pipeline.SuggestOptions{
		Skills:      state.Skills,
		CatalogPath: s.cfg.CatalogPath,
		Fetcher:     s.fetcher,
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, pageJobs, jobsPage{
		Contact: contact,
		Jobs:    suggestions.Jobs,
		Groups:  suggestions.Listings,
	})
}

// handleApply confirms an application. Nothing is stored.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, &ErrValidation{Field: "(form)", Message: err.Error()})
		return
	}
	req := types.ApplyRequest{
		JobTitle: r.PostFormValue("job_title"),
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Phone:    r.PostFormValue("phone"),
	}
	if err := req.Validate(); err != nil {
		s.renderError(w, r, validationError(err))
		return
	}

	log.Printf("[wizard] application for %q by %q", req.JobTitle, req.Name)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "Application submitted for %s by %s!", req.JobTitle, req.Name)
}

// loadUploadedSession returns the caller's session state, redirecting to the
// start page when the upload step has not been completed.
func (s *Server) loadUploadedSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, *types.SessionState, bool) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		s.renderError(w, r, err)
		return uuid.Nil, nil, false
	}

	state, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return uuid.Nil, nil, false
	}
	if !state.HasUpload() {
		log.Printf("[wizard] session %s has no upload; redirecting to start", id)
		s.redirectToStart(w, r)
		return uuid.Nil, nil, false
	}
	return id, state, true
}
