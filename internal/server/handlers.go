package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"trifecta/internal/services"
	"trifecta/internal/validation"
)

// maxMultipartMemory bounds in-memory multipart parsing; larger parts spill
// to temporary files.
const maxMultipartMemory = 12 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

// handleSubmitForm accepts the multipart intake payload, re-validates it and
// persists the submission.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid multipart form data"})
		return
	}

	draft := &services.SubmissionDraft{
		CarName:     r.FormValue("carName"),
		CarColor:    r.FormValue("carColor"),
		CustomBase:  r.FormValue("customBase") == "yes",
		AcrylicCase: r.FormValue("acrylicCase") == "yes",
		Name:        r.FormValue("name"),
		Phone:       r.FormValue("phone"),
		Email:       r.FormValue("email"),
	}

	file, header, err := r.FormFile("carPhoto")
	switch {
	case err == nil:
		defer file.Close()
		// Read one byte past the limit so oversized uploads still trip the
		// size validation without buffering the whole file.
		data, readErr := io.ReadAll(io.LimitReader(file, validation.MaxPhotoBytes+1))
		if readErr != nil {
			log.Printf("[API] Failed to read uploaded photo %q: %v", header.Filename, readErr)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid multipart form data"})
			return
		}
		draft.Photo = &services.PhotoUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	case errors.Is(err, http.ErrMissingFile):
		// Photo is optional.
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid multipart form data"})
		return
	}

	if _, err := s.submissions.Submit(r.Context(), draft); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Validation failed",
				"details": verr.Fields,
			})
			return
		}
		// Storage details are never surfaced to the caller.
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to process form submission"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleGetSubmissions lists stored submissions for the admin dashboard. The
// session gate runs here independently so a missing cookie yields 401, never
// an empty list.
func (s *Server) handleGetSubmissions(w http.ResponseWriter, r *http.Request) {
	if !s.admin.IsAuthenticated(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	views, err := s.submissions.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to read submissions"})
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": s.admin.IsAuthenticated(r)})
}

func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Password string `json:"password"`
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := s.admin.Login(payload.Password); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid password"})
		return
	}

	http.SetCookie(w, s.admin.SessionCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.admin.ClearSessionCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
