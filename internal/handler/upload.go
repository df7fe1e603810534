package handler

import (
	"errors"
	"net/http"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/domain"
	"github.com/campusboard/busboard/internal/ingest"
)

// uploadField is the multipart field carrying the spreadsheet.
const uploadField = "file"

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files.
const multipartMemory = 1 << 20

// OptedInEmail is the JSON representation of an opted-in student.
type OptedInEmail struct {
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// UploadSchedule handles POST /buses/upload.
// 200 with the result when the schedule was replaced, 422 with the same shape
// when the file was rejected.
func (s *Server) UploadSchedule(w http.ResponseWriter, r *http.Request) {
	// Reject before reading the file so non-admins never see validation output.
	if err := auth.RequireAdmin(r.Context()); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	rows, status, msg := readUploadedRows(r)
	if msg != "" {
		writeJSON(w, status, domain.UploadResult{Errors: []domain.RowValidationError{}, Message: msg})
		return
	}

	res, err := s.schedules.ReplaceSchedule(r.Context(), rows)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.log.InfoContext(r.Context(), "schedule upload",
		"success", res.Success,
		"inserted", res.Inserted,
		"errors", len(res.Errors),
		"by", auth.FromContext(r.Context()).Email,
	)
	writeJSON(w, uploadStatus(res.Success), res)
}

// UploadOptedIn handles POST /opted-in/upload.
func (s *Server) UploadOptedIn(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireAdmin(r.Context()); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	rows, status, msg := readUploadedRows(r)
	if msg != "" {
		writeJSON(w, status, domain.OptedInUploadResult{Errors: []string{}, Message: msg})
		return
	}

	res, err := s.optedIn.Upload(r.Context(), rows)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.log.InfoContext(r.Context(), "opted-in upload",
		"success", res.Success,
		"processed", res.Processed,
		"added", res.Added,
		"by", auth.FromContext(r.Context()).Email,
	)
	writeJSON(w, uploadStatus(res.Success), res)
}

// ListOptedIn handles GET /opted-in.
func (s *Server) ListOptedIn(w http.ResponseWriter, r *http.Request) {
	emails, err := s.optedIn.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	out := make([]OptedInEmail, len(emails))
	for i, e := range emails {
		out[i] = OptedInEmail{Email: e.Email, CreatedAt: e.CreatedAt.UTC().Format(timeFormat)}
	}
	writeJSON(w, http.StatusOK, out)
}

// readUploadedRows extracts the CSV rows from the multipart request. On
// failure it returns the status and message to report instead.
func readUploadedRows(r *http.Request) ([]domain.RawRow, int, string) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, "File is too large."
		}
		return nil, http.StatusUnprocessableEntity, "Upload must be multipart/form-data with a file field."
	}
	file, _, err := r.FormFile(uploadField)
	if err != nil {
		return nil, http.StatusUnprocessableEntity, "No file uploaded."
	}
	defer file.Close()

	rows, err := ingest.ReadRows(file)
	if err != nil {
		return nil, http.StatusUnprocessableEntity, "Could not read the file as CSV."
	}
	return rows, 0, ""
}

func uploadStatus(success bool) int {
	if success {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}
