package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/domain"
)

// Bus is the JSON representation of a schedule entry.
type Bus struct {
	ID                 openapi_types.UUID `json:"id"`
	Origin             string             `json:"origin"`
	SpecialOrigin      *string            `json:"special_origin"`
	Destination        string             `json:"destination"`
	SpecialDestination *string            `json:"special_destination"`
	DepartureTime      time.Time          `json:"departure_time"`
	Status             string             `json:"status"`
	IsPaid             bool               `json:"is_paid"`
	CreatedAt          time.Time          `json:"created_at"`
	ModifiedAt         time.Time          `json:"modified_at"`
}

// BusInput is the body of POST /buses and PUT /buses/{id}.
// Special names are required only when the matching endpoint is "Special".
type BusInput struct {
	Origin             string  `json:"origin" validate:"required,oneof=Uniworld-1 Uniworld-2 Macro Special"`
	SpecialOrigin      *string `json:"special_origin" validate:"required_if=Origin Special,omitempty,max=120"`
	Destination        string  `json:"destination" validate:"required,oneof=Uniworld-1 Uniworld-2 Macro Special"`
	SpecialDestination *string `json:"special_destination" validate:"required_if=Destination Special,omitempty,max=120"`
	DepartureTime      string  `json:"departure_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Status             *string `json:"status" validate:"omitempty,max=64"`
	IsPaid             *bool   `json:"is_paid"`
}

// ListBuses handles GET /buses.
func (s *Server) ListBuses(w http.ResponseWriter, r *http.Request) {
	entries, err := s.schedules.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, busesToResponse(entries))
}

// GetBus handles GET /buses/{id}.
func (s *Server) GetBus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	entry, err := s.schedules.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, notFoundMessage("bus"))
		return
	}
	writeJSON(w, http.StatusOK, busToResponse(entry))
}

// CreateBus handles POST /buses.
func (s *Server) CreateBus(w http.ResponseWriter, r *http.Request) {
	// Reject before validating so non-admins never see field errors.
	if err := auth.RequireAdmin(r.Context()); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	entry, ok := s.decodeBus(w, r)
	if !ok {
		return
	}
	created, err := s.schedules.Create(r.Context(), entry)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, busToResponse(created))
}

// UpdateBus handles PUT /buses/{id}.
func (s *Server) UpdateBus(w http.ResponseWriter, r *http.Request) {
	// Reject before validating so non-admins never see field errors.
	if err := auth.RequireAdmin(r.Context()); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	entry, ok := s.decodeBus(w, r)
	if !ok {
		return
	}
	entry.ID = id

	updated, err := s.schedules.Update(r.Context(), entry)
	if err != nil {
		s.writeError(w, r, err, notFoundMessage("bus"))
		return
	}
	writeJSON(w, http.StatusOK, busToResponse(updated))
}

// DeleteBus handles DELETE /buses/{id}.
func (s *Server) DeleteBus(w http.ResponseWriter, r *http.Request) {
	// Reject before validating so non-admins never see field errors.
	if err := auth.RequireAdmin(r.Context()); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.schedules.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, notFoundMessage("bus"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID binds the {id} path parameter, writing a 422 when it is not a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// decodeBus reads and validates a BusInput, writing the error response itself
// when the body is unusable.
func (s *Server) decodeBus(w http.ResponseWriter, r *http.Request) (domain.ScheduleEntry, bool) {
	var in BusInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("too_large", "request body too large"))
			return domain.ScheduleEntry{}, false
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be a JSON bus object"))
		return domain.ScheduleEntry{}, false
	}

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, fieldsBody(verrs))
			return domain.ScheduleEntry{}, false
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return domain.ScheduleEntry{}, false
	}

	entry, err := inputToEntry(in)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return domain.ScheduleEntry{}, false
	}
	return entry, true
}

// inputToEntry converts a validated BusInput to a domain.ScheduleEntry.
func inputToEntry(in BusInput) (domain.ScheduleEntry, error) {
	departure, err := time.Parse(time.RFC3339, in.DepartureTime)
	if err != nil {
		return domain.ScheduleEntry{}, errors.New("departure_time must be an RFC 3339 timestamp")
	}
	entry := domain.ScheduleEntry{
		Origin:        domain.LocationFromColumns(in.Origin, in.SpecialOrigin),
		Destination:   domain.LocationFromColumns(in.Destination, in.SpecialDestination),
		DepartureTime: departure,
		IsPaid:        true,
	}
	if in.Status != nil {
		entry.Status = *in.Status
	}
	if in.IsPaid != nil {
		entry.IsPaid = *in.IsPaid
	}
	return entry, nil
}

// busToResponse converts a domain.ScheduleEntry to the JSON shape.
func busToResponse(e domain.ScheduleEntry) Bus {
	return Bus{
		ID:                 e.ID,
		Origin:             e.Origin.Kind(),
		SpecialOrigin:      e.Origin.SpecialName(),
		Destination:        e.Destination.Kind(),
		SpecialDestination: e.Destination.SpecialName(),
		DepartureTime:      e.DepartureTime,
		Status:             e.Status,
		IsPaid:             e.IsPaid,
		CreatedAt:          e.CreatedAt,
		ModifiedAt:         e.ModifiedAt,
	}
}

// busesToResponse never returns nil so an empty list encodes as [].
func busesToResponse(entries []domain.ScheduleEntry) []Bus {
	out := make([]Bus, len(entries))
	for i, e := range entries {
		out[i] = busToResponse(e)
	}
	return out
}
