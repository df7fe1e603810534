// Package handler implements the HTTP handlers for the bus board API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, bus.go, upload.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/campusboard/busboard/internal/domain"
)

// ScheduleServicer defines the schedule operations the bus handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type ScheduleServicer interface {
	List(ctx context.Context) ([]domain.ScheduleEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.ScheduleEntry, error)
	Create(ctx context.Context, entry domain.ScheduleEntry) (domain.ScheduleEntry, error)
	Update(ctx context.Context, entry domain.ScheduleEntry) (domain.ScheduleEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceSchedule(ctx context.Context, rows []domain.RawRow) (domain.UploadResult, error)
}

// BoardServicer builds the classified board for a location view.
type BoardServicer interface {
	Board(ctx context.Context, view string) (domain.Board, error)
}

// OptedInServicer manages the opted-in student list.
type OptedInServicer interface {
	Upload(ctx context.Context, rows []domain.RawRow) (domain.OptedInUploadResult, error)
	List(ctx context.Context) ([]domain.OptedInEmail, error)
}

// AuthServicer exchanges identity provider tokens for sessions.
type AuthServicer interface {
	SignInWithGoogle(ctx context.Context, idToken string) (string, domain.Session, error)
}

// Services groups the handler dependencies. Nil members are allowed in tests
// that do not exercise the matching routes.
type Services struct {
	Schedules ScheduleServicer
	Boards    BoardServicer
	OptedIn   OptedInServicer
	Auth      AuthServicer
}

// Server serves every API endpoint.
type Server struct {
	schedules ScheduleServicer
	boards    BoardServicer
	optedIn   OptedInServicer
	auth      AuthServicer

	log      *slog.Logger
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svcs Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		schedules: svcs.Schedules,
		boards:    svcs.Boards,
		optedIn:   svcs.OptedIn,
		auth:      svcs.Auth,
		log:       log,
		validate:  newValidator(),
	}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/buses", s.ListBuses)
	r.Post("/buses", s.CreateBus)
	r.Post("/buses/upload", s.UploadSchedule)
	r.Get("/buses/{id}", s.GetBus)
	r.Put("/buses/{id}", s.UpdateBus)
	r.Delete("/buses/{id}", s.DeleteBus)

	r.Get("/board", s.GetBoard)

	r.Get("/opted-in", s.ListOptedIn)
	r.Post("/opted-in/upload", s.UploadOptedIn)

	r.Post("/auth/google", s.SignInWithGoogle)
	r.Get("/auth/me", s.GetMe)
}

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
