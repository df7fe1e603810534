package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/domain"
	"github.com/campusboard/busboard/internal/handler"
)

// mockScheduleServicer is a test double for handler.ScheduleServicer.
// Set only the method fields your test needs.
type mockScheduleServicer struct {
	list            func(ctx context.Context) ([]domain.ScheduleEntry, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.ScheduleEntry, error)
	create          func(ctx context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error)
	update          func(ctx context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	replaceSchedule func(ctx context.Context, rows []domain.RawRow) (domain.UploadResult, error)
}

func (m *mockScheduleServicer) List(ctx context.Context) ([]domain.ScheduleEntry, error) {
	return m.list(ctx)
}
func (m *mockScheduleServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.ScheduleEntry, error) {
	return m.getByID(ctx, id)
}
func (m *mockScheduleServicer) Create(ctx context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	return m.create(ctx, e)
}
func (m *mockScheduleServicer) Update(ctx context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	return m.update(ctx, e)
}
func (m *mockScheduleServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockScheduleServicer) ReplaceSchedule(ctx context.Context, rows []domain.RawRow) (domain.UploadResult, error) {
	return m.replaceSchedule(ctx, rows)
}

// compile-time check: mockScheduleServicer must satisfy handler.ScheduleServicer.
var _ handler.ScheduleServicer = (*mockScheduleServicer)(nil)

type mockBoardServicer struct {
	board func(ctx context.Context, view string) (domain.Board, error)
}

func (m *mockBoardServicer) Board(ctx context.Context, view string) (domain.Board, error) {
	return m.board(ctx, view)
}

var _ handler.BoardServicer = (*mockBoardServicer)(nil)

type mockOptedInServicer struct {
	upload func(ctx context.Context, rows []domain.RawRow) (domain.OptedInUploadResult, error)
	list   func(ctx context.Context) ([]domain.OptedInEmail, error)
}

func (m *mockOptedInServicer) Upload(ctx context.Context, rows []domain.RawRow) (domain.OptedInUploadResult, error) {
	return m.upload(ctx, rows)
}
func (m *mockOptedInServicer) List(ctx context.Context) ([]domain.OptedInEmail, error) {
	return m.list(ctx)
}

var _ handler.OptedInServicer = (*mockOptedInServicer)(nil)

type mockAuthServicer struct {
	signIn func(ctx context.Context, idToken string) (string, domain.Session, error)
}

func (m *mockAuthServicer) SignInWithGoogle(ctx context.Context, idToken string) (string, domain.Session, error) {
	return m.signIn(ctx, idToken)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	adminSession   = &domain.Session{Email: "admin@scaler.com", Role: domain.RoleAdmin}
	studentSession = &domain.Session{Email: "kid@sst.scaler.com", Role: domain.RoleStudent}
)

// newHTTPHandler wires a Server into a chi router the same way main.go does,
// with session standing in for the session middleware (nil is anonymous).
func newHTTPHandler(svcs handler.Services, session *domain.Session) http.Handler {
	r := chi.NewRouter()
	if session != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(auth.WithSession(req.Context(), *session)))
			})
		})
	}
	handler.NewServer(svcs, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes(r)
	return r
}

func busFixture() domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ID:            uuid.New(),
		Origin:        domain.Standard(domain.LocationUniworld1),
		Destination:   domain.Standard(domain.LocationMacro),
		DepartureTime: time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC),
		Status:        domain.DefaultStatus,
		IsPaid:        true,
		CreatedAt:     time.Now().UTC(),
		ModifiedAt:    time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// multipartCSV builds a multipart body with content under field.
func multipartCSV(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "upload.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeError(t *testing.T, body io.Reader) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}
