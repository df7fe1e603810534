package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/domain"
	"github.com/campusboard/busboard/internal/ingest"
	"github.com/campusboard/busboard/internal/repo"
)

// maxListedErrors caps how many row errors are repeated in the message.
const maxListedErrors = 5

// OptedInService manages the opted-in student address list.
type OptedInService struct {
	repo    repo.OptedInRepo
	domains []string
}

// NewOptedInService constructs an OptedInService accepting addresses in domains.
func NewOptedInService(r repo.OptedInRepo, domains []string) *OptedInService {
	return &OptedInService{repo: r, domains: domains}
}

// Upload registers every address in rows. Any address outside the allowed
// domains rejects the whole file. Like ReplaceSchedule, rejections come back
// as an unsuccessful result rather than an error.
func (s *OptedInService) Upload(ctx context.Context, rows []domain.RawRow) (domain.OptedInUploadResult, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return domain.OptedInUploadResult{}, fmt.Errorf("service.OptedInService.Upload: %w", err)
	}

	emails, errs, err := ingest.ValidateEmails(rows, s.domains)
	if errors.Is(err, domain.ErrEmptyBatch) {
		return optedInRejected(nil, "File is empty."), nil
	}
	if err != nil {
		return domain.OptedInUploadResult{}, fmt.Errorf("service.OptedInService.Upload: %w", err)
	}
	if len(errs) > 0 {
		return optedInRejected(errs, uploadFailedMessage(errs)), nil
	}
	if len(emails) == 0 {
		return optedInRejected(nil, "No valid emails found in the file."), nil
	}

	added, err := s.repo.InsertMissing(ctx, emails)
	if err != nil {
		return domain.OptedInUploadResult{}, fmt.Errorf("service.OptedInService.Upload: %w", err)
	}
	return domain.OptedInUploadResult{
		Success:   true,
		Processed: len(emails),
		Added:     int(added),
		Errors:    []string{},
		Message:   fmt.Sprintf("Success! Processed %d opted-in students.", len(emails)),
	}, nil
}

// List returns all registered addresses. Admin only.
func (s *OptedInService) List(ctx context.Context) ([]domain.OptedInEmail, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, fmt.Errorf("service.OptedInService.List: %w", err)
	}
	emails, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.OptedInService.List: %w", err)
	}
	return emails, nil
}

func optedInRejected(errs []string, msg string) domain.OptedInUploadResult {
	if errs == nil {
		errs = []string{}
	}
	return domain.OptedInUploadResult{Errors: errs, Message: msg}
}

func uploadFailedMessage(errs []string) string {
	shown := errs
	if len(shown) > maxListedErrors {
		shown = shown[:maxListedErrors]
	}
	msg := fmt.Sprintf("Upload Failed. %d errors found:\n%s", len(errs), strings.Join(shown, "\n"))
	if len(errs) > maxListedErrors {
		msg += "\n..."
	}
	return msg
}
