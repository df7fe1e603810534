package ingest

import (
	"fmt"
	"strings"

	"github.com/campusboard/busboard/internal/domain"
)

// emailColumns are the header spellings accepted for the opted-in upload.
var emailColumns = []string{"email", "Email", "EMAIL"}

// ValidateEmails extracts opted-in student addresses from an uploaded sheet.
// Rows without an address are skipped. Every address must belong to one of
// allowedDomains; any violation rejects the whole file and the messages are
// returned instead of the addresses.
func ValidateEmails(rows []domain.RawRow, allowedDomains []string) ([]string, []string, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("ingest.ValidateEmails: %w", domain.ErrEmptyBatch)
	}

	var (
		emails []string
		errs   []string
	)
	for i, row := range rows {
		raw := firstNonEmpty(row, emailColumns)
		if raw == "" {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(raw))
		if !EmailInDomains(email, allowedDomains) {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid domain for %s. Must be %s", i+2, email, domainList(allowedDomains)))
			continue
		}
		emails = append(emails, email)
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return emails, nil, nil
}

// EmailInDomains reports whether the part after the last '@' is exactly one
// of domains. Comparison is case-insensitive.
func EmailInDomains(email string, domains []string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	host := strings.ToLower(email[at+1:])
	for _, d := range domains {
		if strings.EqualFold(host, d) {
			return true
		}
	}
	return false
}

func firstNonEmpty(row domain.RawRow, keys []string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(row[k]); v != "" {
			return v
		}
	}
	return ""
}

func domainList(domains []string) string {
	parts := make([]string, len(domains))
	for i, d := range domains {
		parts[i] = "@" + d
	}
	return strings.Join(parts, " or ")
}
