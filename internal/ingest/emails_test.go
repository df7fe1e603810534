package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/busboard/internal/domain"
	"github.com/campusboard/busboard/internal/ingest"
)

var orgDomains = []string{"scaler.com", "sst.scaler.com"}

func TestValidateEmails_OK(t *testing.T) {
	rows := []domain.RawRow{
		{"email": " Alex@SST.Scaler.com "},
		{"Email": "sam@scaler.com"},
		{"EMAIL": ""},
		{"name": "no address"},
	}

	emails, errs, err := ingest.ValidateEmails(rows, orgDomains)

	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"alex@sst.scaler.com", "sam@scaler.com"}, emails)
}

func TestValidateEmails_BadDomainRejectsFile(t *testing.T) {
	rows := []domain.RawRow{
		{"email": "ok@scaler.com"},
		{"email": "intruder@gmail.com"},
		{"email": "tricky@notscaler.com"},
	}

	emails, errs, err := ingest.ValidateEmails(rows, orgDomains)

	require.NoError(t, err)
	assert.Nil(t, emails)
	assert.Equal(t, []string{
		"Row 3: Invalid domain for intruder@gmail.com. Must be @scaler.com or @sst.scaler.com",
		"Row 4: Invalid domain for tricky@notscaler.com. Must be @scaler.com or @sst.scaler.com",
	}, errs)
}

func TestValidateEmails_Empty(t *testing.T) {
	_, _, err := ingest.ValidateEmails(nil, orgDomains)

	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestEmailInDomains(t *testing.T) {
	assert.True(t, ingest.EmailInDomains("a@scaler.com", orgDomains))
	assert.True(t, ingest.EmailInDomains("a@SST.SCALER.COM", orgDomains))
	assert.False(t, ingest.EmailInDomains("a@evil.sst.scaler.com", orgDomains))
	assert.False(t, ingest.EmailInDomains("@scaler.com", orgDomains))
	assert.False(t, ingest.EmailInDomains("a@", orgDomains))
	assert.False(t, ingest.EmailInDomains("plain", orgDomains))
}
