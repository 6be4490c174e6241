package middleware

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateDocumentName(t *testing.T) {
	for _, ok := range []string{"contract.pdf", "Lease.DOCX", "nda.doc", "notes.txt"} {
		assert.NoError(t, ValidateDocumentName(ok), ok)
	}
	for _, bad := range []string{"", "  ", "image.png", "archive", "../etc/passwd.txt", "a/b.pdf"} {
		assert.Error(t, ValidateDocumentName(bad), bad)
	}
}

func TestValidateDocumentSize(t *testing.T) {
	assert.NoError(t, ValidateDocumentSize(10, MaxDocumentBytes))
	assert.NoError(t, ValidateDocumentSize(MaxDocumentBytes, MaxDocumentBytes))
	assert.Error(t, ValidateDocumentSize(MaxDocumentBytes+1, MaxDocumentBytes))
	assert.Error(t, ValidateDocumentSize(0, MaxDocumentBytes))
	assert.NoError(t, ValidateDocumentSize(MaxDocumentBytes+1, 0))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello\tworld", SanitizeString("  hel\x00lo\tworld\x07 "))
}

func TestStripControlKeepsWhitespace(t *testing.T) {
	assert.Equal(t, "  hello\tworld\n ", StripControl("  hel\x00lo\tworld\x07\n "))
	assert.Equal(t, "   ", StripControl("   "))
}

func TestValidateSessionID(t *testing.T) {
	assert.NoError(t, ValidateSessionID(uuid.NewString()))
	assert.Error(t, ValidateSessionID(""))
	assert.Error(t, ValidateSessionID("not-a-uuid"))
}

func TestValidateLanguageCode(t *testing.T) {
	assert.NoError(t, ValidateLanguageCode("hi"))
	assert.Error(t, ValidateLanguageCode("HI"))
	assert.Error(t, ValidateLanguageCode("english"))
}

func TestValidateLimitAndDays(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 100, ValidateLimit(1000))
	assert.Equal(t, 5, ValidateLimit(5))
	assert.Equal(t, 30, ValidateDays(-1))
	assert.Equal(t, 365, ValidateDays(4000))
	assert.Equal(t, 90, ValidateDays(90))
}
