package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Input validation and sanitization utilities

// MaxDocumentBytes is the soft upload guideline shown by the dashboard.
const MaxDocumentBytes = 20 << 20

var allowedDocumentExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// ValidateDocumentName checks the uploaded file name and its extension.
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid characters in file name")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedDocumentExt[ext] {
		return fmt.Errorf("invalid file type %q (allowed: .pdf, .doc, .docx, .txt)", ext)
	}
	return nil
}

// ValidateDocumentSize rejects empty files and files over max bytes.
func ValidateDocumentSize(size, max int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if max > 0 && size > max {
		return fmt.Errorf("file is %d bytes, limit is %d", size, max)
	}
	return nil
}

// StripControl drops null bytes and control characters other than tab and
// newline. Surrounding whitespace is kept.
func StripControl(input string) string {
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	return strings.TrimSpace(StripControl(input))
}

// ValidateSessionID validates session ID format
func ValidateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid session ID format")
	}
	return nil
}

var languageCode = regexp.MustCompile(`^[a-z]{2,3}$`)

// ValidateLanguageCode checks the shape of an ISO 639 code.
func ValidateLanguageCode(code string) error {
	if !languageCode.MatchString(code) {
		return fmt.Errorf("invalid language code %q", code)
	}
	return nil
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays validates days parameter
func ValidateDays(days int) int {
	if days <= 0 {
		return 30 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}
