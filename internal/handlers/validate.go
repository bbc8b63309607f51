package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for API fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxBodyLen     = 200_000
	maxNameLen     = 200
	maxMetaLen     = 500
	maxCommentLen  = 10_000
	maxDefLen      = 20_000
	maxCategoryLen = 100
)

// validateTitleSlug checks the shared title/slug constraints of content,
// catalog and category payloads. Returns the first error found, or "".
func validateTitleSlug(title, slug string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	return ""
}

// validateSlug checks the slug constraint alone, for partial updates
// that leave the title untouched.
func validateSlug(slug string) string {
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	return ""
}

// validateBody checks a rich-text body field.
func validateBody(body string) string {
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "body is too long (max 200,000 characters)"
	}
	return ""
}

// validateComment checks a comment submission. All three fields are
// mandatory; the email must at least parse.
func validateComment(name, email, body string) string {
	if strings.TrimSpace(name) == "" {
		return "author_name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "author_name is too long (max 200 characters)"
	}
	if strings.TrimSpace(email) == "" {
		return "author_email is required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "author_email is not a valid address"
	}
	if strings.TrimSpace(body) == "" {
		return "body is required"
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return "body is too long (max 10,000 characters)"
	}
	return ""
}
