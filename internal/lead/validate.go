package lead

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// User-facing validation errors, in the site's language. The first violated
// rule is the one the visitor sees, so the order in Validate matters.
var (
	ErrRequired       = errors.New("Nome e e-mail são obrigatórios.")
	ErrInvalidEmail   = errors.New("E-mail inválido.")
	ErrNameTooLong    = errors.New("Nome muito longo.")
	ErrMessageTooLong = errors.New("Mensagem muito longa.")
	ErrInvalidPhone   = errors.New("Telefone inválido.")
)

const (
	maxNameLen     = 120
	maxMessageLen  = 2000
	maxTrackingLen = 500
	minPhoneDigits = 10
	maxPhoneDigits = 13
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
	idnaProfile     = idna.Lookup
)

// Validate checks the submission against the form rules and returns the first
// violated one. The tracking fields are clamped to a sane length regardless of
// the outcome; that is a silent normalization, never an error.
func Validate(s *Submission) error {
	s.PagePath = truncate(s.PagePath, maxTrackingLen)
	s.Referrer = truncate(s.Referrer, maxTrackingLen)

	if s.Name == "" || s.Email == "" {
		return ErrRequired
	}
	if !validEmail(s.Email) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(s.Name) > maxNameLen {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(s.Message) > maxMessageLen {
		return ErrMessageTooLong
	}
	if s.Phone != "" {
		digits := nonDigitPattern.ReplaceAllString(s.Phone, "")
		if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
			return ErrInvalidPhone
		}
	}
	return nil
}

// validEmail applies the simple local@domain.tld shape the form has always
// accepted, normalizing the domain to ASCII first so internationalized
// domains are judged on their punycode form.
func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain, err := idnaProfile.ToASCII(email[at+1:])
	if err != nil {
		return false
	}
	return emailPattern.MatchString(email[:at+1] + domain)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
