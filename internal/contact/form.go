// Package contact validates the contact form and relays it to Contact Form 7.
package contact

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

// Form is a submitted contact form. Phone is optional.
type Form struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Field names as they appear in the HTML form.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// FieldErrors maps a form field to its user-facing message.
type FieldErrors map[string]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "contact: invalid form: " + strings.Join(parts, "; ")
}

// Validate checks the form and returns nil or a non-empty FieldErrors.
// Lengths are counted in characters.
func (f Form) Validate() error {
	errs := FieldErrors{}
	if utf8.RuneCountInString(f.Name) < 3 {
		errs[FieldName] = "El nombre debe tener al menos 3 caracteres"
	}
	if f.Phone != "" && utf8.RuneCountInString(f.Phone) < 10 {
		errs[FieldPhone] = "El teléfono debe tener al menos 10 dígitos"
	}
	if !validEmail(f.Email) {
		errs[FieldEmail] = "El correo electrónico no es válido"
	}
	if utf8.RuneCountInString(f.Subject) < 5 {
		errs[FieldSubject] = "El asunto debe tener al menos 5 caracteres"
	}
	if utf8.RuneCountInString(f.Message) < 10 {
		errs[FieldMessage] = "El mensaje debe tener al menos 10 caracteres"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validEmail accepts a bare address only; display names ("Ana <a@b.cl>") are rejected.
func validEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// FromValues reads a form from decoded request values.
func FromValues(get func(string) string) Form {
	return Form{
		Name:    get(FieldName),
		Email:   get(FieldEmail),
		Phone:   get(FieldPhone),
		Subject: get(FieldSubject),
		Message: get(FieldMessage),
	}
}
