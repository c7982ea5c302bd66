package handlers

import (
	"context"
	"errors"
	"strings"

	"granrah.cl/granrah-web/internal/contact"
	"granrah.cl/granrah-web/internal/content"
)

const (
	contactSentFallback   = "¡Gracias! Tu mensaje fue enviado correctamente."
	contactFailedFallback = "No pudimos enviar tu mensaje. Intenta nuevamente o escríbenos por WhatsApp."
)

// ContactView is the view model of /contacto and of its htmx form fragment.
type ContactView struct {
	Layout
	Form        contact.Form
	Errors      contact.FieldErrors
	Sent        bool
	Message     string // outcome shown above the form
	WhatsAppURL string
}

// Submitter relays a validated form to the mail backend. *contact.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, f contact.Form) (contact.Result, error)
}

var _ Submitter = (*contact.Client)(nil)

// BuildContact returns the empty contact page.
func BuildContact(ctx context.Context, env Env) ContactView {
	return ContactView{
		Layout: env.layout(ctx, PageInfo{
			Path:        "/contacto",
			Title:       "Contacto",
			Description: "Contrataciones, prensa y consultas: escríbele a " + env.Site.Name + ".",
		}),
		Errors:      contact.FieldErrors{},
		WhatsAppURL: "https://wa.me/" + env.Site.WhatsApp + "?text=" + content.EscapeComponent("Hola! Quiero contactar a "+env.Site.Name+"."),
	}
}

// SubmitContact validates and relays the form. The returned view reflects the
// outcome; err is non-nil only for transport failures, which the view also reports.
// Field errors (local or from Contact Form 7) leave Sent false and fill Errors.
func SubmitContact(ctx context.Context, env Env, sub Submitter, f contact.Form) (ContactView, error) {
	v := BuildContact(ctx, env)
	v.Form = f

	res, err := sub.Submit(ctx, f)
	var fe contact.FieldErrors
	switch {
	case errors.As(err, &fe):
		v.Errors = fe
		return v, nil
	case err != nil:
		v.Message = contactFailedFallback
		return v, err
	}

	if res.Sent() {
		v.Sent = true
		v.Message = firstNonEmpty(res.Message, contactSentFallback)
		v.Form = contact.Form{}
		return v, nil
	}
	for _, inv := range res.InvalidFields {
		v.Errors[strings.TrimPrefix(inv.Field, "your-")] = inv.Message
	}
	v.Message = firstNonEmpty(res.Message, contactFailedFallback)
	return v, nil
}

// HasErrors reports whether the form must be corrected before resubmitting.
func (v ContactView) HasErrors() bool { return len(v.Errors) > 0 }
