package main

import (
	"net/http"

	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/contact"
	handlersPkg "granrah.cl/granrah-web/internal/handlers"
	mw "granrah.cl/granrah-web/internal/middleware"
	"granrah.cl/granrah-web/internal/observability"
)

// ContactHandler renders the empty contact page.
func (s *server) ContactHandler(w http.ResponseWriter, r *http.Request) {
	vm := handlersPkg.BuildContact(r.Context(), s.env)
	s.views.renderPage(w, r, http.StatusOK, "contact", vm)
}

// ContactSubmitHandler validates and relays the form. htmx requests receive only
// the form fragment; field errors answer 422, relay failures 502.
func (s *server) ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := contact.FromValues(r.PostFormValue)

	vm, err := handlersPkg.SubmitContact(r.Context(), s.env, s.contact, form)
	code := http.StatusOK
	switch {
	case err != nil:
		observability.FromContext(r.Context()).Error("contact relay failed", zap.Error(err))
		code = http.StatusBadGateway
	case vm.HasErrors():
		code = http.StatusUnprocessableEntity
	}

	if mw.IsHTMX(r.Context()) {
		s.views.renderTemplate(w, r, code, "frag_contact_form", vm)
		return
	}
	s.views.renderPage(w, r, code, "contact", vm)
}
