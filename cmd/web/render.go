package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/observability"
)

// views owns the parsed templates. Every page is its own set: the shared layout
// and partials cloned, plus templates/pages/<name>.tmpl defining "content".
// Fragments live in partials and are executable by name on their own.
type views struct {
	dir string
	dev bool

	mu     sync.RWMutex
	shared *template.Template
	pages  map[string]*template.Template
}

func newViews(dir string, dev bool) (*views, error) {
	v := &views{dir: dir, dev: dev}
	if err := v.load(); err != nil {
		return nil, err
	}
	return v, nil
}

var funcMap = template.FuncMap{
	"now":  time.Now,
	"join": strings.Join,
	"add":  func(a, b int) int { return a + b },
	"dict_field": func(name, label, typ, value, errMsg string) formField {
		return formField{Name: name, Label: label, Type: typ, Value: value, Error: errMsg}
	},
}

// formField feeds the contact_field partial.
type formField struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

func (v *views) files(sub string) ([]string, error) {
	var files []string
	root := filepath.Join(v.dir, sub)
	// ParseGlob doesn't support **.
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func (v *views) load() error {
	shared, err := v.files("layouts")
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	partials, err := v.files("partials")
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	shared = append(shared, partials...)
	if len(shared) == 0 {
		return fmt.Errorf("no layout templates found under %s", v.dir)
	}
	base, err := template.New("_root").Funcs(funcMap).ParseFiles(shared...)
	if err != nil {
		return fmt.Errorf("parse layouts: %w", err)
	}

	pageFiles, err := v.files("pages")
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, f := range pageFiles {
		name := strings.TrimSuffix(filepath.Base(f), ".tmpl")
		t, err := template.Must(base.Clone()).ParseFiles(f)
		if err != nil {
			return fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}

	v.mu.Lock()
	v.shared, v.pages = base, pages
	v.mu.Unlock()
	return nil
}

// lookup returns the template set holding name. In dev mode templates are
// reparsed on every call.
func (v *views) lookup(page string) (*template.Template, error) {
	if v.dev {
		if err := v.load(); err != nil {
			return nil, err
		}
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	if page == "" {
		return v.shared, nil
	}
	t, ok := v.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	return t, nil
}

// renderPage executes the base layout of page with status code.
func (v *views) renderPage(w http.ResponseWriter, r *http.Request, code int, page string, data any) {
	t, err := v.lookup(page)
	if err != nil {
		templateFailure(w, r, "template parse error", err)
		return
	}
	v.write(w, r, code, t, "base", data)
}

// renderTemplate executes a single shared template, usually an htmx fragment.
func (v *views) renderTemplate(w http.ResponseWriter, r *http.Request, code int, name string, data any) {
	t, err := v.lookup("")
	if err != nil {
		templateFailure(w, r, "template parse error", err)
		return
	}
	v.write(w, r, code, t, name, data)
}

func (v *views) write(w http.ResponseWriter, r *http.Request, code int, t *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		templateFailure(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func templateFailure(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}
