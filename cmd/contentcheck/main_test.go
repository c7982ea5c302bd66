package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestKinds(t *testing.T) {
	out, err := execute(t, "", "kinds")
	require.NoError(t, err)
	lines := strings.Fields(out)
	assert.Contains(t, lines, "album")
	assert.Contains(t, lines, "moments_page")
	assert.Len(t, lines, 11)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "albums.json")
	payload := `[
		{"id":1,"slug":"raices","title":{"rendered":"Raíces"},"content":{"rendered":""},"acf":{"subtitle":"LP"}},
		{"id":"dos","slug":"otro","title":{"rendered":"Otro"},"content":{"rendered":""}}
	]`
	require.NoError(t, os.WriteFile(file, []byte(payload), 0o600))

	out, err := execute(t, "", "validate", "album", file)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "album: 1 valid record(s)")
	assert.Contains(t, out, "[1].acf: expected")
	assert.Contains(t, out, "[1].id: expected")
}

func TestValidateStdinSingle(t *testing.T) {
	event := `{"id":9,"slug":"x","date":"2024-01-01T00:00:00","title":{"rendered":"X"},"content":{"rendered":""},"acf":[]}`
	out, err := execute(t, event, "validate", "event", "-", "--single")
	require.NoError(t, err)
	assert.Equal(t, "event: 1 valid record(s)\nok\n", out)

	_, err = execute(t, event, "validate", "nope", "-")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)
}

func TestFetchAndPosts(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		switch r.URL.Path {
		case "/wp-json/wp/v2/eventos":
			_, _ = io.WriteString(w, `[{"id":1,"slug":"a","date":"2024-01-01T00:00:00","title":{"rendered":"A"},"content":{"rendered":""},"acf":{"date":"20240301"}}]`)
		case "/wp-json/wp/v2/posts":
			_, _ = io.WriteString(w, `[{"id":2,"slug":"hola","date":"2024-03-05T09:00:00","title":{"rendered":"Hola &amp; chao"},
				"content":{"rendered":""},"category_details":[{"id":1,"name":"Prensa","slug":"prensa"}]}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := execute(t, "", "fetch", "eventos", "--cms-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "event: 1 valid record(s)")

	out, err = execute(t, "", "posts", "--cms-url", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "5 de marzo de 2024\thola\tHola & chao\tPrensa\n", out)

	assert.Equal(t, []string{
		"/wp-json/wp/v2/eventos?per_page=100",
		"/wp-json/wp/v2/posts?per_page=100",
	}, paths)

	_, err = execute(t, "", "fetch", "desconocido", "--cms-url", srv.URL)
	assert.ErrorContains(t, err, "pass --kind")
}

func TestClientRequiresURL(t *testing.T) {
	t.Setenv("GRANRAH_WEB_CMS_BASE_URL", "")
	_, err := execute(t, "", "posts")
	assert.ErrorContains(t, err, "--cms-url is required")
}
