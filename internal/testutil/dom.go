// Package testutil holds HTML assertion helpers shared by handler tests.
package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Texts returns the trimmed text of every node matching selector.
func Texts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.Join(strings.Fields(s.Text()), " "))
	})
	return out
}

// Attr returns the attribute of the first node matching selector, failing the
// test when the node or the attribute is missing.
func Attr(t testing.TB, doc *goquery.Document, selector, name string) string {
	t.Helper()

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		t.Fatalf("no element matches %q", selector)
	}
	v, ok := sel.Attr(name)
	if !ok {
		t.Fatalf("element %q has no %s attribute", selector, name)
	}
	return v
}
