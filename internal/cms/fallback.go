package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"granrah.cl/granrah-web/internal/richtext"
)

const defaultContentDir = "content"

// pageFrontMatter mirrors the WordPress page shape so that local pages flow
// through the same validators as remote ones.
type pageFrontMatter struct {
	ID             int64          `yaml:"id"`
	Title          string         `yaml:"title"`
	ACF            map[string]any `yaml:"acf"`
	FeaturedImages map[string]any `yaml:"featured_images"`
	Gallery        []any          `yaml:"gallery"`
}

// localPage renders content/pages/<slug>.md into a one-element WP JSON array.
func (c *Client) localPage(slug string) ([]byte, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	file := filepath.Join(c.contentDir, "pages", slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fm, body := splitFrontMatter(string(data))
	front := pageFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return nil, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	html, err := richtext.Markdown(body)
	if err != nil {
		return nil, fmt.Errorf("cms: render %s: %w", file, err)
	}

	title := strings.TrimSpace(front.Title)
	if title == "" {
		title = prettifySlug(slug)
	}
	page := map[string]any{
		"id":      front.ID,
		"slug":    slug,
		"title":   map[string]any{"rendered": title},
		"content": map[string]any{"rendered": html},
		"acf":     []any{},
	}
	if len(front.ACF) > 0 {
		page["acf"] = front.ACF
	}
	if len(front.FeaturedImages) > 0 {
		page["featured_images"] = front.FeaturedImages
	}
	if front.Gallery != nil {
		page["gallery"] = front.Gallery
	}
	return json.Marshal([]any{page})
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
