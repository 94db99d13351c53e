// Package pdf fills document templates described by declarative layout files.
// A layout names the static text of one template page plus the position of
// every fillable field, so template changes never require code changes.
package pdf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrTemplateLoad marks a template layout that could not be fetched; the
// caller surfaces it as a "cannot produce document" failure.
var ErrTemplateLoad = errors.New("cannot load template layout")

// FieldPos places one fillable field on the page. Coordinates are PDF points
// measured from the bottom-left page origin, as in the template files they
// were measured on; the filler inverts y against the page height when drawing.
type FieldPos struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size,omitempty"`      // font size, default layout base size
	MaxWidth float64 `json:"max_width,omitempty"` // shrink-to-fit bound, 0 = none
	Bold     bool    `json:"bold,omitempty"`
}

// StaticText is a fixed label or heading belonging to the template itself.
type StaticText struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size,omitempty"`
	Bold bool    `json:"bold,omitempty"`
}

// Rule is a horizontal line drawn as part of the template.
type Rule struct {
	X1 float64 `json:"x1"`
	Y  float64 `json:"y"`
	X2 float64 `json:"x2"`
}

// Layout describes one document template: its page, its static content and
// the positions of its fillable fields.
type Layout struct {
	Name     string              `json:"name"`
	PageSize string              `json:"page_size,omitempty"` // default A4
	BaseSize float64             `json:"base_size,omitempty"` // default 11pt
	Statics  []StaticText        `json:"statics,omitempty"`
	Rules    []Rule              `json:"rules,omitempty"`
	Fields   map[string]FieldPos `json:"fields"`
}

// LoadLayout reads the named layout from dir.
func LoadLayout(dir, name string) (*Layout, error) {
	path := filepath.Join(dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, name, err)
	}
	return ParseLayout(data, name)
}

// ParseLayout decodes layout bytes fetched from any source.
func ParseLayout(data []byte, name string) (*Layout, error) {
	layout := &Layout{}
	if err := json.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, name, err)
	}
	if layout.Name == "" {
		layout.Name = name
	}
	if layout.PageSize == "" {
		layout.PageSize = "A4"
	}
	if layout.BaseSize == 0 {
		layout.BaseSize = 11
	}
	return layout, nil
}
