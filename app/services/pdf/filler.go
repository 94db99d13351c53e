package pdf

import (
	"bytes"
	"log"
	"os"
	"sort"

	"github.com/go-pdf/fpdf"
)

// Filler stamps field values onto template layouts. It reads nothing but the
// layout and font assets and never touches stored data.
type Filler struct {
	LayoutDir string
	FontPath  string
}

func NewFiller(layoutDir, fontPath string) *Filler {
	return &Filler{LayoutDir: layoutDir, FontPath: fontPath}
}

// Render loads the named layout and fills it with values, returning the
// finished PDF bytes.
func (f *Filler) Render(template string, values map[string]string) ([]byte, error) {
	layout, err := LoadLayout(f.LayoutDir, template)
	if err != nil {
		return nil, err
	}
	return f.Fill(layout, values)
}

// Fill draws the layout's static content and every non-empty value whose
// field has a known position. Values without a position are logged and
// skipped rather than failing the document; a skipped field is therefore
// indistinguishable from an intentionally blank one.
func (f *Filler) Fill(layout *Layout, values map[string]string) ([]byte, error) {
	doc := fpdf.New("P", "pt", layout.PageSize, "")
	doc.SetAutoPageBreak(false, 0)

	family := f.loadDisplayFont(doc)
	doc.AddPage()
	_, pageHeight := doc.GetPageSize()

	for _, st := range layout.Statics {
		size := st.Size
		if size == 0 {
			size = layout.BaseSize
		}
		doc.SetFont(family, style(st.Bold), size)
		doc.Text(st.X, pageHeight-st.Y, st.Text)
	}

	doc.SetLineWidth(0.75)
	for _, rule := range layout.Rules {
		y := pageHeight - rule.Y
		doc.Line(rule.X1, y, rule.X2, y)
	}

	// Stable field order keeps draw operations reproducible across runs.
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := values[name]
		if value == "" {
			continue
		}
		pos, ok := layout.Fields[name]
		if !ok {
			log.Printf("pdf: no position for field %q in template %s, skipping", name, layout.Name)
			continue
		}

		size := pos.Size
		if size == 0 {
			size = layout.BaseSize
		}
		doc.SetFont(family, style(pos.Bold), size)
		// Shrink to fit rather than overflow the template area.
		for pos.MaxWidth > 0 && size > 6 && doc.GetStringWidth(value) > pos.MaxWidth {
			size--
			doc.SetFont(family, style(pos.Bold), size)
		}

		// Layout y is measured from the bottom-left PDF origin; the drawing
		// space is top-down, so invert against the page height.
		doc.Text(pos.X, pageHeight-pos.Y, value)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// loadDisplayFont registers the embedded TTF display font, falling back to the
// built-in Helvetica when it cannot be read.
func (f *Filler) loadDisplayFont(doc *fpdf.Fpdf) string {
	if f.FontPath == "" {
		return "Helvetica"
	}
	fontBytes, err := os.ReadFile(f.FontPath)
	if err != nil {
		log.Printf("pdf: display font unavailable (%v), falling back to Helvetica", err)
		return "Helvetica"
	}
	doc.AddUTF8FontFromBytes("display", "", fontBytes)
	doc.AddUTF8FontFromBytes("display", "B", fontBytes)
	return "display"
}

func style(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}
