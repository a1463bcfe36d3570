package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// docBuilder assembles a minimal WordprocessingML package: one document part
// plus the fixed relationship and content-type parts. It covers exactly what
// the resume templates need (styled paragraphs and simple tables).

type paragraphOptions struct {
	Bold      bool
	Italic    bool
	SizeHalf  int    // font size in half-points; 0 uses the default
	Color     string // RRGGBB hex, empty for automatic
	Center    bool
	SpaceZero bool // suppress spacing after the paragraph
}

type docBuilder struct {
	body strings.Builder
}

func newDocBuilder() *docBuilder {
	return &docBuilder{}
}

func escapeXML(text string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(text))
	return b.String()
}

func (d *docBuilder) runProps(opts paragraphOptions) string {
	var props strings.Builder
	if opts.Bold {
		props.WriteString(`<w:b/>`)
	}
	if opts.Italic {
		props.WriteString(`<w:i/>`)
	}
	if opts.Color != "" {
		props.WriteString(fmt.Sprintf(`<w:color w:val="%s"/>`, opts.Color))
	}
	if opts.SizeHalf > 0 {
		props.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, opts.SizeHalf, opts.SizeHalf))
	}
	if props.Len() == 0 {
		return ""
	}
	return "<w:rPr>" + props.String() + "</w:rPr>"
}

func (d *docBuilder) paragraphXML(text string, opts paragraphOptions) string {
	var pPr strings.Builder
	if opts.Center {
		pPr.WriteString(`<w:jc w:val="center"/>`)
	}
	if opts.SpaceZero {
		pPr.WriteString(`<w:spacing w:after="0"/>`)
	}

	var sb strings.Builder
	sb.WriteString("<w:p>")
	if pPr.Len() > 0 {
		sb.WriteString("<w:pPr>" + pPr.String() + "</w:pPr>")
	}

	// Newlines inside a paragraph become soft line breaks.
	rPr := d.runProps(opts)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("<w:r>" + rPr + "<w:br/></w:r>")
		}
		sb.WriteString(fmt.Sprintf(`<w:r>%s<w:t xml:space="preserve">%s</w:t></w:r>`, rPr, escapeXML(line)))
	}
	sb.WriteString("</w:p>")

	return sb.String()
}

// AddParagraph appends one paragraph.
func (d *docBuilder) AddParagraph(text string, opts paragraphOptions) {
	d.body.WriteString(d.paragraphXML(text, opts))
}

// AddBullet appends an indented bullet-style paragraph.
func (d *docBuilder) AddBullet(text string) {
	d.body.WriteString(`<w:p><w:pPr><w:ind w:left="360"/><w:spacing w:after="0"/></w:pPr>`)
	d.body.WriteString(fmt.Sprintf(`<w:r><w:t xml:space="preserve">• %s</w:t></w:r>`, escapeXML(text)))
	d.body.WriteString("</w:p>")
}

// AddTable appends a borderless table, one cell per entry, with evenly split
// columns. Used for two-column skill lists.
func (d *docBuilder) AddTable(rows [][]string) {
	if len(rows) == 0 {
		return
	}

	cols := len(rows[0])
	if cols == 0 {
		return
	}
	colWidth := 9360 / cols

	d.body.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="9360" w:type="dxa"/></w:tblPr><w:tblGrid>`)
	for i := 0; i < cols; i++ {
		d.body.WriteString(fmt.Sprintf(`<w:gridCol w:w="%d"/>`, colWidth))
	}
	d.body.WriteString(`</w:tblGrid>`)

	for _, row := range rows {
		d.body.WriteString("<w:tr>")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			d.body.WriteString(fmt.Sprintf(`<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/></w:tcPr>`, colWidth))
			d.body.WriteString(d.paragraphXML(cell, paragraphOptions{SpaceZero: true}))
			d.body.WriteString("</w:tc>")
		}
		d.body.WriteString("</w:tr>")
	}

	d.body.WriteString("</w:tbl>")
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`

// Bytes zips the package and returns the .docx file content.
func (d *docBuilder) Bytes() ([]byte, error) {
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		"<w:body>" + d.body.String() +
		`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1080" w:right="1080" w:bottom="1080" w:left="1080"/></w:sectPr>` +
		"</w:body></w:document>"

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/document.xml", document},
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx package: %w", err)
	}

	return buf.Bytes(), nil
}
