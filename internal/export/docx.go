// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders composed documents and fetched papers to files:
// DOCX and Markdown for the document, BibTeX and CSL-YAML for the papers.
package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/pdiddy/citation-composer/pkg/types"
)

// DOCX download metadata.
const (
	DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	DefaultDOCXName = "research_paper.docx"
)

// Paragraph styles defined in styles.xml.
const (
	styleTitle    = "Title"
	styleHeading1 = "Heading1"
)

const referencesHeading = "References"

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// WriteDOCX writes doc as a minimal OOXML word-processing package: a Title
// paragraph, a Heading1 and body paragraph per section, then a References
// heading with one paragraph per reference.
func WriteDOCX(w io.Writer, doc *types.ComposedDocument) error {
	body, err := documentXML(doc)
	if err != nil {
		return fmt.Errorf("rendering document.xml: %w", err)
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", body},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing docx archive: %w", err)
	}
	return nil
}

// WordprocessingML structures. Prefixed names are written literally.
type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
}

type wParagraph struct {
	Props *wParagraphProps `xml:"w:pPr,omitempty"`
	Runs  []wRun           `xml:"w:r"`
}

type wParagraphProps struct {
	Style wVal `xml:"w:pStyle"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wRun struct {
	Text wText `xml:"w:t"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

func paragraph(style, text string) wParagraph {
	p := wParagraph{Runs: []wRun{{Text: wText{Space: "preserve", Value: text}}}}
	if style != "" {
		p.Props = &wParagraphProps{Style: wVal{Val: style}}
	}
	return p
}

func documentXML(doc *types.ComposedDocument) ([]byte, error) {
	var paras []wParagraph
	paras = append(paras, paragraph(styleTitle, doc.Title))

	if doc.NoResults {
		paras = append(paras, paragraph("", noResultsText))
	}
	for _, s := range doc.Sections {
		paras = append(paras, paragraph(styleHeading1, s.Name), paragraph("", s.Text))
	}
	if len(doc.References) > 0 {
		paras = append(paras, paragraph(styleHeading1, referencesHeading))
		for _, ref := range doc.References {
			paras = append(paras, paragraph("", ref))
		}
	}

	out, err := xml.Marshal(wDocument{XmlnsW: wordNS, Body: wBody{Paragraphs: paras}})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header + `<w:styles xmlns:w="` + wordNS + `">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:after="240"/></w:pPr><w:rPr><w:b/><w:sz w:val="48"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`</w:styles>`
