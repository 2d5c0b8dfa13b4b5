// Package docx reads and rewrites the text runs of Word documents. Only
// word/document.xml is parsed; every other part of the ZIP container is
// carried through a save byte for byte, so styles, images, and metadata
// survive a rewrite.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
)

const documentPart = "word/document.xml"

// Namespace-agnostic queries, compiled once. Matching on local-name
// keeps documents with nonstandard namespace prefixes readable.
var (
	queryParagraphs = xpath.MustCompile("//*[local-name()='p']")
	queryRuns       = xpath.MustCompile("./*[local-name()='r']")
	queryTexts      = xpath.MustCompile("./*[local-name()='t']")
)

// part is one entry of the DOCX ZIP container.
type part struct {
	name string
	data []byte
}

// Document is an opened DOCX file.
type Document struct {
	path  string
	parts []part
	doc   *xmlquery.Node
}

// Paragraph is a w:p element, in the body or inside a table cell.
type Paragraph struct {
	node *xmlquery.Node
}

// Run is a w:r element, the smallest uniformly formatted span of text.
type Run struct {
	node *xmlquery.Node
}

// Open reads a DOCX file from disk.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.NewIO("stat", path, err)
	}

	d, err := read(f, st.Size())
	if err != nil {
		return nil, err
	}
	d.path = path
	return d, nil
}

// Read parses a DOCX container from r.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	return read(r, size)
}

func read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.NewParse("DOCX", "", err.Error())
	}

	d := &Document{}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, errors.NewParse("DOCX", zf.Name, err.Error())
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.NewParse("DOCX", zf.Name, err.Error())
		}
		d.parts = append(d.parts, part{name: zf.Name, data: data})

		if zf.Name == documentPart {
			doc, err := xmlquery.Parse(bytes.NewReader(data))
			if err != nil {
				return nil, errors.NewParse("XML", zf.Name, err.Error())
			}
			d.doc = doc
		}
	}

	if d.doc == nil {
		return nil, errors.NewParse("DOCX", "", "missing "+documentPart)
	}
	return d, nil
}

// Path returns the file path the document was opened from, if any.
func (d *Document) Path() string {
	return d.path
}

// Paragraphs returns every paragraph in document order, including those
// nested inside table cells.
func (d *Document) Paragraphs() []Paragraph {
	nodes := xmlquery.QuerySelectorAll(d.doc, queryParagraphs)
	paras := make([]Paragraph, len(nodes))
	for i, n := range nodes {
		paras[i] = Paragraph{node: n}
	}
	return paras
}

// Runs returns the paragraph's text runs in order.
func (p Paragraph) Runs() []Run {
	nodes := xmlquery.QuerySelectorAll(p.node, queryRuns)
	runs := make([]Run, len(nodes))
	for i, n := range nodes {
		runs[i] = Run{node: n}
	}
	return runs
}

// Text returns the paragraph's visible text, runs concatenated.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Text returns the run's visible text, w:t elements concatenated.
func (r Run) Text() string {
	var sb strings.Builder
	for _, t := range r.textNodes() {
		sb.WriteString(t.InnerText())
	}
	return sb.String()
}

// SetText replaces the run's text in place. Formatting (w:rPr) is kept;
// all text lands in the first w:t element and any others are removed. A
// run with no w:t gains one.
func (r Run) SetText(s string) {
	texts := r.textNodes()
	if len(texts) == 0 {
		t := &xmlquery.Node{
			Type:   xmlquery.ElementNode,
			Data:   "t",
			Prefix: "w",
		}
		xmlquery.AddChild(r.node, t)
		texts = []*xmlquery.Node{t}
	}

	for _, extra := range texts[1:] {
		xmlquery.RemoveFromTree(extra)
	}

	t := texts[0]
	setNodeText(t, s)

	// Word drops leading and trailing spaces unless told to preserve them.
	if s != strings.TrimSpace(s) {
		setAttr(t, "xml", "space", "preserve")
	}
}

func (r Run) textNodes() []*xmlquery.Node {
	return xmlquery.QuerySelectorAll(r.node, queryTexts)
}

func setNodeText(n *xmlquery.Node, s string) {
	text := &xmlquery.Node{Type: xmlquery.TextNode, Data: s, Parent: n}
	n.FirstChild = text
	n.LastChild = text
}

func setAttr(n *xmlquery.Node, space, local, value string) {
	for i := range n.Attr {
		if n.Attr[i].Name.Space == space && n.Attr[i].Name.Local == local {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{
		Name:  xml.Name{Space: space, Local: local},
		Value: value,
	})
}

// Save writes the document to path, serializing the edited document part
// and copying every other container entry unchanged.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.NewIO("close", path, err)
	}
	return nil
}

// Write serializes the document container to w.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		data := p.data
		if p.name == documentPart {
			data = []byte(d.doc.OutputXML(false))
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}
