// Package xml provides the parsed-document facade used by the semantic
// checks: XPath queries, attribute and text access, and per-element source
// line numbers.
//
// Security Notes:
//   - XXE (External Entity) attacks are mitigated by using Go's xml.Decoder
//     which doesn't fetch external entities by default, and we explicitly
//     disable entity expansion in the position-tracking pass.
//   - The xmlquery library is used for parsing, which uses Go's encoding/xml
//     internally and inherits its security properties.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document together with a per-element
// line index and a source identifier used in error messages.
type Document struct {
	root   *xmlquery.Node
	source string
	lines  map[*xmlquery.Node]int
}

// Node represents one element of a Document.
type Node struct {
	node *xmlquery.Node
	doc  *Document
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{
		root:  root,
		lines: buildLineIndex(data, root),
	}, nil
}

// ParseFile reads and parses an XML file. The file path becomes the
// document's source identifier.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.source = path
	return doc, nil
}

// buildLineIndex pairs every element of the parsed tree with its 1-based
// start line. xmlquery does not record token positions, so the raw bytes are
// walked a second time with encoding/xml: both parsers visit elements in
// document order, so the i-th StartElement token corresponds to the i-th
// element node of the tree.
func buildLineIndex(data []byte, root *xmlquery.Node) map[*xmlquery.Node]int {
	var order []*xmlquery.Node
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		if n.Type == xmlquery.ElementNode {
			order = append(order, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	dec := xml.NewDecoder(bytes.NewReader(data))
	// XXE Protection (CWE-611): no entity expansion during the scan.
	dec.Entity = map[string]string{}

	lines := make(map[*xmlquery.Node]int, len(order))
	line := 1
	last := int64(0)
	next := 0
	for next < len(order) {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			break
		}
		line += bytes.Count(data[last:start], []byte{'\n'})
		last = start
		if _, ok := tok.(xml.StartElement); ok {
			lines[order[next]] = line
			next++
		}
	}
	return lines
}

// Source returns the document's source identifier (usually a file path).
func (d *Document) Source() string {
	return d.source
}

// SetSource sets the source identifier used in error messages.
func (d *Document) SetSource(source string) {
	d.source = source
}

// Query executes an XPath query against the whole document and returns the
// matching element nodes.
func (d *Document) Query(expr string) ([]*Node, error) {
	return d.query(d.root, expr)
}

func (d *Document) query(from *xmlquery.Node, expr string) ([]*Node, error) {
	// Compile the expression to check for errors
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes, err := xmlquery.QueryAll(from, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n, doc: d}
	}
	return result, nil
}

// Root returns the root element of the document, or nil for an empty tree.
func (d *Document) Root() *Node {
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child, doc: d}
		}
	}
	return nil
}

// Query executes an XPath query relative to this node.
func (n *Node) Query(expr string) ([]*Node, error) {
	return n.doc.query(n.node, expr)
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	value, _ := n.LookupAttr(name)
	return value
}

// LookupAttr returns the value of the named attribute and whether it is
// present. Absence is distinct from an empty value.
func (n *Node) LookupAttr(name string) (string, bool) {
	if n.node == nil {
		return "", false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Line returns the 1-based source line of the element's start tag, or 0
// when the position is unknown.
func (n *Node) Line() int {
	if n.doc == nil {
		return 0
	}
	return n.doc.lines[n.node]
}
