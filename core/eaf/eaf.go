// Package eaf models the parts of an ELAN .eaf transcript the semantic
// checks care about: tiers, their structural attributes, and the annotation
// values nested under them.
package eaf

import (
	"github.com/ortofon/eafcheck/core/xml"
)

// Element and attribute names from the EAF format.
const (
	ElemTier                = "TIER"
	ElemAnnotationValue     = "ANNOTATION_VALUE"
	ElemAlignableAnnotation = "ALIGNABLE_ANNOTATION"

	AttrTierID            = "TIER_ID"
	AttrLinguisticTypeRef = "LINGUISTIC_TYPE_REF"
	AttrParentRef         = "PARENT_REF"
)

// Document is a parsed transcript. It is read-only to the checks.
type Document struct {
	doc *xml.Document
}

// Open reads and parses a transcript file.
func Open(path string) (*Document, error) {
	doc, err := xml.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Parse parses transcript data with the given source identifier.
func Parse(data []byte, source string) (*Document, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SetSource(source)
	return &Document{doc: doc}, nil
}

// Source returns the document's source identifier.
func (d *Document) Source() string {
	return d.doc.Source()
}

// query runs a fixed XPath expression. The expressions used by this package
// and the checks are compile-time constants exercised by tests, so a query
// error means a programming mistake and yields no results rather than a
// crash mid-batch.
func (d *Document) query(expr string) []*xml.Node {
	nodes, err := d.doc.Query(expr)
	if err != nil {
		return nil
	}
	return nodes
}

// Tier is one annotation layer of a transcript. ParentRef absence is
// semantically meaningful, so presence is tracked separately from the value.
type Tier struct {
	ID             string
	LinguisticType string
	ParentRef      string
	HasParentRef   bool
	Line           int

	node *xml.Node
}

// AnnotationValue is one text leaf under a tier.
type AnnotationValue struct {
	Text string
	Line int
}

func tierFromNode(n *xml.Node) Tier {
	parentRef, hasParentRef := n.LookupAttr(AttrParentRef)
	return Tier{
		ID:             n.Attr(AttrTierID),
		LinguisticType: n.Attr(AttrLinguisticTypeRef),
		ParentRef:      parentRef,
		HasParentRef:   hasParentRef,
		Line:           n.Line(),
		node:           n,
	}
}

// Tiers returns all tiers in document order.
func (d *Document) Tiers() []Tier {
	nodes := d.query("//" + ElemTier)
	tiers := make([]Tier, len(nodes))
	for i, n := range nodes {
		tiers[i] = tierFromNode(n)
	}
	return tiers
}

// TiersByType returns the tiers whose LINGUISTIC_TYPE_REF equals category,
// in document order.
func (d *Document) TiersByType(category string) []Tier {
	var tiers []Tier
	for _, t := range d.Tiers() {
		if t.LinguisticType == category {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// AnnotationValues returns the annotation values nested anywhere under the
// tier, in document order. A value element without text yields an empty
// string, which the vocabulary checks report rather than skip.
func (t *Tier) AnnotationValues() []AnnotationValue {
	if t.node == nil {
		return nil
	}
	nodes, err := t.node.Query(".//" + ElemAnnotationValue)
	if err != nil {
		return nil
	}
	values := make([]AnnotationValue, len(nodes))
	for i, n := range nodes {
		values[i] = AnnotationValue{Text: n.Text(), Line: n.Line()}
	}
	return values
}

// ContainsAlignable reports whether the tier's subtree holds any
// ALIGNABLE_ANNOTATION element.
func (t *Tier) ContainsAlignable() bool {
	if t.node == nil {
		return false
	}
	nodes, err := t.node.Query(".//" + ElemAlignableAnnotation)
	if err != nil {
		return false
	}
	return len(nodes) > 0
}
