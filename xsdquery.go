// Package xsdquery answers simple questions about XML Schema documents.
//
// The xsdquery package locates element declarations and type definitions
// in a parsed schema document, resolves qualified type references against
// the namespace declarations in scope at the element carrying them, and
// reads restriction and occurrence constraints. It is intended for
// programs that inspect schemas, such as code generators. It is not a
// validator and does not build a type graph; every function is a single
// bounded pass over the element tree, keeps no state between calls, and
// never follows imports or includes into other documents.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html
package xsdquery // import "aqwari.net/xsdquery"

import (
	"encoding/xml"
	"strings"

	"aqwari.net/xsdquery/xmltree"
)

// Namespaces for the XML Schema language and for schema attributes
// appearing in instance documents, such as xsi:type.
const (
	SchemaNS         = "http://www.w3.org/2001/XMLSchema"
	SchemaInstanceNS = "http://www.w3.org/2001/XMLSchema-instance"
)

// Search predicates for the xmltree search methods
type predicate func(el *xmltree.Element) bool

func and(fns ...func(el *xmltree.Element) bool) predicate {
	return func(el *xmltree.Element) bool {
		for _, f := range fns {
			if !f(el) {
				return false
			}
		}
		return true
	}
}

func or(fns ...func(el *xmltree.Element) bool) predicate {
	return func(el *xmltree.Element) bool {
		for _, f := range fns {
			if f(el) {
				return true
			}
		}
		return false
	}
}

func isElem(space, local string) predicate {
	return func(el *xmltree.Element) bool {
		if el.Name.Local != local {
			return false
		}
		return space == "" || el.Name.Space == space
	}
}

func hasAttrValue(space, local, value string) predicate {
	return func(el *xmltree.Element) bool {
		return el.Attr(space, local) == value
	}
}

var isType = or(isElem(SchemaNS, "complexType"), isElem(SchemaNS, "simpleType"))

// FindElement returns the first top-level element declaration in root
// whose name attribute equals name, or nil if there is none. Only the
// direct children of root are considered; element particles nested
// within type definitions are never returned.
func FindElement(root *xmltree.Element, name string) *xmltree.Element {
	return root.FindChildFunc(and(
		isElem(SchemaNS, "element"),
		hasAttrValue("", "name", name),
	))
}

// FindTypeDefinitions returns every complexType and simpleType
// definition in root whose name attribute equals name, in document
// order. A well-formed schema declares each type once, but nothing
// stops a document from repeating a name; FindTypeDefinitions reports
// whatever is there, and the caller decides what multiple matches
// mean. The slice is empty when the type is not defined in root.
func FindTypeDefinitions(root *xmltree.Element, name string) []*xmltree.Element {
	return root.SearchFunc(and(isType, hasAttrValue("", "name", name)))
}

// TypeFromAttr resolves a qualified type reference stored in an
// attribute of el, such as type="xs:string" on an element declaration
// or xsi:type="tns:order" in an instance document. The space and
// local arguments select the attribute; space "" reads an unprefixed
// attribute. The attribute value is split at the first colon and its
// prefix is resolved against the namespace declarations in scope at
// el. If the prefix is not declared, it is returned verbatim in the
// Space field. A value with no colon is treated in its entirety as a
// namespace prefix, leaving Local empty.
//
// TypeFromAttr returns false when the attribute is absent or empty.
func TypeFromAttr(el *xmltree.Element, space, local string) (xml.Name, bool) {
	v := el.Attr(space, local)
	if v == "" {
		return xml.Name{}, false
	}
	var prefix, name string
	if i := strings.Index(v, ":"); i >= 0 {
		prefix, name = v[:i], v[i+1:]
	} else {
		prefix = v
	}
	if uri, ok := el.ResolvePrefix(prefix); ok {
		return xml.Name{Space: uri, Local: name}, true
	}
	return xml.Name{Space: prefix, Local: name}, true
}

// RestrictionBase returns the base type named by the restriction
// child of el, resolved at the restriction element. It returns false
// when el has no restriction child, or when the restriction carries
// no base attribute.
func RestrictionBase(el *xmltree.Element) (xml.Name, bool) {
	restriction := el.FindChild(SchemaNS, "restriction")
	if restriction == nil {
		return xml.Name{}, false
	}
	return TypeFromAttr(restriction, "", "base")
}

// RestrictionFacets returns the facet elements constraining a
// restricted type: the children of el's restriction child, in
// document order. The caller must establish that a restriction
// exists, with RestrictionBase or otherwise; RestrictionFacets panics
// when el has no restriction child.
func RestrictionFacets(el *xmltree.Element) []xmltree.Element {
	return el.FindChild(SchemaNS, "restriction").Children
}
