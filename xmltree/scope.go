package xmltree

import (
	"encoding/xml"
	"strings"
)

// The xml namespace prefix is bound by definition and never declared
// in a document.
const xmlNamespaceURI = "http://www.w3.org/XML/1998/namespace"

// A Scope records the xml namespace prefixes in effect at a given
// point in a document, from least specific to most specific. The
// zero value is an empty scope. In each entry, the Space field holds
// the namespace URI and the Local field holds the prefix; an entry
// with an empty Local field declares the default namespace.
type Scope struct {
	ns []xml.Name
}

// Sub returns a copy of outer, extended with any namespace
// declarations appearing in the attributes of tag. The returned
// Scope shares no mutable state with outer.
func (outer *Scope) Sub(tag xml.StartElement) Scope {
	inner := Scope{ns: outer.ns}
	for _, attr := range tag.Attr {
		if attr.Name.Space == "xmlns" {
			inner.ns = append(inner.ns, xml.Name{Space: attr.Value, Local: attr.Name.Local})
		} else if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
			inner.ns = append(inner.ns, xml.Name{Space: attr.Value})
		}
	}
	// Force future appends to reallocate, so sibling scopes never
	// clobber one another through the shared backing array.
	inner.ns = inner.ns[:len(inner.ns):len(inner.ns)]
	return inner
}

// ResolvePrefix looks up the namespace URI bound to prefix at this
// point in the document. The empty prefix resolves to the default
// namespace, if one is declared. The reserved prefix "xml" always
// resolves to the XML namespace.
func (scope *Scope) ResolvePrefix(prefix string) (string, bool) {
	if prefix == "xml" {
		return xmlNamespaceURI, true
	}
	for i := len(scope.ns) - 1; i >= 0; i-- {
		if scope.ns[i].Local == prefix {
			return scope.ns[i].Space, true
		}
	}
	return "", false
}

// Resolve translates an XML QName (a namespace-prefixed string) to
// an xml.Name with the canonical namespace URI in its Space field.
// QNames in attribute values, such as the type references in an XML
// Schema document, can only be interpreted with the declarations in
// effect at the element they appear on. If qname has no prefix, the
// default namespace is used. If the prefix cannot be resolved, the
// returned Space field holds the unresolved prefix; use ResolveNS to
// detect this.
func (scope *Scope) Resolve(qname string) xml.Name {
	name, _ := scope.ResolveNS(qname)
	return name
}

// The ResolveNS method is like Resolve, but returns false for its
// second return value if the namespace prefix is not declared in
// scope.
func (scope *Scope) ResolveNS(qname string) (xml.Name, bool) {
	var prefix, local string
	if i := strings.Index(qname, ":"); i >= 0 {
		prefix, local = qname[:i], qname[i+1:]
	} else {
		prefix, local = "", qname
	}
	if space, ok := scope.ResolvePrefix(prefix); ok {
		return xml.Name{Space: space, Local: local}, true
	}
	return xml.Name{Space: prefix, Local: local}, false
}

// ResolveDefault is like Resolve, but overrides the namespace used
// for unprefixed names (known as NCNames in XML terminology) with
// defaultns. XML Schema documents use this rule for the name
// attribute of declarations, which takes the target namespace of
// the schema rather than the default namespace of the document.
func (scope *Scope) ResolveDefault(qname, defaultns string) xml.Name {
	if defaultns == "" || strings.Contains(qname, ":") {
		return scope.Resolve(qname)
	}
	return xml.Name{Space: defaultns, Local: qname}
}

// Prefix is the inverse of Resolve. It uses the most specific
// binding for the namespace of name to render it in prefix:local
// form. If the namespace is bound to the default namespace, the
// local name is returned alone. If the namespace is not declared in
// scope, Prefix returns the empty string.
func (scope *Scope) Prefix(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	for i := len(scope.ns) - 1; i >= 0; i-- {
		if scope.ns[i].Space != name.Space {
			continue
		}
		if scope.ns[i].Local == "" {
			return name.Local
		}
		return scope.ns[i].Local + ":" + name.Local
	}
	return ""
}

// JoinScope returns a new Scope with the declarations of other
// stacked on top of those in scope. Bindings in other shadow
// bindings of the same prefix in scope.
func (scope *Scope) JoinScope(other *Scope) *Scope {
	joined := Scope{ns: make([]xml.Name, 0, len(scope.ns)+len(other.ns))}
	joined.ns = append(joined.ns, scope.ns...)
	joined.ns = append(joined.ns, other.ns...)
	return &joined
}

// NS returns the namespace declarations in scope, from least to
// most specific.
func (scope *Scope) NS() []xml.Name {
	return scope.ns
}

// diff returns the declarations present in inner but not in outer.
// It is used when marshalling a subtree, where declarations
// inherited from elements outside the subtree must be repeated on
// the subtree's root element.
func (outer *Scope) diff(inner *Scope) []xml.Name {
	if outer == nil {
		return inner.ns
	}
	if len(inner.ns) >= len(outer.ns) {
		return inner.ns[len(outer.ns):]
	}
	return nil
}
