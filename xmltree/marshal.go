package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Marshal produces the XML encoding of an Element as a
// self-contained document. Namespace declarations that the Element
// inherits from elements outside the marshalled subtree are
// repeated on its opening tag, so that the resulting document
// resolves prefixes the same way the original did.
func Marshal(el *Element) []byte {
	var buf bytes.Buffer
	if err := Encode(&buf, el); err != nil {
		// bytes.Buffer writes cannot fail
		panic(err)
	}
	return buf.Bytes()
}

// MarshalIndent is like Marshal, but starts each child element on a
// new line, indented according to its nesting depth. Each line
// begins with prefix, followed by one copy of indent per level.
func MarshalIndent(el *Element, prefix, indent string) []byte {
	var buf bytes.Buffer
	enc := encoder{w: &buf, prefix: prefix, indent: indent, pretty: true}
	if err := enc.encode(el, nil, 0); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Encode writes the XML encoding of the Element to w. Encode
// returns any errors encountered writing to w.
func Encode(w io.Writer, el *Element) error {
	enc := encoder{w: w}
	return enc.encode(el, nil, 0)
}

// String returns the XML encoding of an Element and its children as
// a string.
func (el *Element) String() string {
	return string(Marshal(el))
}

type encoder struct {
	w              io.Writer
	prefix, indent string
	pretty         bool
	err            error
}

func (e *encoder) write(s string) {
	if e.err == nil {
		_, e.err = io.WriteString(e.w, s)
	}
}

func (e *encoder) writeBytes(b []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(b)
	}
}

func (e *encoder) escape(s string) {
	if e.err == nil {
		e.err = xml.EscapeText(e.w, []byte(s))
	}
}

func (e *encoder) newline(depth int) {
	if e.pretty {
		e.write("\n" + e.prefix + strings.Repeat(e.indent, depth))
	}
}

func (e *encoder) encode(el, parent *Element, depth int) error {
	if depth > recursionLimit {
		return e.err
	}
	e.openTag(el, parent)
	if len(el.Children) == 0 {
		// Content holds the raw bytes from the source document,
		// with any character entities intact.
		e.writeBytes(el.Content)
	} else {
		for i := range el.Children {
			e.newline(depth + 1)
			if err := e.encode(&el.Children[i], el, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
	}
	e.write("</" + e.tagName(el) + ">")
	return e.err
}

// tagName renders an element's name using the prefix bound to its
// namespace at that element. An element in no namespace, or in a
// namespace with no binding in scope, is rendered by local name
// alone.
func (e *encoder) tagName(el *Element) string {
	if el.Name.Space == "" {
		return el.Name.Local
	}
	if qname := el.Scope.Prefix(el.Name); qname != "" {
		return qname
	}
	return el.Name.Local
}

func (e *encoder) openTag(el, parent *Element) {
	e.write("<" + e.tagName(el))
	for _, attr := range el.StartElement.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			// Namespace declarations are re-derived from the
			// element's scope below.
			continue
		}
		e.write(" " + e.attrName(el, attr.Name) + `="`)
		e.escape(attr.Value)
		e.write(`"`)
	}
	var parentScope *Scope
	if parent != nil {
		parentScope = &parent.Scope
	}
	for _, ns := range parentScope.diff(&el.Scope) {
		if ns.Local == "" {
			e.write(` xmlns="`)
		} else {
			e.write(" xmlns:" + ns.Local + `="`)
		}
		e.escape(ns.Space)
		e.write(`"`)
	}
	e.write(">")
}

// attrName renders an attribute name, preferring the prefix bound
// to its namespace at el. An attribute whose prefix was never
// declared in the source document keeps that prefix verbatim, since
// the decoder leaves unresolvable prefixes in the Space field.
func (e *encoder) attrName(el *Element, name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if qname := el.Scope.Prefix(name); qname != "" && strings.Contains(qname, ":") {
		return qname
	}
	return name.Space + ":" + name.Local
}
