// Package xmltree converts XML documents into a tree of Go structs.
//
// The xmltree package provides routines for accessing an XML
// document as a tree, along with functionality to resolve
// namespace-prefixed strings at any point in the tree. It is
// intended for working with document formats, such as XML Schema,
// that embed QNames in attribute values and therefore cannot be
// decoded with the encoding/xml package alone.
package xmltree // import "aqwari.net/xsdquery/xmltree"

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const recursionLimit = 3000

var errDeepXML = errors.New("xmltree: xml document too deeply nested")

// An Element represents a single element in an XML document.
// Elements may have zero or more children. The byte array used by
// the Content field is shared among all elements in the document,
// and should not be modified. An Element also captures the xml
// namespace prefixes in scope at its position, so that arbitrary
// QNames in attribute values can be resolved.
type Element struct {
	xml.StartElement
	// The XML namespace scope at this element's position in the
	// document.
	Scope
	// The raw content contained within this element's tags. For
	// elements with children this includes the child markup.
	Content []byte
	// The element's child elements, in document order.
	Children []Element
}

// Attr gets the value of the first attribute whose name matches the
// space and local arguments. If space is the empty string, only
// attributes' local names are considered when looking for a match.
// If an attribute could not be found, the empty string is returned.
func (el *Element) Attr(space, local string) string {
	for _, v := range el.StartElement.Attr {
		if v.Name.Local != local {
			continue
		}
		if space == "" || space == v.Name.Space {
			return v.Value
		}
	}
	return ""
}

// SetAttr adds an XML attribute to an Element's existing attributes.
// If the attribute already exists, its value is replaced.
func (el *Element) SetAttr(space, local, value string) {
	for i, a := range el.StartElement.Attr {
		if a.Name.Local != local {
			continue
		}
		if space == "" || a.Name.Space == space {
			el.StartElement.Attr[i].Value = value
			return
		}
	}
	el.StartElement.Attr = append(el.StartElement.Attr, xml.Attr{
		Name:  xml.Name{Space: space, Local: local},
		Value: value,
	})
}

// Parse builds a tree of Elements by reading an XML document. The
// byte slice passed to Parse is expected to be a valid XML document
// with a single root element, encoded in UTF-8. Use Decode for
// documents in other encodings.
func Parse(doc []byte) (*Element, error) {
	d := xml.NewDecoder(bytes.NewReader(doc))

	// Each entry on the stack is an element whose end tag has not
	// been seen yet, together with the offset in doc where its raw
	// content begins.
	type frame struct {
		el     *Element
		offset int64
	}
	var (
		root  *Element
		stack []frame
		last  int64 // input offset just past the previous token
	)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if len(stack) >= recursionLimit {
				return nil, errDeepXML
			}
			el := Element{StartElement: tok.Copy()}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("xmltree: multiple root elements")
				}
				el.Scope = el.Scope.Sub(tok)
				root = &el
				stack = append(stack, frame{root, d.InputOffset()})
				break
			}
			// Appending to the parent cannot invalidate deeper
			// frames; elements between a start tag and its end tag
			// belong to its subtree, so only the innermost open
			// element grows while it is on the stack.
			parent := stack[len(stack)-1].el
			el.Scope = parent.Scope.Sub(tok)
			parent.Children = append(parent.Children, el)
			child := &parent.Children[len(parent.Children)-1]
			stack = append(stack, frame{child, d.InputOffset()})
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("xmltree: unexpected </%s>", tok.Name.Local)
			}
			top := stack[len(stack)-1]
			if tok.Name != top.el.Name {
				return nil, fmt.Errorf("xmltree: expected </%s>, got </%s>",
					top.el.Prefix(top.el.Name), top.el.Prefix(tok.Name))
			}
			// last still points at the position before this end
			// tag was consumed.
			top.el.Content = doc[top.offset:last]
			stack = stack[:len(stack)-1]
		}
		last = d.InputOffset()
	}
	if root == nil {
		return nil, errors.New("xmltree: no root element")
	}
	return root, nil
}

// Decode reads an XML document from r and parses it with Parse. If
// the document's XML declaration names a charset other than UTF-8,
// the document is converted to UTF-8 first. Decode understands the
// charset labels supported by the golang.org/x/net/html/charset
// package.
func Decode(r io.Reader) (*Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if label := encodingLabel(data); label != "" && !strings.EqualFold(label, "utf-8") {
		cr, err := charset.NewReaderLabel(label, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("xmltree: charset %q: %w", label, err)
		}
		if data, err = io.ReadAll(cr); err != nil {
			return nil, err
		}
		// The converted document no longer matches its encoding
		// declaration, so the declaration must not survive.
		data = stripXMLDecl(data)
	}
	return Parse(data)
}

// encodingLabel extracts the encoding name from a document's XML
// declaration, or returns "" if there is none.
func encodingLabel(doc []byte) string {
	if !bytes.HasPrefix(doc, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(doc, []byte("?>"))
	if end < 0 {
		return ""
	}
	decl := string(doc[:end])
	i := strings.Index(decl, "encoding=")
	if i < 0 {
		return ""
	}
	rest := decl[i+len("encoding="):]
	if len(rest) < 2 || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	quote := rest[0]
	if j := strings.IndexByte(rest[1:], quote); j >= 0 {
		return rest[1 : j+1]
	}
	return ""
}

// stripXMLDecl removes the XML declaration from the front of a
// document.
func stripXMLDecl(doc []byte) []byte {
	if !bytes.HasPrefix(doc, []byte("<?xml")) {
		return doc
	}
	if end := bytes.Index(doc, []byte("?>")); end >= 0 {
		return doc[end+len("?>"):]
	}
	return doc
}

// Unmarshal parses the XML encoding of the Element and stores the
// result in the value pointed to by v. Unmarshal follows the same
// rules as encoding/xml.Unmarshal, but only parses the portion of
// the XML document contained by el. Because the element tree is
// re-encoded before decoding, any modifications made to it since
// parsing are reflected in the result.
func Unmarshal(el *Element, v interface{}) error {
	return xml.Unmarshal(Marshal(el), v)
}
