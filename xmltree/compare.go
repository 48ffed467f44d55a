package xmltree

import (
	"bytes"
	"encoding/xml"
	"sort"
)

// Equal returns true if two xmltree.Elements are equal, ignoring
// differences in white space, sub-element order, and namespace
// prefixes. Neither element is modified.
func Equal(a, b *Element) bool {
	return equal(a, b, 0)
}

type byName []Element

func (l byName) Len() int { return len(l) }
func (l byName) Less(i, j int) bool {
	return l[i].Name.Space+l[i].Name.Local < l[j].Name.Space+l[j].Name.Local
}
func (l byName) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func equal(a, b *Element, depth int) bool {
	if depth > recursionLimit {
		return false
	}
	if !equalTag(a, b) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	if len(a.Children) == 0 {
		return bytes.Equal(bytes.TrimSpace(a.Content), bytes.TrimSpace(b.Content))
	}
	// Sort copies, so that comparing two trees does not reorder
	// their children.
	achildren := append([]Element{}, a.Children...)
	bchildren := append([]Element{}, b.Children...)
	sort.Sort(byName(achildren))
	sort.Sort(byName(bchildren))
	for i := range achildren {
		if !equal(&achildren[i], &bchildren[i], depth+1) {
			return false
		}
	}
	return true
}

func equalTag(a, b *Element) bool {
	if a.Name != b.Name {
		return false
	}
	attrs := make(map[xml.Name]string)
	for _, attr := range a.StartElement.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		attrs[attr.Name] = attr.Value
	}
	n := len(attrs)
	for _, attr := range b.StartElement.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		v, ok := attrs[attr.Name]
		if !ok || v != attr.Value {
			return false
		}
		n--
	}
	return n == 0
}
