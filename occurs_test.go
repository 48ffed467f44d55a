package xsdquery

import (
	"testing"

	"aqwari.net/xsdquery/xmltree"
)

func findParticle(t *testing.T, root *xmltree.Element, name string) *xmltree.Element {
	t.Helper()
	matches := root.SearchFunc(and(
		isElem(SchemaNS, "element"),
		hasAttrValue("", "name", name),
	))
	if len(matches) == 0 {
		t.Fatalf("no element declaration named %q", name)
	}
	return matches[0]
}

func TestParseOccurs(t *testing.T) {
	root := parseFile(t, "testdata/po.xsd")
	for _, tt := range []struct {
		name string
		want Occurs
	}{
		{"shipTo", Occurs{Min: 1, Max: 1}},
		{"billTo", Occurs{Min: 0, Max: 1}},
		{"shipDate", Occurs{Min: 0, Max: 1}},
		{"item", Occurs{Min: 1, Max: Unbounded}},
	} {
		el := findParticle(t, root, tt.name)
		got, err := ParseOccurs(el)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("occurs of %s = %s, wanted %s", tt.name, got, tt.want)
		}
	}
}

func TestParseOccursAttributes(t *testing.T) {
	doc := []byte(`<seq>
	  <e minOccurs="0" maxOccurs="5"/>
	  <e minOccurs="" maxOccurs=""/>
	  <e maxOccurs="unbounded"/>
	</seq>`)
	root := parseDoc(t, doc)
	want := []Occurs{
		{Min: 0, Max: 5},
		{Min: 1, Max: 1},
		{Min: 1, Max: Unbounded},
	}
	for i := range root.Children {
		got, err := ParseOccurs(&root.Children[i])
		if err != nil {
			t.Errorf("element %d: %v", i, err)
			continue
		}
		if got != want[i] {
			t.Errorf("element %d: got %s, wanted %s", i, got, want[i])
		}
	}
}

func TestParseOccursMalformed(t *testing.T) {
	doc := []byte(`<seq>
	  <e minOccurs="two"/>
	  <e maxOccurs="many"/>
	  <e maxOccurs="UNBOUNDED"/>
	</seq>`)
	root := parseDoc(t, doc)
	for i := range root.Children {
		if _, err := ParseOccurs(&root.Children[i]); err == nil {
			t.Errorf("element %d: no error for a malformed bound", i)
		}
	}
}

func TestOccursHelpers(t *testing.T) {
	for _, tt := range []struct {
		occurs                      Occurs
		unbounded, plural, optional bool
	}{
		{Occurs{Min: 1, Max: 1}, false, false, false},
		{Occurs{Min: 0, Max: 1}, false, false, true},
		{Occurs{Min: 1, Max: 2}, false, true, false},
		{Occurs{Min: 0, Max: Unbounded}, true, true, true},
	} {
		if got := tt.occurs.IsUnbounded(); got != tt.unbounded {
			t.Errorf("%s.IsUnbounded() = %v", tt.occurs, got)
		}
		if got := tt.occurs.Plural(); got != tt.plural {
			t.Errorf("%s.Plural() = %v", tt.occurs, got)
		}
		if got := tt.occurs.Optional(); got != tt.optional {
			t.Errorf("%s.Optional() = %v", tt.occurs, got)
		}
	}
}

func TestOccursString(t *testing.T) {
	if got := (Occurs{Min: 0, Max: Unbounded}).String(); got != "[0, unbounded]" {
		t.Errorf("got %q, wanted %q", got, "[0, unbounded]")
	}
	if got := (Occurs{Min: 1, Max: 3}).String(); got != "[1, 3]" {
		t.Errorf("got %q, wanted %q", got, "[1, 3]")
	}
}
