package xmltree

import (
	"bytes"
	"encoding/xml"
	"os"
	"strings"
	"testing"
)

var orderSchema = []byte(`<?xml version="1.0" encoding="utf-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:tns="http://example.net/orders/" xmlns="http://example.net/orders/" targetNamespace="http://example.net/orders/" elementFormDefault="qualified">
  <xs:element name="order" type="tns:orderType" />
  <xs:element name="invoice" type="tns:orderType" />
  <xs:complexType name="orderType">
    <xs:sequence>
      <xs:element name="id" type="xs:string" minOccurs="1" maxOccurs="1" />
      <xs:element name="item" type="tns:itemType" minOccurs="0" maxOccurs="unbounded" />
    </xs:sequence>
    <xs:attribute name="created" type="xs:date" />
  </xs:complexType>
  <xs:complexType name="itemType">
    <xs:sequence xmlns:tns="http://example.net/parts/">
      <xs:element name="part" type="tns:partNumber" />
      <xs:element name="quantity" type="xs:positiveInteger" />
    </xs:sequence>
  </xs:complexType>
  <xs:simpleType name="partNumber">
    <xs:restriction base="xs:string">
      <xs:pattern value="[0-9]{3}-[A-Z]{2}" />
    </xs:restriction>
  </xs:simpleType>
</xs:schema>`)

const (
	schemaNS = "http://www.w3.org/2001/XMLSchema"
	orderNS  = "http://example.net/orders/"
	partsNS  = "http://example.net/parts/"
)

func parseDoc(t *testing.T, document []byte) *Element {
	root, err := Parse(document)
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestParse(t *testing.T) {
	var buf struct {
		Data []byte `xml:",innerxml"`
	}
	root := parseDoc(t, orderSchema)
	for _, el := range root.Flatten() {
		if err := Unmarshal(el, &buf); err != nil {
			t.Error(err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		``,
		`<a></a><b></b>`,
		`<a><b></a>`,
		`<a>`,
		strings.Repeat("<a>", recursionLimit+1),
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("parsed invalid document %.20q without error", doc)
		}
	}
}

func TestSelfClosing(t *testing.T) {
	root := parseDoc(t, []byte(`<a/>`))
	if len(root.Content) != 0 {
		t.Errorf("content of <a/> was %q, wanted empty", root.Content)
	}
	if s := root.String(); s != "<a></a>" {
		t.Errorf("got %q, wanted %q", s, "<a></a>")
	}
}

func TestSearch(t *testing.T) {
	root := parseDoc(t, orderSchema)
	if result := root.Search(schemaNS, "element"); len(result) != 6 {
		t.Errorf("Search(%q, \"element\") returned %d results, wanted 6", schemaNS, len(result))
	}
	if result := root.Search(schemaNS, "complexType"); len(result) != 2 {
		t.Errorf("Search(%q, \"complexType\") returned %d results, wanted 2", schemaNS, len(result))
	}
	// The root element is not part of its own search results.
	if result := root.Search(schemaNS, "schema"); len(result) != 0 {
		t.Errorf("search found the root element %d times", len(result))
	}
}

func TestFindChild(t *testing.T) {
	root := parseDoc(t, orderSchema)
	first := root.FindChild(schemaNS, "complexType")
	if first == nil {
		t.Fatal("could not find a complexType child of the schema")
	}
	if name := first.Attr("", "name"); name != "orderType" {
		t.Errorf("FindChild returned complexType %q, wanted \"orderType\"", name)
	}
	// FindChild only considers direct children, not all descendants.
	if el := root.FindChild(schemaNS, "sequence"); el != nil {
		t.Errorf("found grandchild element <%s>", el.Name.Local)
	}
	if el := first.FindChildFunc(func(c *Element) bool {
		return c.Name.Local == "attribute" && c.Attr("", "name") == "created"
	}); el == nil {
		t.Error("could not find the created attribute declaration")
	}
}

func TestNSResolution(t *testing.T) {
	root := parseDoc(t, orderSchema)

	// Inside itemType the tns prefix is rebound, so the same QName
	// resolves differently depending on where it appears.
	for _, el := range root.Search(schemaNS, "element") {
		qname := el.Attr("", "type")
		if qname == "" {
			continue
		}
		name, ok := el.ResolveNS(qname)
		if !ok {
			t.Errorf("could not resolve %q at <%s name=%q>", qname, el.Name.Local, el.Attr("", "name"))
			continue
		}
		switch el.Attr("", "name") {
		case "part":
			if name.Space != partsNS {
				t.Errorf("type of part resolved to %q, wanted %q", name.Space, partsNS)
			}
		case "item", "order", "invoice":
			if name.Space != orderNS {
				t.Errorf("type of %s resolved to %q, wanted %q", el.Attr("", "name"), name.Space, orderNS)
			}
		}
	}

	if name := root.Resolve("untyped"); name.Space != orderNS {
		t.Errorf("default namespace at schema root resolved to %q, wanted %q", name.Space, orderNS)
	}
	if _, ok := root.ResolveNS("bogus:foo"); ok {
		t.Error("resolved undeclared prefix bogus:")
	}
	if name, ok := root.ResolveNS("xml:lang"); !ok || name.Space != "http://www.w3.org/XML/1998/namespace" {
		t.Errorf("xml: prefix resolved to %q", name.Space)
	}
}

func TestResolveDefault(t *testing.T) {
	root := parseDoc(t, orderSchema)
	name := root.ResolveDefault("orderType", "urn:target")
	if name.Space != "urn:target" {
		t.Errorf("unprefixed name resolved to %q, wanted %q", name.Space, "urn:target")
	}
	name = root.ResolveDefault("xs:string", "urn:target")
	if name.Space != schemaNS {
		t.Errorf("prefixed name resolved to %q, wanted %q", name.Space, schemaNS)
	}
}

func TestString(t *testing.T) {
	root := parseDoc(t, orderSchema)
	s := root.String()
	reparsed := parseDoc(t, []byte(s))
	if !Equal(root, reparsed) {
		t.Errorf("document changed after marshalling:\n%s", s)
	}
}

func TestStringPreserveNS(t *testing.T) {
	root := parseDoc(t, orderSchema)
	var doc []byte
	for _, el := range root.Search(schemaNS, "complexType") {
		if el.Attr("", "name") == "itemType" {
			doc = Marshal(el)
		}
	}
	if doc == nil {
		t.Fatal("could not find itemType definition")
	}
	sub := parseDoc(t, doc)
	if len(sub.Search(schemaNS, "element")) != 2 {
		t.Errorf("marshalled subtree lost namespace declarations:\n%s", doc)
	}
	for _, el := range sub.Search(schemaNS, "element") {
		if el.Attr("", "name") != "part" {
			continue
		}
		if name := el.Resolve(el.Attr("", "type")); name.Space != partsNS {
			t.Errorf("type of part resolved to %q after reparse, wanted %q:\n%s",
				name.Space, partsNS, doc)
		}
	}
}

func TestModification(t *testing.T) {
	from := []byte(`<ul><li>standard</li><script>bad</script><li>compact</li></ul>`)
	to := `<ul><li>standard</li><li>compact</li></ul>`
	root := parseDoc(t, from)
	valid := make([]Element, 0, len(root.Children))
	for _, p := range root.Search("", "li") {
		valid = append(valid, *p)
	}
	root.Children = valid
	if s := root.String(); s != to {
		t.Errorf("%s -> %s, wanted %s", from, s, to)
	}
}

func TestUnmarshal(t *testing.T) {
	type restriction struct {
		Base    string `xml:"base,attr"`
		Pattern struct {
			Value string `xml:"value,attr"`
		} `xml:"http://www.w3.org/2001/XMLSchema pattern"`
	}
	root := parseDoc(t, orderSchema)
	matches := root.Search(schemaNS, "restriction")
	if len(matches) != 1 {
		t.Fatalf("found %d restriction elements, wanted 1", len(matches))
	}
	el := matches[0]

	var v restriction
	if err := Unmarshal(el, &v); err != nil {
		t.Fatal(err)
	}
	if v.Base != "xs:string" {
		t.Errorf("base attribute was %q, wanted %q", v.Base, "xs:string")
	}
	if v.Pattern.Value != "[0-9]{3}-[A-Z]{2}" {
		t.Errorf("pattern was %q", v.Pattern.Value)
	}

	// Changes to the tree are visible to Unmarshal.
	el.Children[0].SetAttr("", "value", "[A-Z]+")
	if err := Unmarshal(el, &v); err != nil {
		t.Fatal(err)
	}
	if v.Pattern.Value != "[A-Z]+" {
		t.Errorf("modification to pattern was not respected: %q", v.Pattern.Value)
	}
}

func TestSetAttr(t *testing.T) {
	root := parseDoc(t, []byte(`<a x="1"/>`))
	root.SetAttr("", "x", "2")
	root.SetAttr("", "y", "3")
	if got := root.Attr("", "x"); got != "2" {
		t.Errorf("x = %q, wanted \"2\"", got)
	}
	if got := root.Attr("", "y"); got != "3" {
		t.Errorf("y = %q, wanted \"3\"", got)
	}
	if n := len(root.StartElement.Attr); n != 2 {
		t.Errorf("element has %d attributes, wanted 2", n)
	}
}

func TestEqual(t *testing.T) {
	a := parseDoc(t, []byte(`<p:a xmlns:p="urn:test"><p:b x="1"></p:b><p:c>  text  </p:c></p:a>`))
	b := parseDoc(t, []byte(`<q:a xmlns:q="urn:test"><q:c>text</q:c><q:b x="1"></q:b></q:a>`))
	if !Equal(a, b) {
		t.Error("trees differing only in prefix and child order were not equal")
	}
	if a.Children[0].Name.Local != "b" || b.Children[0].Name.Local != "c" {
		t.Error("Equal reordered the children of its arguments")
	}

	c := parseDoc(t, []byte(`<q:a xmlns:q="urn:test"><q:c>text</q:c><q:b x="2"></q:b></q:a>`))
	if Equal(a, c) {
		t.Error("trees with differing attribute values were equal")
	}
	d := parseDoc(t, []byte(`<p:a xmlns:p="urn:test" extra="1"><p:b x="1"></p:b><p:c>text</p:c></p:a>`))
	if Equal(d, a) || Equal(a, d) {
		t.Error("trees with differing attribute sets were equal")
	}
}

func TestDecode(t *testing.T) {
	f, err := os.Open("testdata/iso8859-1.xml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	root, err := Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) == 0 {
		t.Fatalf("decoded document had no children: %s", root.String())
	}
	if got := string(root.Children[0].Content); got != "café" {
		t.Errorf("got %q, wanted %q", got, "café")
	}
}

func TestDecodeUTF8(t *testing.T) {
	root, err := Decode(bytes.NewReader(orderSchema))
	if err != nil {
		t.Fatal(err)
	}
	want := xml.Name{Space: schemaNS, Local: "schema"}
	if root.Name != want {
		t.Errorf("got root %v, wanted %v", root.Name, want)
	}
}
