package xsdquery

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"aqwari.net/xsdquery/xmltree"
)

// A Restriction is the decoded form of the facets narrowing a simple
// type. Only the facets useful for inspecting a schema are recorded;
// this package is not a validator, and a zero field means the facet
// was not declared.
//
// http://www.w3.org/TR/2004/REC-xmlschema-2-20041028/datatypes.html#element-restriction
type Restriction struct {
	// The type the facets narrow, as resolved at the restriction
	// element.
	Base xml.Name
	// If len(Enum) > 0, the value must be one of the values listed,
	// in document order.
	Enum []string
	// Regular expression that values must match. Multiple pattern
	// facets are alternatives, and are combined with |.
	Pattern *regexp.Regexp
	// Lower and upper bounds for numeric values. The bound itself
	// is excluded when the matching Exclusive field is true.
	Min, Max                   float64
	MinExclusive, MaxExclusive bool
	// Bounds on the length of a value, in characters. A length
	// facet sets both.
	MinLength, MaxLength int
	// Digits allowed to the right of the decimal point.
	Precision int
	// The whiteSpace facet: "preserve", "replace" or "collapse".
	WhiteSpace string
	// Documentation provided in annotation facets.
	Doc string
}

// ParseRestriction decodes the facet list of el's restriction child
// into a Restriction. Unlike RestrictionFacets, a missing restriction
// child is reported as an error rather than a panic. Facets this
// package does not model are skipped; a facet with a malformed
// numeric value makes ParseRestriction fail.
func ParseRestriction(el *xmltree.Element) (Restriction, error) {
	restriction := el.FindChild(SchemaNS, "restriction")
	if restriction == nil {
		return Restriction{}, fmt.Errorf("xsdquery: <%s name=%q> has no restriction element",
			el.Name.Local, el.Attr("", "name"))
	}
	var (
		r        Restriction
		err      error
		doc      annotation
		patterns []string
	)
	r.Base, _ = TypeFromAttr(restriction, "", "base")
	for i := range restriction.Children {
		facet := &restriction.Children[i]
		switch facet.Name.Local {
		case "enumeration":
			r.Enum = append(r.Enum, facet.Attr("", "value"))
		case "minInclusive":
			if r.Min, err = facetFloat(facet); err != nil {
				return Restriction{}, err
			}
		case "minExclusive":
			if r.Min, err = facetFloat(facet); err != nil {
				return Restriction{}, err
			}
			r.MinExclusive = true
		case "maxInclusive":
			if r.Max, err = facetFloat(facet); err != nil {
				return Restriction{}, err
			}
		case "maxExclusive":
			if r.Max, err = facetFloat(facet); err != nil {
				return Restriction{}, err
			}
			r.MaxExclusive = true
		case "length":
			if r.MinLength, err = facetInt(facet); err != nil {
				return Restriction{}, err
			}
			r.MaxLength = r.MinLength
		case "minLength":
			if r.MinLength, err = facetInt(facet); err != nil {
				return Restriction{}, err
			}
		case "maxLength":
			if r.MaxLength, err = facetInt(facet); err != nil {
				return Restriction{}, err
			}
		case "fractionDigits":
			if r.Precision, err = facetInt(facet); err != nil {
				return Restriction{}, err
			}
			if r.Precision < 0 {
				return Restriction{}, fmt.Errorf("xsdquery: fractionDigits %q is negative",
					facet.Attr("", "value"))
			}
		case "whiteSpace":
			r.WhiteSpace = facet.Attr("", "value")
		case "pattern":
			patterns = append(patterns, facet.Attr("", "value"))
		case "annotation":
			a, err := parseAnnotation(facet)
			if err != nil {
				return Restriction{}, err
			}
			doc = doc.append(a)
		}
	}
	if len(patterns) > 0 {
		// XML Schema defines its own pattern language:
		//
		// http://www.w3.org/TR/xmlschema-0/#regexAppendix
		//
		// For common schemas it is close enough to RE2 to compile
		// directly. A pattern RE2 rejects is noted in Doc instead of
		// failing the whole restriction.
		pat := strings.Join(patterns, "|")
		reg, err := regexp.Compile(pat)
		if err != nil {
			doc = doc.append(annotation(fmt.Sprintf(
				"Values must match the pattern %q, which could not be compiled as a regular expression. (%v)", pat, err)))
		}
		r.Pattern = reg
	}
	r.Doc = string(doc)
	return r, nil
}

func facetFloat(el *xmltree.Element) (float64, error) {
	v := el.Attr("", "value")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("xsdquery: %s %q: %w", el.Name.Local, v, err)
	}
	return n, nil
}

func facetInt(el *xmltree.Element) (int, error) {
	v := el.Attr("", "value")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("xsdquery: %s %q: %w", el.Name.Local, v, err)
	}
	return n, nil
}

type annotation string

func (a annotation) append(extra annotation) annotation {
	if a != "" && extra != "" {
		a += "\n\n"
	}
	return a + extra
}

// An annotation element may contain zero or more documentation
// children. Their content is joined, separated by blank lines.
func (doc *annotation) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var parts [][]byte
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.EndElement:
			*doc = annotation(bytes.Join(parts, []byte("\n\n")))
			return nil
		case xml.StartElement:
			if (tok.Name != xml.Name{Space: SchemaNS, Local: "documentation"}) {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			var frag []byte
			if err := d.DecodeElement(&frag, &tok); err != nil {
				return err
			}
			if frag = bytes.TrimSpace(frag); len(frag) > 0 {
				parts = append(parts, frag)
			}
		}
	}
}

func parseAnnotation(el *xmltree.Element) (annotation, error) {
	var doc annotation
	if err := xmltree.Unmarshal(el, &doc); err != nil {
		return "", err
	}
	return doc, nil
}
