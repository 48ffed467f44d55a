package xsdquery

import (
	"fmt"
	"math"
	"strconv"

	"aqwari.net/xsdquery/xmltree"
)

// Unbounded is the value of Occurs.Max for particles declared with
// maxOccurs="unbounded". It is the largest int, so that comparisons
// against any finite bound order it last.
const Unbounded = math.MaxInt

// Occurs holds the occurrence constraint of a particle: how many
// times an element, sequence or choice may appear at its position in
// an instance document. Schemas are free to declare contradictory
// bounds; Occurs records what the document says and leaves Min <= Max
// for the caller to check.
type Occurs struct {
	Min, Max int
}

// IsUnbounded reports whether the particle may repeat without limit.
func (o Occurs) IsUnbounded() bool { return o.Max == Unbounded }

// Plural reports whether the particle may appear more than once.
func (o Occurs) Plural() bool { return o.Max > 1 }

// Optional reports whether the particle may be omitted entirely.
func (o Occurs) Optional() bool { return o.Min == 0 }

func (o Occurs) String() string {
	if o.IsUnbounded() {
		return fmt.Sprintf("[%d, unbounded]", o.Min)
	}
	return fmt.Sprintf("[%d, %d]", o.Min, o.Max)
}

// ParseOccurs reads the minOccurs and maxOccurs attributes of el. An
// absent or empty attribute takes the schema default of 1, and the
// literal maxOccurs value "unbounded" becomes Unbounded. An attribute
// that is neither empty, "unbounded", nor a base-10 integer makes
// ParseOccurs return an error wrapping the strconv failure.
func ParseOccurs(el *xmltree.Element) (Occurs, error) {
	occurs := Occurs{Min: 1, Max: 1}
	if v := el.Attr("", "minOccurs"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Occurs{}, fmt.Errorf("xsdquery: minOccurs %q: %w", v, err)
		}
		occurs.Min = n
	}
	switch v := el.Attr("", "maxOccurs"); v {
	case "":
	case "unbounded":
		occurs.Max = Unbounded
	default:
		n, err := strconv.Atoi(v)
		if err != nil {
			return Occurs{}, fmt.Errorf("xsdquery: maxOccurs %q: %w", v, err)
		}
		occurs.Max = n
	}
	return occurs, nil
}
