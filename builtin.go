package xsdquery

import (
	"encoding/xml"
	"fmt"
)

// A Builtin is one of the built-in datatypes defined by the W3C
// specification, "XML Schema Part 2: Datatypes".
//
// http://www.w3.org/TR/xmlschema-2/#built-in-datatypes
type Builtin int

const (
	AnyType Builtin = iota
	AnySimpleType
	ENTITIES
	ENTITY
	ID
	IDREF
	IDREFS
	NCName
	NMTOKEN
	NMTOKENS
	NOTATION
	Name
	QName
	AnyURI
	Base64Binary
	Boolean
	Byte
	Date
	DateTime
	Decimal
	Double
	Duration
	Float
	GDay
	GMonth
	GMonthDay // ISO 8601 format: --MM-DD
	GYear
	GYearMonth
	HexBinary
	Int
	Integer
	Language
	Long
	NegativeInteger
	NonNegativeInteger
	NonPositiveInteger
	NormalizedString
	PositiveInteger
	Short
	String
	Time
	Token
	UnsignedByte
	UnsignedInt
	UnsignedLong
	UnsignedShort
	XMLLang  // xml:lang
	XMLSpace // xml:space
	XMLBase  // xml:base
	XMLId    // xml:id
)

// The xml:* attribute types live in their own schema document rather
// than the schema namespace.
const xmlSchemaURI = "http://www.w3.org/2009/01/xml.xsd"

var builtinNames = [...]string{
	AnyType:            "anyType",
	AnySimpleType:      "anySimpleType",
	ENTITIES:           "ENTITIES",
	ENTITY:             "ENTITY",
	ID:                 "ID",
	IDREF:              "IDREF",
	IDREFS:             "IDREFS",
	NCName:             "NCName",
	NMTOKEN:            "NMTOKEN",
	NMTOKENS:           "NMTOKENS",
	NOTATION:           "NOTATION",
	Name:               "Name",
	QName:              "QName",
	AnyURI:             "anyURI",
	Base64Binary:       "base64Binary",
	Boolean:            "boolean",
	Byte:               "byte",
	Date:               "date",
	DateTime:           "dateTime",
	Decimal:            "decimal",
	Double:             "double",
	Duration:           "duration",
	Float:              "float",
	GDay:               "gDay",
	GMonth:             "gMonth",
	GMonthDay:          "gMonthDay",
	GYear:              "gYear",
	GYearMonth:         "gYearMonth",
	HexBinary:          "hexBinary",
	Int:                "int",
	Integer:            "integer",
	Language:           "language",
	Long:               "long",
	NegativeInteger:    "negativeInteger",
	NonNegativeInteger: "nonNegativeInteger",
	NonPositiveInteger: "nonPositiveInteger",
	NormalizedString:   "normalizedString",
	PositiveInteger:    "positiveInteger",
	Short:              "short",
	String:             "string",
	Time:               "time",
	Token:              "token",
	UnsignedByte:       "unsignedByte",
	UnsignedInt:        "unsignedInt",
	UnsignedLong:       "unsignedLong",
	UnsignedShort:      "unsignedShort",
	XMLLang:            "lang",
	XMLSpace:           "space",
	XMLBase:            "base",
	XMLId:              "id",
}

// String returns the local part of the type's canonical name.
func (b Builtin) String() string {
	if b < 0 || int(b) >= len(builtinNames) {
		return fmt.Sprintf("Builtin(%d)", int(b))
	}
	return builtinNames[b]
}

// Name returns the canonical name of the built-in type. Built-in
// types are in the standard XML Schema namespace, except for the
// xml:* attribute types, which belong to the schema for the XML
// namespace, http://www.w3.org/2009/01/xml.xsd
func (b Builtin) Name() xml.Name {
	space := SchemaNS
	switch b {
	case XMLLang, XMLSpace, XMLBase, XMLId:
		space = xmlSchemaURI
	}
	return xml.Name{Space: space, Local: b.String()}
}

// ParseBuiltin looks up a built-in type by its canonical name. If
// qname does not name a built-in type, ParseBuiltin returns a
// non-nil error.
func ParseBuiltin(qname xml.Name) (Builtin, error) {
	for b := AnyType; b <= UnsignedShort; b++ {
		if b.Name() == qname {
			return b, nil
		}
	}
	return -1, fmt.Errorf("xsdquery: %s is not a built-in type", qname.Local)
}

// IsBuiltin reports whether qname names a built-in schema datatype.
func IsBuiltin(qname xml.Name) bool {
	_, err := ParseBuiltin(qname)
	return err == nil
}
