// Package enumgen generates Go declarations for the enumerated simple
// types in an XML Schema document.
//
// For each selected type, enumgen finds the type definition, decodes
// the enumeration facets of its restriction, and emits a defined Go
// type along with one typed constant per enumeration value. The
// underlying Go type is chosen from the restriction's base type; a
// base with no usable Go equivalent keeps the lexical form of its
// values as a string. The generated source is run through the
// goimports formatter before it is returned.
//
// Generator settings may be read from a yaml file with the following
// keys:
//
//	package: name of the generated package
//	output: name of the output file
//	types:
//	  - restrictedType
//	replace:
//	  - "regex -> replacement"
//
// Settings given on the command line take precedence over the config
// file.
package enumgen // import "aqwari.net/xsdquery/enumgen"
