/*
xsdenum generates Go type declarations and constants for the enumerated
simple types defined in an XML Schema.

Usage:

	xsdenum [-c config] [-o file] [-pkg name] [-t type] [-r rule] file ...

Given a set of XML files containing <xsd:schema> declarations, xsdenum
creates a Go source file declaring one defined type per enumerated
simple type, with a typed constant for each enumeration value. The
generated source only depends on the Go standard library.

If the -t flag is used, only the named types are declared; the flag
may be repeated. Without -t, every named simple type that carries
enumeration facets is declared.

The default package name and output file are "enum" and
"xsdenum_output.go", and can be overridden with the -pkg and -o flags.

The -r flag can be used to specify a series of replacement rules
applied to generated identifiers. A replacement rule is a string of
the form

	regex -> replacement

For example, the rule

	Type$ ->

will strip a trailing "Type" from each declared name. All identifiers
are passed through the defined substitution rules.

The -c flag names a yaml file holding the same settings, so that they
can be checked in alongside the generated code:

	package: shipping
	output: enums.go
	types:
	  - shipMethod
	replace:
	  - "Type$ -> "

Settings given as flags take precedence over the config file.

The xsdenum command may be used with the go generate command. Simply
embed a comment in your go source like so:

	//go:generate xsdenum -t shipMethod schemafile.xsd
*/
package main
