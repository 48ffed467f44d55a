package enumgen

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"aqwari.net/xsdquery"
	"aqwari.net/xsdquery/xmltree"
	"golang.org/x/tools/imports"
)

// Go equivalents for the built-in types that can underlie a constant
// declaration. Types with no usable Go scalar, such as the binary and
// calendar types, keep the lexical form of their values as a string.
var goTypeTbl = [...]string{
	xsdquery.AnyType:            "string",
	xsdquery.AnySimpleType:      "string",
	xsdquery.ENTITIES:           "string",
	xsdquery.ENTITY:             "string",
	xsdquery.ID:                 "string",
	xsdquery.IDREF:              "string",
	xsdquery.IDREFS:             "string",
	xsdquery.NCName:             "string",
	xsdquery.NMTOKEN:            "string",
	xsdquery.NMTOKENS:           "string",
	xsdquery.NOTATION:           "string",
	xsdquery.Name:               "string",
	xsdquery.QName:              "string",
	xsdquery.AnyURI:             "string",
	xsdquery.Base64Binary:       "string",
	xsdquery.Boolean:            "bool",
	xsdquery.Byte:               "int",
	xsdquery.Date:               "string",
	xsdquery.DateTime:           "string",
	xsdquery.Decimal:            "float64",
	xsdquery.Double:             "float64",
	xsdquery.Duration:           "string",
	xsdquery.Float:              "float32",
	xsdquery.GDay:               "string",
	xsdquery.GMonth:             "string",
	xsdquery.GMonthDay:          "string",
	xsdquery.GYear:              "string",
	xsdquery.GYearMonth:         "string",
	xsdquery.HexBinary:          "string",
	xsdquery.Int:                "int",
	xsdquery.Integer:            "int",
	xsdquery.Language:           "string",
	xsdquery.Long:               "int64",
	xsdquery.NegativeInteger:    "int",
	xsdquery.NonNegativeInteger: "int",
	xsdquery.NonPositiveInteger: "int",
	xsdquery.NormalizedString:   "string",
	xsdquery.PositiveInteger:    "int",
	xsdquery.Short:              "int",
	xsdquery.String:             "string",
	xsdquery.Time:               "string",
	xsdquery.Token:              "string",
	xsdquery.UnsignedByte:       "uint",
	xsdquery.UnsignedInt:        "uint",
	xsdquery.UnsignedLong:       "uint64",
	xsdquery.UnsignedShort:      "uint",
}

type fileData struct {
	Package string
	Types   []typeData
}

type typeData struct {
	Doc    []string
	Name   string
	Base   string
	Consts []constData
}

type constData struct {
	Name, Type, Value string
}

var output = template.Must(template.New("enumgen").Parse(
	`package {{.Package}}
{{range .Types}}
{{range .Doc}}{{.}}
{{end}}type {{.Name}} {{.Base}}
{{if .Consts}}
const (
{{range .Consts}}	{{.Name}} {{.Type}} = {{.Value}}
{{end}})
{{end}}{{end}}`))

// GenSource generates Go declarations for simple types defined in the
// xsd document doc. Any type names given override a selection made
// with the Types option; when neither is present, declarations are
// generated for every named simple type with enumeration facets.
func (cfg *Config) GenSource(doc []byte, typeNames ...string) ([]byte, error) {
	root, err := xmltree.Parse(doc)
	if err != nil {
		return nil, err
	}
	if len(typeNames) == 0 {
		typeNames = cfg.types
	}
	return cfg.gen([]*xmltree.Element{root}, typeNames)
}

func (cfg *Config) gen(roots []*xmltree.Element, typeNames []string) ([]byte, error) {
	var defs []*xmltree.Element
	seen := make(map[string]bool)
	if len(typeNames) == 0 {
		for _, def := range enumTypes(roots) {
			name := def.Attr("", "name")
			if seen[name] {
				cfg.errorf("multiple definitions found for type %q; using the first", name)
				continue
			}
			seen[name] = true
			defs = append(defs, def)
		}
		cfg.logf("no types selected; found %d enumerated simple types", len(defs))
	} else {
		for _, name := range typeNames {
			if seen[name] {
				continue
			}
			seen[name] = true
			var matches []*xmltree.Element
			for _, root := range roots {
				matches = append(matches, xsdquery.FindTypeDefinitions(root, name)...)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no definition found for type %q", name)
			}
			if len(matches) > 1 {
				cfg.errorf("%d definitions found for type %q; using the first", len(matches), name)
			}
			defs = append(defs, matches[0])
		}
	}
	if len(defs) == 0 {
		return nil, errors.New("no enumerated simple types in document")
	}

	file := fileData{Package: cfg.pkgname}
	if file.Package == "" {
		file.Package = "enum"
	}
	for _, def := range defs {
		decl, err := cfg.typeDecl(def)
		if err != nil {
			return nil, err
		}
		file.Types = append(file.Types, decl)
	}

	var buf bytes.Buffer
	if err := output.Execute(&buf, file); err != nil {
		return nil, err
	}
	return imports.Process("", buf.Bytes(), nil)
}

// enumTypes returns every named simple type with at least one
// enumeration facet, in document order.
func enumTypes(roots []*xmltree.Element) []*xmltree.Element {
	var defs []*xmltree.Element
	for _, root := range roots {
		defs = append(defs, root.SearchFunc(func(el *xmltree.Element) bool {
			if el.Name.Space != xsdquery.SchemaNS || el.Name.Local != "simpleType" {
				return false
			}
			if el.Attr("", "name") == "" {
				return false
			}
			restriction := el.FindChild(xsdquery.SchemaNS, "restriction")
			if restriction == nil {
				return false
			}
			return restriction.FindChild(xsdquery.SchemaNS, "enumeration") != nil
		})...)
	}
	return defs
}

func (cfg *Config) typeDecl(def *xmltree.Element) (typeData, error) {
	name := def.Attr("", "name")
	if name == "" {
		return typeData{}, fmt.Errorf("cannot declare anonymous %s", def.Name.Local)
	}
	r, err := xsdquery.ParseRestriction(def)
	if err != nil {
		return typeData{}, err
	}

	base := "string"
	if b, err := xsdquery.ParseBuiltin(r.Base); err != nil {
		cfg.logf("%s: base type %s is not built in; declaring as string", name, r.Base.Local)
	} else if int(b) < len(goTypeTbl) {
		base = goTypeTbl[b]
	}

	t := typeData{Name: cfg.public(name), Base: base, Doc: docLines(r.Doc)}
	if t.Name == "" {
		return typeData{}, fmt.Errorf("type name %q maps to an empty Go identifier", name)
	}

	seen := make(map[string]bool)
	for _, value := range r.Enum {
		lit, err := goLiteral(base, value)
		if err != nil {
			cfg.errorf("%s: cannot represent %q as %s: %v", name, value, base, err)
			continue
		}
		ident := cfg.public(value)
		if ident == "" {
			cfg.errorf("%s: value %q maps to an empty Go identifier", name, value)
			continue
		}
		ident = t.Name + ident
		if seen[ident] {
			cfg.errorf("%s: duplicate constant %s for value %q", name, ident, value)
			continue
		}
		seen[ident] = true
		t.Consts = append(t.Consts, constData{Name: ident, Type: t.Name, Value: lit})
	}
	cfg.debugf("declared type %s (%s) with %d constants", t.Name, base, len(t.Consts))
	return t, nil
}

func docLines(doc string) []string {
	if doc == "" {
		return nil
	}
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("// "+line, " ")
	}
	return lines
}

// goLiteral converts the lexical form of an enumeration value to a Go
// constant literal. Numeric values are normalized through the matching
// strconv parser, so that lexical forms Go would misread, such as
// leading zeroes, do not change meaning.
func goLiteral(goType, lexical string) (string, error) {
	s := strings.TrimSpace(lexical)
	switch goType {
	case "bool":
		v, err := strconv.ParseBool(s)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(v), nil
	case "float32", "float64":
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case "int", "int64":
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	case "uint", "uint64":
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(v, 10), nil
	}
	return strconv.Quote(lexical), nil
}
