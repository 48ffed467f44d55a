package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"aqwari.net/xsdquery"
	"aqwari.net/xsdquery/xmltree"
)

var (
	elementName = flag.String("e", "", "print the declaration of a top-level element")
	typeName    = flag.String("t", "", "print the definitions of a named type")
	showBase    = flag.Bool("base", false, "with -t, print the restriction base type instead")
	showFacets  = flag.Bool("facets", false, "with -t, print the restriction facets instead")
	showOccurs  = flag.Bool("occurs", false, "with -e, print the occurrence range instead")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() > 1 || (*elementName == "") == (*typeName == "") {
		log.Fatalf("Usage: %s [-e element | -t type] [-base] [-facets] [-occurs] [file|url]", os.Args[0])
	}

	var input string
	if flag.NArg() == 1 {
		input = flag.Arg(0)
	}
	r, err := open(input)
	if err != nil {
		log.Fatal(err)
	}
	root, err := xmltree.Decode(r)
	r.Close()
	if err != nil {
		log.Fatal(err)
	}

	if *elementName != "" {
		showElement(root, *elementName)
	} else {
		showType(root, *typeName)
	}
}

// Schema locations are commonly passed around as http urls. Anything
// that does not look like one is treated as a file name, with "-" (or
// no argument at all) standing for standard input.
func open(arg string) (io.ReadCloser, error) {
	if arg == "" || arg == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		resp, err := http.Get(arg)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s: %s", arg, resp.Status)
		}
		return resp.Body, nil
	}
	return os.Open(arg)
}

func showElement(root *xmltree.Element, name string) {
	el := xsdquery.FindElement(root, name)
	if el == nil {
		log.Fatalf("no top-level element named %q", name)
	}
	if *showOccurs {
		occurs, err := xsdquery.ParseOccurs(el)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s %s\n", name, occurs)
		return
	}
	fmt.Printf("%s\n", xmltree.MarshalIndent(el, "", "  "))
}

func showType(root *xmltree.Element, name string) {
	defs := xsdquery.FindTypeDefinitions(root, name)
	if len(defs) == 0 {
		log.Fatalf("no type definition named %q", name)
	}
	for _, def := range defs {
		switch {
		case *showBase:
			base, ok := xsdquery.RestrictionBase(def)
			if !ok {
				log.Fatalf("%s %q does not restrict another type", def.Name.Local, name)
			}
			fmt.Printf("{%s}%s\n", base.Space, base.Local)
		case *showFacets:
			if _, ok := xsdquery.RestrictionBase(def); !ok {
				log.Fatalf("%s %q does not restrict another type", def.Name.Local, name)
			}
			for _, facet := range xsdquery.RestrictionFacets(def) {
				fmt.Printf("%s\n", xmltree.Marshal(&facet))
			}
		default:
			fmt.Printf("%s\n", xmltree.MarshalIndent(def, "", "  "))
		}
	}
}
