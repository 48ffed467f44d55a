package enumgen

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"aqwari.net/xsdquery/xmltree"
	"gopkg.in/yaml.v3"
)

type replaceRule struct {
	from *regexp.Regexp
	to   string
}

type replaceRuleList []replaceRule

func (r *replaceRuleList) String() string {
	var buf bytes.Buffer
	for _, item := range *r {
		fmt.Fprintf(&buf, "%s -> %s\n", item.from, item.to)
	}
	return buf.String()
}

func (r *replaceRuleList) Set(s string) error {
	parts := strings.SplitN(s, "->", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid replace rule %q. must be \"regex -> replacement\"", s)
	}
	parts[0] = strings.TrimSpace(parts[0])
	parts[1] = strings.TrimSpace(parts[1])
	reg, err := regexp.Compile(parts[0])
	if err != nil {
		return fmt.Errorf("invalid regex %q: %v", parts[0], err)
	}
	*r = append(*r, replaceRule{reg, parts[1]})
	return nil
}

type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(val string) error {
	*s = append(*s, val)
	return nil
}

// A configFile mirrors the flags of the xsdenum command, so that
// generator settings can be checked in alongside the code they
// produce. Replacement rules use the same "regex -> replacement"
// form as the -r flag.
type configFile struct {
	Package string   `yaml:"package"`
	Output  string   `yaml:"output"`
	Types   []string `yaml:"types"`
	Replace []string `yaml:"replace"`
}

func (cfg *Config) readConfigFile(filename string) (*configFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %v", filename, err)
	}
	if file.Package != "" {
		cfg.Option(PackageName(file.Package))
	}
	var rules replaceRuleList
	for _, rule := range file.Replace {
		if err := rules.Set(rule); err != nil {
			return nil, fmt.Errorf("%s: %v", filename, err)
		}
	}
	for _, r := range rules {
		cfg.Option(replaceAllNamesRegex(r.from, r.to))
	}
	cfg.debugf("read settings from %s", filename)
	return &file, nil
}

// GenCLI creates a file containing Go declarations for the enumerated
// types in a set of xsd documents. It is intended to be called from
// the main function of any command-line interfaces to the enumgen
// package.
func (cfg *Config) GenCLI(arguments ...string) error {
	var (
		err          error
		replaceRules replaceRuleList
		typeNames    stringSlice
		fs           = flag.NewFlagSet("xsdenum", flag.ExitOnError)
		configPath   = fs.String("c", "", "yaml file with generator settings")
		packageName  = fs.String("pkg", "", "name of the generated package")
		output       = fs.String("o", "xsdenum_output.go", "name of the output file")
		verbose      = fs.Bool("v", false, "print verbose output")
		debug        = fs.Bool("vv", false, "print debug output")
	)
	fs.Var(&replaceRules, "r", "replacement rule 'regex -> repl' (can be used multiple times)")
	fs.Var(&typeNames, "t", "name of a type to declare (can be used multiple times)")
	fs.Parse(arguments)
	if fs.NArg() == 0 {
		return errors.New("Usage: xsdenum [-c file] [-t type] [-r rule] [-o file] [-pkg pkg] file ...")
	}

	if *debug {
		cfg.Option(LogLevel(5))
	} else if *verbose {
		cfg.Option(LogLevel(1))
	}

	// Settings given as flags win over the config file.
	if *configPath != "" {
		file, err := cfg.readConfigFile(*configPath)
		if err != nil {
			return err
		}
		flagged := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { flagged[f.Name] = true })
		if file.Output != "" && !flagged["o"] {
			*output = file.Output
		}
		if len(typeNames) == 0 {
			typeNames = stringSlice(file.Types)
		}
	}
	if len(typeNames) > 0 {
		cfg.Option(Types(typeNames...))
	}
	if *packageName != "" {
		cfg.Option(PackageName(*packageName))
	}
	for _, r := range replaceRules {
		cfg.Option(replaceAllNamesRegex(r.from, r.to))
	}

	roots := make([]*xmltree.Element, 0, fs.NArg())
	for _, filename := range fs.Args() {
		data, err := os.ReadFile(filename)
		if err != nil {
			return err
		}
		cfg.debugf("read %s", filename)
		root, err := xmltree.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %v", filename, err)
		}
		roots = append(roots, root)
	}

	out, err := cfg.gen(roots, cfg.types)
	if err != nil {
		return err
	}
	return os.WriteFile(*output, out, 0666)
}
