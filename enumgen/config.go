package enumgen

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// A Config holds user-defined overrides that are used when generating
// Go source code from the enumerated types in an xsd document.
type Config struct {
	logger   Logger
	loglevel int
	pkgname  string
	types    []string
	// Transform for generated identifiers
	nameTransform func(string) string
}

func (cfg *Config) errorf(format string, v ...interface{}) {
	if cfg.logger != nil {
		cfg.logger.Printf(format, v...)
	}
}

func (cfg *Config) logf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 0 {
		cfg.logger.Printf(format, v...)
	}
}

func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 3 {
		cfg.logger.Printf(format, v...)
	}
}

// An Option is used to customize a Config.
type Option func(*Config) Option

// DefaultOptions are the default options for Go source code generation.
// They name the generated package "enum", and strip characters that are
// common in XML names but invalid in Go identifiers.
var DefaultOptions = []Option{
	PackageName("enum"),
	Replace(`[._ \s-]`, ""),
}

// The Option method is used to configure an existing configuration.
// The return value of the Option method can be used to revert the
// final option to its previous setting.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// Types implementing the Logger interface can receive warnings and
// debug information from the code generation process. The Logger
// interface is implemented by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// LogOutput specifies an optional Logger for warnings and debug
// information about the code generation process.
func LogOutput(l Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return LogOutput(prev)
	}
}

// LogLevel sets the verbosity of messages sent to the error log
// configured with the LogOutput option. The level parameter should
// be a positive integer between 1 and 5, with 5 providing the greatest
// verbosity.
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}

// PackageName specifies the name of the generated Go package.
func PackageName(name string) Option {
	return func(cfg *Config) Option {
		prev := cfg.pkgname
		cfg.pkgname = name
		return PackageName(prev)
	}
}

// The Types option selects the xsd types to generate declarations for.
// When no types are selected, declarations are generated for every
// named simple type with enumeration facets in the document.
func Types(names ...string) Option {
	return func(cfg *Config) Option {
		prev := cfg.types
		cfg.types = names
		return Types(prev...)
	}
}

// Replace allows for substitution rules for generated identifiers to
// be specified. If an invalid regular expression is passed, no action
// is taken. The Replace option is additive; substitutions will be
// applied in the order that each option was applied in.
func Replace(pat, repl string) Option {
	reg, err := regexp.Compile(pat)

	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		return replaceNameTransform(func(name string) string {
			if prev != nil {
				name = prev(name)
			}
			if err != nil {
				cfg.logf("Invalid regex %q passed to Replace", pat)
				return name
			}
			r := reg.ReplaceAllString(name, repl)
			if r != name {
				cfg.debugf("changed name %s -> %s", name, r)
			}
			return r
		})(cfg)
	}
}

func replaceNameTransform(fn func(string) string) Option {
	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		cfg.nameTransform = fn
		return replaceNameTransform(prev)
	}
}

func replaceAllNamesRegex(reg *regexp.Regexp, repl string) Option {
	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		return replaceNameTransform(func(name string) string {
			if prev != nil {
				name = prev(name)
			}
			s := reg.ReplaceAllString(name, repl)
			if s != name {
				cfg.debugf("changed %s -> %s", name, s)
			}
			return s
		})(cfg)
	}
}

func (cfg *Config) public(name string) string {
	if cfg.nameTransform != nil {
		name = cfg.nameTransform(name)
	}
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
