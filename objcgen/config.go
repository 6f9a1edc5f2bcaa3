package objcgen

import (
	"net/url"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/broady/objcbridge/objcgen/bridge"
	"github.com/broady/objcbridge/objcgen/export"
	"github.com/broady/objcbridge/objcgen/objc"
)

// Source selects how the declaration graph is obtained.
type Source string

const (
	// SourceGraph decodes JSON or YAML graph files.
	SourceGraph Source = "graph"

	// SourceGo analyzes Go packages.
	SourceGo Source = "go"
)

// Mapping maps a source class to a fixed Objective-C type.
type Mapping struct {
	// Class is the qualified name of the source class, e.g. "com.example.Url".
	Class string `toml:"class" validate:"required"`

	// Target is the Objective-C class, protocol or raw type text.
	Target string `toml:"target" validate:"required"`

	// Kind is "class" (default), "protocol" or "raw".
	Kind string `toml:"kind" validate:"omitempty,oneof=class protocol raw"`
}

// Config holds the configuration for header generation.
//
// A Config is usually read from a TOML file with LoadConfig and adjusted
// with an inline options string (see ParseOptions):
//
//	framework = "Shared"
//	graphs = ["build/app.yaml"]
//	out_dir = "build/headers"
//
//	[[mappings]]
//	class = "com.example.Url"
//	target = "NSURL"
type Config struct {
	// Framework names the generated header: <Framework>.h.
	Framework string `toml:"framework" schema:"framework" validate:"required,identifier"`

	// Prefix is prepended to every top-level Objective-C name.
	// Default: Framework.
	Prefix string `toml:"prefix" schema:"prefix" validate:"omitempty,identifier"`

	// OutDir is the directory the header is written to.
	OutDir string `toml:"out_dir" schema:"out_dir"`

	// Source selects the input provider. Default: "graph".
	Source Source `toml:"source" schema:"source" validate:"omitempty,oneof=graph go"`

	// Graphs are the declaration graph files read by the graph source.
	Graphs []string `toml:"graphs" schema:"graph" validate:"required_if=Source graph,dive,required"`

	// Packages are the Go package patterns analyzed by the go source.
	Packages []string `toml:"packages" schema:"package" validate:"required_if=Source go,dive,required"`

	// Dir resolves Go package patterns. Empty means the working directory.
	Dir string `toml:"dir" schema:"dir"`

	// Modules restricts translation to the named modules.
	Modules []string `toml:"modules" schema:"module" validate:"dive,required"`

	// Generics enables lightweight generics. Default: true.
	Generics *bool `toml:"generics" schema:"generics"`

	// Comments copies documentation into the header.
	Comments bool `toml:"comments" schema:"comments"`

	// Imports are additional headers imported after Foundation.
	Imports []string `toml:"imports" schema:"import" validate:"dive,required"`

	// Mappings are custom type mappings.
	Mappings []Mapping `toml:"mappings" schema:"-" validate:"dive"`
}

var (
	validate      = newValidator()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(false)
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("identifier", isIdentifier); err != nil {
		panic(errors.Wrap(err, "registering identifier validation"))
	}
	return v
}

// isIdentifier reports whether a field is usable as a C identifier as is.
func isIdentifier(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && objc.SanitizeIdentifier(s) == s
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Framework: "Shared", Source: SourceGraph}
}

// LoadConfig reads a TOML configuration file over the defaults.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.WithHint(
			errors.Newf("config %s: unknown keys %s", path, strings.Join(keys, ", ")),
			"check the key names against the documentation of objcgen.Config")
	}
	return &cfg, nil
}

// ParseOptions overlays an options string on cfg. The string uses query
// syntax with the schema names of Config, e.g.
// "prefix=App&generics=false&module=app". Repeated keys fill lists.
func ParseOptions(cfg *Config, options string) error {
	if options == "" {
		return nil
	}
	values, err := url.ParseQuery(options)
	if err != nil {
		return errors.Wrap(err, "parsing options")
	}
	if err := schemaDecoder.Decode(cfg, values); err != nil {
		return errors.WithHint(errors.Wrap(err, "decoding options"),
			"options look like prefix=App&generics=false")
	}
	return nil
}

// Validate checks the configuration. All problems are reported at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validating config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fieldMessage(fe)
	}
	return errors.WithHint(
		errors.Newf("invalid config: %s", strings.Join(msgs, "; ")),
		"framework and prefix must be C identifiers; graph sources need graphs and go sources need packages")
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "identifier":
		return field + " must be a C identifier"
	case "oneof":
		return field + " must be one of " + fe.Param()
	default:
		return field + " failed " + fe.Tag()
	}
}

// withDefaults returns a copy of c with defaults applied.
func (c Config) withDefaults() Config {
	if c.Framework == "" {
		c.Framework = DefaultConfig().Framework
	}
	if c.Prefix == "" {
		c.Prefix = c.Framework
	}
	if c.Source == "" {
		c.Source = SourceGraph
	}
	return c
}

// exportOptions converts the configuration into generation options.
func (c Config) exportOptions() export.Options {
	opts := export.DefaultOptions()
	opts.Prefix = c.Prefix
	opts.Modules = c.Modules
	if c.Generics != nil {
		opts.Generics = *c.Generics
	}
	opts.EmitComments = c.Comments
	opts.Imports = c.Imports
	for _, m := range c.Mappings {
		kind := bridge.TargetKind(m.Kind)
		if kind == "" {
			kind = bridge.TargetClass
		}
		opts.Mappings = append(opts.Mappings, bridge.Mapping{Class: m.Class, Target: m.Target, Kind: kind})
	}
	return opts
}

// HeaderName returns the file name of the generated header.
func (c Config) HeaderName() string {
	return c.withDefaults().Framework + ".h"
}
