package stub

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/kotlinpoet/poet"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const (
	DefaultKotlinVersion = "1.9.0"
	DefaultFileComment   = "Code generated by kstub. DO NOT EDIT."
	DefaultOutput        = "build/stubs"
)

// Config represents stub generator options, usually loaded from stubgen.yaml
type Config struct {
	Source           string            `yaml:"source"`
	Output           string            `yaml:"output,omitempty"`
	KotlinVersion    string            `yaml:"kotlinVersion,omitempty"`
	Indent           string            `yaml:"indent,omitempty"`
	ColumnLimit      int               `yaml:"columnLimit,omitempty"`
	Packages         map[string]string `yaml:"packages,omitempty"`
	IncludeNonPublic bool              `yaml:"includeNonPublic,omitempty"`
	JvmStatic        *bool             `yaml:"jvmStatic,omitempty"`
	FileComment      *string           `yaml:"fileComment,omitempty"`
}

// LoadConfig downloads and decodes a YAML config
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	return config, nil
}

// Init applies defaults
func (c *Config) Init() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.KotlinVersion == "" {
		c.KotlinVersion = DefaultKotlinVersion
	}
	if c.Indent == "" {
		c.Indent = poet.DefaultIndent
	}
	if c.ColumnLimit == 0 {
		c.ColumnLimit = poet.DefaultColumnLimit
	}
	if c.JvmStatic == nil {
		enabled := true
		c.JvmStatic = &enabled
	}
	if c.FileComment == nil {
		comment := DefaultFileComment
		c.FileComment = &comment
	}
}

// Validate checks required fields and valid values
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source was empty")
	}
	if !semver.IsValid(c.version()) {
		return fmt.Errorf("invalid kotlinVersion: %q", c.KotlinVersion)
	}
	if c.ColumnLimit < 0 {
		return fmt.Errorf("invalid columnLimit: %d", c.ColumnLimit)
	}
	if strings.TrimSpace(c.Indent) != "" {
		return fmt.Errorf("indent must be whitespace: %q", c.Indent)
	}
	for from, to := range c.Packages {
		if from == "" || to == "" {
			return fmt.Errorf("invalid package mapping: %q -> %q", from, to)
		}
	}
	return nil
}

// Supports returns true if the target Kotlin version is at least version
func (c *Config) Supports(version string) bool {
	return semver.Compare(c.version(), "v"+strings.TrimPrefix(version, "v")) >= 0
}

// KotlinPackage maps a Java package to its Kotlin package using the longest matching prefix
func (c *Config) KotlinPackage(javaPackage string) string {
	var matched string
	for from := range c.Packages {
		if javaPackage != from && !strings.HasPrefix(javaPackage, from+".") {
			continue
		}
		if len(from) > len(matched) {
			matched = from
		}
	}
	if matched == "" {
		return javaPackage
	}
	return c.Packages[matched] + strings.TrimPrefix(javaPackage, matched)
}

func (c *Config) isJvmStatic() bool {
	return c.JvmStatic == nil || *c.JvmStatic
}

func (c *Config) fileComment() string {
	if c.FileComment == nil {
		return DefaultFileComment
	}
	return *c.FileComment
}

func (c *Config) version() string {
	version := c.KotlinVersion
	if version == "" {
		version = DefaultKotlinVersion
	}
	return "v" + strings.TrimPrefix(version, "v")
}
