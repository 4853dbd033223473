// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/walteh/migrc/pkg/rewrite"
	"github.com/walteh/migrc/pkg/rule"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 RuleSpec declares one pattern rule. Shape variants of the same
// logical construct are separate specs sharing a name prefix, listed in
// priority order.
type RuleSpec struct {
	Name           string   `json:"name" yaml:"name" hcl:"name,label"`
	Legacy         string   `json:"legacy" yaml:"legacy" hcl:"legacy"`
	MigratedMarker string   `json:"migrated_marker,omitempty" yaml:"migrated_marker,omitempty" hcl:"migrated_marker,optional"`
	Replace        string   `json:"replace" yaml:"replace" hcl:"replace"`
	Require        []string `json:"require,omitempty" yaml:"require,omitempty" hcl:"require,optional"`
	Hint           string   `json:"hint,omitempty" yaml:"hint,omitempty" hcl:"hint,optional"`
}

// 💉 InjectionSpec declares the dependency-reference line to insert into
// files the rules rewrite
type InjectionSpec struct {
	Symbol string   `json:"symbol" yaml:"symbol" hcl:"symbol"`
	Line   string   `json:"line" yaml:"line" hcl:"line"`
	Anchor string   `json:"anchor" yaml:"anchor" hcl:"anchor"`
	Remove []string `json:"remove,omitempty" yaml:"remove,omitempty" hcl:"remove,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root      string         `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Glob      string         `json:"glob,omitempty" yaml:"glob,omitempty" hcl:"glob,optional"`
	Paths     []string       `json:"paths,omitempty" yaml:"paths,omitempty" hcl:"paths,optional"`
	Rules     []RuleSpec     `json:"rules" yaml:"rules" hcl:"rule,block"`
	Injection *InjectionSpec `json:"injection,omitempty" yaml:"injection,omitempty" hcl:"injection,block"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}
	if len(cfg.Paths) == 0 && cfg.Glob == "" {
		return errors.Errorf("either paths or glob is required")
	}

	for i, r := range cfg.Rules {
		if r.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if r.Legacy == "" {
			return errors.Errorf("rule %s: legacy is required", r.Name)
		}
		if r.Replace == "" {
			return errors.Errorf("rule %s: replace is required", r.Name)
		}
	}

	if inj := cfg.Injection; inj != nil {
		if inj.Symbol == "" {
			return errors.Errorf("injection.symbol is required")
		}
		if inj.Line == "" {
			return errors.Errorf("injection.line is required")
		}
		if inj.Anchor == "" {
			return errors.Errorf("injection.anchor is required")
		}
	}

	// Clean up paths
	if cfg.Root != "" {
		cfg.Root = filepath.Clean(cfg.Root)
	}
	for i, p := range cfg.Paths {
		cfg.Paths[i] = filepath.Clean(p)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	target := cfg.Glob
	if len(cfg.Paths) > 0 {
		target = fmt.Sprintf("%d explicit path(s)", len(cfg.Paths))
	}
	return fmt.Sprintf("%d rule(s) over %s", len(cfg.Rules), target)
}

// 🛠️ CompileRules compiles the rule specs into pattern rules, in
// declaration order
func (cfg *Config) CompileRules() ([]rule.Rule, error) {
	rules := make([]rule.Rule, 0, len(cfg.Rules))
	for _, spec := range cfg.Rules {
		legacy, err := regexp.Compile(spec.Legacy)
		if err != nil {
			return nil, errors.Errorf("rule %s: compiling legacy pattern: %w", spec.Name, err)
		}
		r, err := rule.NewRegexpRule(rule.RegexpRuleOptions{
			Name:           spec.Name,
			Legacy:         legacy,
			MigratedMarker: spec.MigratedMarker,
			Template:       spec.Replace,
			Require:        spec.Require,
			Hint:           spec.Hint,
		})
		if err != nil {
			return nil, errors.Errorf("rule %s: %w", spec.Name, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// 🛠️ CompileInjection compiles the injection spec, or returns nil when
// none is declared
func (cfg *Config) CompileInjection() (*rewrite.Injection, error) {
	if cfg.Injection == nil {
		return nil, nil
	}

	anchor, err := regexp.Compile(cfg.Injection.Anchor)
	if err != nil {
		return nil, errors.Errorf("injection: compiling anchor: %w", err)
	}

	removes := make([]*regexp.Regexp, 0, len(cfg.Injection.Remove))
	for _, pat := range cfg.Injection.Remove {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, errors.Errorf("injection: compiling remove pattern %q: %w", pat, err)
		}
		removes = append(removes, re)
	}

	return &rewrite.Injection{
		Symbol: cfg.Injection.Symbol,
		Line:   cfg.Injection.Line,
		Anchor: anchor,
		Remove: removes,
	}, nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
