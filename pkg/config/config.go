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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
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

// 🧬 Entity is one target file plus the parameters substituted into the
// rewrite templates for it
type Entity struct {
	File        string `json:"file" yaml:"file"`               // Path or doublestar glob, relative to root
	Name        string `json:"name" yaml:"name"`               // Entity class name
	Description string `json:"description" yaml:"description"` // Description accessor text
	Priority    string `json:"priority" yaml:"priority"`       // Priority enum label
}

// 📚 Config represents the complete configuration
type Config struct {
	Root     string   `json:"root,omitempty" yaml:"root,omitempty"`     // Base dir for entity files
	Ignore   []string `json:"ignore,omitempty" yaml:"ignore,omitempty"` // Glob patterns excluded from expansion
	Entities []Entity `json:"entities" yaml:"entities"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// identPattern matches priority labels that are plain identifiers
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Entities) == 0 {
		return errors.Errorf("at least one entity is required")
	}

	for i, e := range cfg.Entities {
		if e.File == "" {
			return errors.Errorf("entity %d: file is required", i)
		}
		if e.Name == "" {
			return errors.Errorf("entity %d: name is required", i)
		}
		if e.Priority == "" {
			return errors.Errorf("entity %q: priority is required", e.Name)
		}
		if !identPattern.MatchString(e.Priority) {
			return errors.Errorf("entity %q: priority %q is not a valid identifier", e.Name, e.Priority)
		}
		// Descriptions may contain apostrophes; they are escaped at
		// substitution time, never rejected here.
	}

	if cfg.Root != "" {
		cfg.Root = filepath.Clean(cfg.Root)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	return fmt.Sprintf("%s (%d entities)", root, len(cfg.Entities))
}

// 🔍 Expand resolves glob entity files against the config root, dropping
// matches excluded by ignore patterns. Plain (non-glob) file entries pass
// through untouched: a missing plain file is the driver's fatal error to
// raise, not an expansion concern.
func (cfg *Config) Expand(ctx context.Context) ([]Entity, error) {
	logger := zerolog.Ctx(ctx)

	expanded := make([]Entity, 0, len(cfg.Entities))
	for _, e := range cfg.Entities {
		if !strings.ContainsAny(e.File, "*?[{") {
			expanded = append(expanded, e)
			continue
		}

		root := cfg.Root
		if root == "" {
			root = "."
		}
		// Glob against a rooted fs so matches stay root-relative, the
		// same shape plain file entries arrive in.
		matches, err := doublestar.Glob(os.DirFS(root), filepath.ToSlash(e.File))
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", e.File, err)
		}
		logger.Debug().Str("pattern", e.File).Int("matches", len(matches)).Msg("expanded entity glob")

		for _, match := range matches {
			ignored, err := cfg.isIgnored(match)
			if err != nil {
				return nil, err
			}
			if ignored {
				continue
			}
			entity := e
			entity.File = filepath.FromSlash(match)
			expanded = append(expanded, entity)
		}
	}

	return expanded, nil
}

// 🔍 isIgnored checks a path against the configured ignore patterns
func (cfg *Config) isIgnored(path string) (bool, error) {
	for _, pattern := range cfg.Ignore {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(path))
		if err != nil {
			return false, errors.Errorf("matching ignore pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
