// Package config resolves the workflow root and loads settings from
// metaflow.yaml, a .env file and METAFLOW_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pablasso/metaflow/internal/git"
	"github.com/pablasso/metaflow/internal/plan"
)

const (
	// FileName is the settings file looked up inside the root.
	FileName = "metaflow.yaml"
	// EnvFileName is the dotenv file looked up inside the root.
	EnvFileName = ".env"
	// ClaudeDir is the directory holding workflow state inside a project.
	ClaudeDir = ".claude"
)

// Environment variables.
const (
	EnvRoot           = "METAFLOW_ROOT"
	EnvProjectDir     = "CLAUDE_PROJECT_DIR"
	EnvPlansDir       = "METAFLOW_PLANS_DIR"
	EnvPlansActive    = "METAFLOW_PLANS_ACTIVE"
	EnvPlansArchive   = "METAFLOW_PLANS_ARCHIVE"
	EnvPlansExtension = "METAFLOW_PLANS_EXTENSION"
	EnvSkipDirs       = "METAFLOW_SKIP_DIRS"
	EnvIndexScript    = "METAFLOW_INDEX_SCRIPT"
	EnvIndexTimeout   = "METAFLOW_INDEX_TIMEOUT"
	EnvJournal        = "METAFLOW_JOURNAL"
)

// PlansConfig models the plans section of metaflow.yaml.
type PlansConfig struct {
	Dir       string `yaml:"dir"`
	Active    string `yaml:"active"`
	Archive   string `yaml:"archive"`
	Extension string `yaml:"extension"`
}

// ReferencesConfig models the references section of metaflow.yaml.
type ReferencesConfig struct {
	SkipDirs []string `yaml:"skip_dirs"`
}

// IndexConfig models the index section of metaflow.yaml.
type IndexConfig struct {
	Script  string        `yaml:"script"`
	Timeout time.Duration `yaml:"timeout"`
}

// JournalConfig models the journal section of metaflow.yaml.
type JournalConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config holds the resolved runtime configuration.
type Config struct {
	// Root is the directory the plans layout and index script are relative to.
	Root string `yaml:"-"`

	// File is the settings file that was loaded, if any.
	File string `yaml:"-"`

	Plans      PlansConfig      `yaml:"plans"`
	References ReferencesConfig `yaml:"references"`
	Index      IndexConfig      `yaml:"index"`
	Journal    JournalConfig    `yaml:"journal"`
}

// Options are the explicit inputs to Load, usually taken from flags.
type Options struct {
	// Root overrides root resolution when set.
	Root string
	// File is an explicit settings file. Unlike the default file it must exist.
	File string
	// Getenv looks up process environment variables. Defaults to os.Getenv.
	Getenv func(string) string
	// Getwd returns the working directory. Defaults to os.Getwd.
	Getwd func() (string, error)
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default(root string) *Config {
	return &Config{
		Root: root,
		Plans: PlansConfig{
			Dir:       plan.DefaultPlansDir,
			Active:    plan.DefaultActiveDir,
			Archive:   plan.DefaultArchiveDir,
			Extension: plan.DefaultExtension,
		},
		References: ReferencesConfig{
			SkipDirs: []string{plan.DefaultIndexDir},
		},
		Index: IndexConfig{
			Script:  plan.DefaultIndexScript,
			Timeout: plan.DefaultIndexTimeout,
		},
		Journal: JournalConfig{Enabled: true},
	}
}

// Load resolves the root and applies, in order: defaults, the settings
// file, the root's .env file and the process environment.
func Load(ctx context.Context, opts Options) (*Config, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Getwd == nil {
		opts.Getwd = os.Getwd
	}

	root, err := ResolveRoot(ctx, opts)
	if err != nil {
		return nil, err
	}

	cfg := Default(root)

	file := opts.File
	explicit := file != ""
	if !explicit {
		file = filepath.Join(root, FileName)
	}
	if err := cfg.loadFile(file, explicit); err != nil {
		return nil, err
	}

	dotenv, err := readDotenv(filepath.Join(root, EnvFileName))
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v := opts.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveRoot returns the first existing candidate among: the explicit
// root, METAFLOW_ROOT, $CLAUDE_PROJECT_DIR/.claude, the git toplevel's
// .claude directory, the working directory's .claude directory and the
// working directory itself.
func ResolveRoot(ctx context.Context, opts Options) (string, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Getwd == nil {
		opts.Getwd = os.Getwd
	}

	if opts.Root != "" {
		return filepath.Abs(opts.Root)
	}
	if root := opts.Getenv(EnvRoot); root != "" {
		return filepath.Abs(root)
	}
	if project := opts.Getenv(EnvProjectDir); project != "" {
		return filepath.Abs(filepath.Join(project, ClaudeDir))
	}

	cwd, err := opts.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if top, err := git.TopLevel(ctx, cwd); err == nil {
		if dir := filepath.Join(top, ClaudeDir); isDir(dir) {
			return dir, nil
		}
	}
	if dir := filepath.Join(cwd, ClaudeDir); isDir(dir) {
		return dir, nil
	}
	return cwd, nil
}

// PlanLayout returns the plans layout described by the configuration.
func (c *Config) PlanLayout() plan.Layout {
	return plan.Layout{
		Root:       c.Root,
		PlansDir:   c.Plans.Dir,
		ActiveDir:  c.Plans.Active,
		ArchiveDir: c.Plans.Archive,
		Extension:  c.Plans.Extension,
		SkipDirs:   append([]string(nil), c.References.SkipDirs...),
	}
}

// IndexRebuilder returns the index trigger described by the configuration.
func (c *Config) IndexRebuilder() *plan.ScriptRebuilder {
	r := plan.NewScriptRebuilder(c.Index.Script)
	r.Timeout = c.Index.Timeout
	return r
}

// Validate reports settings that would make the layout unusable.
func (c *Config) Validate() error {
	if c.Plans.Dir == "" || c.Plans.Active == "" || c.Plans.Archive == "" {
		return errors.New("invalid config: plans.dir, plans.active and plans.archive must be set")
	}
	if c.Plans.Active == c.Plans.Archive {
		return fmt.Errorf("invalid config: plans.active and plans.archive are both %q", c.Plans.Active)
	}
	if !strings.HasPrefix(c.Plans.Extension, ".") {
		return fmt.Errorf("invalid config: plans.extension %q must start with a dot", c.Plans.Extension)
	}
	if c.Index.Timeout < 0 {
		return fmt.Errorf("invalid config: index.timeout must not be negative, got %s", c.Index.Timeout)
	}
	return nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.File = path
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}

func (c *Config) applyEnv(lookup func(string) string) error {
	setString := func(key string, dst *string) {
		if v := lookup(key); v != "" {
			*dst = v
		}
	}
	setString(EnvPlansDir, &c.Plans.Dir)
	setString(EnvPlansActive, &c.Plans.Active)
	setString(EnvPlansArchive, &c.Plans.Archive)
	setString(EnvPlansExtension, &c.Plans.Extension)
	setString(EnvIndexScript, &c.Index.Script)

	if v := lookup(EnvSkipDirs); v != "" {
		c.References.SkipDirs = splitList(v)
	}
	if v := lookup(EnvIndexTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvIndexTimeout, err)
		}
		c.Index.Timeout = d
	}
	if v := lookup(EnvJournal); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvJournal, err)
		}
		c.Journal.Enabled = enabled
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
