// onready/cmd/onreadygen/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// defaultRuntimeImport is used when the scanned package does not import ready yet.
const defaultRuntimeImport = "github.com/sghaida/onready/ready"

// Config holds generator settings. It can be loaded from YAML with --config.
type Config struct {
	Dir           string   `yaml:"dir"`
	Out           string   `yaml:"out"`
	Types         []string `yaml:"types"`
	NodeType      string   `yaml:"nodeType"`
	NodeImport    string   `yaml:"nodeImport"`
	RuntimeImport string   `yaml:"runtimeImport"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filepath.ToSlash(path), err)
	}
	return cfg, nil
}

func applyDefaults(c *Config) {
	if strings.TrimSpace(c.Dir) == "" {
		c.Dir = "."
	}
	if strings.TrimSpace(c.Out) == "" {
		c.Out = filepath.Join(c.Dir, "onready.gen.go")
	} else if !filepath.IsAbs(c.Out) && filepath.Dir(c.Out) == "." {
		c.Out = filepath.Join(c.Dir, c.Out)
	}
}

func validateConfig(c *Config) error {
	if strings.TrimSpace(c.NodeType) == "" {
		return errors.New("missing node type (--node-type)")
	}
	for _, t := range c.Types {
		if strings.TrimSpace(t) == "" {
			return errors.New("empty --type value")
		}
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		flags   Config
	)

	cmd := &cobra.Command{
		Use:           "onreadygen",
		Short:         "Generate ready member tables from onready tags",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := Config{}
			if cfgPath != "" {
				loaded, err := loadConfig(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			overrideFromFlags(cmd, &cfg, flags)
			return generate(cfg, newLogger(cmd.ErrOrStderr()))
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "", "YAML config file")
	f.StringVar(&flags.Dir, "dir", "", "package directory to scan")
	f.StringVar(&flags.Out, "out", "", "output .gen.go file")
	f.StringSliceVar(&flags.Types, "type", nil, "type to generate (repeatable)")
	f.StringVar(&flags.NodeType, "node-type", "", "node type expression, e.g. scene.Node")
	f.StringVar(&flags.NodeImport, "node-import", "", "import path of the node type's package")
	f.StringVar(&flags.RuntimeImport, "runtime-import", "", "import path of the ready runtime")
	return cmd
}

// overrideFromFlags copies explicitly set flags over file values.
func overrideFromFlags(cmd *cobra.Command, cfg *Config, flags Config) {
	set := cmd.Flags().Changed
	if set("dir") {
		cfg.Dir = flags.Dir
	}
	if set("out") {
		cfg.Out = flags.Out
	}
	if set("type") {
		cfg.Types = flags.Types
	}
	if set("node-type") {
		cfg.NodeType = flags.NodeType
	}
	if set("node-import") {
		cfg.NodeImport = flags.NodeImport
	}
	if set("runtime-import") {
		cfg.RuntimeImport = flags.RuntimeImport
	}
}

func newLogger(w io.Writer) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{Prefix: "onreadygen"})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "onreadygen:", err)
		os.Exit(1)
	}
}
