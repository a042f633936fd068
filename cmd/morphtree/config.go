package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phanxgames/morphtree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective scene configuration as YAML",
		Long: `Prints the configuration that the other commands would use: the defaults,
overlaid with --config when given. Redirect the output to a file to start a
custom configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sceneConfigFromFlags(cmd)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), cfg)
		},
	}
}

// sceneConfigFromFlags resolves the --config flag.
func sceneConfigFromFlags(cmd *cobra.Command) (morphtree.SceneConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return morphtree.DefaultSceneConfig(), nil
	}
	return loadSceneConfig(path)
}

// loadSceneConfig reads a YAML file over the defaults. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func loadSceneConfig(path string) (morphtree.SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return morphtree.SceneConfig{}, fmt.Errorf("read config: %w", err)
	}
	return parseSceneConfig(data)
}

func parseSceneConfig(data []byte) (morphtree.SceneConfig, error) {
	cfg := morphtree.DefaultSceneConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return morphtree.SceneConfig{}, fmt.Errorf("parse config: %w", err)
	}
	// Roles are positional and not part of the file.
	for i := range cfg.Engine.Entities {
		cfg.Engine.Entities[i].Role = morphtree.EntityRole(i)
	}
	if err := cfg.Validate(); err != nil {
		return morphtree.SceneConfig{}, err
	}
	return cfg, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
