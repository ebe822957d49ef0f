package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/endpoint/config"
	"github.com/sagarc03/endpoint/keybackend"
)

const redacted = "[redacted]"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after defaults, config files, environment
variables and flags are merged. Inline signing secrets are redacted.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	out, err := renderConfig(cfg)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func renderConfig(cfg *config.Config) ([]byte, error) {
	shown := *cfg
	shown.Auth.Keys.Inline = make([]keybackend.KeyPair, len(cfg.Auth.Keys.Inline))
	for i, pair := range cfg.Auth.Keys.Inline {
		shown.Auth.Keys.Inline[i] = keybackend.KeyPair{KeyID: pair.KeyID, Secret: redacted}
	}

	out, err := yaml.Marshal(&shown)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
