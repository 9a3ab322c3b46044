package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/danmuck/imposterctl/internal/config"
)

type flags struct {
	configPath string
	serverURL  string
	name       string
	debugAddr  string
}

func newCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("IMPOSTERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	f := &flags{}

	cmd := &cobra.Command{
		Use:           "imposterctl",
		Short:         "Terminal client for the Imposter social-deduction word game.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&f.configPath, "config", "c", "", "path to toml config file (env: IMPOSTERCTL_CONFIG)")
	fs.StringVarP(&f.serverURL, "server", "s", "", "websocket url of the game server (env: IMPOSTERCTL_SERVER)")
	fs.StringVarP(&f.name, "name", "n", "", "player name to join with (env: IMPOSTERCTL_NAME)")
	fs.StringVar(&f.debugAddr, "debug-addr", "", "serve /state, /healthz and /metrics on this address (env: IMPOSTERCTL_DEBUG_ADDR)")

	fs.VisitAll(func(fl *pflag.Flag) {
		_ = v.BindPFlag(fl.Name, fl)
		_ = v.BindEnv(fl.Name)
		if !fl.Changed && v.IsSet(fl.Name) {
			_ = fs.Set(fl.Name, fmt.Sprintf("%v", v.Get(fl.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("imposterctl v{{.Version}}\n")

	return cmd
}

// resolveConfig layers flags over the config file over defaults.
func resolveConfig(f *flags) (config.ClientConfig, error) {
	cfg := config.DefaultClientConfig()
	if f.configPath != "" {
		loaded, err := config.LoadClientConfig(f.configPath)
		if err != nil {
			return config.ClientConfig{}, err
		}
		cfg = loaded
	}
	if f.serverURL != "" {
		cfg.ServerURL = f.serverURL
	}
	if f.name != "" {
		cfg.Name = f.name
	}
	if f.debugAddr != "" {
		cfg.DebugAddr = f.debugAddr
	}
	if err := config.ValidateClientConfig(cfg); err != nil {
		return config.ClientConfig{}, err
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return config.ClientConfig{}, fmt.Errorf("player name required (--name or config)")
	}
	return cfg, nil
}
