// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tradedesk CLI: metadata index
// maintenance and search, inquiry classification, report runs and the MCP
// tool server.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/tradedesk/internal/index"
	"github.com/pdiddy/tradedesk/internal/logging"
	"github.com/pdiddy/tradedesk/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the tradedesk CLI.
var rootCmd = &cobra.Command{
	Use:   "tradedesk",
	Short: "Trade surveillance support desk tooling",
	Long: `tradedesk helps a surveillance support desk answer inquiries. It keeps a
metadata index of SQL config files and Java report classes, built from the
annotations in their comment headers, and searches it by keyword. It also
classifies inquiry emails, runs report classes and serves all of this as
MCP tools.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tradedesk.yaml or ~/.config/tradedesk/tradedesk.yaml)")
	rootCmd.PersistentFlags().String("index", "", "index file; .yaml/.yml selects YAML, anything else JSON")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")

	_ = viper.BindPFlag("index.path", rootCmd.PersistentFlags().Lookup("index"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tradedesk")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tradedesk"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("TRADEDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key of types.DefaultConfig so that
// environment variables and Unmarshal see the full key set.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("index.path", d.Index.Path)
	v.SetDefault("index.config_dir", d.Index.ConfigDir)
	v.SetDefault("index.code_dir", d.Index.CodeDir)
	v.SetDefault("index.config_exts", d.Index.ConfigExts)
	v.SetDefault("index.code_exts", d.Index.CodeExts)
	v.SetDefault("index.strict", d.Index.Strict)
	v.SetDefault("report.java_bin", d.Report.JavaBin)
	v.SetDefault("report.classpath", d.Report.Classpath)
	v.SetDefault("report.output_dir", d.Report.OutputDir)
	v.SetDefault("report.timeout", d.Report.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("server.name", d.Server.Name)
	v.SetDefault("server.version", version)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// configFrom decodes the settings held by v.
func configFrom(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// appContext is what most commands need: settings, a logger and the
// opened index.
type appContext struct {
	cfg    types.Config
	logger *zap.Logger
	store  *index.Store
}

func loadApp() (*appContext, error) {
	cfg, err := configFrom(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}
	store, err := index.Open(cfg.Index, logger)
	if err != nil {
		return nil, err
	}
	return &appContext{cfg: cfg, logger: logger, store: store}, nil
}

func (a *appContext) close() {
	_ = a.logger.Sync()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
