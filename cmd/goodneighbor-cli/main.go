package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goodneighborlab/goodneighbor/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.3.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient   *client.Client
	flagURL     string
	flagSession string
	flagFmt     string
)

const defaultURL = "http://localhost:3040"

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("goodneighbor version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("goodneighbor version %s-dev", version)
}

type configFile struct {
	// Flat format (legacy)
	URL     string `yaml:"url,omitempty"`
	Session string `yaml:"session,omitempty"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	URL     string `yaml:"url"`
	Session string `yaml:"session,omitempty"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "goodneighbor",
		Short:   "Good-neighbor CLI for exploring the archival similarity graph",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			var opts []client.Option
			if flagSession != "" {
				opts = append(opts, client.WithSessionID(flagSession))
			}
			apiClient = client.New(flagURL, opts...)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "Server URL (env: GOODNEIGHBOR_URL)")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", "", "Session id to resume (env: GOODNEIGHBOR_SESSION)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	initCmd := newInitCmd()
	initCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // skip client setup
	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // skip client setup
	importCmd := newImportCmd()
	importCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // talks to the database, not the API

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(newItemCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.AddCommand(newLayoutCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newDatasetCmd())
	rootCmd.AddCommand(importCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultURL {
		if v := os.Getenv("GOODNEIGHBOR_URL"); v != "" {
			flagURL = v
		}
	}
	if flagSession == "" {
		flagSession = os.Getenv("GOODNEIGHBOR_SESSION")
	}

	// Try config file for any remaining defaults.
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".goodneighbor", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	// Resolve from profiles if available, fall back to flat format
	resolvedURL := cfg.URL
	resolvedSession := cfg.Session
	if cfg.Profiles != nil {
		profileName := cfg.ActiveProfile
		if profileName == "" {
			profileName = "default"
		}
		if p, ok := cfg.Profiles[profileName]; ok {
			if p.URL != "" {
				resolvedURL = p.URL
			}
			if p.Session != "" {
				resolvedSession = p.Session
			}
		}
	}
	if flagURL == defaultURL && resolvedURL != "" {
		flagURL = resolvedURL
	}
	if flagSession == "" && resolvedSession != "" {
		flagSession = resolvedSession
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
