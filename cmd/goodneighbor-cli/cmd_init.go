package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd() *cobra.Command {
	var initURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up good-neighbor CLI configuration",
		Long:  "Interactive setup wizard that creates ~/.goodneighbor/config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			nonInteractive := initURL != ""
			return runInit(initURL, nonInteractive)
		},
	}

	cmd.Flags().StringVar(&initURL, "url", "", "Server URL (non-interactive mode)")
	return cmd
}

func runInit(url string, nonInteractive bool) error {
	if !nonInteractive {
		fmt.Println("\n  Good-Neighbor Setup")
		fmt.Println("  ───────────────────")
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)

		fmt.Printf("  Server URL [%s]: ", defaultURL)
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			url = line
		}
	}

	if url == "" {
		url = defaultURL
	}

	// Test connection.
	if !nonInteractive {
		fmt.Print("\n  Testing connection... ")
	}

	ver, err := testConnection(url)
	if err != nil {
		if !nonInteractive {
			fmt.Println("✗")
		}
		return fmt.Errorf("connection failed: %w", err)
	}

	if !nonInteractive {
		fmt.Printf("✓ Connected (v%s)\n", ver)
	}

	// Write config.
	cfgPath, err := writeConfig(url)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if nonInteractive {
		fmt.Printf("Config saved to %s\n", cfgPath)
	} else {
		fmt.Printf("\n  ✓ Config saved to %s\n", cfgPath)
		fmt.Println()
		fmt.Println("  Next steps:")
		fmt.Println("    goodneighbor doctor      # Full diagnostic check")
		fmt.Println("    goodneighbor stats       # View the dataset")
		fmt.Println("    goodneighbor --help      # See all commands")
		fmt.Println()
	}

	return nil
}

func testConnection(url string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/v1/health", nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %d", resp.StatusCode)
	}

	// Parse version from JSON response.
	var health struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return "", err
	}
	if health.Version == "" {
		health.Version = "unknown"
	}
	return health.Version, nil
}

func writeConfig(url string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".goodneighbor")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	cfg := configFile{
		Profiles: map[string]configProfile{
			"default": {URL: url},
		},
		ActiveProfile: "default",
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0o600); err != nil {
		return "", err
	}

	return cfgPath, nil
}
