package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server, and dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor() error {
	fmt.Println("\nGood-Neighbor Doctor")
	fmt.Println("====================")

	var results []checkResult

	// 1. Config file.
	cfgPath, cfg, cfgErr := doctorLoadConfig()
	if cfgErr != nil {
		results = append(results, checkResult{
			Name: "Config file", Passed: false,
			Detail: cfgPath,
			Hint:   "Run: goodneighbor init",
		})
	} else {
		results = append(results, checkResult{
			Name: "Config file", Passed: true,
			Detail: fmt.Sprintf("found (%s)", cfgPath),
		})
	}

	// Resolve URL from flags, env, config (same priority as resolveConfig).
	url := doctorResolveURL(cfg)

	// 2. Server URL.
	if url == "" {
		results = append(results, checkResult{
			Name: "Server URL", Passed: false,
			Hint: "Set --url, GOODNEIGHBOR_URL, or run goodneighbor init",
		})
	} else {
		results = append(results, checkResult{
			Name: "Server URL", Passed: true, Detail: url,
		})
	}

	// 3. Server reachable.
	var datasetItems int
	if url != "" {
		ver, items, err := doctorCheckHealth(url)
		if err != nil {
			results = append(results, checkResult{
				Name: "Server reachable", Passed: false,
				Detail: url,
				Hint:   fmt.Sprintf("Is the good-neighbor server running?\n   Error: %v", err),
			})
		} else {
			datasetItems = items
			detail := url
			if ver != "" {
				detail = fmt.Sprintf("v%s", ver)
			}
			results = append(results, checkResult{
				Name: "Server reachable", Passed: true, Detail: detail,
			})
		}
	}

	// 4. Dataset loaded.
	if datasetItems > 0 {
		results = append(results, checkResult{
			Name: "Dataset", Passed: true,
			Detail: fmt.Sprintf("%d items", datasetItems),
		})
	} else if url != "" {
		results = append(results, checkResult{
			Name: "Dataset", Passed: false,
			Detail: "empty",
			Hint:   "Run: goodneighbor import + goodneighbor dataset reload",
		})
	}

	// Print results.
	fmt.Println()
	allPassed := true
	for _, r := range results {
		if r.Passed {
			if r.Detail != "" {
				fmt.Printf("✅ %s: %s\n", r.Name, r.Detail)
			} else {
				fmt.Printf("✅ %s\n", r.Name)
			}
		} else {
			allPassed = false
			if r.Detail != "" {
				fmt.Printf("❌ %s: %s\n", r.Name, r.Detail)
			} else {
				fmt.Printf("❌ %s\n", r.Name)
			}
			if r.Hint != "" {
				fmt.Printf("   Hint: %s\n", r.Hint)
			}
		}
	}

	fmt.Println()
	if allPassed {
		fmt.Println("✅ All checks passed!")
	} else {
		fmt.Println("❌ Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}

	return nil
}

func doctorLoadConfig() (string, *configFile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, err
	}
	cfgPath := filepath.Join(home, ".goodneighbor", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfgPath, nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfgPath, nil, err
	}
	return cfgPath, &cfg, nil
}

func doctorResolveURL(cfg *configFile) string {
	// Flags first (use the global flag values).
	url := flagURL

	// Env overrides defaults.
	if url == defaultURL {
		if v := os.Getenv("GOODNEIGHBOR_URL"); v != "" {
			url = v
		}
	}

	// Config file fills remaining gaps.
	if cfg != nil {
		resolved := cfg.URL
		profile := cfg.ActiveProfile
		if profile == "" {
			profile = "default"
		}
		if p, ok := cfg.Profiles[profile]; ok && p.URL != "" {
			resolved = p.URL
		}
		if url == defaultURL && resolved != "" {
			url = resolved
		}
	}

	return url
}

func doctorCheckHealth(url string) (string, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/v1/health", nil)
	if err != nil {
		return "", 0, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("status %d", resp.StatusCode)
	}

	var health struct {
		Version      string `json:"version"`
		DatasetItems int    `json:"dataset_items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return "", 0, err
	}
	return health.Version, health.DatasetItems, nil
}
