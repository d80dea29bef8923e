// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

// Command skillshub acquires, verifies, and registers skill packages.
package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillshub/skillshub-core/logger"
)

var debugLogs bool

// flagDebugProvider adapts the --debug flag to the logger's debug check.
type flagDebugProvider struct{}

func (*flagDebugProvider) IsDebug() bool { return debugLogs }

var rootCmd = &cobra.Command{
	Use:   "skillshub",
	Short: "Acquire, verify, and register skill packages",
	Long: `skillshub fetches skill source trees from remote repositories,
attests to their integrity, and builds validated registration records.
It never executes fetched code.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.InitializeWithDebug(&flagDebugProvider{})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "enable debug logging")
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newHashCmd())
	rootCmd.AddCommand(newVerifyRefCmd())
	rootCmd.AddCommand(newDiscoverCmd())
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
