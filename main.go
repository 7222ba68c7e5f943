// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main provides the CLI entry point for the sheets dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gsdash/windows"
)

var (
	credentialsPath string
	sheetURL        string
	sheetName       string
	autoRefresh     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gsdash",
		Short: "Interactive dashboard for Google Sheets data",
		Long: `gsdash loads tabular data from a Google Sheet and presents it in an
interactive desktop dashboard with tables, charts and summary analytics.`,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&credentialsPath, "credentials", "c", "", "Path to service account key JSON (default: $GOOGLE_APPLICATION_CREDENTIALS)")
	rootCmd.Flags().StringVarP(&sheetURL, "url", "u", "", "Google Sheets URL to load at startup")
	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "Sheet1", "Worksheet name within the spreadsheet")
	rootCmd.Flags().BoolVar(&autoRefresh, "refresh", false, "Enable the five minute auto refresh countdown")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if credentialsPath == "" {
		credentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	var creds []byte
	if credentialsPath != "" {
		var err error
		creds, err = windows.ReadCredentialsFile(credentialsPath)
		if err != nil {
			return fmt.Errorf("loading credentials: %w", err)
		}
	}

	windows.CreateMainWindow(windows.Options{
		CredentialsJSON: creds,
		SheetURL:        sheetURL,
		SheetName:       sheetName,
		AutoRefresh:     autoRefresh,
	})
	return nil
}
