// Copyright 2026 The tabkit authors
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

// Package cli implements the tabkit command line tool.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"tabkit/script"
)

// headRowCount clamps the requested number of head rows to [0, total].
func headRowCount(requested, total int) int {
	if requested < 0 {
		return 0
	}
	if requested > total {
		return total
	}
	return requested
}

// DoCLI parses arguments and runs the requested command.
func DoCLI() {
	rootCmd := &cobra.Command{
		Use:           "tabkit",
		Short:         "Inspect, filter, and convert tabular data files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var convert bool
	rootCmd.PersistentFlags().BoolVar(&convert, "convert", false,
		"coerce CSV columns to numbers where every value parses")

	infoCmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Summarize a data file's rows, columns, and types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context(), args[0], convert)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d rows x %d columns\n", args[0], t.Len(), t.NumColumns())
			for _, name := range t.Names() {
				ct, err := t.ColumnType(name)
				if err != nil {
					return err
				}
				fmt.Printf("  %s (%s)\n", name, ct)
			}
			return nil
		},
	}

	var headRows int
	headCmd := &cobra.Command{
		Use:   "head FILE",
		Short: "Print the first rows of a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context(), args[0], convert)
			if err != nil {
				return err
			}
			head, err := t.Slice(0, headRowCount(headRows, t.Len()))
			if err != nil {
				return err
			}
			return printTable(os.Stdout, head)
		},
	}
	headCmd.Flags().IntVarP(&headRows, "rows", "n", 10, "number of rows to print")

	convertCmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert between CSV, Parquet, and JSON by file extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context(), args[0], convert)
			if err != nil {
				return err
			}
			if err := saveTable(args[1], t); err != nil {
				return err
			}
			log.Printf("wrote %s (%d rows, %d columns)", args[1], t.Len(), t.NumColumns())
			return nil
		},
	}

	queryCmd := &cobra.Command{
		Use:   "query FILE EXPR",
		Short: "Print the rows matching a filter expression",
		Long: `Print the rows of a data file matching a filter expression, for example:

  tabkit query people.csv "age > 25 AND name ~ al"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context(), args[0], convert)
			if err != nil {
				return err
			}
			matched, err := t.Where(args[1])
			if err != nil {
				return err
			}
			return printTable(os.Stdout, matched)
		},
	}

	applyCmd := &cobra.Command{
		Use:   "apply FILE SCRIPT",
		Short: "Run a Go transform script over a data file",
		Long: `Run a Go transform over a data file. The script must define

  func Transform(t *data.Table) (*data.Table, error)

and has the tabkit/data package available as "data".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context(), args[0], convert)
			if err != nil {
				return err
			}
			src, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}
			runner := script.NewRunner()
			out, err := runner.Transform(t, string(src))
			if captured := runner.Output(); captured != "" {
				fmt.Print(captured)
			}
			if err != nil {
				return err
			}
			return printTable(os.Stdout, out)
		},
	}

	rootCmd.AddCommand(infoCmd, headCmd, convertCmd, queryCmd, applyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
