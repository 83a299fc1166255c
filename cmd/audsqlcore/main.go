// Copyright 2024 Google LLC
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

// Command audsqlcore is a debug harness: it loads a table-landscape YAML
// file and a single atomic match, resolves the match against the
// landscape, and prints either its bound parameter or its inlined debug SQL
// literal. It exercises the core end to end without requiring an upstream
// Audlang compiler.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/audlang/audsql-core/audlang"
	"github.com/audlang/audsql-core/config"
	"github.com/audlang/audsql-core/contains"
	"github.com/audlang/audsql-core/sqltype"
)

func defaultContainsPolicy() contains.SqlContainsPolicy {
	return contains.SQL92
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type matchFlags struct {
	landscapeFile string
	argName       string
	logicalType   string
	operator      string
	value         string
	hasValue      bool
	debug         bool
}

func newRootCommand() *cobra.Command {
	flags := &matchFlags{}
	cmd := &cobra.Command{
		Use:           "audsqlcore",
		Short:         "Resolve a single Audlang atomic match against a table landscape",
		SilenceErrors: false,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.landscapeFile, "landscape", "landscape.yaml", "Path to the table landscape YAML file.")
	cmd.Flags().StringVar(&flags.argName, "arg", "", "Argument name to resolve.")
	cmd.Flags().StringVar(&flags.logicalType, "type", "STRING", "Logical type of the argument (STRING, INTEGER, DECIMAL, DATE, BOOL).")
	cmd.Flags().StringVar(&flags.operator, "op", "EQUALS", "Match operator.")
	cmd.Flags().StringVar(&flags.value, "value", "", "Raw match value; pass --has-value=false for a null match.")
	cmd.Flags().BoolVar(&flags.hasValue, "has-value", true, "Whether --value carries a real value (false means NULL).")
	cmd.Flags().BoolVar(&flags.debug, "debug", true, "Print the inlined debug SQL literal instead of a positional template.")
	return cmd
}

func runMatch(cmd *cobra.Command, flags *matchFlags) error {
	raw, err := os.ReadFile(flags.landscapeFile)
	if err != nil {
		return fmt.Errorf("unable to read landscape file at %q: %w", flags.landscapeFile, err)
	}
	file, err := config.ParseLandscapeFile(raw)
	if err != nil {
		return fmt.Errorf("unable to parse landscape file at %q: %w", flags.landscapeFile, err)
	}
	landscape, err := file.Build(nil)
	if err != nil {
		return fmt.Errorf("invalid table landscape: %w", err)
	}

	meta, err := audlang.NewArgMetaInfo(flags.argName, audlang.LogicalType(flags.logicalType), false, false)
	if err != nil {
		return err
	}

	binding, err := config.NewDataBinding(landscape, defaultContainsPolicy())
	if err != nil {
		return err
	}

	ctx := audlang.NewProcessContext()
	resolution, err := binding.Lookup(ctx, meta)
	if err != nil {
		return err
	}

	var rawValue *string
	if flags.hasValue {
		rawValue = &flags.value
	}
	param, err := sqltype.CreateParameter("", meta, rawValue, audlang.Operator(flags.operator), resolution.Assignment.Column.SQLType)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "table=%s column=%s\n", resolution.Table.TableName, resolution.Assignment.Column.ColumnName)
	if flags.debug {
		fmt.Fprintf(out, "%s %s %s\n", resolution.Assignment.Column.ColumnName, param.Operator, param.ToString())
		return nil
	}
	fmt.Fprintf(out, "?  -- bound parameter id=%s\n", param.ID)
	return nil
}
