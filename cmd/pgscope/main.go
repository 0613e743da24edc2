package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pgscope/pgscope/ast"
	"github.com/pgscope/pgscope/deparser"
	"github.com/pgscope/pgscope/extractor"
	"github.com/pgscope/pgscope/parser"
)

// CLI configuration
var (
	version = "0.1.0"

	// Flags
	fileFlag     string
	outputFormat string
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitParse = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := buildCommand()
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if strings.Contains(err.Error(), "parse error") ||
			strings.Contains(err.Error(), "failed to parse") ||
			strings.Contains(err.Error(), "failed to fingerprint") ||
			strings.Contains(err.Error(), "failed to normalize") {
			return exitParse
		}
		return exitError
	}
	return exitOK
}

func buildCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pgscope",
		Short:        "PostgreSQL SQL analyzer",
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "read SQL from file")
	root.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, yaml")

	root.AddCommand(
		buildTablesCommand(),
		buildDeparseCommand(),
		buildJSONCommand(),
		buildFingerprintCommand(),
		buildNormalizeCommand(),
	)
	return root
}

func buildTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables [SQL]",
		Short: "List tables referenced by the statements, with aliases and CTE names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := parseInput(cmd, args)
			if err != nil {
				return err
			}
			return outputResult(cmd, extractor.Extract(stmts), formatTables)
		},
	}
}

func buildDeparseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deparse [SQL]",
		Short: "Render the parse tree back to canonical SQL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := parseInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := deparser.DeparseStatements(stmts)
			if err != nil {
				return fmt.Errorf("deparse error: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func buildJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "json [SQL]",
		Short: "Dump the wire-format parse tree as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := parseInput(cmd, args)
			if err != nil {
				return err
			}
			data, err := ast.MarshalStatements(stmts)
			if err != nil {
				return fmt.Errorf("encode error: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func buildFingerprintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [SQL]",
		Short: "Print the statement fingerprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := getSQLInput(cmd, args)
			if err != nil {
				return err
			}
			fp, err := parser.Fingerprint(sql)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fp)
			return nil
		},
	}
}

func buildNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [SQL]",
		Short: "Replace constants with placeholders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := getSQLInput(cmd, args)
			if err != nil {
				return err
			}
			normalized, err := parser.Normalize(sql)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), normalized)
			return nil
		},
	}
}

func parseInput(cmd *cobra.Command, args []string) ([]*ast.Node, error) {
	sql, err := getSQLInput(cmd, args)
	if err != nil {
		return nil, err
	}

	p := parser.NewParser()
	parsed, err := p.ParseSQL(sql)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return parsed.Nodes(), nil
}

// getSQLInput retrieves SQL from the file flag, command args, or stdin, in
// that order of precedence.
func getSQLInput(cmd *cobra.Command, args []string) (string, error) {
	if fileFlag != "" {
		content, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", fmt.Errorf("failed to read file %q: %w", fileFlag, err)
		}
		return string(content), nil
	}

	if len(args) > 0 {
		return args[0], nil
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("no SQL input: pass a statement, use --file, or pipe to stdin")
	}
	return string(content), nil
}

// outputResult renders a value in the selected output format. The text
// renderer is value-specific; json and yaml use the value's tags.
func outputResult(cmd *cobra.Command, result *extractor.Result, text func(io.Writer, *extractor.Result)) error {
	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		return yaml.NewEncoder(out).Encode(result)
	case "text":
		text(out, result)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}

func formatTables(w io.Writer, result *extractor.Result) {
	for _, table := range result.Tables {
		fmt.Fprintf(w, "%s\t%s\n", table.Type, table.Name)
	}
	for alias, target := range result.Aliases {
		fmt.Fprintf(w, "alias\t%s -> %s\n", alias, target)
	}
	for _, cte := range result.CTENames {
		fmt.Fprintf(w, "cte\t%s\n", cte)
	}
}
