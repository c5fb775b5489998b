package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// ErrUnsupportedFormat is returned for dump formats other than json or yaml.
var ErrUnsupportedFormat = errors.New("unsupported format")

const outputFilePerm = 0o600

// NewParseCommand creates the parse subcommand.
func NewParseCommand(opts *Options) *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse source files and dump the lowered tree",
		Long: `Parse JavaScript or TypeScript sources into the labeled tree the
matching engine consumes, and dump it as JSON or YAML.

Examples:
  shapematch parse main.ts              # Parse one file
  shapematch parse src/                 # Parse every supported file under src
  shapematch parse -f yaml main.ts      # Dump as YAML
  shapematch parse -o out.json main.ts  # Save to file`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = opts.Config.Output.Format
			}

			return runParse(cmd, opts, args, output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (json, yaml)")

	return cmd
}

func runParse(cmd *cobra.Command, opts *Options, paths []string, output, format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	files, err := collectSourceFiles(paths, opts.Config.Scan.MaxFileSize)
	if err != nil {
		return err
	}

	opts.Logger.DebugContext(cmd.Context(), "parsing files", "count", len(files))

	parsed, err := parseFiles(cmd.Context(), files, opts.Config.Scan.Workers)
	if err != nil {
		return err
	}

	writer := cmd.OutOrStdout()

	if output != "" {
		outFile, createErr := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePerm)
		if createErr != nil {
			return fmt.Errorf("create output file: %w", createErr)
		}

		defer outFile.Close()

		writer = outFile
	}

	for _, file := range parsed {
		dumpErr := dumpTree(writer, file.path, file.root, format)
		if dumpErr != nil {
			return fmt.Errorf("dump %s: %w", file.path, dumpErr)
		}
	}

	return nil
}

func dumpTree(writer io.Writer, path string, root *tree.Node, format string) error {
	doc := map[string]any{
		"file": path,
		"tree": root.ToMap(),
	}

	if format == "yaml" {
		encoder := yaml.NewEncoder(writer)
		defer encoder.Close()

		return encoder.Encode(doc)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(doc)
}
