package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/shapematch/pkg/shape"
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
	"github.com/Sumatoshi-tech/shapematch/pkg/walk"
)

// ErrNoPattern is returned when no pattern flag is given.
var ErrNoPattern = errors.New("a pattern flag is required (--kind, --callee, --member, or --named)")

const snippetMaxLen = 60

// NewFindCommand creates the find subcommand.
func NewFindCommand(opts *Options) *cobra.Command {
	var (
		kind   string
		callee string
		member string
		named  string
	)

	cmd := &cobra.Command{
		Use:   "find [paths...]",
		Short: "Search files for nodes matching a pattern",
		Long: `Search source files for nodes matching a structural pattern built
from flags.

Examples:
  shapematch find --callee require src/     # Calls to require(...)
  shapematch find --member console.log src/ # console.log member accesses
  shapematch find --kind Import src/        # Import statements
  shapematch find --named config src/       # Nodes named config`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pat, err := buildPattern(kind, callee, member, named)
			if err != nil {
				return err
			}

			return runFind(cmd, opts, args, pat)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "match nodes of this kind")
	cmd.Flags().StringVar(&callee, "callee", "", "match calls to this identifier")
	cmd.Flags().StringVar(&member, "member", "", "match member accesses with this dotted path")
	cmd.Flags().StringVar(&named, "named", "", "match nodes carrying this name")

	return cmd
}

// buildPattern assembles the search pattern from flags. Flags compose: every
// given flag must hold for a node to match.
func buildPattern(kind, callee, member, named string) (*shape.Pattern, error) {
	var pats []*shape.Pattern

	if kind != "" {
		pats = append(pats, shape.Node(tree.Kind(kind)))
	}

	if callee != "" {
		pats = append(pats, shape.Node(tree.KindCall,
			shape.Slot("callee", shape.Identifier(callee)),
		))
	}

	if member != "" {
		pats = append(pats, shape.Member(member))
	}

	if named != "" {
		pats = append(pats, shape.Named(named))
	}

	switch len(pats) {
	case 0:
		return nil, ErrNoPattern
	case 1:
		return pats[0], nil
	default:
		return shape.AllOf(pats...), nil
	}
}

type matchRow struct {
	path string
	line uint
	col  uint
	kind tree.Kind
	text string
}

func runFind(cmd *cobra.Command, opts *Options, paths []string, pat *shape.Pattern) error {
	files, err := collectSourceFiles(paths, opts.Config.Scan.MaxFileSize)
	if err != nil {
		return err
	}

	parsed, err := parseFiles(cmd.Context(), files, opts.Config.Scan.Workers)
	if err != nil {
		return err
	}

	var rows []matchRow

	for _, file := range parsed {
		sess := shape.NewSession()

		for _, result := range walk.Find(sess, pat, file.root) {
			node, ok := result.Node()
			if !ok {
				continue
			}

			row := matchRow{path: file.path, kind: node.Kind, text: snippet(node.Text)}
			if node.Pos != nil {
				row.line = node.Pos.StartLine
				row.col = node.Pos.StartCol
			}

			rows = append(rows, row)
		}
	}

	opts.Logger.DebugContext(cmd.Context(), "search done",
		"files", len(parsed), "matches", len(rows))

	renderMatches(cmd, opts, rows, len(parsed))

	return nil
}

func renderMatches(cmd *cobra.Command, opts *Options, rows []matchRow, fileCount int) {
	writer := cmd.OutOrStdout()

	if !opts.Config.Output.Color {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	if len(rows) > 0 {
		tbl := table.NewWriter()
		tbl.SetOutputMirror(writer)
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"File", "Position", "Kind", "Snippet"})

		for _, row := range rows {
			tbl.AppendRow(table.Row{
				row.path,
				fmt.Sprintf("%d:%d", row.line, row.col),
				string(row.kind),
				row.text,
			})
		}

		tbl.Render()
	}

	summary := fmt.Sprintf("%s matches across %s files",
		humanize.Comma(int64(len(rows))), humanize.Comma(int64(fileCount)))

	if len(rows) == 0 {
		color.New(color.FgYellow).Fprintln(writer, summary)

		return
	}

	color.New(color.FgGreen).Fprintln(writer, summary)
}

// snippet flattens whitespace and truncates long node text for table cells.
func snippet(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	if len(flat) > snippetMaxLen {
		return flat[:snippetMaxLen] + "..."
	}

	return flat
}
