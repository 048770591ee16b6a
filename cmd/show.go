package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"launcher/internal/desktop"
	"launcher/internal/fuzzy"
	"launcher/internal/index"
	"launcher/internal/launch"
)

var (
	flagRaw   bool
	flagWidth int
)

var showCmd = &cobra.Command{
	Use:   "show <query>",
	Short: "Describe the application that would be launched for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		logger, closer, err := openLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closer.Close()

		x := index.Load(scanDirs(), discoveryOptions(logger))
		top, ok := fuzzy.Top(fuzzy.Rank(query, x.Snapshot()))
		if !ok {
			return fmt.Errorf("no application matches %q", query)
		}

		md := describe(top.Item) + fmt.Sprintf("| Score | %d |\n", top.Score)
		if flagRaw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(glamourStyle(cfg.Theme)),
			glamour.WithWordWrap(flagWidth),
		)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&flagRaw, "raw", false, "print markdown without rendering")
	showCmd.Flags().IntVar(&flagWidth, "width", 80, "wrap rendered output at this width")
	rootCmd.AddCommand(showCmd)
}

func glamourStyle(theme string) string {
	if theme == "mocha" {
		return "dark"
	}
	return "light"
}

// describe renders an indexed entry as markdown ending in a field table
// that callers may extend with more rows.
func describe(it index.Item) string {
	e := it.Entry
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", e.DisplayName())
	if e.Has(desktop.FieldComment) && e.Comment != "" {
		fmt.Fprintf(&sb, "%s\n\n", e.Comment)
	}

	sb.WriteString("| Field | Value |\n|---|---|\n")
	row := func(k, v string) {
		if v == "" {
			v = "(unset)"
		} else {
			v = "`" + strings.ReplaceAll(v, "|", `\|`) + "`"
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", k, v)
	}
	row("Exec", e.Exec)
	if e.Launchable() {
		if args, err := launch.Args(e.Exec); err == nil {
			row("Runs", strings.Join(args, " "))
		} else {
			row("Runs", "")
		}
	}
	row("Icon", e.Icon)
	row("File", it.Path)
	row("Search key", it.Key)

	return sb.String()
}
