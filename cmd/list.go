package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"launcher/internal/fuzzy"
	"launcher/internal/index"
)

var (
	flagLimit int
	flagStats bool
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Print applications ranked against a query",
	Long: `list runs discovery to completion and prints every application that
matches the query, best match first. With no query it prints them all in
index order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		logger, closer, err := openLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closer.Close()

		start := time.Now()
		x := index.Load(scanDirs(), discoveryOptions(logger))
		ranked := fuzzy.Rank(query, x.Snapshot())
		if flagLimit > 0 && len(ranked) > flagLimit {
			ranked = ranked[:flagLimit]
		}

		writeTable(cmd.OutOrStdout(), ranked)
		if flagStats {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n%d of %d applications in %s\n",
				len(ranked), x.Len(), time.Since(start).Round(time.Millisecond))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "print at most this many rows (0 for all)")
	listCmd.Flags().BoolVar(&flagStats, "stats", false, "print counts and timing to stderr")
	rootCmd.AddCommand(listCmd)
}

// maxColumn caps the width of the name and exec columns.
const maxColumn = 40

// writeTable prints ranked as aligned SCORE, NAME, EXEC and PATH columns.
func writeTable(w io.Writer, ranked []fuzzy.Ranked) {
	headers := []string{"SCORE", "NAME", "EXEC", "PATH"}
	rows := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		e := r.Item.Entry
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Score),
			runewidth.Truncate(e.DisplayName(), maxColumn, "…"),
			runewidth.Truncate(e.Exec, maxColumn, "…"),
			r.Item.Path,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeRow := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
}
