package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"launcher/internal/fuzzy"
	"launcher/internal/index"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing application search tools",
	RunE:  runMCP,
}

// snapshotFunc returns the current set of indexed applications.
type snapshotFunc func() []index.Item

func runMCP(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol, so logs go to stderr.
	logger, closer, err := openLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	// Rescan on every call so newly installed applications show up.
	snapshot := func() []index.Item {
		return index.Load(scanDirs(), discoveryOptions(logger)).Snapshot()
	}

	s := mcpserver.NewMCPServer("launcher", Version, mcpserver.WithToolCapabilities(false))

	s.AddTool(searchApplicationsTool(), makeSearchHandler(snapshot))
	s.AddTool(listApplicationsTool(), makeListHandler(snapshot))
	s.AddTool(getApplicationTool(), makeGetHandler(snapshot))

	logger.Info("serving MCP on stdio")
	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func searchApplicationsTool() mcp.Tool {
	return mcp.NewTool("search_applications",
		mcp.WithDescription("Fuzzy-search installed desktop applications by name and description. Results are ranked best first; an uppercase letter in the query makes matching case-sensitive."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Characters to match, in order, against 'name|comment'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 10)"),
		),
	)
}

func listApplicationsTool() mcp.Tool {
	return mcp.NewTool("list_applications",
		mcp.WithDescription("List every visible installed desktop application with its descriptor path."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

func getApplicationTool() mcp.Tool {
	return mcp.NewTool("get_application",
		mcp.WithDescription("Get the name, comment, command and icon of one application."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Descriptor path as returned by list_applications or search_applications"),
		),
	)
}

// --- Handler factories ---

func makeSearchHandler(snapshot snapshotFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		limit := req.GetInt("limit", 10)
		if limit <= 0 {
			limit = 10
		}

		ranked := fuzzy.Rank(query, snapshot())
		if len(ranked) > limit {
			ranked = ranked[:limit]
		}
		return mcp.NewToolResultText(formatSearchResults(query, ranked)), nil
	}
}

func makeListHandler(snapshot snapshotFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items := snapshot()

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Applications (%d)\n\n", len(items))
		for _, it := range items {
			fmt.Fprintf(&sb, "- **%s** `%s`\n", it.Entry.DisplayName(), it.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeGetHandler(snapshot snapshotFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		for _, it := range snapshot() {
			if it.Path == path {
				return mcp.NewToolResultText(describe(it)), nil
			}
		}
		return mcp.NewToolResultError(fmt.Sprintf("application %q not found; call list_applications to see available paths", path)), nil
	}
}

// --- Formatting helpers ---

func formatSearchResults(query string, ranked []fuzzy.Ranked) string {
	if len(ranked) == 0 {
		return fmt.Sprintf("No applications match %q", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Applications matching %q (%d)\n\n", query, len(ranked))
	for i, r := range ranked {
		e := r.Item.Entry
		fmt.Fprintf(&sb, "%d. **%s** (score %d)\n", i+1, e.DisplayName(), r.Score)
		if e.Comment != "" {
			fmt.Fprintf(&sb, "   %s\n", e.Comment)
		}
		if e.Exec != "" {
			fmt.Fprintf(&sb, "   Exec: `%s`\n", e.Exec)
		}
		fmt.Fprintf(&sb, "   Path: `%s`\n", r.Item.Path)
	}
	return sb.String()
}
