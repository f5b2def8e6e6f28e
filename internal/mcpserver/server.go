// Package mcpserver exposes the symbol store over the Model Context
// Protocol so editors and agents can query generated documentation.
package mcpserver

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/girkit/girdoc/internal/index"
)

//go:embed instructions.md
var instructions string

// Server wraps an MCP stdio server over an opened symbol store. docsDir,
// when non-empty, is a generated documentation tree served as resources.
type Server struct {
	mcpServer *server.MCPServer
	store     *index.Store
	docsDir   string
}

// NewServer builds the MCP server around store. The store stays owned by
// the caller and must outlive the server.
func NewServer(store *index.Store, docsDir string) *Server {
	s := &Server{store: store, docsDir: docsDir}

	mcpServer := server.NewMCPServer(
		"girdoc",
		"1.0.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("search_symbols",
			mcp.WithDescription("Search indexed GObject-Introspection symbols by name, C identifier, or doc summary. Exact name matches sort first. Use `namespace` to restrict to one namespace; omit to search everything indexed."),
			mcp.WithString("query",
				mcp.Description("Search query (type or symbol name, C identifier, or keyword)"),
				mcp.Required(),
			),
			mcp.WithString("namespace",
				mcp.Description("Optional namespace name to search within (e.g. \"Gtk\")"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results (default 20)"),
			),
		),
		s.handleSearchSymbols,
	)

	mcpServer.AddTool(
		mcp.NewTool("lookup_symbol",
			mcp.WithDescription("Resolve a C identifier (e.g. \"gtk_widget_show\") to the symbol that declares it, with its documentation summary and page link."),
			mcp.WithString("c_identifier",
				mcp.Description("The C identifier to resolve"),
				mcp.Required(),
			),
		),
		s.handleLookupSymbol,
	)

	mcpServer.AddTool(
		mcp.NewTool("list_namespaces",
			mcp.WithDescription("List the indexed namespaces as Name-Version strings."),
		),
		s.handleListNamespaces,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	if s.docsDir == "" {
		return
	}
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"girdoc://{page}",
			"Generated documentation page",
			mcp.WithTemplateDescription("Read a generated documentation page. Search results carry these page names in their href field."),
			mcp.WithTemplateMIMEType("text/html"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleSearchSymbols(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	namespace, _ := args["namespace"].(string)
	limit := 0
	if n, ok := args["limit"].(float64); ok {
		limit = int(n)
	}

	results, err := s.store.Search(query, namespace, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	resultJSON, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleLookupSymbol(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier, _ := args["c_identifier"].(string)
	if identifier == "" {
		return mcp.NewToolResultError("missing required parameter: c_identifier"), nil
	}

	sym, err := s.store.LookupIdentifier(identifier)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	if sym == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no symbol declares %q", identifier)), nil
	}

	resultJSON, _ := json.MarshalIndent(sym, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleListNamespaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.store.Namespaces()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing namespaces: %v", err)), nil
	}
	resultJSON, _ := json.MarshalIndent(names, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	page := strings.TrimPrefix(uri, "girdoc://")
	if page == "" || strings.Contains(page, "/") || strings.Contains(page, "..") {
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}
	// Anchors address members within a page; the whole page is returned.
	if idx := strings.LastIndex(page, "#"); idx >= 0 {
		page = page[:idx]
	}

	data, err := os.ReadFile(filepath.Join(s.docsDir, page))
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", page, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/html",
			Text:     string(data),
		},
	}, nil
}

// Run serves MCP over stdio until the client disconnects.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) Shutdown(_ context.Context) error {
	return nil
}
