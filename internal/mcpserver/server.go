// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the scaffold operations for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/docscaffold/internal/apperr"
	"github.com/starford/docscaffold/internal/locale"
	"github.com/starford/docscaffold/internal/placeholder"
	"github.com/starford/docscaffold/internal/scaffold"
	"github.com/starford/docscaffold/internal/storage"
)

const formatURI = "docscaffold://placeholder-format"

// Server wraps the MCP server with scaffold tools.
type Server struct {
	mcp     *server.MCPServer
	gen     *scaffold.Generator
	store   storage.Provider
	printer *locale.Printer
}

// New creates a new MCP server with all tools registered.
func New(gen *scaffold.Generator, store storage.Provider, printer *locale.Printer) *Server {
	s := &Server{gen: gen, store: store, printer: printer}

	s.mcp = server.NewMCPServer(
		"docscaffold",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("scan_index",
		mcp.WithDescription("List the scaffold documents referenced by the index document, in order, duplicates included."),
	), s.scanIndex)

	s.mcp.AddTool(mcp.NewTool("scaffold_missing",
		mcp.WithDescription("Create a placeholder for every referenced document that does not exist yet. "+
			"Existing documents are never overwritten."),
	), s.scaffoldMissing)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the documents in the scaffold directory."),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the markdown of one scaffold document."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Document file name (e.g. 0001.md)")),
	), s.readDocument)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Placeholder Format",
			mcp.WithResourceDescription("Layout of the placeholder written into new scaffold documents."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) scanIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	links, err := s.gen.Links()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if links == nil {
		links = []string{}
	}
	out, _ := json.MarshalIndent(links, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) scaffoldMissing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.gen.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(s.printer.Summary(report.Processed) + "\n" + string(out)), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultText("no documents found"), nil
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalidName) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) readFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     placeholder.Format,
		},
	}, nil
}
