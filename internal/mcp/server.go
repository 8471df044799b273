package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/ferrisdoc/internal/ferris"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the annotator to AI agents.
type Server struct {
	bookDir   string
	locale    string
	annotator *ferris.Annotator
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server. bookDir may be empty, in which case
// only the tools that take inline HTML are useful.
func NewServer(bookDir, locale string) *Server {
	s := &Server{
		bookDir:   bookDir,
		locale:    locale,
		annotator: ferris.NewAnnotator(locale),
	}

	s.mcp = server.NewMCPServer(
		"ferrisdoc",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(annotateHTMLTool, s.handleAnnotateHTML)
	s.mcp.AddTool(annotatePageTool, s.handleAnnotatePage)
	s.mcp.AddTool(listKindsTool, s.handleListKinds)
	s.mcp.AddTool(classifyBlockTool, s.handleClassifyBlock)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
