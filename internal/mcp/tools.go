package mcp

import "github.com/mark3labs/mcp-go/mcp"

// annotateHTMLTool defines the annotate_html MCP tool.
var annotateHTMLTool = mcp.NewTool("annotate_html",
	mcp.WithDescription("Add Ferris icons to code blocks marked does_not_compile, panics or not_desired_behavior in an HTML page. Returns the annotated page."),
	mcp.WithString("html",
		mcp.Required(),
		mcp.Description("Full HTML document"),
	),
	mcp.WithString("locale",
		mcp.Description("Tooltip language (zh-TW or en); defaults to the server locale"),
	),
	mcp.WithBoolean("skip_annotated",
		mcp.Description("Leave pages that already carry icons untouched (default true)"),
	),
)

// annotatePageTool defines the annotate_page MCP tool.
var annotatePageTool = mcp.NewTool("annotate_page",
	mcp.WithDescription("Annotate a page of the configured book and return the result without writing it to disk."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Page path relative to the book directory, e.g. ch04-01-what-is-ownership.html"),
	),
)

// listKindsTool defines the list_kinds MCP tool.
var listKindsTool = mcp.NewTool("list_kinds",
	mcp.WithDescription("List the marker classes, tooltips and icon paths used for annotation."),
	mcp.WithString("locale",
		mcp.Description("Tooltip language (zh-TW or en)"),
	),
)

// classifyBlockTool defines the classify_block MCP tool.
var classifyBlockTool = mcp.NewTool("classify_block",
	mcp.WithDescription("Report the visible line count of a code sample and the icon size it would get."),
	mcp.WithString("code",
		mcp.Required(),
		mcp.Description("Code block text"),
	),
)
