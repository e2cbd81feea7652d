// Package mcp serves the signature parser and the Javadoc generators as
// Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seitarof/gen-javadoc/internal/config"
	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/javadoc"
	"github.com/seitarof/gen-javadoc/internal/locator"
	"github.com/seitarof/gen-javadoc/internal/parser"
	"github.com/seitarof/gen-javadoc/internal/resolver"
)

// Tool names.
const (
	ToolParseSignature     = "parse_method_signature"
	ToolGenerateMethod     = "generate_method_javadoc"
	ToolGenerateFileHeader = "generate_file_header"
)

// Server wraps an MCP server exposing the Javadoc tools.
type Server struct {
	mcpServer *server.MCPServer
	service   javadoc.Service
	parser    parser.Parser
	resolver  resolver.Resolver
}

// insertionResult is an insertion plus the source with it applied.
type insertionResult struct {
	*generator.Insertion
	Source string `json:"source"`
}

// New creates a server with every tool registered.
func New(version string, cfg *config.Config, sp locator.SymbolProvider, g generator.Generator) *Server {
	p := parser.New()
	r := resolver.New()
	s := &Server{
		mcpServer: server.NewMCPServer("gen-javadoc", version, server.WithToolCapabilities(false)),
		service:   javadoc.New(cfg, sp, p, r, g),
		parser:    p,
		resolver:  r,
	}
	s.registerParseTool()
	s.registerMethodTool()
	s.registerHeaderTool()
	return s
}

// ServeStdio serves until stdin is closed.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerParseTool() {
	tool := mcp.NewTool(ToolParseSignature,
		mcp.WithDescription("Parse a Java method or constructor declaration into its return type and parameter names."),
		mcp.WithString("signature",
			mcp.Required(),
			mcp.Description("Declaration text; may span lines and include annotations, comments and the body"),
		),
		mcp.WithString("imports",
			mcp.Description("Source text holding import statements used to fully qualify the return type"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleParse)
}

func (s *Server) registerMethodTool() {
	tool := mcp.NewTool(ToolGenerateMethod,
		mcp.WithDescription("Generate the Javadoc comment for the method or constructor at a position in a Java source file."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Full Java source text"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("Zero-based line inside the method"),
		),
		mcp.WithNumber("column",
			mcp.Description("Zero-based column inside the method (default: 0)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleMethod)
}

func (s *Server) registerHeaderTool() {
	tool := mcp.NewTool(ToolGenerateFileHeader,
		mcp.WithDescription("Generate the file header comment for a Java source file."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Full Java source text"),
		),
		mcp.WithString("file_name",
			mcp.Required(),
			mcp.Description("File name used for ${fileName}"),
		),
		mcp.WithString("project",
			mcp.Description("Project name used for ${projectName}"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleHeader)
}

func (s *Server) handleParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	signature, ok := args["signature"].(string)
	if !ok || signature == "" {
		return mcp.NewToolResultError("signature parameter is required"), nil
	}
	imports, _ := args["imports"].(string)

	info := s.parser.Parse(signature)
	if imports != "" {
		info.ReturnType = s.resolver.Resolve(info.ReturnType, resolver.ImportsFromText(imports))
	}
	return jsonResult(info)
}

func (s *Server) handleMethod(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	source, ok := args["source"].(string)
	if !ok || source == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}
	line, ok := args["line"].(float64)
	if !ok || line < 0 {
		return mcp.NewToolResultError("line parameter is required"), nil
	}
	column, _ := args["column"].(float64)

	doc := javadoc.Document{Path: "Source.java", LanguageID: "java", Text: source}
	ins, err := s.service.MethodJavadoc(ctx, doc, locator.Position{Line: int(line), Character: int(column)})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(insertionResult{Insertion: ins, Source: generator.Apply(source, ins)})
}

func (s *Server) handleHeader(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	source, ok := args["source"].(string)
	if !ok {
		return mcp.NewToolResultError("source parameter is required"), nil
	}
	fileName, ok := args["file_name"].(string)
	if !ok || fileName == "" {
		return mcp.NewToolResultError("file_name parameter is required"), nil
	}
	project, _ := args["project"].(string)

	doc := javadoc.Document{Path: fileName, LanguageID: "java", Text: source, ProjectName: project}
	ins, err := s.service.FileHeader(doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(insertionResult{Insertion: ins, Source: generator.Apply(source, ins)})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
