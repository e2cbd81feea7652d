// Package lsp exposes the Javadoc commands to editors as a language server:
// code actions that carry the edit, plus executable commands that apply it
// and move the cursor.
package lsp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/seitarof/gen-javadoc/internal/config"
	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/javadoc"
	"github.com/seitarof/gen-javadoc/internal/locator"
	"github.com/seitarof/gen-javadoc/internal/parser"
	"github.com/seitarof/gen-javadoc/internal/resolver"
)

const lsName = "gen-javadoc"

// Commands understood by workspace/executeCommand. Both take
// [uri, line, character].
const (
	CommandGenerateMethod     = "javadoc.generateMethod"
	CommandGenerateFileHeader = "javadoc.generateFileHeader"
)

var log = commonlog.GetLogger("gen-javadoc.lsp")

// Server is a language server offering Javadoc generation.
type Server struct {
	version   string
	handler   protocol.Handler
	server    *server.Server
	docs      *documentStore
	symbols   locator.SymbolProvider
	generator generator.Generator

	mu      sync.RWMutex
	cfg     *config.Config
	project string
	watcher *config.Watcher
}

// NewServer creates a server. Config is read from the workspace root when
// the client initializes.
func NewServer(version string, sp locator.SymbolProvider, g generator.Generator) *Server {
	s := &Server{
		version:   version,
		docs:      newDocumentStore(),
		symbols:   sp,
		generator: g,
		cfg:       config.Default(),
	}

	s.handler = protocol.Handler{
		Initialize:              s.initialize,
		Initialized:             s.initialized,
		Shutdown:                s.shutdown,
		SetTrace:                s.setTrace,
		TextDocumentDidOpen:     s.textDocumentDidOpen,
		TextDocumentDidChange:   s.textDocumentDidChange,
		TextDocumentDidClose:    s.textDocumentDidClose,
		TextDocumentCodeAction:  s.textDocumentCodeAction,
		WorkspaceExecuteCommand: s.workspaceExecuteCommand,
	}
	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

// RunStdio serves a single client over stdin and stdout.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// RunTCP serves clients connecting to address.
func (s *Server) RunTCP(address string) error {
	return s.server.RunTCP(address)
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	root := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			root = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		root = *params.RootPath
	}

	cfg, path, err := config.LoadDir(root)
	if err != nil {
		log.Errorf("load config: %v", err)
		cfg = config.Default()
	}

	s.mu.Lock()
	s.cfg = cfg
	s.project = filepath.Base(root)
	if path != "" {
		s.watcher = config.NewWatcher(path, s.setConfig)
	}
	s.mu.Unlock()

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.CodeActionProvider = true
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandGenerateMethod, CommandGenerateFileHeader},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.mu.RLock()
	w := s.watcher
	s.mu.RUnlock()
	if w == nil {
		return nil
	}
	if err := w.Start(context.Background()); err != nil {
		log.Warningf("config watcher: %v", err)
	}
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) setConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *Server) service() javadoc.Service {
	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()
	return javadoc.New(cfg, s.symbols, parser.New(), resolver.New(), s.generator)
}

func (s *Server) document(uri string) (javadoc.Document, bool) {
	doc, ok := s.docs.get(uri)
	if !ok {
		return doc, false
	}
	s.mu.RLock()
	doc.ProjectName = s.project
	s.mu.RUnlock()
	return doc, true
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.open(params.TextDocument.URI, params.TextDocument.LanguageID, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		if !s.docs.update(params.TextDocument.URI, whole.Text) {
			log.Warningf("change for unopened document %s", params.TextDocument.URI)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.close(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI
	doc, ok := s.document(uri)
	if !ok || !doc.IsJava() {
		return nil, nil
	}

	svc := s.service()
	lines := locator.SplitLines(doc.Text)
	kind := protocol.CodeActionKindSource
	var actions []protocol.CodeAction

	ins, err := svc.MethodJavadoc(context.Background(), doc, fromProtocolPosition(lines, params.Range.Start))
	switch {
	case err == nil:
		edit := insertionEdit(uri, lines, ins)
		actions = append(actions, protocol.CodeAction{Title: "Generate Javadoc", Kind: &kind, Edit: &edit})
	case !errors.Is(err, javadoc.ErrNoMethod) && !errors.Is(err, javadoc.ErrNoSymbols):
		log.Warningf("code action %s: %v", uri, err)
	}

	if ins, err := svc.FileHeader(doc); err == nil {
		edit := insertionEdit(uri, lines, ins)
		actions = append(actions, protocol.CodeAction{Title: "Generate file header", Kind: &kind, Edit: &edit})
	} else {
		log.Warningf("code action %s: %v", uri, err)
	}

	return actions, nil
}

func (s *Server) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	uri, pos, ok := commandArgs(params.Arguments)
	if !ok {
		return nil, fmt.Errorf("%s: expected [uri, line, character] arguments", params.Command)
	}

	// Requests are handled one at a time, so calling back into the client
	// has to happen after this handler returns.
	go s.execute(ctx, params.Command, uri, pos)
	return nil, nil
}

func (s *Server) execute(ctx *glsp.Context, command, uri string, pos protocol.Position) {
	if err := s.runCommand(ctx, command, uri, pos); err != nil {
		log.Infof("%s: %v", command, err)
		ctx.Notify(protocol.ServerWindowShowMessage, protocol.ShowMessageParams{
			Type:    protocol.MessageTypeError,
			Message: err.Error(),
		})
	}
}

func (s *Server) runCommand(ctx *glsp.Context, command, uri string, pos protocol.Position) error {
	doc, ok := s.document(uri)
	if !ok {
		return fmt.Errorf("document %s is not open", uri)
	}
	lines := locator.SplitLines(doc.Text)

	var (
		ins   *generator.Insertion
		err   error
		label string
	)
	switch command {
	case CommandGenerateMethod:
		label = "Generate Javadoc"
		ins, err = s.service().MethodJavadoc(context.Background(), doc, fromProtocolPosition(lines, pos))
	case CommandGenerateFileHeader:
		label = "Generate file header"
		ins, err = s.service().FileHeader(doc)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	var resp protocol.ApplyWorkspaceEditResponse
	ctx.Call(protocol.ServerWorkspaceApplyEdit, protocol.ApplyWorkspaceEditParams{
		Label: &label,
		Edit:  insertionEdit(uri, lines, ins),
	}, &resp)
	if !resp.Applied {
		return fmt.Errorf("%s: edit was not applied", label)
	}

	if ins.Cursor != nil {
		at := toProtocolPosition(locator.SplitLines(generator.Apply(doc.Text, ins)), *ins.Cursor)
		var shown protocol.ShowDocumentResult
		ctx.Call(protocol.ServerWindowShowDocument, protocol.ShowDocumentParams{
			URI:       uri,
			TakeFocus: boolPtr(true),
			Selection: &protocol.Range{Start: at, End: at},
		}, &shown)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
