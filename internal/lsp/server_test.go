package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/seitarof/gen-javadoc/internal/config"
	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/locator"
)

const repoSource = `package com.example;

import java.util.List;

public class Repo {
    public List<String> names(int limit) {
        return null;
    }
}
`

const testConfig = `author = "tester"
date_format = "yyyy-MM-dd"
method_template = ["/**", " * ${cursor}", " * ${params}", " * @return ${returnType}", " */"]
file_template = ["// ${projectName}"]
`

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC) }

type call struct {
	method string
	params any
}

type fakeClient struct {
	calls    []call
	notifies []call
	applied  bool
}

func (c *fakeClient) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			c.notifies = append(c.notifies, call{method: method, params: params})
		},
		Call: func(method string, params any, result any) {
			c.calls = append(c.calls, call{method: method, params: params})
			if r, ok := result.(*protocol.ApplyWorkspaceEditResponse); ok {
				r.Applied = c.applied
			}
		},
	}
}

func newInitializedServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".javadoc.toml"), []byte(testConfig), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s := NewServer("test", locator.NewTreeSitterProvider(), generator.New(fixedClock{}))
	rootURI := "file://" + filepath.ToSlash(root)
	if _, err := s.initialize(&glsp.Context{}, &protocol.InitializeParams{RootURI: &rootURI}); err != nil {
		t.Fatalf("initialize() error = %v", err)
	}
	t.Cleanup(func() { _ = s.shutdown(&glsp.Context{}) })

	uri := rootURI + "/Repo.java"
	if err := s.textDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "java", Text: repoSource},
	}); err != nil {
		t.Fatalf("didOpen() error = %v", err)
	}
	return s, uri
}

var wantMethodText = strings.Join([]string{
	"/**",
	"     * ",
	"     * @param limit",
	"     * @return java.util.List<String>",
	"     */",
	"    ",
}, "\n")

func TestInitialize_Capabilities(t *testing.T) {
	s := NewServer("1.2.3", locator.NewTreeSitterProvider(), generator.New(fixedClock{}))
	root := t.TempDir()
	res, err := s.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root})
	if err != nil {
		t.Fatalf("initialize() error = %v", err)
	}

	result, ok := res.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("initialize() result type = %T", res)
	}
	if result.Capabilities.CodeActionProvider != true {
		t.Fatalf("CodeActionProvider = %v, want true", result.Capabilities.CodeActionProvider)
	}
	if diff := cmp.Diff([]string{CommandGenerateMethod, CommandGenerateFileHeader}, result.Capabilities.ExecuteCommandProvider.Commands); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
	if *result.ServerInfo.Version != "1.2.3" {
		t.Fatalf("version = %q", *result.ServerInfo.Version)
	}
	if s.project != filepath.Base(root) {
		t.Fatalf("project = %q, want %q", s.project, filepath.Base(root))
	}
}

func TestCodeAction(t *testing.T) {
	s, uri := newInitializedServer(t)

	res, err := s.textDocumentCodeAction(&glsp.Context{}, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Range:        protocol.Range{Start: protocol.Position{Line: 6, Character: 8}},
	})
	if err != nil {
		t.Fatalf("codeAction() error = %v", err)
	}

	actions, ok := res.([]protocol.CodeAction)
	if !ok || len(actions) != 2 {
		t.Fatalf("codeAction() = %#v, want two actions", res)
	}
	if actions[0].Title != "Generate Javadoc" || actions[1].Title != "Generate file header" {
		t.Fatalf("titles = %q, %q", actions[0].Title, actions[1].Title)
	}

	at := protocol.Position{Line: 5, Character: 4}
	want := &protocol.WorkspaceEdit{Changes: map[protocol.DocumentUri][]protocol.TextEdit{
		uri: {{Range: protocol.Range{Start: at, End: at}, NewText: wantMethodText}},
	}}
	if diff := cmp.Diff(want, actions[0].Edit); diff != "" {
		t.Fatalf("edit mismatch (-want +got):\n%s", diff)
	}

	header := actions[1].Edit.Changes[uri][0]
	if header.NewText != "// "+s.project+"\n" || header.Range.Start != (protocol.Position{}) {
		t.Fatalf("header edit = %+v", header)
	}
}

func TestCodeAction_OutsideMethodOffersHeaderOnly(t *testing.T) {
	s, uri := newInitializedServer(t)

	res, err := s.textDocumentCodeAction(&glsp.Context{}, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Range:        protocol.Range{Start: protocol.Position{Line: 2, Character: 0}},
	})
	if err != nil {
		t.Fatalf("codeAction() error = %v", err)
	}
	actions := res.([]protocol.CodeAction)
	if len(actions) != 1 || actions[0].Title != "Generate file header" {
		t.Fatalf("codeAction() = %#v", actions)
	}
}

func TestCodeAction_UnknownDocument(t *testing.T) {
	s, _ := newInitializedServer(t)
	res, err := s.textDocumentCodeAction(&glsp.Context{}, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nowhere/A.java"},
	})
	if err != nil || res != nil {
		t.Fatalf("codeAction() = %v, %v; want nil, nil", res, err)
	}
}

func TestExecute_GenerateMethod(t *testing.T) {
	s, uri := newInitializedServer(t)
	client := &fakeClient{applied: true}

	s.execute(client.context(), CommandGenerateMethod, uri, protocol.Position{Line: 5, Character: 10})

	if len(client.notifies) != 0 {
		t.Fatalf("unexpected notifications: %+v", client.notifies)
	}
	if len(client.calls) != 2 {
		t.Fatalf("calls = %+v, want applyEdit and showDocument", client.calls)
	}

	apply := client.calls[0]
	if apply.method != protocol.ServerWorkspaceApplyEdit {
		t.Fatalf("first call = %s", apply.method)
	}
	edit := apply.params.(protocol.ApplyWorkspaceEditParams).Edit.Changes[uri][0]
	if edit.NewText != wantMethodText {
		t.Fatalf("NewText = %q, want %q", edit.NewText, wantMethodText)
	}

	show := client.calls[1]
	if show.method != protocol.ServerWindowShowDocument {
		t.Fatalf("second call = %s", show.method)
	}
	cursor := protocol.Position{Line: 6, Character: 7}
	if diff := cmp.Diff(&protocol.Range{Start: cursor, End: cursor}, show.params.(protocol.ShowDocumentParams).Selection); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_CursorInUTF16Units(t *testing.T) {
	s, uri := newInitializedServer(t)
	cfg := config.Default()
	cfg.MethodTemplate = []string{"/**", " * @描述: ${cursor}", " */"}
	s.setConfig(cfg)
	client := &fakeClient{applied: true}

	s.execute(client.context(), CommandGenerateMethod, uri, protocol.Position{Line: 5, Character: 10})

	if len(client.calls) != 2 {
		t.Fatalf("calls = %+v, want applyEdit and showDocument", client.calls)
	}
	cursor := protocol.Position{Line: 6, Character: 12}
	if diff := cmp.Diff(&protocol.Range{Start: cursor, End: cursor}, client.calls[1].params.(protocol.ShowDocumentParams).Selection); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_ReportsErrors(t *testing.T) {
	s, uri := newInitializedServer(t)

	tests := []struct {
		name    string
		command string
		uri     string
		pos     protocol.Position
		applied bool
		want    string
	}{
		{name: "no method", command: CommandGenerateMethod, uri: uri, pos: protocol.Position{Line: 2}, applied: true, want: "no method or constructor"},
		{name: "not open", command: CommandGenerateFileHeader, uri: "file:///x/B.java", applied: true, want: "is not open"},
		{name: "unknown command", command: "javadoc.nope", uri: uri, applied: true, want: "unknown command"},
		{name: "edit rejected", command: CommandGenerateFileHeader, uri: uri, applied: false, want: "edit was not applied"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeClient{applied: tc.applied}
			s.execute(client.context(), tc.command, tc.uri, tc.pos)

			if len(client.notifies) != 1 {
				t.Fatalf("notifications = %+v, want one", client.notifies)
			}
			msg := client.notifies[0].params.(protocol.ShowMessageParams)
			if msg.Type != protocol.MessageTypeError || !strings.Contains(msg.Message, tc.want) {
				t.Fatalf("message = %+v, want error containing %q", msg, tc.want)
			}
		})
	}
}

func TestWorkspaceExecuteCommand_BadArguments(t *testing.T) {
	s, _ := newInitializedServer(t)
	_, err := s.workspaceExecuteCommand(&glsp.Context{}, &protocol.ExecuteCommandParams{
		Command:   CommandGenerateMethod,
		Arguments: []any{42},
	})
	if err == nil {
		t.Fatal("expected error for malformed arguments")
	}
}

func TestDidChange_ReplacesText(t *testing.T) {
	s, uri := newInitializedServer(t)

	err := s.textDocumentDidChange(&glsp.Context{}, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "class B {}"}},
	})
	if err != nil {
		t.Fatalf("didChange() error = %v", err)
	}

	doc, ok := s.document(uri)
	if !ok || doc.Text != "class B {}" {
		t.Fatalf("document = %+v, %v", doc, ok)
	}

	if err := s.textDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Fatalf("didClose() error = %v", err)
	}
	if _, ok := s.document(uri); ok {
		t.Fatal("document should be gone after didClose")
	}
}

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name   string
		args   []any
		uri    string
		pos    protocol.Position
		wantOK bool
	}{
		{name: "full", args: []any{"file:///a/A.java", float64(3), float64(7)}, uri: "file:///a/A.java", pos: protocol.Position{Line: 3, Character: 7}, wantOK: true},
		{name: "uri only", args: []any{"file:///a/A.java"}, uri: "file:///a/A.java", wantOK: true},
		{name: "empty", args: nil},
		{name: "bad uri", args: []any{1.0, 2.0, 3.0}},
		{name: "bad line", args: []any{"u", "x", 1.0}},
		{name: "negative", args: []any{"u", -1.0, 1.0}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			uri, pos, ok := commandArgs(tc.args)
			if ok != tc.wantOK || uri != tc.uri || pos != tc.pos {
				t.Fatalf("commandArgs() = %q, %+v, %v", uri, pos, ok)
			}
		})
	}
}

func TestPositionConversion(t *testing.T) {
	lines := []string{"\t * @描述: x", "// 😀 y", "ascii"}

	tests := []struct {
		name  string
		bytes locator.Position
		utf16 protocol.Position
	}{
		{name: "line start", bytes: locator.Position{Line: 0}, utf16: protocol.Position{Line: 0}},
		{name: "after han", bytes: locator.Position{Line: 0, Character: 11}, utf16: protocol.Position{Line: 0, Character: 7}},
		{name: "line end", bytes: locator.Position{Line: 0, Character: 14}, utf16: protocol.Position{Line: 0, Character: 10}},
		{name: "after surrogate pair", bytes: locator.Position{Line: 1, Character: 7}, utf16: protocol.Position{Line: 1, Character: 5}},
		{name: "ascii", bytes: locator.Position{Line: 2, Character: 3}, utf16: protocol.Position{Line: 2, Character: 3}},
		{name: "past last line", bytes: locator.Position{Line: 9, Character: 4}, utf16: protocol.Position{Line: 9, Character: 4}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := toProtocolPosition(lines, tc.bytes); got != tc.utf16 {
				t.Fatalf("toProtocolPosition(%+v) = %+v, want %+v", tc.bytes, got, tc.utf16)
			}
			if got := fromProtocolPosition(lines, tc.utf16); got != tc.bytes {
				t.Fatalf("fromProtocolPosition(%+v) = %+v, want %+v", tc.utf16, got, tc.bytes)
			}
		})
	}
}
