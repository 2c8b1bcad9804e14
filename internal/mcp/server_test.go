// Package mcp is tested here to assert internal handler behavior (handleToolsCall, handlePromptsList, etc.).
//
//nolint:testpackage // we need to call unexported handle* methods for unit tests
package mcp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deckforge/deckforge/internal/include"
	"github.com/deckforge/deckforge/internal/logger"
	"github.com/deckforge/deckforge/internal/render"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	loader := include.NewFSLoader(t.TempDir())
	return NewServer(NewStore(), include.NewExpander(loader, 0), render.NewOutline(), logger.NewNop(), "deckforge-test", "0.0.1")
}

// toolResult decodes the MCP tool call envelope from a response.
func toolResult(t *testing.T, resp *Response) (text string, isError bool) {
	t.Helper()
	if resp == nil || resp.Result == nil {
		t.Fatal("expected non-nil result")
	}
	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal tool result: %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatal("expected at least one content item")
	}
	return result.Content[0].Text, result.IsError
}

func callTool(t *testing.T, s *Server, name, arguments string) *Response {
	t.Helper()
	params := `{"name":"` + name + `","arguments":` + arguments + `}`
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "tools/call", Params: json.RawMessage(params)}
	return s.HandleRequest(req)
}

const sampleDeck = `---
title: Quarterly Review
variables:
  quarter: Q3
---
# {{quarter}} Results

---
## Revenue

- Up 12%
- New contracts signed
`

func TestHandleRequest_Initialize_IncludesServerInfo(t *testing.T) {
	s := newTestServer(t)
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "initialize", Params: json.RawMessage(`{}`)}
	resp := s.HandleRequest(req)
	if resp == nil || resp.Result == nil {
		t.Fatal("expected non-nil result")
	}
	var result struct {
		Capabilities map[string]any `json:"capabilities"`
		ServerInfo   struct {
			Name string `json:"name"`
		} `json:"serverInfo"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.ServerInfo.Name != "deckforge-test" {
		t.Errorf("expected serverInfo.name deckforge-test, got %q", result.ServerInfo.Name)
	}
	for _, name := range []string{"tools", "prompts", "resources"} {
		if _, ok := result.Capabilities[name]; !ok {
			t.Errorf("expected capabilities.%s", name)
		}
	}
}

func TestHandleRequest_Notification_ReturnsNil(t *testing.T) {
	s := newTestServer(t)
	req := &Request{JSONRPC: "2.0", Method: "notifications/initialized"}
	if resp := s.HandleRequest(req); resp != nil {
		t.Errorf("expected nil response for notification, got %+v", resp)
	}
}

func TestHandleRequest_UnknownMethod_ReturnsMethodNotFound(t *testing.T) {
	s := newTestServer(t)
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "bogus/method"}
	resp := s.HandleRequest(req)
	if resp == nil || resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != MethodNotFound {
		t.Errorf("expected MethodNotFound, got %d", resp.Error.Code)
	}
}

func TestHandleToolsList_ReturnsAllTools(t *testing.T) {
	s := newTestServer(t)
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "tools/list", Params: json.RawMessage(`{}`)}
	resp := s.HandleRequest(req)
	if resp == nil || resp.Result == nil {
		t.Fatal("expected non-nil result")
	}
	var result struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	const expectedTools = 9
	if n := len(result.Tools); n != expectedTools {
		t.Errorf("expected %d tools, got %d", expectedTools, n)
	}
	for _, tool := range result.Tools {
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
}

func TestHandleToolsCall_UnknownTool_ReturnsInvalidParams(t *testing.T) {
	s := newTestServer(t)
	resp := callTool(t, s, "nonexistent_tool", `{}`)
	if resp == nil || resp.Error == nil {
		t.Fatal("expected error response for unknown tool")
	}
	if resp.Error.Code != InvalidParams {
		t.Errorf("expected InvalidParams, got %d", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "Unknown tool") {
		t.Errorf("expected message containing 'Unknown tool', got %q", resp.Error.Message)
	}
}

func TestCreatePresentation_StoresAndReturnsID(t *testing.T) {
	s := newTestServer(t)
	args, _ := json.Marshal(map[string]any{"markdown": sampleDeck})
	resp := callTool(t, s, "create_presentation", string(args))

	text, isError := toolResult(t, resp)
	if isError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var created struct {
		PresentationID string `json:"presentation_id"`
		Title          string `json:"title"`
		SlideCount     int    `json:"slide_count"`
	}
	if err := json.Unmarshal([]byte(text), &created); err != nil {
		t.Fatalf("unmarshal create result: %v", err)
	}
	if created.PresentationID == "" {
		t.Error("expected a presentation id")
	}
	if created.Title != "Quarterly Review" {
		t.Errorf("expected title Quarterly Review, got %q", created.Title)
	}
	if created.SlideCount != 2 {
		t.Errorf("expected 2 slides, got %d", created.SlideCount)
	}

	if _, ok := s.store.Get(created.PresentationID); !ok {
		t.Error("expected presentation to be stored")
	}
}

func TestCreatePresentation_CompileError_IsToolError(t *testing.T) {
	s := newTestServer(t)
	source := "# Broken\n\n```chart\ntype: column\n"
	args, _ := json.Marshal(map[string]any{"markdown": source})
	resp := callTool(t, s, "create_presentation", string(args))

	text, isError := toolResult(t, resp)
	if !isError {
		t.Fatal("expected tool error for unterminated block")
	}
	if !strings.Contains(text, "malformed_block") {
		t.Errorf("expected malformed_block in payload, got %s", text)
	}
}

func TestValidateMarkdown_ReportsStructuredError(t *testing.T) {
	s := newTestServer(t)
	args, _ := json.Marshal(map[string]any{"markdown": "# Slide\n\nHello {{nobody}}\n"})
	resp := callTool(t, s, "validate_markdown", string(args))

	text, isError := toolResult(t, resp)
	if isError {
		t.Fatal("validation results should not be tool errors")
	}
	var result struct {
		Valid bool `json:"valid"`
		Error struct {
			Kind  string `json:"kind"`
			Slide int    `json:"slide"`
			Key   string `json:"key"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("unmarshal validate result: %v", err)
	}
	if result.Valid {
		t.Fatal("expected valid=false")
	}
	if result.Error.Kind != "undefined_variable" {
		t.Errorf("expected undefined_variable, got %q", result.Error.Kind)
	}
	if result.Error.Key != "nobody" {
		t.Errorf("expected key nobody, got %q", result.Error.Key)
	}
	if result.Error.Slide != 1 {
		t.Errorf("expected slide 1, got %d", result.Error.Slide)
	}
}

func TestValidateMarkdown_CleanSource(t *testing.T) {
	s := newTestServer(t)
	args, _ := json.Marshal(map[string]any{"markdown": sampleDeck})
	resp := callTool(t, s, "validate_markdown", string(args))

	text, isError := toolResult(t, resp)
	if isError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var result struct {
		Valid      bool `json:"valid"`
		SlideCount int  `json:"slide_count"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("unmarshal validate result: %v", err)
	}
	if !result.Valid || result.SlideCount != 2 {
		t.Errorf("expected valid with 2 slides, got %+v", result)
	}
}

func TestGetPresentation_ReturnsDocumentJSON(t *testing.T) {
	s := newTestServer(t)
	id := mustCreate(t, s, sampleDeck)

	args, _ := json.Marshal(map[string]any{"presentation_id": id})
	resp := callTool(t, s, "get_presentation", string(args))
	text, isError := toolResult(t, resp)
	if isError {
		t.Fatalf("unexpected tool error: %s", text)
	}

	var result struct {
		PresentationID string `json:"presentation_id"`
		Config         struct {
			Title string `json:"title"`
		} `json:"config"`
		Slides []struct {
			Type     string           `json:"type"`
			Elements []map[string]any `json:"elements"`
		} `json:"slides"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("unmarshal presentation: %v", err)
	}
	if result.PresentationID != id {
		t.Errorf("expected id %q, got %q", id, result.PresentationID)
	}
	if result.Config.Title != "Quarterly Review" {
		t.Errorf("expected title Quarterly Review, got %q", result.Config.Title)
	}
	if len(result.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(result.Slides))
	}
	if kind := result.Slides[0].Elements[0]["kind"]; kind != "heading" {
		t.Errorf("expected first element kind heading, got %v", kind)
	}
}

func TestGetSlide_ReturnsRequestedIndex(t *testing.T) {
	s := newTestServer(t)
	id := mustCreate(t, s, sampleDeck)

	args, _ := json.Marshal(map[string]any{"presentation_id": id, "index": 2})
	resp := callTool(t, s, "get_slide", string(args))
	text, isError := toolResult(t, resp)
	if isError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var result struct {
		Index int `json:"index"`
		Slide struct {
			Type string `json:"type"`
		} `json:"slide"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("unmarshal slide: %v", err)
	}
	if result.Index != 2 {
		t.Errorf("expected index 2, got %d", result.Index)
	}
}

func TestCreatePresentation_ExpandsIncludes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shared.md"), []byte("## Shared Section"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewServer(NewStore(), include.NewExpander(include.NewFSLoader(dir), 0), render.NewOutline(), logger.NewNop(), "t", "0")

	args, _ := json.Marshal(map[string]any{
		"markdown":        "# Top\n\n---\n<!-- include: shared.md -->\n",
		"expand_includes": true,
	})
	resp := callTool(t, s, "create_presentation", string(args))
	text, isError := toolResult(t, resp)
	if isError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var created struct {
		SlideCount int `json:"slide_count"`
	}
	if err := json.Unmarshal([]byte(text), &created); err != nil {
		t.Fatalf("unmarshal create result: %v", err)
	}
	if created.SlideCount != 2 {
		t.Errorf("expected 2 slides after include expansion, got %d", created.SlideCount)
	}
}

func TestCreatePresentationFromFile_MissingFile(t *testing.T) {
	s := newTestServer(t)
	args, _ := json.Marshal(map[string]any{"path": "missing.md"})
	resp := callTool(t, s, "create_presentation_from_file", string(args))
	text, isError := toolResult(t, resp)
	if !isError {
		t.Fatal("expected tool error for missing file")
	}
	if !strings.Contains(text, "include_not_found") {
		t.Errorf("expected include_not_found in payload, got %s", text)
	}
}

func TestGetSlide_OutOfRange_IsToolError(t *testing.T) {
	s := newTestServer(t)
	id := mustCreate(t, s, sampleDeck)

	args, _ := json.Marshal(map[string]any{"presentation_id": id, "index": 5})
	resp := callTool(t, s, "get_slide", string(args))
	text, isError := toolResult(t, resp)
	if !isError {
		t.Fatal("expected tool error for out-of-range index")
	}
	if !strings.Contains(text, "out of range") {
		t.Errorf("expected out of range message, got %q", text)
	}
}

func TestGetPresentationOutline_RendersText(t *testing.T) {
	s := newTestServer(t)
	id := mustCreate(t, s, sampleDeck)

	args, _ := json.Marshal(map[string]any{"presentation_id": id})
	resp := callTool(t, s, "get_presentation_outline", string(args))
	text, isError := toolResult(t, resp)
	if isError {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !strings.Contains(text, "Quarterly Review") {
		t.Errorf("expected outline to mention the title, got %q", text)
	}
	if !strings.Contains(text, "Q3 Results") {
		t.Errorf("expected variables resolved in outline, got %q", text)
	}
}

func TestDeletePresentation_RemovesFromList(t *testing.T) {
	s := newTestServer(t)
	id := mustCreate(t, s, sampleDeck)

	args, _ := json.Marshal(map[string]any{"presentation_id": id})
	resp := callTool(t, s, "delete_presentation", string(args))
	if _, isError := toolResult(t, resp); isError {
		t.Fatal("unexpected tool error on delete")
	}

	resp = callTool(t, s, "list_presentations", `{}`)
	text, _ := toolResult(t, resp)
	var listed struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(text), &listed); err != nil {
		t.Fatalf("unmarshal list result: %v", err)
	}
	if listed.Count != 0 {
		t.Errorf("expected empty list after delete, got %d", listed.Count)
	}

	resp = callTool(t, s, "delete_presentation", string(args))
	if _, isError := toolResult(t, resp); !isError {
		t.Error("expected tool error deleting a missing presentation")
	}
}

func mustCreate(t *testing.T, s *Server, markdown string) string {
	t.Helper()
	args, _ := json.Marshal(map[string]any{"markdown": markdown})
	resp := callTool(t, s, "create_presentation", string(args))
	text, isError := toolResult(t, resp)
	if isError {
		t.Fatalf("create failed: %s", text)
	}
	var created struct {
		PresentationID string `json:"presentation_id"`
	}
	if err := json.Unmarshal([]byte(text), &created); err != nil {
		t.Fatalf("unmarshal create result: %v", err)
	}
	return created.PresentationID
}

func TestHandlePromptsList_ReturnsPrompts(t *testing.T) {
	s := newTestServer(t)
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "prompts/list", Params: json.RawMessage(`{}`)}
	resp := s.handlePromptsList(req, "1")
	if resp == nil || resp.Result == nil {
		t.Fatal("expected non-nil result")
	}
	var result struct {
		Prompts []Prompt `json:"prompts"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	const expectedPrompts = 3
	if n := len(result.Prompts); n != expectedPrompts {
		t.Errorf("expected %d prompts, got %d", expectedPrompts, n)
	}
}

func TestHandlePromptsGet_MissingRequiredArgs_ReturnsInvalidParams(t *testing.T) {
	s := newTestServer(t)
	params := `{"name":"summarize_presentation","arguments":{}}`
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "prompts/get", Params: json.RawMessage(params)}
	resp := s.handlePromptsGet(req, "1")
	if resp == nil || resp.Error == nil {
		t.Fatal("expected error when required argument presentation_id is missing")
	}
	if resp.Error.Code != InvalidParams {
		t.Errorf("expected InvalidParams, got %d", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "missing required") {
		t.Errorf("expected message to mention missing required, got %q", resp.Error.Message)
	}
}

func TestHandlePromptsGet_ValidName_ReturnsMessages(t *testing.T) {
	s := newTestServer(t)
	params := `{"name":"draft_presentation","arguments":{"topic":"release planning"}}`
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "prompts/get", Params: json.RawMessage(params)}
	resp := s.handlePromptsGet(req, "1")
	if resp == nil || resp.Result == nil {
		t.Fatal("expected non-nil result")
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	var result struct {
		Messages []PromptMessage `json:"messages"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(result.Messages) == 0 {
		t.Fatal("expected at least one message")
	}
	if !strings.Contains(result.Messages[0].Content[0].Text, "release planning") {
		t.Error("expected topic substituted into prompt text")
	}
}

func TestHandleResourcesRead_ValidURI_ReturnsContents(t *testing.T) {
	s := newTestServer(t)
	params := `{"uri":"deckforge://docs/syntax"}`
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "resources/read", Params: json.RawMessage(params)}
	resp := s.handleResourcesRead(req, "1")
	if resp == nil || resp.Result == nil {
		t.Fatal("expected non-nil result")
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	var result struct {
		Contents []ResourceContent `json:"contents"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(result.Contents) == 0 || result.Contents[0].Text == "" {
		t.Error("expected non-empty content text")
	}
}

func TestHandleResourcesRead_UnknownURI_ReturnsResourceNotFound(t *testing.T) {
	s := newTestServer(t)
	params := `{"uri":"deckforge://docs/nonexistent"}`
	req := &Request{JSONRPC: "2.0", ID: "1", Method: "resources/read", Params: json.RawMessage(params)}
	resp := s.handleResourcesRead(req, "1")
	if resp == nil || resp.Error == nil {
		t.Fatal("expected error for unknown URI")
	}
	if resp.Error.Code != ResourceNotFound {
		t.Errorf("expected ResourceNotFound (%d), got %d", ResourceNotFound, resp.Error.Code)
	}
}
