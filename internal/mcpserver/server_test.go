package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/gitsync"
	"github.com/starford/ansuz/internal/note"
	"github.com/starford/ansuz/internal/storage"
)

// cleanRunner scripts a successful sync against a clean tree.
type cleanRunner struct{}

func (cleanRunner) Run(_ context.Context, _ string, _ []string, _ ...string) (string, string, error) {
	return "", "", nil
}

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()

	repo := t.TempDir()
	if err := os.Mkdir(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewFS(repo)
	if err != nil {
		t.Fatal(err)
	}

	builder := note.NewBuilder(note.Config{RepoPath: repo, MaxExcerptLines: 8, Timezone: "UTC"},
		note.WithClock(func() time.Time {
			return time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
		}))
	syncer := gitsync.NewSyncer(gitsync.Config{RepoPath: repo, Remote: "origin", Branch: "main"},
		gitsync.WithRunner(cleanRunner{}))

	return New(builder, syncer, store), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// Call the handler functions directly; mcp-go doesn't expose a direct
	// "call tool" test helper.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "write_note":
		result, err = srv.writeNote(ctx, req)
	case "sync_notes":
		result, err = srv.syncNotes(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "get_note_contract":
		result, err = srv.getNoteContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestWriteNoteTool(t *testing.T) {
	srv, store := testServer(t)
	res := callTool(t, srv, "write_note", map[string]interface{}{
		"text":    "error: builder broke\nsrc/x.go:3",
		"project": "demo",
	})
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(res))
	}
	text := resultText(res)
	if !strings.Contains(text, "2025-01-15-demo-") {
		t.Errorf("result = %s", text)
	}

	infos, err := store.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("wrote %d notes, want 1", len(infos))
	}
	if !strings.HasPrefix(infos[0].Path, "notes/2025/2025-01/") {
		t.Errorf("path = %q", infos[0].Path)
	}
}

func TestWriteNoteTool_MissingText(t *testing.T) {
	srv, _ := testServer(t)
	res := callTool(t, srv, "write_note", map[string]interface{}{})
	if !res.IsError {
		t.Fatal("expected error result for missing text")
	}
}

func TestSyncNotesTool(t *testing.T) {
	srv, _ := testServer(t)
	res := callTool(t, srv, "sync_notes", map[string]interface{}{})
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(res))
	}
	if !strings.Contains(resultText(res), "nothing to commit") {
		t.Errorf("result = %s", resultText(res))
	}
}

func TestReadAndListNoteTools(t *testing.T) {
	srv, store := testServer(t)
	if err := store.Write("notes/2025/2025-01/x.md", []byte("# X\nbody\n")); err != nil {
		t.Fatal(err)
	}

	res := callTool(t, srv, "read_note", map[string]interface{}{"path": "notes/2025/2025-01/x.md"})
	if res.IsError || !strings.Contains(resultText(res), "# X") {
		t.Errorf("read result = %s", resultText(res))
	}

	res = callTool(t, srv, "read_note", map[string]interface{}{"path": "notes/missing.md"})
	if !res.IsError {
		t.Error("expected error for missing note")
	}

	res = callTool(t, srv, "list_notes", map[string]interface{}{})
	if res.IsError || !strings.Contains(resultText(res), "notes/2025/2025-01/x.md") {
		t.Errorf("list result = %s", resultText(res))
	}
}

func TestListNotesTool_ParsesTitleAndTags(t *testing.T) {
	srv, store := testServer(t)
	content := "---\ntitle: Build failure\ntags: [go, build]\n---\n\n# Build failure\nbody\n"
	if err := store.Write("notes/2025/2025-01/a.md", []byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := store.Write("notes/2025/2025-01/b.md", []byte("# Untagged note\nbody\n")); err != nil {
		t.Fatal(err)
	}

	res := callTool(t, srv, "list_notes", map[string]interface{}{})
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(res))
	}

	var listings []noteListing
	if err := json.Unmarshal([]byte(resultText(res)), &listings); err != nil {
		t.Fatalf("unmarshal listings: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("len(listings) = %d, want 2", len(listings))
	}

	byPath := make(map[string]noteListing, len(listings))
	for _, l := range listings {
		byPath[l.Path] = l
	}
	a := byPath["notes/2025/2025-01/a.md"]
	if a.Title != "Build failure" {
		t.Errorf("a.Title = %q", a.Title)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "go" || a.Tags[1] != "build" {
		t.Errorf("a.Tags = %v", a.Tags)
	}
	b := byPath["notes/2025/2025-01/b.md"]
	if b.Title != "Untagged note" {
		t.Errorf("b.Title = %q", b.Title)
	}
	if len(b.Tags) != 0 {
		t.Errorf("b.Tags = %v", b.Tags)
	}
}

func TestListNotesTool_Empty(t *testing.T) {
	srv, _ := testServer(t)
	res := callTool(t, srv, "list_notes", map[string]interface{}{})
	if res.IsError || resultText(res) != "no notes found" {
		t.Errorf("list result = %s", resultText(res))
	}
}

func TestNoteContractToolAndResource(t *testing.T) {
	srv, _ := testServer(t)
	res := callTool(t, srv, "get_note_contract", map[string]interface{}{})
	if !strings.Contains(resultText(res), "Note Format Contract") {
		t.Errorf("contract = %s", resultText(res))
	}

	contents, err := srv.readNoteFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d", len(contents))
	}
}
