// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the note-writing and git-sync skills to LLM agents via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/gitsync"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/note"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// Server wraps the MCP server with the Ansuz tools.
type Server struct {
	mcp     *server.MCPServer
	builder *note.Builder
	syncer  *gitsync.Syncer
	store   storage.Provider
}

// New creates a new MCP server with all tools registered.
func New(builder *note.Builder, syncer *gitsync.Syncer, store storage.Provider) *Server {
	s := &Server{builder: builder, syncer: syncer, store: store}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("write_note",
		mcp.WithDescription("Summarize raw text into a Markdown note with YAML frontmatter "+
			"and write it into a dated bucket of the notes repository. "+
			"Input starting with a Markdown heading is stored verbatim as a pre-formed document."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw text to summarize (logs, chat excerpts, findings)")),
		mcp.WithString("project", mcp.Description("Project name used for context and the slug")),
		mcp.WithString("topic", mcp.Description("Topic used for context and the slug")),
		mcp.WithString("slug_hint", mcp.Description("Explicit slug basis when no project/topic is given")),
		mcp.WithString("mode", mcp.Description("One of auto, summary, document (default auto)")),
	), s.writeNote)

	s.mcp.AddTool(mcp.NewTool("sync_notes",
		mcp.WithDescription("Pull --rebase, stage notes/, commit, and push the notes repository. "+
			"Returns the chronological action log; a clean tree short-circuits with 'nothing to commit'."),
		mcp.WithString("commit_message", mcp.Description("Commit message (generated when omitted)")),
	), s.syncNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. notes/2025/2025-01/2025-01-15-demo-abc123.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes or notes under a specific folder, "+
			"with each note's title and tags parsed from its frontmatter."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("get_note_contract",
		mcp.WithDescription("Returns the canonical note format contract written by write_note."),
	), s.getNoteContract)

	// Resource: note format contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://note-format", "Note Format Contract",
			mcp.WithResourceDescription("Canonical Markdown note format produced by write_note."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// MCPServer returns the underlying server for serving and testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) writeNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := &models.NoteInput{Text: text}
	if v, err := req.RequireString("project"); err == nil {
		in.Meta.Project = v
	}
	if v, err := req.RequireString("topic"); err == nil {
		in.Meta.Topic = v
	}
	if v, err := req.RequireString("slug_hint"); err == nil {
		in.SlugHint = v
	}
	if v, err := req.RequireString("mode"); err == nil {
		in.Mode = v
	}

	n, err := s.builder.Create(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(n, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) syncNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sreq models.SyncRequest
	if v, err := req.RequireString("commit_message"); err == nil {
		sreq.CommitMessage = v
	}

	res := s.syncer.Sync(ctx, &sreq)
	out, _ := json.MarshalIndent(res, "", "  ")
	if !res.OK {
		return mcp.NewToolResultError(string(out)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// noteListing is one list_notes entry. Title and tags come from parsing the
// note's frontmatter.
type noteListing struct {
	Path  string   `json:"path"`
	Title string   `json:"title,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

func (s *Server) listNotes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := ""
	if f, err := req.RequireString("folder"); err == nil {
		folder = f
	}

	infos, err := s.store.List(folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(infos) == 0 {
		return mcp.NewToolResultText("no notes found"), nil
	}

	listings := make([]noteListing, 0, len(infos))
	for _, info := range infos {
		entry := noteListing{Path: info.Path}
		if data, err := s.store.Read(info.Path); err == nil {
			if res, perr := parser.Parse(data); perr == nil {
				entry.Title = res.Title
				entry.Tags = res.Tags
			}
		}
		listings = append(listings, entry)
	}
	out, _ := json.MarshalIndent(listings, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getNoteContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteFormatContract), nil
}

func (s *Server) readNoteFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}
