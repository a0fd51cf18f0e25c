package mcpserver

// NoteFormatContract describes the canonical Markdown note format that
// write_note produces and LLM consumers can rely on when reading notes back.
const NoteFormatContract = `# Ansuz Note Format Contract

Every note written by Ansuz follows this structure.

## Path

` + "```" + `
notes/YYYY/YYYY-MM/YYYY-MM-DD-<slug>-<shortid>.md
` + "```" + `

- Date buckets use the note's creation date, zero-padded.
- ` + "`" + `<slug>` + "`" + ` is URL-safe: lowercase, dashes, at most 40 characters. It is
  derived from project/topic metadata when present, else from the slug hint,
  else from the inferred title.
- ` + "`" + `<shortid>` + "`" + ` is an 8-character random disambiguator; two same-day notes
  with the same slug never collide. Existing files are never overwritten.

## Structure

` + "```" + `markdown
---
id: 2025-01-15-demo-build-1a2b3c4d
date: "2025-01-15"
project: demo
topic: build
tags: [error, linker]
source: chat
confidence: medium
---

# Title

## TL;DR
...

## Key findings
...

## Evidence (excerpts)
...

## Next steps
...

## Links / References
...
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory** and is followed by one blank line.
2. **Tags** are lowercase kebab-case, deduplicated, at most 12.
3. **Document mode:** when the input text already starts with a Markdown
   heading, the body is the input verbatim and the sections above are absent.
4. **Encoding** is UTF-8.
`
