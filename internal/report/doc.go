// Package report renders portal data for people and tools.
//
// This package contains writers for different output formats:
//   - SimpleWriter: plain text for terminal display
//   - JSONWriter: structured JSON for scripts
//   - MarkdownWriter: Markdown documents with mermaid charts
//
// Writers implement the Writer interface, so they can be used
// interchangeably and combined with MultiWriter.
package report
