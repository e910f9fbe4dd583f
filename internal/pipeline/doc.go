// Package pipeline implements the parse and render stages of a build.
//
// This package handles:
//   - Markdown parsing via Goldmark (GFM plus the mathast extension)
//   - LaTeX rendering of resolved trees, with optional standalone preamble
//   - HTML rendering with chroma syntax highlighting
//
// Source rewriting and tree annotation happen between these stages in the
// root texprep package, through the source-read and doctree-resolved
// handlers. Writers only read node attributes such as nowrap.
package pipeline
