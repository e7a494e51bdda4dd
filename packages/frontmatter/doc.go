// Package frontmatter extracts YAML front matter from Markdown documents.
//
// Front matter is a YAML mapping fenced by "---" lines at the very top of
// the document. Extraction returns the parsed mapping together with the
// document body so the renderer never sees the fence.
package frontmatter
