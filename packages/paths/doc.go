// Package paths implements the path rules used when resolving document
// metadata for preview rendering.
//
// It provides functionality for:
//   - Platform-aware absolute path detection
//   - Home directory (~) expansion
//   - Resolving metadata paths against the document directory and basepath
//   - Deriving the base path for a document
package paths
