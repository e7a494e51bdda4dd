// Package settings resolves the effective configuration for rendering a
// single document preview.
//
// A Settings value wraps the host's settings store and layers document
// overrides on top. Lookup order is:
//   - overrides set through Set or a front matter "settings:" block
//   - the builtin tier (basepath, references, destination)
//   - the document meta tier
//   - the wrapped store
//
// Front matter is applied once per document via ApplyFrontmatter; path
// fields are resolved against the document directory and basepath as
// they are applied.
package settings
