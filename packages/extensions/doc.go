// Package extensions decodes the markdown_extensions setting into a form
// the rendering pipeline can consume.
//
// Extension configuration may reference callables by name using a
// {"!!func": "name"} marker object. Decode replaces markers with the
// function registered under that name, so the host pipeline receives a
// live callable instead of a string.
package extensions
