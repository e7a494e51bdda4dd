// Package store adapts the host editor's settings storage for the
// settings resolver.
//
// It provides functionality for:
//   - The Store interface the resolver reads application settings through
//   - A map-backed store for embedding hosts and tests
//   - A JSON file-backed store with defaults overlay and nested lookup
//   - Schema validation of user settings files
//   - Watching the settings file for changes
package store
