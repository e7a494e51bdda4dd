// Package cmd implements the markpreview CLI commands using Cobra.
//
// Available commands:
//   - resolve: Print the effective preview settings for a document
//   - validate: Check settings files against the settings schema
//   - version: Show markpreview version information
package cmd
