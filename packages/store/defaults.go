package store

// Defaults returns the application-level default settings for the
// preview renderer. User settings files and front matter layer on top.
func Defaults() map[string]any {
	return map[string]any{
		"markdown_extensions": []any{
			"extra",
			"toc",
			"codehilite",
		},
		"css":                 []any{"default"},
		"js":                  []any{},
		"highlight_theme":     "github",
		"enable_highlight":    true,
		"enable_mathjax":      false,
		"enable_uml":          false,
		"html_template":       "",
		"title_from_heading":  true,
		"preview_on_save":     false,
		"build_action":        "build",
		"temp_preview_suffix": ".html",
	}
}
