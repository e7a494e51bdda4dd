package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markpreview/markpreview/packages/extensions"
	"github.com/markpreview/markpreview/packages/store"
)

func newDocDir(t *testing.T) (dir, doc string) {
	t.Helper()
	dir = t.TempDir()
	doc = filepath.Join(dir, "doc.md")
	mustWrite(t, doc)
	return dir, doc
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGetPrecedence(t *testing.T) {
	st := store.MapStore{"highlight_theme": "github", "css": []any{"default"}}
	s := New(st, "")

	// Store value surfaces through Get.
	if got := s.Get("highlight_theme"); got != "github" {
		t.Errorf("Get(highlight_theme) = %v, want github", got)
	}

	// Override shadows the store without touching it.
	s.Set("highlight_theme", "monokai")
	if got := s.Get("highlight_theme"); got != "monokai" {
		t.Errorf("after Set, Get(highlight_theme) = %v, want monokai", got)
	}
	if st["highlight_theme"] != "github" {
		t.Error("Set wrote through to the store")
	}

	// Unknown key falls back to the default.
	if got := s.GetDefault("missing", "fallback"); got != "fallback" {
		t.Errorf("GetDefault(missing) = %v, want fallback", got)
	}
}

func TestHas(t *testing.T) {
	s := New(store.MapStore{"css": []any{}}, "")

	if !s.Has("css") {
		t.Error("expected Has(css) via store")
	}
	if s.Has("js") {
		t.Error("unexpected Has(js)")
	}
	s.Set("js", []any{"custom.js"})
	if !s.Has("js") {
		t.Error("expected Has(js) after Set")
	}

	// The builtin and meta tiers always exist.
	if !s.Has("builtin") || !s.Has("meta") {
		t.Error("expected builtin and meta tiers to always be present")
	}
}

func TestNewSeedsBasepath(t *testing.T) {
	dir, doc := newDocDir(t)

	if got := New(store.MapStore{}, doc).BasePath(); got != dir {
		t.Errorf("BasePath = %q, want %q", got, dir)
	}
	if got := New(store.MapStore{}, "").BasePath(); got != "" {
		t.Errorf("BasePath for unsaved buffer = %q, want empty", got)
	}
}

func TestApplyFrontmatterSettingsBlock(t *testing.T) {
	s := New(store.MapStore{"enable_highlight": true}, "")

	s.ApplyFrontmatter(map[string]any{
		"settings": map[string]any{
			"enable_highlight": false,
			"highlight_theme":  "zenburn",
		},
	})

	if got := s.Get("enable_highlight"); got != false {
		t.Errorf("enable_highlight = %v, want false", got)
	}
	if got := s.Get("highlight_theme"); got != "zenburn" {
		t.Errorf("highlight_theme = %v, want zenburn", got)
	}
	// The settings block is config, not document metadata.
	if len(s.Meta()) != 0 {
		t.Errorf("meta = %v, want empty", s.Meta())
	}
}

func TestApplyFrontmatterMeta(t *testing.T) {
	s := New(store.MapStore{}, "")

	s.ApplyFrontmatter(map[string]any{
		"title":    "My Doc",
		"nav":      3,
		"authors":  []any{"ann", 7},
		"settings": "not a mapping",
	})

	meta := s.Meta()
	if meta["title"] != "My Doc" {
		t.Errorf("meta[title] = %v", meta["title"])
	}
	if meta["nav"] != "3" {
		t.Errorf("meta[nav] = %v, want stringified 3", meta["nav"])
	}
	authors, ok := meta["authors"].([]string)
	if !ok || len(authors) != 2 || authors[0] != "ann" || authors[1] != "7" {
		t.Errorf("meta[authors] = %#v, want [ann 7]", meta["authors"])
	}
	// A non-mapping settings value degrades to metadata.
	if meta["settings"] != "not a mapping" {
		t.Errorf("meta[settings] = %v", meta["settings"])
	}
}

func TestApplyFrontmatterReferences(t *testing.T) {
	dir, doc := newDocDir(t)
	mustWrite(t, filepath.Join(dir, "abbr.md"))
	sub := filepath.Join(dir, "refs")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(sub, "links.md"))

	s := New(store.MapStore{}, doc)
	s.ApplyFrontmatter(map[string]any{
		"references": []any{
			"abbr.md",             // relative to doc dir
			"refs/links.md",       // nested relative
			"refs",                // a directory: dropped
			"/definitely/missing", // absolute missing: dropped
		},
	})

	want := []string{
		filepath.Join(dir, "abbr.md"),
		filepath.Join(sub, "links.md"),
	}
	got := s.References()
	if len(got) != len(want) {
		t.Fatalf("References = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("References[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApplyFrontmatterKeepsUnresolvedRelativeReference(t *testing.T) {
	_, doc := newDocDir(t)

	s := New(store.MapStore{}, doc)
	s.ApplyFrontmatter(map[string]any{
		"references": []any{"not-there-yet.md"},
	})

	// A relative entry that resolves against neither base is carried
	// through as written, not dropped.
	got := s.References()
	if len(got) != 1 || got[0] != "not-there-yet.md" {
		t.Errorf("References = %v, want the unresolved relative entry kept as-is", got)
	}
}

func TestApplyFrontmatterScalarReference(t *testing.T) {
	dir, doc := newDocDir(t)
	mustWrite(t, filepath.Join(dir, "abbr.md"))

	s := New(store.MapStore{}, doc)
	s.ApplyFrontmatter(map[string]any{"references": "abbr.md"})

	got := s.References()
	if len(got) != 1 || got[0] != filepath.Join(dir, "abbr.md") {
		t.Errorf("References = %v, want single abbr.md", got)
	}
}

func TestApplyFrontmatterBasepathBeforeReferences(t *testing.T) {
	_, doc := newDocDir(t)
	assets := t.TempDir()
	mustWrite(t, filepath.Join(assets, "shared.md"))

	s := New(store.MapStore{}, doc)
	s.ApplyFrontmatter(map[string]any{
		"basepath":   assets,
		"references": []any{"shared.md"},
	})

	if got := s.BasePath(); got != assets {
		t.Errorf("BasePath = %q, want %q", got, assets)
	}
	refs := s.References()
	if len(refs) != 1 || refs[0] != filepath.Join(assets, "shared.md") {
		t.Errorf("References = %v, want shared.md under the new basepath", refs)
	}
}

func TestApplyFrontmatterDestination(t *testing.T) {
	dir, doc := newDocDir(t)
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}

	s := New(store.MapStore{}, doc)
	s.ApplyFrontmatter(map[string]any{"destination": "out/index.html"})

	dest, ok := s.Destination()
	if !ok {
		t.Fatal("expected destination override")
	}
	if want := filepath.Join(out, "index.html"); dest != want {
		t.Errorf("Destination = %q, want %q", dest, want)
	}
}

func TestApplyFrontmatterDestinationBareName(t *testing.T) {
	dir, doc := newDocDir(t)

	s := New(store.MapStore{}, doc)
	s.ApplyFrontmatter(map[string]any{"destination": "index.html"})

	dest, ok := s.Destination()
	if !ok {
		t.Fatal("expected destination override")
	}
	if want := filepath.Join(dir, "index.html"); dest != want {
		t.Errorf("Destination = %q, want %q", dest, want)
	}
}

func TestApplyFrontmatterDestinationRejectsDirectory(t *testing.T) {
	dir, doc := newDocDir(t)
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}

	s := New(store.MapStore{}, doc)
	s.ApplyFrontmatter(map[string]any{"destination": out})

	if dest, ok := s.Destination(); ok {
		t.Errorf("destination %q accepted, want rejection of existing directory", dest)
	}
}

func TestAddMetaExistingWins(t *testing.T) {
	s := New(store.MapStore{}, "")
	s.ApplyFrontmatter(map[string]any{"title": "From Front Matter"})

	s.AddMeta(map[string]any{
		"title":  "From Pipeline",
		"author": "ann",
	})

	meta := s.Meta()
	if meta["title"] != "From Front Matter" {
		t.Errorf("meta[title] = %v, front matter should win", meta["title"])
	}
	if meta["author"] != "ann" {
		t.Errorf("meta[author] = %v", meta["author"])
	}
}

func TestMarkdownExtensionsDecode(t *testing.T) {
	st := store.MapStore{
		"markdown_extensions": []any{
			"toc",
			map[string]any{
				"toc": map[string]any{
					"slugify": map[string]any{extensions.FuncKey: "toc.slugify"},
				},
			},
		},
	}
	s := New(st, "")

	decoded, ok := s.Get("markdown_extensions").([]any)
	if !ok {
		t.Fatalf("markdown_extensions = %#v, want list", s.Get("markdown_extensions"))
	}
	slug, ok := decoded[1].(map[string]any)["toc"].(map[string]any)["slugify"].(extensions.Func)
	if !ok {
		t.Fatalf("slugify marker not decoded: %#v", decoded[1])
	}
	if got := slug("A B"); got != "a-b" {
		t.Errorf("slugify(A B) = %v, want a-b", got)
	}
}

func TestMarkdownExtensionsDecodeErrorReturnsRaw(t *testing.T) {
	raw := []any{map[string]any{extensions.FuncKey: "no.such.fn"}}
	s := New(store.MapStore{"markdown_extensions": raw}, "")

	got, ok := s.Get("markdown_extensions").([]any)
	if !ok || len(got) != 1 {
		t.Fatalf("markdown_extensions = %#v, want raw list back", s.Get("markdown_extensions"))
	}
	if _, isFunc := got[0].(extensions.Func); isFunc {
		t.Error("expected raw marker, got decoded func")
	}
}

func TestMarkdownExtensionsOverrideWinsRaw(t *testing.T) {
	s := New(store.MapStore{"markdown_extensions": []any{"toc"}}, "")
	s.Set("markdown_extensions", []any{"extra"})

	got, ok := s.Get("markdown_extensions").([]any)
	if !ok || len(got) != 1 || got[0] != "extra" {
		t.Errorf("markdown_extensions = %#v, want override [extra]", s.Get("markdown_extensions"))
	}
}

func TestBuiltinView(t *testing.T) {
	dir, doc := newDocDir(t)

	s := New(store.MapStore{}, doc)
	view, ok := s.Get("builtin").(map[string]any)
	if !ok {
		t.Fatalf("Get(builtin) = %#v, want map", s.Get("builtin"))
	}
	if view["basepath"] != dir {
		t.Errorf("builtin basepath = %v, want %v", view["basepath"], dir)
	}
	if _, ok := view["destination"]; ok {
		t.Error("destination should be absent until set")
	}
}

func TestScratchDestination(t *testing.T) {
	_, doc := newDocDir(t)
	s := New(store.MapStore{"temp_preview_suffix": ".htm"}, doc)

	first := s.ScratchDestination()
	second := s.ScratchDestination()

	if !strings.HasSuffix(first, ".htm") {
		t.Errorf("scratch destination %q missing configured suffix", first)
	}
	if !strings.Contains(filepath.Base(first), "doc-") {
		t.Errorf("scratch destination %q should carry the document name", first)
	}
	if first == second {
		t.Error("scratch destinations should be unique")
	}

	// An explicit destination short-circuits the scratch path.
	s.ApplyFrontmatter(map[string]any{"destination": "final.html"})
	if got := s.ScratchDestination(); filepath.Base(got) != "final.html" {
		t.Errorf("ScratchDestination = %q, want the explicit destination", got)
	}
}
