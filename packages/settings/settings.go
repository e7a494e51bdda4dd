package settings

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/markpreview/markpreview/packages/extensions"
	"github.com/markpreview/markpreview/packages/logging"
	"github.com/markpreview/markpreview/packages/paths"
	"github.com/markpreview/markpreview/packages/store"
)

// Front matter keys handled by the builtin tier.
const (
	KeyBasepath    = "basepath"
	KeyReferences  = "references"
	KeyDestination = "destination"

	// KeyMarkdownExtensions is decoded through the extension registry on
	// lookup.
	KeyMarkdownExtensions = "markdown_extensions"

	keyBuiltin  = "builtin"
	keyMeta     = "meta"
	keySettings = "settings"
)

func isBuiltinKey(key string) bool {
	return key == KeyBasepath || key == KeyReferences || key == KeyDestination
}

// builtin is the tier of resolved path fields sourced from front matter.
type builtin struct {
	references     []string
	basepath       string
	destination    string
	hasDestination bool
}

// Settings resolves configuration for one document. It is not safe for
// concurrent use; the host builds one per preview.
type Settings struct {
	docPath string
	store   store.Store
	reg     *extensions.Registry
	log     zerolog.Logger

	builtin   builtin
	meta      map[string]any
	overrides map[string]any
}

// Option configures a Settings during construction.
type Option func(*Settings)

// WithLogger routes resolution warnings to log instead of discarding them.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Settings) { s.log = log }
}

// WithRegistry supplies the extension callable registry used when
// decoding markdown_extensions.
func WithRegistry(reg *extensions.Registry) Option {
	return func(s *Settings) { s.reg = reg }
}

// New builds a resolver for the document at docPath backed by st.
// docPath may be empty for unsaved buffers; path resolution then has no
// document directory to work with.
func New(st store.Store, docPath string, opts ...Option) *Settings {
	s := &Settings{
		docPath: docPath,
		store:   st,
		reg:     extensions.NewRegistry(),
		log:     logging.Nop(),
		builtin: builtin{
			references: []string{},
			basepath:   paths.BasePath("", docPath),
		},
		meta:      make(map[string]any),
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DocPath returns the document path the resolver was built for.
func (s *Settings) DocPath() string {
	return s.docPath
}

// Get returns the effective value for key, or nil when nothing defines it.
func (s *Settings) Get(key string) any {
	return s.GetDefault(key, nil)
}

// GetDefault returns the effective value for key. Overrides win over the
// builtin and meta tiers, which win over the wrapped store; def is
// returned when no tier defines the key.
func (s *Settings) GetDefault(key string, def any) any {
	if v, ok := s.overrides[key]; ok {
		return v
	}
	switch key {
	case keyBuiltin:
		return s.builtinView()
	case keyMeta:
		return s.Meta()
	case KeyMarkdownExtensions:
		return s.markdownExtensions(def)
	}
	if v, ok := s.store.Get(key); ok {
		return v
	}
	return def
}

// Set records an override for key. The wrapped store is never written.
func (s *Settings) Set(key string, value any) {
	s.overrides[key] = value
}

// Has reports whether any tier defines key.
func (s *Settings) Has(key string) bool {
	if _, ok := s.overrides[key]; ok {
		return true
	}
	if key == keyBuiltin || key == keyMeta {
		return true
	}
	return s.store.Has(key)
}

// References returns the resolved reference files for the document.
func (s *Settings) References() []string {
	out := make([]string, len(s.builtin.references))
	copy(out, s.builtin.references)
	return out
}

// BasePath returns the directory relative paths resolve against, or ""
// when the document has no physical location.
func (s *Settings) BasePath() string {
	return s.builtin.basepath
}

// Destination reports the output destination override, if any.
func (s *Settings) Destination() (string, bool) {
	return s.builtin.destination, s.builtin.hasDestination
}

// Overrides returns a copy of the plain override tier.
func (s *Settings) Overrides() map[string]any {
	out := make(map[string]any, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}

// Meta returns a copy of the document meta tier.
func (s *Settings) Meta() map[string]any {
	out := make(map[string]any, len(s.meta))
	for k, v := range s.meta {
		out[k] = v
	}
	return out
}

// AddMeta merges m into the meta tier. Keys already present keep their
// existing values: front matter beats metadata added later.
func (s *Settings) AddMeta(m map[string]any) {
	for k, v := range m {
		if _, ok := s.meta[k]; !ok {
			s.meta[k] = v
		}
	}
}

// ApplyFrontmatter layers a document's front matter onto the resolver.
//
// basepath is handled first so the remaining path fields resolve against
// it. A "settings:" mapping becomes plain overrides. references and
// destination go through path resolution into the builtin tier. Every
// other key is stringified into the meta tier. Unresolvable paths are
// dropped with a warning; ApplyFrontmatter never fails.
func (s *Settings) ApplyFrontmatter(fm map[string]any) {
	if v, ok := fm[KeyBasepath]; ok {
		s.builtin.basepath = paths.BasePath(stringify(v), s.docPath)
	}

	for key, value := range fm {
		switch {
		case key == KeyBasepath:
			// handled above

		case key == keySettings:
			if m, ok := value.(map[string]any); ok {
				for subkey, subvalue := range m {
					s.overrides[subkey] = subvalue
				}
				continue
			}
			// A non-mapping settings value is just metadata.
			s.addMetaValue(key, value)

		case isBuiltinKey(key):
			switch key {
			case KeyReferences:
				s.builtin.references = s.resolveReferences(value)
			case KeyDestination:
				s.applyDestination(value)
			}

		default:
			s.addMetaValue(key, value)
		}
	}
}

func (s *Settings) addMetaValue(key string, value any) {
	if list, ok := value.([]any); ok {
		strs := make([]string, len(list))
		for i, v := range list {
			strs[i] = stringify(v)
		}
		s.meta[key] = strs
		return
	}
	s.meta[key] = stringify(value)
}

// resolveReferences resolves each entry, dropping missing absolute paths
// and directories. A relative entry that resolves against neither base
// is kept as written. A scalar value is treated as a one-element list.
func (s *Settings) resolveReferences(value any) []string {
	list, ok := value.([]any)
	if !ok {
		list = []any{value}
	}

	refs := make([]string, 0, len(list))
	for _, ref := range list {
		target := stringify(ref)
		resolved := s.resolveMetaPath(target)
		if resolved == "" || paths.IsDir(resolved) {
			s.log.Warn().Str("reference", target).Msg("dropping unresolvable reference")
			continue
		}
		refs = append(refs, filepath.Clean(resolved))
	}
	return refs
}

// applyDestination resolves the directory part of the destination and
// records the override unless the result names an existing directory.
func (s *Settings) applyDestination(value any) {
	if value == nil {
		return
	}
	fileName := stringify(value)
	if fileName == "" {
		return
	}

	if dir := s.resolveMetaPath(filepath.Dir(fileName)); dir != "" {
		fileName = filepath.Join(dir, filepath.Base(fileName))
	}

	if paths.IsDir(fileName) {
		s.log.Warn().Str("destination", fileName).Msg("destination is a directory, ignoring")
		return
	}
	s.builtin.destination = fileName
	s.builtin.hasDestination = true
}

// resolveMetaPath resolves a front matter path against the document
// directory first and the basepath second.
func (s *Settings) resolveMetaPath(target string) string {
	docDir := ""
	if s.docPath != "" {
		docDir = filepath.Dir(s.docPath)
	}
	return paths.ResolveMeta(target, docDir, s.builtin.basepath)
}

// markdownExtensions fetches the raw markdown_extensions setting and
// decodes callable markers through the registry. Decode problems are
// logged and the raw value returned so a bad entry never blanks the
// whole extension list.
func (s *Settings) markdownExtensions(def any) any {
	raw, ok := s.store.Get(KeyMarkdownExtensions)
	if !ok {
		return def
	}
	decoded, err := extensions.Decode(raw, s.reg)
	if err != nil {
		s.log.Warn().Err(err).Msg("markdown_extensions decode failed")
		return raw
	}
	return decoded
}

func (s *Settings) builtinView() map[string]any {
	view := map[string]any{
		KeyReferences: s.References(),
		KeyBasepath:   s.builtin.basepath,
	}
	if s.builtin.hasDestination {
		view[KeyDestination] = s.builtin.destination
	}
	return view
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
