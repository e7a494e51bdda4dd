package extensions

import (
	"fmt"
	"regexp"
	"strings"
)

// FuncKey marks a configuration object as a callable reference.
const FuncKey = "!!func"

// Func is a callable extension configuration value. Extension hooks take
// whatever the pipeline passes them and return the replacement value.
type Func func(args ...any) any

// Registry maps callable names to registered functions. Hosts register
// their pipeline hooks at startup; a handful of common helpers are
// pre-registered.
type Registry struct {
	funcs map[string]Func
}

func NewRegistry() *Registry {
	r := &Registry{
		funcs: make(map[string]Func),
	}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	r.funcs["toc.slugify"] = funcSlugify
	r.funcs["toc.unslugify"] = funcUnslugify
}

func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Decode walks an extension configuration value and replaces every
// {"!!func": "name"} object with the function registered under that
// name. All other structure passes through unchanged. A marker naming an
// unregistered function is an error.
func Decode(raw any, reg *Registry) (any, error) {
	switch v := raw.(type) {
	case map[string]any:
		if name, ok := v[FuncKey]; ok {
			s, ok := name.(string)
			if !ok {
				return nil, fmt.Errorf("%s value must be a string, got %T", FuncKey, name)
			}
			fn, ok := reg.Lookup(s)
			if !ok {
				return nil, fmt.Errorf("unknown extension callable: %s", s)
			}
			return fn, nil
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			decoded, err := Decode(val, reg)
			if err != nil {
				return nil, err
			}
			out[key] = decoded
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			decoded, err := Decode(val, reg)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	default:
		return raw, nil
	}
}

var slugStripPattern = regexp.MustCompile(`[^\w\s-]`)

func funcSlugify(args ...any) any {
	if len(args) == 0 {
		return ""
	}
	s := strings.ToLower(fmt.Sprint(args[0]))
	s = slugStripPattern.ReplaceAllString(s, "")
	sep := "-"
	if len(args) > 1 {
		sep = fmt.Sprint(args[1])
	}
	return strings.Join(strings.Fields(s), sep)
}

func funcUnslugify(args ...any) any {
	if len(args) == 0 {
		return ""
	}
	s := strings.ReplaceAll(fmt.Sprint(args[0]), "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.TrimSpace(s)
}
