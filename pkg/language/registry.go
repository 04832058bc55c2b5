package language

import (
	"errors"
	"fmt"
)

// ErrUnknownLanguage is returned when no language matches a file.
var ErrUnknownLanguage = errors.New("unknown language")

// Registry is an ordered, read-only language table. Order decides suffix
// resolution: the first language claiming an extension wins.
type Registry struct {
	langs   []*Language
	sniffer MimeSniffer
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSniffer enables MIME-based resolution when no extension matches.
func WithSniffer(s MimeSniffer) RegistryOption {
	return func(r *Registry) {
		r.sniffer = s
	}
}

// NewRegistry creates a registry over langs in the given order.
func NewRegistry(langs []*Language, opts ...RegistryOption) *Registry {
	r := &Registry{langs: langs}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultRegistry creates a registry over the built-in table, preceded by
// any extra languages.
func DefaultRegistry(extra []*Language, opts ...RegistryOption) (*Registry, error) {
	builtin, err := NewLoader().LoadBuiltinLanguages()
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in languages: %w", err)
	}
	langs := make([]*Language, 0, len(extra)+len(builtin))
	langs = append(langs, extra...)
	langs = append(langs, builtin...)
	return NewRegistry(langs, opts...), nil
}

// Languages returns the table in registry order.
func (r *Registry) Languages() []*Language {
	return r.langs
}

// ByName finds a language by name or alias.
func (r *Registry) ByName(name string) (*Language, error) {
	for _, l := range r.langs {
		if l.MatchesName(name) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
}

// Fallback returns the plain-text language, or nil if none is registered.
func (r *Registry) Fallback() *Language {
	for _, l := range r.langs {
		if l.Fallback {
			return l
		}
	}
	return nil
}

// Resolve picks the language for a file: by extension, then by sniffed
// MIME types when a sniffer is configured, most specific first, then the
// fallback.
func (r *Registry) Resolve(name string, content []byte) (*Language, error) {
	for _, l := range r.langs {
		if l.MatchesFilename(name) {
			return l, nil
		}
	}

	if r.sniffer != nil {
		for _, mime := range r.sniffer.Sniff(name, content) {
			for _, l := range r.langs {
				if l.MatchesMime(mime) {
					return l, nil
				}
			}
		}
	}

	if fb := r.Fallback(); fb != nil {
		return fb, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
}
