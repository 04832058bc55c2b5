package enum

import (
	"context"

	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// CombinedEnumerator runs multiple enumerators sequentially. A path that
// was already delivered is not delivered again, so a file named twice on
// the command line is searched once.
type CombinedEnumerator struct {
	enumerators []Enumerator
}

// NewCombinedEnumerator creates a CombinedEnumerator that runs the provided
// enumerators in order.
func NewCombinedEnumerator(enumerators ...Enumerator) *CombinedEnumerator {
	return &CombinedEnumerator{enumerators: enumerators}
}

// Enumerate runs each child enumerator in sequence.
func (c *CombinedEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	seen := make(map[string]bool)

	for _, e := range c.enumerators {
		err := e.Enumerate(ctx, func(content []byte, prov types.Provenance) error {
			key := prov.Kind() + "\x00" + prov.Path()
			if seen[key] {
				return nil
			}
			seen[key] = true
			return callback(content, prov)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// StdinArg is the path argument that stands for standard input.
const StdinArg = "-"

// ForPaths builds the enumerator for command-line path arguments. No paths
// means standard input; "-" reads standard input at its position among the
// other paths.
func ForPaths(config Config, stdin func() Enumerator) (Enumerator, error) {
	if len(config.Paths) == 0 {
		return stdin(), nil
	}

	var parts []Enumerator
	var pending []string
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		c := config
		c.Paths = pending
		fs, err := NewFilesystemEnumerator(c)
		if err != nil {
			return err
		}
		parts = append(parts, fs)
		pending = nil
		return nil
	}

	for _, p := range config.Paths {
		if p != StdinArg {
			pending = append(pending, p)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		parts = append(parts, stdin())
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return NewCombinedEnumerator(parts...), nil
}
