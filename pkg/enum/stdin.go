package enum

import (
	"context"
	"fmt"
	"io"

	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// StdinEnumerator yields standard input as a single file. The stream is
// read once and cannot be rewound, so it is never sniffed for binary
// content.
type StdinEnumerator struct {
	r io.Reader
}

// NewStdinEnumerator creates an enumerator over r.
func NewStdinEnumerator(r io.Reader) *StdinEnumerator {
	return &StdinEnumerator{r: r}
}

// Enumerate reads the whole stream and yields it.
func (e *StdinEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := io.ReadAll(e.r)
	if err != nil {
		return fmt.Errorf("failed to read standard input: %w", err)
	}
	return callback(content, types.StdinProvenance{})
}
