package lint

import (
	"context"

	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// Parser turns source text into a syntax tree.
//
// Implementations must be deterministic for a given (path, content) pair and
// must not perform I/O. The returned tree's Buffer holds content unchanged
// and every node has a valid range. On error no partial tree is returned.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error)
}
