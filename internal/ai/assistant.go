package ai

import (
	"context"

	"github.com/scribesearch/talent-scout/internal/interpret"
	"github.com/scribesearch/talent-scout/internal/vocabulary"
)

// Interpreter extracts a structured filter delta from a query the
// deterministic interpreter found nothing in.
type Interpreter interface {
	Interpret(ctx context.Context, query string, set *vocabulary.Set) (*interpret.Delta, error)
}
