package browse

import (
	"context"

	"github.com/heartmarshall/vocabindex/internal/domain"
)

// BuiltinNormalizer folds text in process with domain.DegradeText. Use it
// only when the corpus was normalized with the same rules.
type BuiltinNormalizer struct{}

// Degrade implements Normalizer.
func (BuiltinNormalizer) Degrade(_ context.Context, text string) (string, error) {
	return domain.DegradeText(text), nil
}
