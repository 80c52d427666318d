package translit

import (
	"context"

	"scriptbridge/internal/domain"
)

// Converter renders romanized text into its native script.
type Converter interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error)
}
