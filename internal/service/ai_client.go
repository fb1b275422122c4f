package service

import (
	"context"

	"procurehub/internal/infra"
)

// AIClient is the outbound AI surface the oracle services depend on.
// Satisfied by *infra.OpenAIClient; tests substitute a fake.
type AIClient interface {
	RespondWithFile(ctx context.Context, filename string, data []byte, instruction string, format *infra.JSONSchemaFormat) (string, error)
	RespondText(ctx context.Context, instructions, input string) (string, error)
}
