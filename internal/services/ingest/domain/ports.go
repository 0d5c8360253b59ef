package domain

import "context"

// ProcessPort is the pipeline's public entry point
type ProcessPort interface {
	ProcessInput(ctx context.Context, args ProcessArgs) (ProcessingResult, error)
}

// ConfirmPort finalizes attempts that returned complete == false
type ConfirmPort interface {
	ResolveConfirmation(ctx context.Context, args ConfirmArgs) (VoiceEvent, error)
}

// ItemsPort runs the pipeline once per detected item
type ItemsPort interface {
	ProcessItems(ctx context.Context, args ItemsArgs) ([]ProcessingResult, error)
}
