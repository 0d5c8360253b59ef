package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	perr "vitalog/internal/platform/errors"

	dom "vitalog/internal/services/ingest/domain"
)

// ProcessItems runs the pipeline once per detected item, the photo
// multi-item flow. Items are independent, one item's failure becomes its own
// failed result and the rest still process
func (s *Svc) ProcessItems(ctx context.Context, args dom.ItemsArgs) ([]dom.ProcessingResult, error) {
	if args.UserID == uuid.Nil {
		return nil, perr.InvalidArgf("user id is required")
	}
	if len(args.Items) == 0 {
		return nil, perr.InvalidArgf("at least one item is required")
	}

	out := make([]dom.ProcessingResult, 0, len(args.Items))
	for _, item := range args.Items {
		text := strings.TrimSpace(item.Text)
		if item.Quantity != "" {
			text = item.Quantity + " " + text
		}
		res, err := s.ProcessInput(ctx, dom.ProcessArgs{
			UserID:        args.UserID,
			Text:          text,
			CaptureMethod: args.CaptureMethod,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("item", item.Text).Msg("item processing failed")
		}
		out = append(out, res)
	}
	return out, nil
}
