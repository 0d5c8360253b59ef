package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitalog/internal/core/schema"
)

// decision analytics land in ClickHouse for offline tuning of the policy
// thresholds. The sink is best-effort and optional, a nil CH seam disables it
const decisionsTable = "ingest_decisions"

var decisionCols = []string{
	"ts", "user_id", "audit_id", "event_type", "source",
	"confidence", "searched", "option_count", "complete",
}

func (s *Svc) recordDecision(
	ctx context.Context,
	userID, auditID uuid.UUID,
	eventType schema.EventType,
	sourceTag string,
	confidence int,
	searched bool,
	optionCount int,
	complete bool,
) {
	if s.ch == nil {
		return
	}
	row := []any{
		time.Now().UTC(), userID.String(), auditID.String(), string(eventType), sourceTag,
		int32(confidence), boolU8(searched), int32(optionCount), boolU8(complete),
	}
	s.bestEffort(ctx, "decision analytics", func(c context.Context) error {
		return s.ch.Insert(c, decisionsTable, decisionCols, [][]any{row})
	})
}

func boolU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
