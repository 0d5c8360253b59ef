package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitalog/internal/core/schema"
	"vitalog/internal/modkit/repokit"
	perr "vitalog/internal/platform/errors"

	catdom "vitalog/internal/services/catalog/domain"
	dom "vitalog/internal/services/ingest/domain"
)

// ResolveConfirmation finalizes an attempt that was parked awaiting the
// user. The user either picked one of the returned product options or
// supplied the fields directly, both paths must yield a complete event
func (s *Svc) ResolveConfirmation(ctx context.Context, args dom.ConfirmArgs) (dom.VoiceEvent, error) {
	if args.UserID == uuid.Nil {
		return dom.VoiceEvent{}, perr.InvalidArgf("user id is required")
	}
	if args.AuditID == uuid.Nil {
		return dom.VoiceEvent{}, perr.InvalidArgf("audit id is required")
	}

	rec, err := s.repo.GetAudit(ctx, args.UserID, args.AuditID)
	if err != nil {
		return dom.VoiceEvent{}, err
	}
	if rec.Status != dom.AuditAwaiting {
		return dom.VoiceEvent{}, perr.Newf(perr.ErrorCodeConflict,
			"audit record %s is %s, not awaiting clarification", rec.ID, rec.Status)
	}

	eventType := rec.EventType
	if args.EventType != "" {
		eventType = args.EventType
	}
	if !schema.Known(eventType) {
		return dom.VoiceEvent{}, perr.InvalidArgf("unknown event type %q", eventType)
	}

	eventData := make(map[string]any, len(args.Fields)+2)
	for k, v := range args.Fields {
		eventData[k] = v
	}
	if args.Option != nil {
		applyOption(eventType, eventData, args.Option)
	}

	if missing := schema.Missing(eventType, eventData); len(missing) > 0 {
		err := perr.Validationf("event is still missing required fields: %v", missing)
		return dom.VoiceEvent{}, perr.WithField(err, missing[0])
	}

	// the confirmation payload's event time is optional
	eventTime := args.EventTime
	if eventTime.IsZero() {
		eventTime = time.Now().UTC()
	}

	ev := dom.VoiceEvent{
		UserID:         args.UserID,
		EventType:      eventType,
		EventData:      eventData,
		EventTime:      eventTime,
		SourceRecordID: rec.ID,
		CaptureMethod:  args.CaptureMethod,
	}
	rec.Status = dom.AuditAwaitingResolved
	rec.EventType = eventType

	// the event write and the audit state flip commit together
	if err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		id, err := r.InsertEvent(ctx, ev)
		if err != nil {
			return err
		}
		ev.ID = id
		return r.UpdateAudit(ctx, rec)
	}); err != nil {
		return dom.VoiceEvent{}, err
	}

	s.bumpRegistry(ctx, args.UserID, eventType, eventData, args.Option)

	// metadata round-trips through jsonb so numbers come back as float64
	confidence := 0
	if v, ok := rec.Metadata["confidence"].(float64); ok {
		confidence = int(v)
	}
	s.recordDecision(ctx, args.UserID, rec.ID, eventType, "confirmation", confidence, false, 0, true)

	return ev, nil
}

// applyOption folds a picked catalog result into the event data without
// clobbering fields the user typed themselves
func applyOption(t schema.EventType, data map[string]any, opt *catdom.Result) {
	name := opt.Name
	if t == schema.EventFood {
		if _, ok := data["description"]; !ok {
			data["description"] = name
		}
		if opt.ServingSize != "" {
			if _, ok := data["serving_size"]; !ok {
				data["serving_size"] = opt.ServingSize
			}
		}
		return
	}
	if _, ok := data["name"]; !ok {
		data["name"] = name
	}
	if _, ok := data["dosage"]; !ok {
		data["dosage"] = "1 serving"
		data["units"] = "serving"
	}
}
