// Package http provides http transport for the ingest pipeline
package http

import (
	stdhttp "net/http"
	"time"

	"github.com/google/uuid"

	"vitalog/internal/core/schema"
	"vitalog/internal/modkit/httpkit"
	perr "vitalog/internal/platform/errors"
	"vitalog/internal/services/ingest/domain"
	svc "vitalog/internal/services/ingest/service"
)

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ProcessRequest](r, "/process", h.process)
	httpkit.PostJSON[domain.ConfirmRequest](r, "/confirm", h.confirm)
	httpkit.PostJSON[domain.ItemsRequest](r, "/items", h.items)
}

type handlers struct{ svc svc.Service }

// @Summary Classify one free-text input into a structured health event
// @Tags Ingest
// @Accept json
// @Produce json
// @Param payload body domain.ProcessRequest true "Input"
// @Success 200 {object} domain.ProcessingResult "ok"
// @Router /ingest/process [post]
func (h *handlers) process(r *stdhttp.Request, in domain.ProcessRequest) (any, error) {
	uid, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("user_id must be a uuid"), "user_id")
	}
	res, err := h.svc.ProcessInput(r.Context(), domain.ProcessArgs{
		UserID:        uid,
		Text:          in.Text,
		CaptureMethod: in.CaptureMethod,
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// @Summary Resolve a pending clarification with the user's choice
// @Tags Ingest
// @Accept json
// @Produce json
// @Param payload body domain.ConfirmRequest true "Choice"
// @Success 200 {object} domain.VoiceEvent "ok"
// @Router /ingest/confirm [post]
func (h *handlers) confirm(r *stdhttp.Request, in domain.ConfirmRequest) (any, error) {
	uid, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("user_id must be a uuid"), "user_id")
	}
	aid, err := uuid.Parse(in.AuditID)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("audit_id must be a uuid"), "audit_id")
	}

	args := domain.ConfirmArgs{
		UserID:        uid,
		AuditID:       aid,
		EventType:     schema.EventType(in.EventType),
		Fields:        in.Fields,
		Option:        in.Option,
		CaptureMethod: in.CaptureMethod,
	}
	if in.EventTime != "" {
		t, err := time.Parse(time.RFC3339, in.EventTime)
		if err != nil {
			return nil, perr.WithField(perr.InvalidArgf("event_time must be RFC3339"), "event_time")
		}
		args.EventTime = t
	}
	return h.svc.ResolveConfirmation(r.Context(), args)
}

// @Summary Classify several detected items in one call
// @Tags Ingest
// @Accept json
// @Produce json
// @Param payload body domain.ItemsRequest true "Items"
// @Success 200 {array} domain.ProcessingResult "ok"
// @Router /ingest/items [post]
func (h *handlers) items(r *stdhttp.Request, in domain.ItemsRequest) (any, error) {
	uid, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("user_id must be a uuid"), "user_id")
	}
	items := make([]domain.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.ItemInput{Text: it.Text, Quantity: it.Quantity})
	}
	return h.svc.ProcessItems(r.Context(), domain.ItemsArgs{
		UserID:        uid,
		Items:         items,
		CaptureMethod: in.CaptureMethod,
	})
}
