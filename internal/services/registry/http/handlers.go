// Package http provides http transport for the product registry
package http

import (
	stdhttp "net/http"

	"github.com/google/uuid"

	"vitalog/internal/modkit/httpkit"
	perr "vitalog/internal/platform/errors"
	"vitalog/internal/services/registry/domain"
	svc "vitalog/internal/services/registry/service"
)

// Register mounts registry endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.FrequentInput](r, "/frequent", h.frequent)
}

type handlers struct{ svc svc.Service }

// @Summary Most frequently logged products for a user
// @Tags Registry
// @Accept json
// @Produce json
// @Param payload body domain.FrequentInput true "Query"
// @Success 200 {array} domain.FrequentItem "ok"
// @Router /registry/frequent [post]
func (h *handlers) frequent(r *stdhttp.Request, in domain.FrequentInput) (any, error) {
	uid, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("user_id must be a uuid"), "user_id")
	}
	return h.svc.FrequentItems(r.Context(), uid, in.Limit)
}
