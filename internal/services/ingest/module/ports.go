package module

import "vitalog/internal/services/ingest/domain"

// Ports exposes the ingest surfaces other modules may depend on
type Ports struct {
	Process domain.ProcessPort
	Confirm domain.ConfirmPort
	Items   domain.ItemsPort
}
