package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/campuseats/storefront/internal/core/domain"
)

var ErrUnknownDeliveryField = errors.New("unknown delivery field")

// Delivery field names as the screens send them.
const (
	DeliveryFieldPostalCode = "postalCode"
	DeliveryFieldBuilding   = "building"
	DeliveryFieldRoom       = "room"
)

// DeliveryHolder keeps the address fields the user has typed so far. They
// are free-form and unvalidated; the holder only rejects field names outside
// the known set. The current value is attached to an order at placement.
type DeliveryHolder struct {
	mu   sync.Mutex
	info domain.DeliveryInfo
}

func NewDeliveryHolder() *DeliveryHolder {
	return &DeliveryHolder{}
}

// SetField merges one field into the current delivery info.
func (h *DeliveryHolder) SetField(field, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch field {
	case DeliveryFieldPostalCode:
		h.info.PostalCode = value
	case DeliveryFieldBuilding:
		h.info.Building = value
	case DeliveryFieldRoom:
		h.info.Room = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDeliveryField, field)
	}
	return nil
}

// Set replaces the whole delivery info.
func (h *DeliveryHolder) Set(info domain.DeliveryInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.info = info
}

func (h *DeliveryHolder) Snapshot() domain.DeliveryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.info
}
