package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuseats/storefront/internal/core/domain"
)

func TestDeliverySetField_MergesFields(t *testing.T) {
	h := NewDeliveryHolder()

	require.NoError(t, h.SetField(DeliveryFieldPostalCode, "91400"))
	require.NoError(t, h.SetField(DeliveryFieldBuilding, "620"))

	info := h.Snapshot()
	assert.Equal(t, "91400", info.PostalCode)
	assert.Equal(t, "620", info.Building)
	assert.Empty(t, info.Room)

	// Setting one field leaves the others alone.
	require.NoError(t, h.SetField(DeliveryFieldRoom, "TD12"))
	assert.Equal(t, domain.DeliveryInfo{PostalCode: "91400", Building: "620", Room: "TD12"}, h.Snapshot())
}

func TestDeliverySetField_RejectsUnknownField(t *testing.T) {
	h := NewDeliveryHolder()

	err := h.SetField("city", "Orsay")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDeliveryField)
	assert.Equal(t, domain.DeliveryInfo{}, h.Snapshot())
}

func TestDeliverySet_ReplacesEverything(t *testing.T) {
	h := NewDeliveryHolder()
	require.NoError(t, h.SetField(DeliveryFieldPostalCode, "91400"))

	h.Set(domain.DeliveryInfo{Building: "337"})
	assert.Equal(t, domain.DeliveryInfo{Building: "337"}, h.Snapshot())
}
