package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

func TestCanTransitionMaintenance(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.MaintenanceSent, entity.MaintenanceInRepair, true},
		{entity.MaintenanceSent, entity.MaintenanceCompleted, true},
		{entity.MaintenanceSent, entity.MaintenanceSent, true},
		{entity.MaintenanceInRepair, entity.MaintenanceNotRepaired, true},
		{entity.MaintenanceInRepair, entity.MaintenanceInRepair, true},
		{entity.MaintenanceInRepair, entity.MaintenanceSent, false},
		{entity.MaintenanceCompleted, entity.MaintenanceInRepair, false},
		{entity.MaintenanceCompleted, entity.MaintenanceCompleted, false},
		{entity.MaintenanceNotRepaired, entity.MaintenanceCompleted, false},
		{entity.MaintenanceSent, "Perdido", false},
		{"", entity.MaintenanceSent, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, entity.CanTransitionMaintenance(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsOpeningStatus(t *testing.T) {
	assert.True(t, entity.IsOpeningStatus(entity.MaintenanceSent))
	assert.True(t, entity.IsOpeningStatus(entity.MaintenanceInRepair))
	assert.False(t, entity.IsOpeningStatus(entity.MaintenanceCompleted))
}

func TestAssetClone_NoCompartepunteros(t *testing.T) {
	sector := int64(3)
	ref := "/uploads/a.pdf"
	a := &entity.Asset{ID: 1, SectorID: &sector, InvoiceRef: &ref}
	c := a.Clone()
	*c.SectorID = 9
	*c.InvoiceRef = "/uploads/b.pdf"
	assert.Equal(t, int64(3), *a.SectorID)
	assert.Equal(t, "/uploads/a.pdf", *a.InvoiceRef)
	assert.Nil(t, (*entity.Asset)(nil).Clone())
}
