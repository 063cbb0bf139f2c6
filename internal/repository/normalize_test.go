package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNormalizeAmbulanceState(t *testing.T) {
	cases := map[string]models.AmbulanceState{
		"available":      models.AmbulanceAvailable,
		"AVAILABLE":      models.AmbulanceAvailable,
		"Available ":     models.AmbulanceAvailable,
		"unavailable":    models.AmbulanceBusy,
		"Busy":           models.AmbulanceBusy,
		"on_route":       models.AmbulanceBusy,
		"offline":        models.AmbulanceOffline,
		"Out-Of-Service": models.AmbulanceOffline,
		"":               models.AmbulanceOffline,
		"something":      models.AmbulanceBusy,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeAmbulanceState(raw), "raw=%q", raw)
	}
}

func TestNormalizeHospitalStatus(t *testing.T) {
	for _, raw := range []string{"active", "Online", "AVAILABLE", " open "} {
		assert.Equal(t, models.HospitalOnline, NormalizeHospitalStatus(raw), raw)
	}
	for _, raw := range []string{"closed", "offline", ""} {
		assert.Equal(t, models.HospitalOffline, NormalizeHospitalStatus(raw), raw)
	}
}

func TestAmbulanceRow_OnlineDefaultsFromState(t *testing.T) {
	a := ambulanceRow{ID: uuid.New(), Status: "Available"}.toModel()
	assert.Equal(t, models.AmbulanceAvailable, a.State)
	assert.True(t, a.Online)

	off := false
	b := ambulanceRow{ID: uuid.New(), Status: "available", Online: &off}.toModel()
	assert.False(t, b.Online)

	c := ambulanceRow{ID: uuid.New(), Status: "offline"}.toModel()
	assert.False(t, c.Online)
}

func TestAmbulanceRow_AssignedMeansBusy(t *testing.T) {
	incidentID := uuid.New()
	a := ambulanceRow{ID: uuid.New(), Status: "available", AssignedIncidentID: &incidentID}.toModel()
	assert.Equal(t, models.AmbulanceBusy, a.State)
}

func TestHospitalRow_LegacyBedFields(t *testing.T) {
	h := hospitalRow{
		ID:     uuid.New(),
		Status: "Active",
		Attributes: map[string]any{
			"bedAvailability":             float64(7),
			"maxAmbulanceCapacity":        "5",
			"currentlyAssignedAmbulances": float64(2),
		},
	}.toModel()

	assert.Equal(t, models.HospitalOnline, h.Status)
	assert.Equal(t, 7, h.AvailableBeds)
	require.True(t, h.TracksAssignments())
	assert.Equal(t, 5, *h.MaxAmbulanceCapacity)
	assert.Equal(t, 2, *h.CurrentlyAssignedAmbulances)
}

func TestHospitalRow_AlternateBedName(t *testing.T) {
	h := hospitalRow{Attributes: map[string]any{"availableBeds": float64(3)}}.toModel()
	assert.Equal(t, 3, h.AvailableBeds)
	assert.False(t, h.TracksAssignments())
}

func TestHospitalRow_ColumnWinsAndNegativeClamped(t *testing.T) {
	h := hospitalRow{
		AvailableBeds: intPtr(-4),
		Attributes:    map[string]any{"bedAvailability": float64(9)},
	}.toModel()
	assert.Equal(t, 0, h.AvailableBeds)

	g := hospitalRow{AvailableBeds: intPtr(2), Attributes: map[string]any{"bedAvailability": float64(9)}}.toModel()
	assert.Equal(t, 2, g.AvailableBeds)
}

func TestNormalizeIncidentStatus(t *testing.T) {
	assert.Equal(t, models.StatusOnRoute, normalizeIncidentStatus("on_route"))
	assert.Equal(t, models.StatusDispatched, normalizeIncidentStatus("DISPATCHED"))
	assert.Equal(t, models.Status("Weird"), normalizeIncidentStatus("Weird"))
	assert.Equal(t, models.SeverityHigh, normalizeSeverity("critical"))
	assert.Equal(t, models.SeverityMedium, normalizeSeverity("??"))
}

func TestClaimable(t *testing.T) {
	incidentID := uuid.New()
	other := uuid.New()
	status := func(s models.Status) *models.Status { return &s }

	assert.True(t, claimable(nil, nil, incidentID), "free ambulance")
	assert.True(t, claimable(&incidentID, status(models.StatusOnRoute), incidentID), "same incident")
	assert.True(t, claimable(&other, nil, incidentID), "owner record missing")
	assert.True(t, claimable(&other, status(models.StatusCompleted), incidentID), "owner completed")
	assert.True(t, claimable(&other, status(models.StatusAdmitted), incidentID), "owner admitted")
	assert.False(t, claimable(&other, status(models.StatusDispatched), incidentID), "owner active")
	assert.False(t, claimable(&other, status(models.StatusRejected), incidentID), "owner rejected")
}
