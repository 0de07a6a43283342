package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPublic_RoundsCoordinates(t *testing.T) {
	incident := &Incident{
		ID:        uuid.New(),
		Type:      TypeTheft,
		Latitude:  41.00824567,
		Longitude: 28.97841234,
	}

	public := incident.ToPublic()

	assert.Equal(t, 41.008, public.Latitude)
	assert.Equal(t, 28.978, public.Longitude)
}

func TestToPublic_MasksAnonymousDescription(t *testing.T) {
	incident := &Incident{
		Type:        TypeHarassment,
		Description: "Детали, известные только репортеру",
		Anonymous:   true,
	}

	public := incident.ToPublic()

	assert.Equal(t, "Anonymous report", public.Description)
}

func TestToPublic_KeepsDescriptionForNamedReports(t *testing.T) {
	incident := &Incident{
		Type:        TypeAccident,
		Description: "Столкновение двух автомобилей на перекрестке",
		Anonymous:   false,
		ReporterRef: "user-42",
	}

	public := incident.ToPublic()

	assert.Equal(t, incident.Description, public.Description)
}

func TestIncidentJSON_NeverExposesReporterRef(t *testing.T) {
	incident := &Incident{
		ID:          uuid.New(),
		Type:        TypeTheft,
		ReporterRef: "device-fingerprint-123",
		VerifiedBy:  "moderator-7",
		CreatedAt:   time.Now(),
	}

	raw, err := json.Marshal(incident)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "device-fingerprint-123")
	assert.NotContains(t, string(raw), "moderator-7")
}

func TestRoundCoord(t *testing.T) {
	assert.Equal(t, 41.008, RoundCoord(41.0084999))
	assert.Equal(t, -33.868, RoundCoord(-33.8675))
	assert.Equal(t, 0.0, RoundCoord(0.0001))
}

func TestTimeOfDayFor(t *testing.T) {
	assert.Equal(t, TimeNight, TimeOfDayFor(0))
	assert.Equal(t, TimeNight, TimeOfDayFor(5))
	assert.Equal(t, TimeMorning, TimeOfDayFor(6))
	assert.Equal(t, TimeAfternoon, TimeOfDayFor(12))
	assert.Equal(t, TimeEvening, TimeOfDayFor(18))
	assert.Equal(t, TimeEvening, TimeOfDayFor(23))
}
