package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	assert.NoError(t, validateDisplayDate("01.03.2024"))
	assert.Error(t, validateDisplayDate("2024-03-01"))
	assert.Error(t, validateDisplayDate(""))

	assert.NoError(t, validateClock("07:45"))
	assert.Error(t, validateClock("7.45"))
	assert.Error(t, validateClock("25:00"))

	assert.NoError(t, validateNonNegativeFloat(""))
	assert.NoError(t, validateNonNegativeFloat("12,5"))
	assert.NoError(t, validateNonNegativeFloat("0"))
	assert.Error(t, validateNonNegativeFloat("-1"))
	assert.Error(t, validateNonNegativeFloat("ten"))
	assert.Error(t, validateNonNegativeFloat("inf"))
	assert.Error(t, validateNonNegativeFloat("NaN"))
}

func TestEntryInput_ToEntry(t *testing.T) {
	cet := time.FixedZone("CET", 60*60)

	in := entryInput{Day: "01.03.2024", Start: "07:30", End: "16:00", Km: "8.25", Note: "  office  "}
	e, err := in.toEntry("alex", cet)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), e.Date)
	assert.Equal(t, time.Date(2024, time.March, 1, 6, 30, 0, 0, time.UTC), e.StartTime.UTC())
	assert.Equal(t, 8*time.Hour+30*time.Minute, e.Duration())
	assert.Equal(t, 8.25, e.DistanceKm)
	assert.Equal(t, "alex", e.CreatedBy)
	assert.Equal(t, "office", e.Note)
}

func TestEntryInput_ToEntry_OvernightShift(t *testing.T) {
	in := entryInput{Day: "31.03.2024", Start: "20:00", End: "02:00"}
	e, err := in.toEntry("alex", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 6*time.Hour, e.Duration())
	assert.Equal(t, time.April, e.EndTime.Month())
	assert.Equal(t, 31, e.Date.Day())
}

func TestEntryInput_ToEntry_Invalid(t *testing.T) {
	cases := []entryInput{
		{Day: "1.3.24", Start: "08:00", End: "09:00"},
		{Day: "01.03.2024", Start: "", End: "09:00"},
		{Day: "01.03.2024", Start: "08:00", End: "09:00", Km: "lots"},
		{Day: "01.03.2024", Start: "08:00", End: "09:00", Km: "+Inf"},
	}
	for _, in := range cases {
		_, err := in.toEntry("alex", time.UTC)
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", in)
	}
}
