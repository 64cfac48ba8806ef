package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(9*60+30), parsed)
	assert.Equal(t, "09:30", parsed.String())

	midnight, err := ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(0), midnight)

	_, err = ParseTimeOfDay("9:30am")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestTimeOfDayHoursUntil(t *testing.T) {
	start, err := ParseTimeOfDay("09:00")
	require.NoError(t, err)
	end, err := ParseTimeOfDay("17:30")
	require.NoError(t, err)

	assert.InDelta(t, 8.5, start.HoursUntil(end), 1e-9)
	assert.InDelta(t, -8.5, end.HoursUntil(start), 1e-9)
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	original, err := ParseTimeOfDay("14:45")
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"14:45"`, string(data))

	var decoded TimeOfDay
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"later"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`930`), &decoded))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", d.String())

	_, err = ParseDate("03/05/2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-02-30")
	assert.Error(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	original := NewDate(2026, time.March, 5)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-05"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(original.Time))
}

func TestDateScanNormalizesToUTCMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	var d Date
	require.NoError(t, d.Scan(time.Date(2026, time.March, 5, 18, 30, 0, 0, loc)))
	assert.Equal(t, "2026-03-05", d.String())
	assert.Equal(t, time.UTC, d.Location())
}

func TestShiftOverlaps(t *testing.T) {
	base := &Shift{StartTime: 9 * 60, EndTime: 17 * 60}

	assert.False(t, base.Overlaps(&Shift{StartTime: 17 * 60, EndTime: 21 * 60}))
	assert.False(t, base.Overlaps(&Shift{StartTime: 6 * 60, EndTime: 9 * 60}))
	assert.True(t, base.Overlaps(&Shift{StartTime: 16*60 + 59, EndTime: 18 * 60}))
	assert.True(t, base.Overlaps(&Shift{StartTime: 10 * 60, EndTime: 12 * 60}))
	assert.True(t, base.Overlaps(&Shift{StartTime: 8 * 60, EndTime: 18 * 60}))
}

func TestRequestLifecyclePredicates(t *testing.T) {
	pending := &TimeOffRequest{Status: RequestStatusPending}
	approved := &TimeOffRequest{Status: RequestStatusApproved}
	denied := &TimeOffRequest{Status: RequestStatusDenied}

	assert.True(t, pending.CanBeReviewed())
	assert.False(t, approved.CanBeReviewed())
	assert.False(t, denied.CanBeReviewed())

	assert.True(t, pending.BlocksNewRequests())
	assert.True(t, approved.BlocksNewRequests())
	assert.False(t, denied.BlocksNewRequests())
}

func TestValidPayrollStatus(t *testing.T) {
	assert.True(t, ValidPayrollStatus(PayrollStatusDraft))
	assert.True(t, ValidPayrollStatus(PayrollStatusApproved))
	assert.True(t, ValidPayrollStatus(PayrollStatusPaid))
	assert.False(t, ValidPayrollStatus("archived"))
}
