package twitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromTime_EpochAnchors(t *testing.T) {
	t.Parallel()

	// The Snowflake epoch itself maps to ID zero.
	assert.Equal(t, int64(0), IDFromTime(1288834974.657))

	// The Unix epoch predates the Snowflake epoch, so its ID is negative.
	assert.Equal(t, int64(-1288834974657)<<22, IDFromTime(0))
}

func TestTimeFromID_EpochAnchor(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1288834974.657, TimeFromID(0), 1e-9)
}

func TestRoundTrip_MillisecondGrid(t *testing.T) {
	t.Parallel()

	// IDs whose low 22 bits are zero sit on the millisecond grid and
	// round-trip exactly.
	for _, ms := range []int64{0, 1, 999, 123456789, 131235425343} {
		id := ms << 22
		assert.Equal(t, id, IDFromTime(TimeFromID(id)), "ms offset %d", ms)
	}
}

func TestRoundTrip_TimestampToMillisecond(t *testing.T) {
	t.Parallel()

	// Arbitrary timestamps are recovered to millisecond precision.
	for _, ts := range []float64{1325376000, 1388534400.123, 1395000000.5, 1420070400.999} {
		assert.InDelta(t, ts, TimeFromID(IDFromTime(ts)), 0.001, "ts %f", ts)
	}
}

func TestIDFromTime_Monotonic(t *testing.T) {
	t.Parallel()

	// Later moments always encode to larger IDs.
	assert.Less(t, IDFromTime(1388534400), IDFromTime(1388534400.001))
	assert.Less(t, IDFromTime(0), IDFromTime(1288834974.657))
}
