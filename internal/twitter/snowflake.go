package twitter

import "math"

// epochOffsetMS is the start of the Snowflake epoch in milliseconds
// since the Unix epoch (2010-11-04T01:42:54.657Z).
const epochOffsetMS = 1288834974657

// IDFromTime converts a POSIX timestamp to the smallest Snowflake ID a
// tweet created at that moment could carry. IDs before the Snowflake
// epoch are negative.
func IDFromTime(ts float64) int64 {
	return (int64(math.Round(ts*1000)) - epochOffsetMS) << 22
}

// TimeFromID recovers the creation timestamp encoded in a Snowflake ID.
// The round trip through IDFromTime is exact at millisecond granularity
// and lossy below it, matching the provider's own resolution.
func TimeFromID(id int64) float64 {
	return float64((id>>22)+epochOffsetMS) / 1000.0
}
