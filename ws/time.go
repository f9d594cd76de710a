package ws

import (
	"time"

	"github.com/go-cryptoconnect/coinbasepro/log"
)

// parseISOToEpochNs parses an exchange ISO-8601 timestamp
// (YYYY-MM-DDTHH:MM:SS[.fff]Z) into nanoseconds since epoch. A parse
// failure logs and returns 0 rather than dropping the frame outright —
// the rest of the event is still usable.
func parseISOToEpochNs(iso string) uint64 {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		log.Logger().Error().Err(err).Str("time", iso).Msg("ws: could not parse frame timestamp")
		return 0
	}
	return uint64(t.UnixNano())
}
