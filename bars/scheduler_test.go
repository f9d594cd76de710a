package bars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochToISOFormatsUTC(t *testing.T) {
	got := epochToISO(1704067140)
	assert.Equal(t, "2023-12-31T23:59:00Z", got)
}
