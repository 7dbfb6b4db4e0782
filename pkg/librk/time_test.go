package librk_test

import (
	"testing"
	"time"

	"github.com/mdouchement/resourcekit/pkg/librk"
	"github.com/stretchr/testify/assert"
)

func TestUnixMillisecond(t *testing.T) {
	at := time.Date(2020, time.February, 3, 10, 4, 5, 678900000, time.UTC)
	assert.Equal(t, int64(1580724245678), librk.UnixMillisecond(at))
}

func TestFromUnixMillisecond(t *testing.T) {
	now := time.Now()
	mnow := librk.UnixMillisecond(now)

	assert.True(t, librk.FromUnixMillisecond(mnow).Equal(now.Truncate(time.Millisecond)))
}
