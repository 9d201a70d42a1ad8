package failure

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfFollowsWrapping(t *testing.T) {
	base := errors.New("connection refused")
	err := fmt.Errorf("checking launches: %w", New(Transport, "fetching launches", base))

	assert.Equal(t, Transport, KindOf(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, Unknown, KindOf(base))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err    error
		prefix string
	}{
		{New(Transport, "fetching launches", errors.New("timeout")), "Network error occurred while checking Starlink visibility: "},
		{Newf(PageStructure, "missing #goodTimings"), "An unexpected error occurred: "},
		{New(PageLoad, "loading https://findstarlink.com/", errors.New("net::ERR_CONNECTION_REFUSED")), "An unexpected error occurred: "},
		{New(Parse, "parsing date", errors.New("bad")), "An unexpected error occurred: "},
		{errors.New("boom"), "An unexpected error occurred: "},
	}
	for _, tt := range tests {
		assert.True(t, strings.HasPrefix(Message(tt.err), tt.prefix), Message(tt.err))
		assert.Contains(t, Message(tt.err), tt.err.Error())
	}
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "missing #avgTimings", Newf(PageStructure, "missing #%s", "avgTimings").Error())
	assert.Equal(t, "parsing date: bad", New(Parse, "parsing date", errors.New("bad")).Error())
	assert.Equal(t, "page_structure", PageStructure.String())
	assert.Equal(t, "page_load", PageLoad.String())
}
