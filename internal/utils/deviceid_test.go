package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceID_StableAndWellFormed(t *testing.T) {
	id := DeviceID()

	if id == "UNKNOWN-DEVICE" {
		t.Skip("no usable network interface on this machine")
	}
	assert.True(t, strings.HasPrefix(id, "TBG-"))
	assert.Len(t, id, len("TBG-")+8, "four hashed bytes render as eight hex chars")
	assert.Equal(t, id, DeviceID(), "same machine, same id")
}
