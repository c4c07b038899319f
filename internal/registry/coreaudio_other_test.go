//go:build !darwin || !cgo

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/777genius/switch-audio/internal/config"
	"github.com/777genius/switch-audio/internal/device"
)

func TestCoreAudioUnavailable(t *testing.T) {
	_, err := Open(config.BackendCoreAudio)
	require.Error(t, err)
	assert.True(t, device.IsRegistryError(err))
	assert.ErrorIs(t, err, errNoCoreAudio)
}
