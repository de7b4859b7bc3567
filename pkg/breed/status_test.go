package breed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Terminal(t *testing.T) {
	terminal := []Status{StatusSucceeded, StatusFailed, StatusSuperseded}
	for _, s := range terminal {
		assert.True(t, s.Terminal(), s.String())
	}

	live := []Status{
		StatusIdle,
		StatusResolvingAddresses,
		StatusBuildingInstructions,
		StatusAwaitingSignature,
		StatusSubmitting,
		StatusConfirming,
	}
	for _, s := range live {
		assert.False(t, s.Terminal(), s.String())
	}
}

func TestStatus_DisplayText(t *testing.T) {
	assert.Empty(t, StatusIdle.DisplayText())
	assert.Empty(t, StatusSuperseded.DisplayText())
	assert.Equal(t, "Success!", StatusSucceeded.DisplayText())
	assert.NotEmpty(t, StatusFailed.DisplayText())
}
