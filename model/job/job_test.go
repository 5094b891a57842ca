package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_IsTerminal(t *testing.T) {
	testCases := []struct {
		state    State
		expected bool
	}{
		{StateSubmitted, false},
		{StateRunning, false},
		{StateDone, true},
		{StateFailed, true},
		{StateCanceled, true},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, testCase.state.IsTerminal(), string(testCase.state))
	}
}
