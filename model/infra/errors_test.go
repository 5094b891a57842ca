package infra

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfrastructureError(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := fmt.Errorf("build failed: %w", NewNetworkError("infra-7", "failed to read proxy", cause))

	assert.True(t, errors.Is(err, ErrNetwork))
	assert.False(t, errors.Is(err, ErrConfiguration))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, CategoryNetwork, CategoryOf(err))
	assert.Equal(t, "build failed: infrastructure infra-7: failed to read proxy: unexpected EOF", err.Error())

	unsupported := NewUnsupportedError("", "not supported yet")
	assert.Equal(t, "not supported yet", unsupported.Error())
	WithInfrastructure(unsupported, "infra-8")
	assert.Equal(t, "infra-8", unsupported.InfrastructureID)
	assert.Equal(t, Category(""), CategoryOf(io.EOF))
}
