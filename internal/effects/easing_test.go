package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseOutQuadEndpoints(t *testing.T) {
	assert.InDelta(t, 0, easeOutQuad(0), 1e-9)
	assert.InDelta(t, 1, easeOutQuad(1), 1e-9)
	assert.InDelta(t, 0.75, easeOutQuad(0.5), 1e-9)
}

func TestEaseInOutQuadEndpoints(t *testing.T) {
	assert.InDelta(t, 0, easeInOutQuad(0), 1e-9)
	assert.InDelta(t, 1, easeInOutQuad(1), 1e-9)
	assert.InDelta(t, 0.5, easeInOutQuad(0.5), 1e-9)
}

func TestEaseOutCubicEndpoints(t *testing.T) {
	assert.InDelta(t, 0, easeOutCubic(0), 1e-9)
	assert.InDelta(t, 1, easeOutCubic(1), 1e-9)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-1))
	assert.Equal(t, 1.0, clamp01(2))
	assert.Equal(t, 0.3, clamp01(0.3))
}
