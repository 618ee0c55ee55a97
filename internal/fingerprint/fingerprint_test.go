package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceIsDeterministic(t *testing.T) {
	assert.Equal(t, Source("print 1;"), Source("print 1;"))
}

func TestSourceDiffersForDifferentInput(t *testing.T) {
	assert.NotEqual(t, Source("print 1;"), Source("print 2;"))
}

func TestSourceLength(t *testing.T) {
	assert.Len(t, Source(""), 16)
}
