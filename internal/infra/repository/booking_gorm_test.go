package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageCovers(t *testing.T) {
	assert.True(t, packageCovers("all", 5))
	assert.True(t, packageCovers("", 5))

	assert.True(t, packageCovers("5", 5))
	assert.True(t, packageCovers("1,5,9", 5))
	assert.True(t, packageCovers("1,5,9", 9))

	assert.False(t, packageCovers("1,5,9", 2))
	// "15" must not match service 5 or 1
	assert.False(t, packageCovers("15", 5))
	assert.False(t, packageCovers("15", 1))
}
