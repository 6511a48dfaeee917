package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRandIsDeterministic(t *testing.T) {
	a := NewSeededRand(42)
	b := NewSeededRand(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestPickOne(t *testing.T) {
	list := []string{"ant", "bee", "cat"}
	for i := 0; i < 50; i++ {
		assert.Contains(t, list, PickOne(DefaultRand, list))
	}
}
