package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsForDifficulty(t *testing.T) {
	assert.Equal(t, 10, PointsForDifficulty(DifficultyEasy))
	assert.Equal(t, 20, PointsForDifficulty(DifficultyMedium))
	assert.Equal(t, 30, PointsForDifficulty(DifficultyHard))
	assert.Equal(t, 10, PointsForDifficulty(""), "unknown difficulty falls back to the easy award")
	assert.Equal(t, 10, PointsForDifficulty("extreme"))
}
