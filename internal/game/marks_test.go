package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		answer, guess string
		want          string
	}{
		{"crane", "crane", "22222"},
		{"abbey", "babes", "11220"},
		{"those", "geese", "00022"},
		{"abide", "speed", "00101"},
		{"slate", "crane", "00202"},
	}
	for _, tt := range tests {
		got := Score(w(tt.answer), w(tt.guess))
		assert.Equal(t, tt.want, got.String(), "%s/%s", tt.answer, tt.guess)
	}
}

func TestMarksAllHit(t *testing.T) {
	assert.True(t, Score(w("crane"), w("crane")).AllHit())
	assert.False(t, Score(w("crane"), w("crate")).AllHit())
}

func TestMarkString(t *testing.T) {
	assert.Equal(t, "hit", MarkHit.String())
	assert.Equal(t, "present", MarkPresent.String())
	assert.Equal(t, "miss", MarkMiss.String())
}
