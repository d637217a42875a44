package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForScoreBands(t *testing.T) {
	cases := []struct {
		score float64
		want  MoodLevel
	}{
		{1.0, MoodExtremelyPositive},
		{0.8, MoodExtremelyPositive},
		{0.7, MoodExtremelyPositive}, // edge resolves upward
		{0.69, MoodPositive},
		{0.3, MoodPositive},
		{0.1, MoodPositive},
		{0.09, MoodNeutral},
		{0.0, MoodNeutral},
		{-0.1, MoodNeutral},
		{-0.11, MoodNegative},
		{-0.5, MoodNegative},
		{-0.7, MoodNegative},
		{-0.71, MoodExtremelyNegative},
		{-1.0, MoodExtremelyNegative},
	}

	for _, c := range cases {
		assert.Equalf(t, c.want, LevelForScore(c.score), "score %v", c.score)
	}
}

func TestNormalizeFillsMissingLevel(t *testing.T) {
	m := MoodClassification{Primary: "stressed", Score: -0.4}
	m.Normalize()

	assert.Equal(t, MoodNegative, m.Level)
	assert.NotNil(t, m.Tags)
}

func TestNormalizeKeepsClassifierLevel(t *testing.T) {
	m := MoodClassification{Primary: "calm", Score: 0.05, Level: MoodPositive, Tags: []string{"calm"}}
	m.Normalize()

	// the classifier's explicit level wins over the score-derived band
	assert.Equal(t, MoodPositive, m.Level)
}
