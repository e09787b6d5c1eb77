package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uno-arcade/uno-service/internal/models"
)

func TestMatchesSelfIsAlwaysLegal(t *testing.T) {
	cards := []models.Card{
		{Color: models.ColorRed, Value: "0"},
		{Color: models.ColorBlue, Value: "7"},
		{Color: models.ColorGreen, Value: models.ValueSkip},
		{Color: models.ColorYellow, Value: models.ValueDrawTwo},
		{Color: models.ColorWild, Value: models.ValueWild},
		{Color: models.ColorWild, Value: models.ValueWildDrawFour},
	}
	for _, c := range cards {
		assert.True(t, Matches(c, c.Color, c), "card %v should match itself", c)
	}
}

func TestMatchesWildAlwaysLegal(t *testing.T) {
	top := models.Card{Color: models.ColorRed, Value: "3"}
	assert.True(t, Matches(top, top.Color, models.Card{Color: models.ColorWild, Value: models.ValueWild}))
	assert.True(t, Matches(top, top.Color, models.Card{Color: models.ColorWild, Value: models.ValueWildDrawFour}))
}

func TestMatchesColorOrValue(t *testing.T) {
	top := models.Card{Color: models.ColorRed, Value: "3"}

	assert.True(t, Matches(top, top.Color, models.Card{Color: models.ColorRed, Value: "9"}), "same color")
	assert.True(t, Matches(top, top.Color, models.Card{Color: models.ColorBlue, Value: "3"}), "same value")
	assert.False(t, Matches(top, top.Color, models.Card{Color: models.ColorBlue, Value: "9"}), "neither")
}

func TestMatchesHonorsChosenWildColor(t *testing.T) {
	// After a wild is played the chosen color is in effect, not the top
	// card's printed color.
	top := models.Card{Color: models.ColorGreen, Value: models.ValueWild}
	assert.True(t, Matches(top, models.ColorGreen, models.Card{Color: models.ColorGreen, Value: "1"}))
	assert.False(t, Matches(top, models.ColorGreen, models.Card{Color: models.ColorRed, Value: "1"}))
}
