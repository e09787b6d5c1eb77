package models

// Card colors. Wild-family cards carry ColorWild until played, at which
// point the playing player chooses one of the four palette colors.
const (
	ColorRed    = "red"
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorWild   = "wild"
)

// Card values. "0".."9" are number cards; the rest are action cards.
const (
	ValueSkip         = "S"
	ValueReverse      = "R"
	ValueDrawTwo      = "D2"
	ValueWild         = "W"
	ValueWildDrawFour = "W4"
)

// PaletteColors are the four playable colors, in deck order.
var PaletteColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow}

// Card is a value-identity card: two cards with the same color and value are
// interchangeable for matching purposes. Cards are never mutated after
// creation.
type Card struct {
	Color string `json:"color"`
	Value string `json:"value"`
}

// IsWild reports whether the card belongs to the wild family (W, W4).
func (c Card) IsWild() bool {
	return c.Value == ValueWild || c.Value == ValueWildDrawFour
}

// IsAction reports whether the card is any non-number card.
func (c Card) IsAction() bool {
	switch c.Value {
	case ValueSkip, ValueReverse, ValueDrawTwo, ValueWild, ValueWildDrawFour:
		return true
	}
	return false
}
