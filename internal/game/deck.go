package game

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/uno-arcade/uno-service/internal/models"
)

// cardsPerSet is the size of one standard deck set: per color one "0", two
// each of "1".."9", two each of S/R/D2, plus four W and four W4.
const cardsPerSet = 108

// Deck owns the draw pile and the discard pile of a single game. The
// multiset union of both piles plus all dealt hands stays constant for the
// life of the game; reshuffling moves cards between the piles but never
// creates or destroys them.
type Deck struct {
	rng     *rand.Rand
	draw    []models.Card
	discard []models.Card
}

// NewDeck builds a shuffled deck of the given number of deck sets. A
// non-zero seed makes the shuffle order deterministic, which the tests rely
// on; zero seeds from the clock.
func NewDeck(sets int, seed int64) *Deck {
	if sets < 1 {
		sets = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := &Deck{
		rng:  rand.New(rand.NewSource(seed)),
		draw: make([]models.Card, 0, sets*cardsPerSet),
	}
	for i := 0; i < sets; i++ {
		d.draw = append(d.draw, buildSet()...)
	}
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
	return d
}

func buildSet() []models.Card {
	cards := make([]models.Card, 0, cardsPerSet)
	for _, color := range models.PaletteColors {
		cards = append(cards, models.Card{Color: color, Value: "0"})
		for n := 1; n <= 9; n++ {
			v := models.Card{Color: color, Value: strconv.Itoa(n)}
			cards = append(cards, v, v)
		}
		for _, action := range []string{models.ValueSkip, models.ValueReverse, models.ValueDrawTwo} {
			a := models.Card{Color: color, Value: action}
			cards = append(cards, a, a)
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards,
			models.Card{Color: models.ColorWild, Value: models.ValueWild},
			models.Card{Color: models.ColorWild, Value: models.ValueWildDrawFour},
		)
	}
	return cards
}

// Draw removes and returns n cards from the front of the draw pile,
// reshuffling the discard pile (minus its top card) back in when the pile
// runs short. Fails with ErrDeckExhausted if even the reshuffle cannot
// cover the request; in that case the deck is left unchanged.
func (d *Deck) Draw(n int) ([]models.Card, error) {
	if d.Available() < n {
		return nil, ErrDeckExhausted
	}
	if len(d.draw) < n {
		d.reshuffle()
	}

	cards := make([]models.Card, n)
	copy(cards, d.draw[:n])
	d.draw = d.draw[n:]
	return cards, nil
}

// Play puts a card on top of the discard pile.
func (d *Deck) Play(card models.Card) {
	d.discard = append(d.discard, card)
}

// Top returns the face-up card, if any discard exists yet.
func (d *Deck) Top() (models.Card, bool) {
	if len(d.discard) == 0 {
		return models.Card{}, false
	}
	return d.discard[len(d.discard)-1], true
}

// Bury reinserts a card into the draw pile at a random position. Used when
// the initial discard flip turns up an action card.
func (d *Deck) Bury(card models.Card) {
	idx := 0
	if len(d.draw) > 0 {
		idx = d.rng.Intn(len(d.draw) + 1)
	}
	d.draw = append(d.draw, models.Card{})
	copy(d.draw[idx+1:], d.draw[idx:])
	d.draw[idx] = card
}

// Available counts the cards a Draw could still produce: the draw pile plus
// everything in the discard pile except its top card.
func (d *Deck) Available() int {
	n := len(d.draw)
	if len(d.discard) > 1 {
		n += len(d.discard) - 1
	}
	return n
}

// DrawCount returns the size of the draw pile.
func (d *Deck) DrawCount() int { return len(d.draw) }

// DiscardCount returns the size of the discard pile.
func (d *Deck) DiscardCount() int { return len(d.discard) }

// Size returns the total number of cards currently held in both piles.
func (d *Deck) Size() int { return len(d.draw) + len(d.discard) }

// reshuffle folds the discard pile, except its top card, back into the draw
// pile in a fresh random order.
func (d *Deck) reshuffle() {
	if len(d.discard) < 2 {
		return
	}
	top := d.discard[len(d.discard)-1]
	d.draw = append(d.draw, d.discard[:len(d.discard)-1]...)
	d.discard = []models.Card{top}
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}
