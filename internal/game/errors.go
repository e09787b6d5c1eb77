package game

import "errors"

// Rule and lifecycle rejections. All of these leave game state untouched;
// handlers map them onto HTTP statuses.
var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameNotJoinable    = errors.New("game is not joinable")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrGameFinished       = errors.New("game is finished")
	ErrInvalidState       = errors.New("operation not valid in current game state")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrGameFull           = errors.New("game is full")
	ErrAlreadyJoined      = errors.New("player already joined")
	ErrWrongPassword      = errors.New("wrong password")
	ErrNotAMember         = errors.New("player is not a member of this game")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrCardNotInHand      = errors.New("card not in hand")
	ErrIllegalPlay        = errors.New("card does not match the top of the discard pile")

	// ErrDeckExhausted means the deck cannot cover a draw even after
	// reshuffling the discard pile. This is a configuration problem (deck
	// too small for the player count), not a recoverable player error.
	ErrDeckExhausted = errors.New("deck exhausted")
)
