package game

import (
	"fmt"

	"github.com/lox/holdemtable/internal/bot"
)

// DecideForSeat asks the decision engine what a bot seat should do. The
// seat must be the one to act. The decision is not applied.
func (t *Table) DecideForSeat(seatID string) (bot.Decision, error) {
	p, err := t.checkTurn(seatID)
	if err != nil {
		return bot.Decision{}, err
	}
	engine, ok := t.bots[seatID]
	if !ok {
		return bot.Decision{}, fmt.Errorf("%w: %s", ErrNotBot, seatID)
	}
	h := t.hand
	d := engine.Decide(bot.View{
		HoleCards:  p.HoleCards,
		Board:      h.board,
		CurrentBet: h.round.currentBet,
		MyBet:      p.Bet,
		MyChips:    p.Chips,
		Pot:        t.committed(),
		BigBlind:   h.bigBlind,
	})
	t.logger.Debug("Bot decided", "hand", h.number, "seat", seatID, "action", d.Action, "reasoning", d.Reasoning)
	return d, nil
}

// IsBot reports whether a seat is played by the decision engine.
func (t *Table) IsBot(seatID string) bool {
	_, ok := t.bots[seatID]
	return ok
}
