package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/poker"
)

var (
	handStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	winStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
)

type EvalCmd struct {
	Hands []string `arg:"" help:"Cards to evaluate, e.g. 'AhKh QhJhTh'; with --board, one hole-card pair per argument" required:""`
	Board string   `short:"b" help:"Community cards shared by every hand (e.g. 'Td7s8h')"`

	out io.Writer `kong:"-"`
}

func (c *EvalCmd) Run() error {
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.Board == "" {
		return c.single()
	}
	return c.compare()
}

func (c *EvalCmd) single() error {
	cards, err := poker.ParseCards(strings.Join(c.Hands, " "))
	if err != nil {
		return err
	}
	h, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s  %s\n", categoryStyle.Render(h.Name()), handStyle.Render(poker.FormatCards(h.Cards)))
	return nil
}

func (c *EvalCmd) compare() error {
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	contenders := make([]evaluator.Contender, len(c.Hands))
	for i, arg := range c.Hands {
		hole, err := poker.ParseCards(arg)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hole) != 2 {
			return fmt.Errorf("hand %d: want 2 hole cards, got %d", i+1, len(hole))
		}
		contenders[i] = evaluator.Contender{ID: poker.FormatCards(hole), HoleCards: hole}
	}

	sd, err := evaluator.DetermineWinners(contenders, board)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("hand", "category", "best five", "").
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	for _, r := range sd.Ranked {
		result := ""
		if r.Hand.Compare(sd.Ranked[0].Hand) == 0 {
			result = "wins"
			if len(sd.Winners) > 1 {
				result = "splits"
			}
		}
		t.Row(r.ID, r.Hand.Name(), poker.FormatCards(r.Hand.Cards), winStyle.Render(result))
	}
	fmt.Fprintf(c.out, "board %s\n%s\n", handStyle.Render(poker.FormatCards(board)), t.Render())
	return nil
}
