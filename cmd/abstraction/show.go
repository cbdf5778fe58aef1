package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-abstraction/internal/canonical"
	"github.com/lox/holdem-abstraction/internal/deck"
	"github.com/lox/holdem-abstraction/internal/evaluator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

type ShowCmd struct {
	Hand string `arg:"" help:"hand in concatenated card notation, e.g. 'AsKs7d8d9c'"`
}

func (cmd *ShowCmd) Run() error {
	cards, err := deck.ParseCards(cmd.Hand)
	if err != nil {
		return err
	}
	switch len(cards) {
	case 2, 5, 6, 7:
	default:
		return fmt.Errorf("hand must have 2, 5, 6 or 7 cards, got %d", len(cards))
	}

	canon, err := canonical.Canonicalize(cards, true)
	if err != nil {
		return err
	}
	code, err := deck.Pack(canon)
	if err != nil {
		return err
	}

	abs, err := loadFacade(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Hand " + handStyle.Render(deck.String(cards))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "canonical\t%s\n", valueStyle.Render(deck.String(canon)))
	fmt.Fprintf(w, "hand code\t%s\n", valueStyle.Render(fmt.Sprintf("%#x", uint64(code))))

	if len(cards) >= 5 {
		s, err := abs.HandStrength(cards)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "strength\t%s (%s)\n",
			valueStyle.Render(strconv.Itoa(s)), evaluator.CategoryOf(s))
	}
	if len(cards) == 7 {
		eq, err := abs.Equity(cards)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "equity\t%s\n", valueStyle.Render(fmt.Sprintf("%.4f", eq)))
	}

	id, err := abs.AbstractID(cards)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "abstraction id\t%s\n", valueStyle.Render(strconv.Itoa(id)))

	return w.Flush()
}
