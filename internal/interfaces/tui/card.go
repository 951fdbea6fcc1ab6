package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pokedex/internal/domain/pokemon"
)

// RenderCard draws one card as a bordered terminal block: name, colored type
// tags and the stat bars.
func RenderCard(card pokemon.Card) string {
	var b strings.Builder

	b.WriteString(nameStyle.Render(fmt.Sprintf("#%d %s", card.ID, card.Name)))
	b.WriteString("\n")

	tags := make([]string, 0, len(card.Tags))
	for _, tag := range card.Tags {
		tags = append(tags, tagStyle.Background(lipgloss.Color(pokemon.ColorHex(tag.Color))).Render(tag.Name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tags...))

	for _, bar := range card.Bars {
		b.WriteString("\n")
		b.WriteString(renderBar(bar))
	}

	return cardStyle.Render(b.String())
}

func renderBar(bar pokemon.Bar) string {
	filled := bar.Percent * barWidth / pokemon.MaxStatPercent
	filled = max(0, min(filled, barWidth))

	label := fmt.Sprintf("%-*s", labelWidth, bar.Label+":")
	return label +
		barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %3d", bar.Percent)
}
