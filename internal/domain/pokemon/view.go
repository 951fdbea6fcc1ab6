package pokemon

import "strings"

// MaxStatPercent caps the width of a stat bar.
const MaxStatPercent = 100

// FallbackTypeColor is used for any type missing from TypeColors.
const FallbackTypeColor = "bg-gray-500"

// DisplayedStats lists the stats rendered as bars on every card, in order.
var DisplayedStats = []string{"hp", "attack", "defense", "special-attack"}

// TypeColors maps a type name to its tag color token.
// Several types share a color; the table is kept as the cards have always
// shown it.
var TypeColors = map[string]string{
	"fire":     "bg-red-500",
	"water":    "bg-blue-500",
	"grass":    "bg-green-500",
	"poison":   "bg-purple-500",
	"normal":   "bg-gray-500",
	"flying":   "bg-pink-500",
	"electric": "bg-indigo-500",
	"bug":      "bg-yellow-500",
	"ground":   "bg-pink-500",
	"fairy":    "bg-red-500",
	"fighting": "bg-pink-500",
	"psychic":  "bg-purple-500",
	"rock":     "bg-amber-500",
	"steel":    "bg-red-500",
	"ice":      "bg-green-500",
	"ghost":    "bg-purple-500",
}

// colorHex is the hex value behind each color token, for surfaces that
// cannot use the CSS classes directly.
var colorHex = map[string]string{
	"bg-red-500":    "#ef4444",
	"bg-blue-500":   "#3b82f6",
	"bg-green-500":  "#22c55e",
	"bg-purple-500": "#a855f7",
	"bg-gray-500":   "#6b7280",
	"bg-pink-500":   "#ec4899",
	"bg-indigo-500": "#6366f1",
	"bg-yellow-500": "#eab308",
	"bg-amber-500":  "#f59e0b",
}

// Tag is a type name with its color token.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Bar is one stat bar. Percent is the bar width.
type Bar struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// Card is the display model of a single Pokemon.
type Card struct {
	ID       int    `json:"id"`
	ImageURL string `json:"imageUrl,omitempty"`
	Name     string `json:"name"`
	Tags     []Tag  `json:"tags"`
	Bars     []Bar  `json:"bars"`
}

// GetStat returns the base value of the named stat, or 0 when p has none.
func GetStat(p *Pokemon, name string) int {
	for _, s := range p.Stats {
		if s.Name == name {
			return s.BaseStat
		}
	}
	return 0
}

// StatPercent caps v at MaxStatPercent. Negative values are returned as is.
func StatPercent(v int) int {
	return min(v, MaxStatPercent)
}

// TypeColor returns the color token for a type name.
func TypeColor(typeName string) string {
	if color, ok := TypeColors[typeName]; ok {
		return color
	}
	return FallbackTypeColor
}

// ColorHex returns the hex color behind a color token, falling back to the
// hex of FallbackTypeColor.
func ColorHex(token string) string {
	if hex, ok := colorHex[token]; ok {
		return hex
	}
	return colorHex[FallbackTypeColor]
}

// StatLabel turns a stat name into its bar label ("special-attack" becomes
// "special attack").
func StatLabel(name string) string {
	return strings.Replace(name, "-", " ", 1)
}

// BuildView computes the card for p.
func BuildView(p *Pokemon) Card {
	card := Card{
		ID:       p.ID,
		ImageURL: p.ImageURL,
		Name:     p.Name,
		Tags:     make([]Tag, 0, len(p.Types)),
		Bars:     make([]Bar, 0, len(DisplayedStats)),
	}

	for _, t := range p.Types {
		card.Tags = append(card.Tags, Tag{Name: t, Color: TypeColor(t)})
	}

	for _, name := range DisplayedStats {
		card.Bars = append(card.Bars, Bar{
			Name:    name,
			Label:   StatLabel(name),
			Percent: StatPercent(GetStat(p, name)),
		})
	}

	return card
}

// BuildViews computes the cards for items, keeping their order.
func BuildViews(items []Pokemon) []Card {
	cards := make([]Card, 0, len(items))
	for i := range items {
		cards = append(cards, BuildView(&items[i]))
	}
	return cards
}
