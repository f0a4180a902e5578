package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/askdesk/internal/api"
	"github.com/zhubert/askdesk/internal/keys"
	"github.com/zhubert/askdesk/internal/render"
)

// TopicLoadErrorText is shown in place of the cards when the catalog failed.
const TopicLoadErrorText = "Error loading topics. Press r to reload."

// cardsTop is the picker row where the first visible card begins.
const cardsTop = 2

// TopicList is the topic picker: one card per catalog entry.
type TopicList struct {
	topics   []api.Topic
	selected int
	offset   int
	loading  bool
	loadErr  bool
	width    int
	height   int
}

// NewTopicList creates an empty picker in the loading state.
func NewTopicList() *TopicList {
	return &TopicList{loading: true}
}

// SetSize sets the picker dimensions
func (l *TopicList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// SetLoading marks the catalog as loading.
func (l *TopicList) SetLoading() {
	l.loading = true
	l.loadErr = false
}

// SetTopics replaces the catalog. Order is kept as given.
func (l *TopicList) SetTopics(topics []api.Topic) {
	l.topics = topics
	l.loading = false
	l.loadErr = false
	l.selected = 0
	l.offset = 0
}

// SetLoadError records a failed load and empties the catalog.
func (l *TopicList) SetLoadError() {
	l.topics = nil
	l.loading = false
	l.loadErr = true
	l.selected = 0
	l.offset = 0
}

// Loading reports whether a load is in progress.
func (l *TopicList) Loading() bool {
	return l.loading
}

// HasError reports whether the last load failed.
func (l *TopicList) HasError() bool {
	return l.loadErr
}

// Topics returns the catalog in display order.
func (l *TopicList) Topics() []api.Topic {
	return l.topics
}

// SelectedIndex returns the index of the highlighted card.
func (l *TopicList) SelectedIndex() int {
	return l.selected
}

// Select highlights card i; out-of-range values are ignored.
func (l *TopicList) Select(i int) {
	if i < 0 || i >= len(l.topics) {
		return
	}
	l.selected = i
	l.ensureVisible()
}

// Selected returns the highlighted topic.
func (l *TopicList) Selected() (api.Topic, bool) {
	if l.selected < 0 || l.selected >= len(l.topics) {
		return api.Topic{}, false
	}
	return l.topics[l.selected], true
}

// Update handles navigation keys.
func (l *TopicList) Update(msg tea.Msg) (*TopicList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, nil
	}
	switch keyMsg.String() {
	case keys.Up, "k":
		l.Select(l.selected - 1)
	case keys.Down, "j":
		l.Select(l.selected + 1)
	case "home", "g":
		l.Select(0)
	case "end", "G":
		l.Select(len(l.topics) - 1)
	}
	return l, nil
}

func (l *TopicList) cardWidth() int {
	return CardLayoutFor(l.width, l.height).Width
}

func (l *TopicList) visibleCards() int {
	return CardLayoutFor(l.width, l.height).Visible
}

func (l *TopicList) ensureVisible() {
	visible := l.visibleCards()
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+visible {
		l.offset = l.selected - visible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// CardAt returns the index of the card drawn at (x, y), with both measured
// from the top-left of the picker.
func (l *TopicList) CardAt(x, y int) (int, bool) {
	if l.loading || l.loadErr || len(l.topics) == 0 {
		return 0, false
	}
	// heading and blank line sit above the cards; cards start after the left padding
	row := y - cardsTop
	if row < 0 || x < 1 || x > l.cardWidth() {
		return 0, false
	}
	slot := row / CardHeight
	if slot >= l.visibleCards() {
		return 0, false
	}
	i := l.offset + slot
	if i >= len(l.topics) {
		return 0, false
	}
	return i, true
}

// Cards renders every topic card in catalog order.
func (l *TopicList) Cards() []string {
	cards := make([]string, len(l.topics))
	for i, t := range l.topics {
		cards[i] = l.renderCard(t, i == l.selected)
	}
	return cards
}

func (l *TopicList) renderCard(t api.Topic, selected bool) string {
	width := l.cardWidth()
	inner := width - 4 // border + padding

	title := render.Sanitize(t.Name)
	if icon := render.Sanitize(t.Icon); icon != "" {
		title = icon + " " + title
	}
	title = runewidth.Truncate(title, inner, "…")

	desc := strings.Join(strings.Fields(render.Sanitize(t.Description)), " ")
	desc = runewidth.Truncate(desc, inner, "…")

	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	body := CardTitleStyle.Render(title) + "\n" + CardDescStyle.Render(desc)
	return style.Width(width).Render(body)
}

// View renders the picker
func (l *TopicList) View() string {
	heading := PanelTitleStyle.Render("Choose a topic")

	var body string
	switch {
	case l.loading:
		body = StatusLoadingStyle.Render("Loading topics...")
	case l.loadErr:
		body = StatusErrorStyle.Render(TopicLoadErrorText)
	case len(l.topics) == 0:
		body = CardDescStyle.Render("No topics available.")
	default:
		cards := l.Cards()
		end := l.offset + l.visibleCards()
		if end > len(cards) {
			end = len(cards)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, cards[l.offset:end]...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, heading, "", body)
	return lipgloss.NewStyle().
		Width(l.width).
		Height(l.height).
		Padding(0, 1).
		Render(content)
}
