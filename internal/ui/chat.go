package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/askdesk/internal/keys"
	"github.com/zhubert/askdesk/internal/session"
)

// CopyResetMsg restores a copy control after its confirmation period.
type CopyResetMsg struct {
	TurnID string
	Seq    uint64
}

// Chat is the conversation panel: transcript viewport plus input.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	width    int
	height   int
	focused  bool
	history  bool

	turns   []session.Turn
	pending bool

	// copy controls, keyed by turn ID
	copyFocus string
	copied    map[string]uint64
	copySeq   uint64

	dismissed map[string]bool
}

// NewChat creates a chat panel. history enables timestamps, relevance
// badges and copy controls.
func NewChat(history bool) *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask a question..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	c := &Chat{
		viewport:  vp,
		input:     ti,
		spinner:   sp,
		history:   history,
		copied:    make(map[string]uint64),
		dismissed: make(map[string]bool),
	}
	c.updateContent(true)
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	layout := ChatLayoutFor(width, height)
	c.viewport.SetWidth(layout.TranscriptWidth)
	c.viewport.SetHeight(layout.TranscriptHeight)
	c.input.SetWidth(layout.InputWidth)

	c.updateContent(true)
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetTurns replaces the transcript. Copy focus moves to the newest answer
// when the log grew or the focused answer is gone.
func (c *Chat) SetTurns(turns []session.Turn) {
	grew := len(turns) != len(c.turns)
	c.turns = turns

	ids := make(map[string]bool, len(turns))
	for _, t := range turns {
		ids[t.ID] = true
	}
	for id := range c.dismissed {
		if !ids[id] {
			delete(c.dismissed, id)
		}
	}
	for id := range c.copied {
		if !ids[id] {
			delete(c.copied, id)
		}
	}
	if grew || !ids[c.copyFocus] {
		c.copyFocus = ""
		if copyable := c.copyableTurns(); len(copyable) > 0 {
			c.copyFocus = copyable[len(copyable)-1].ID
		}
	}

	c.updateContent(grew)
}

// SetPending shows or hides the loading row. Starting returns the spinner tick.
func (c *Chat) SetPending(pending bool) tea.Cmd {
	if c.pending == pending {
		return nil
	}
	c.pending = pending
	c.updateContent(true)
	if pending {
		return c.spinner.Tick
	}
	return nil
}

// IsPending reports whether the loading row is shown.
func (c *Chat) IsPending() bool {
	return c.pending
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// ClearInput clears the input
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// InsertNewline adds a line break at the cursor.
func (c *Chat) InsertNewline() {
	c.input.InsertString("\n")
}

// SetInput replaces the input text
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// copyableTurns lists answers that carry a copy control.
func (c *Chat) copyableTurns() []session.Turn {
	if !c.history {
		return nil
	}
	var out []session.Turn
	for _, t := range c.turns {
		if t.Role == session.RoleAssistant && !t.Welcome {
			out = append(out, t)
		}
	}
	return out
}

// CanCopy reports whether any answer can be copied.
func (c *Chat) CanCopy() bool {
	return len(c.copyableTurns()) > 0
}

// FocusedAnswer returns the answer the copy action applies to.
func (c *Chat) FocusedAnswer() (session.Turn, bool) {
	for _, t := range c.copyableTurns() {
		if t.ID == c.copyFocus {
			return t, true
		}
	}
	return session.Turn{}, false
}

// MoveCopyFocus moves the copy focus by delta answers, clamped.
func (c *Chat) MoveCopyFocus(delta int) {
	copyable := c.copyableTurns()
	if len(copyable) == 0 {
		return
	}
	idx := len(copyable) - 1
	for i, t := range copyable {
		if t.ID == c.copyFocus {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(copyable) {
		idx = len(copyable) - 1
	}
	c.copyFocus = copyable[idx].ID
	c.updateContent(false)
}

// MarkCopied flips the turn's copy control to its confirmation and returns
// the command that flips it back after CopyFlashDuration.
func (c *Chat) MarkCopied(turnID string) tea.Cmd {
	c.copySeq++
	seq := c.copySeq
	c.copied[turnID] = seq
	c.updateContent(false)
	return tea.Tick(CopyFlashDuration, func(time.Time) tea.Msg {
		return CopyResetMsg{TurnID: turnID, Seq: seq}
	})
}

// IsCopied reports whether the turn's control shows its confirmation.
func (c *Chat) IsCopied(turnID string) bool {
	_, ok := c.copied[turnID]
	return ok
}

// latestError returns the newest error turn that has not been dismissed.
func (c *Chat) latestError() (session.Turn, bool) {
	for i := len(c.turns) - 1; i >= 0; i-- {
		t := c.turns[i]
		if t.Role == session.RoleError && !c.dismissed[t.ID] {
			return t, true
		}
	}
	return session.Turn{}, false
}

// HasError reports whether an error notice is showing.
func (c *Chat) HasError() bool {
	_, ok := c.latestError()
	return ok
}

// DismissError hides the newest visible error notice.
func (c *Chat) DismissError() bool {
	t, ok := c.latestError()
	if !ok {
		return false
	}
	c.dismissed[t.ID] = true
	c.updateContent(false)
	return true
}

func (c *Chat) copyStateFor(t session.Turn) copyState {
	if !c.history || t.Role != session.RoleAssistant || t.Welcome {
		return copyHidden
	}
	if _, ok := c.copied[t.ID]; ok {
		return copyDone
	}
	if t.ID == c.copyFocus {
		return copyFocused
	}
	return copyIdle
}

// renderTranscript draws every visible turn plus the loading row.
func (c *Chat) renderTranscript() string {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	latestErr, _ := c.latestError()

	var blocks []string
	for _, t := range c.turns {
		switch {
		case t.Role == session.RoleError:
			if c.dismissed[t.ID] {
				continue
			}
			blocks = append(blocks, renderErrorTurn(t, wrapWidth, t.ID == latestErr.ID))
		default:
			blocks = append(blocks, renderTurn(t, wrapWidth, c.history, c.copyStateFor(t)))
		}
	}

	if c.pending {
		blocks = append(blocks,
			ChatAssistantStyle.Render(assistantLabel)+"\n"+
				c.spinner.View()+" "+StatusLoadingStyle.Render(loadingText))
	}

	if len(blocks) == 0 {
		return lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Pick a topic to start a conversation.")
	}
	return strings.Join(blocks, "\n\n")
}

func (c *Chat) updateContent(follow bool) {
	c.viewport.SetContent(c.renderTranscript())
	if follow {
		c.viewport.GotoBottom()
	}
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !c.pending {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		c.updateContent(false)
		return c, cmd

	case CopyResetMsg:
		if seq, ok := c.copied[msg.TurnID]; ok && seq == msg.Seq {
			delete(c.copied, msg.TurnID)
			c.updateContent(false)
		}
		return c, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.PgUp, keys.PgDown, "home", "end":
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		if c.focused {
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			cmds = append(cmds, cmd)
		}
		return c, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	layout := ChatLayoutFor(c.width, c.height)
	chatPanel := panelStyle.Width(c.width).Height(layout.PanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
