package ui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parleychat/parley/internal/keys"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible. At most one overlay is
// visible at a time; showing a new one replaces the old.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an inline error message under the modal content
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current inline error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered over the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// ErrorState - the single error overlay all failures surface through
// =============================================================================

type ErrorState struct {
	Message string
}

func (*ErrorState) modalState() {}

func (s *ErrorState) Title() string { return "Error" }

func (s *ErrorState) Help() string {
	return "Press Enter or Esc to dismiss"
}

func (s *ErrorState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorError).
		MarginBottom(1).
		Render(s.Title())

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(ModalWidth - 6).
		Render(s.Message)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, message, help)
}

func (s *ErrorState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewErrorState creates a new ErrorState
func NewErrorState(message string) *ErrorState {
	return &ErrorState{Message: message}
}

// =============================================================================
// RenameChatState - State for the Rename Chat modal
// =============================================================================

type RenameChatState struct {
	ChatID string
	Input  textinput.Model
}

func (*RenameChatState) modalState() {}

func (s *RenameChatState) Title() string { return "Rename Chat" }

func (s *RenameChatState) Help() string {
	return "Enter to save, Esc to cancel"
}

func (s *RenameChatState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.Input.View(), help)
}

func (s *RenameChatState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// ProposedTitle returns the raw title the user typed
func (s *RenameChatState) ProposedTitle() string {
	return s.Input.Value()
}

// NewRenameChatState creates a new RenameChatState seeded with the current title
func NewRenameChatState(chatID, currentTitle string) *RenameChatState {
	ti := textinput.New()
	ti.Placeholder = "chat title"
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.SetValue(currentTitle)
	ti.Focus()

	return &RenameChatState{
		ChatID: chatID,
		Input:  ti,
	}
}

// =============================================================================
// ConfirmDeleteState - State for the Delete Chat confirmation modal
// =============================================================================

type ConfirmDeleteState struct {
	ChatID        string
	ChatTitle     string
	Options       []string
	SelectedIndex int
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Chat?" }

func (s *ConfirmDeleteState) Help() string {
	return "↑/↓ to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	chatLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.ChatTitle)

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("This permanently removes the chat and its messages.")

	var optionList string
	for i, opt := range s.Options {
		style := SidebarItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+opt) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, chatLabel, message, optionList, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// Confirmed reports whether the user selected the delete option
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.SelectedIndex == 1
}

// NewConfirmDeleteState creates a new ConfirmDeleteState
func NewConfirmDeleteState(chatID, chatTitle string) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		ChatID:        chatID,
		ChatTitle:     chatTitle,
		Options:       []string{"Cancel", "Delete"},
		SelectedIndex: 0,
	}
}

// =============================================================================
// MenuAction and ChatMenuState - the per-chat context menu
// =============================================================================

// MenuAction identifies what a context menu entry does. The app resolves
// actions through a dispatch table rather than switching on labels.
type MenuAction int

const (
	ActionRename MenuAction = iota
	ActionDelete
)

// MenuEntry pairs a visible label with its action.
type MenuEntry struct {
	Label  string
	Action MenuAction
}

type ChatMenuState struct {
	ChatID        string
	ChatTitle     string
	Entries       []MenuEntry
	SelectedIndex int
}

func (*ChatMenuState) modalState() {}

func (s *ChatMenuState) Title() string { return "Chat Actions" }

func (s *ChatMenuState) Help() string {
	return "↑/↓ to select, Enter to choose, Esc to cancel"
}

func (s *ChatMenuState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	chatLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.ChatTitle)

	var entryList string
	for i, entry := range s.Entries {
		style := SidebarItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		entryList += style.Render(prefix+entry.Label) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, chatLabel, entryList, help)
}

func (s *ChatMenuState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Entries)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// SelectedAction returns the action of the highlighted entry
func (s *ChatMenuState) SelectedAction() MenuAction {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Entries) {
		return ActionRename
	}
	return s.Entries[s.SelectedIndex].Action
}

// NewChatMenuState creates the context menu for one chat
func NewChatMenuState(chatID, chatTitle string) *ChatMenuState {
	return &ChatMenuState{
		ChatID:    chatID,
		ChatTitle: chatTitle,
		Entries: []MenuEntry{
			{Label: "Rename", Action: ActionRename},
			{Label: "Delete", Action: ActionDelete},
		},
	}
}

// =============================================================================
// ProfileState - State for the Edit Profile modal
// =============================================================================

type ProfileState struct {
	Input textinput.Model
}

func (*ProfileState) modalState() {}

func (s *ProfileState) Title() string { return "Profile" }

func (s *ProfileState) Help() string {
	return "Enter to save, Esc to cancel. Leave empty for guest."
}

func (s *ProfileState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	nameLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Display name:")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, nameLabel, s.Input.View(), help)
}

func (s *ProfileState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// ProposedName returns the raw name the user typed
func (s *ProfileState) ProposedName() string {
	return s.Input.Value()
}

// NewProfileState creates a new ProfileState seeded with the current name
func NewProfileState(currentName string) *ProfileState {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.SetValue(currentName)
	ti.Focus()

	return &ProfileState{Input: ti}
}

// =============================================================================
// ModelSelectState - State for the model picker modal
// =============================================================================

type ModelSelectState struct {
	Models        []string
	SelectedIndex int
	CurrentModel  string
}

func (*ModelSelectState) modalState() {}

func (s *ModelSelectState) Title() string { return "Select Model" }

func (s *ModelSelectState) Help() string {
	return "↑/↓ to select, Enter to apply, Esc to cancel"
}

func (s *ModelSelectState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var content string
	for i, model := range s.Models {
		style := SidebarItemStyle
		prefix := "  "
		suffix := ""
		if i == s.SelectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		if model == s.CurrentModel {
			suffix = " (current)"
		}
		content += style.Render(prefix+model+suffix) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}

func (s *ModelSelectState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Models)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// SelectedModel returns the highlighted model id
func (s *ModelSelectState) SelectedModel() string {
	if len(s.Models) == 0 || s.SelectedIndex >= len(s.Models) {
		return s.CurrentModel
	}
	return s.Models[s.SelectedIndex]
}

// NewModelSelectState creates a new ModelSelectState
func NewModelSelectState(models []string, currentModel string) *ModelSelectState {
	selectedIndex := 0
	for i, m := range models {
		if m == currentModel {
			selectedIndex = i
			break
		}
	}
	return &ModelSelectState{
		Models:        models,
		SelectedIndex: selectedIndex,
		CurrentModel:  currentModel,
	}
}
