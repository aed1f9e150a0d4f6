package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/parleychat/parley/internal/keys"
	"github.com/parleychat/parley/internal/logger"
	"github.com/parleychat/parley/internal/profile"
	"github.com/parleychat/parley/internal/session"
	"github.com/parleychat/parley/internal/ui"
)

// menuDispatch maps a context menu action to the modal it opens. Adding a
// menu entry means adding one row here.
var menuDispatch = map[ui.MenuAction]func(m *Model, chatID, chatTitle string){
	ui.ActionRename: func(m *Model, chatID, chatTitle string) {
		m.modal.Show(ui.NewRenameChatState(chatID, chatTitle))
	},
	ui.ActionDelete: func(m *Model, chatID, chatTitle string) {
		m.modal.Show(ui.NewConfirmDeleteState(chatID, chatTitle))
	},
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		return m.confirmModal()
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// confirmModal applies the open modal's pending action
func (m *Model) confirmModal() (tea.Model, tea.Cmd) {
	switch state := m.modal.State.(type) {
	case *ui.ErrorState:
		m.modal.Hide()
		return m, nil

	case *ui.RenameChatState:
		title, err := session.ValidateTitle(state.ProposedTitle())
		if err != nil {
			// Rejected locally, nothing is sent to the server
			m.showError(err, fallbackRenameChat)
			return m, nil
		}
		m.modal.Hide()
		return m, m.renameChat(state.ChatID, title)

	case *ui.ConfirmDeleteState:
		if !state.Confirmed() {
			m.modal.Hide()
			return m, nil
		}
		wasActive := state.ChatID == m.registry.ActiveID()
		m.modal.Hide()
		return m, m.deleteChat(state.ChatID, wasActive)

	case *ui.ChatMenuState:
		open, ok := menuDispatch[state.SelectedAction()]
		if !ok {
			m.modal.Hide()
			return m, nil
		}
		open(m, state.ChatID, state.ChatTitle)
		return m, nil

	case *ui.ProfileState:
		name := profile.NormalizeName(state.ProposedName())
		m.modal.Hide()
		return m, m.saveProfile(name)

	case *ui.ModelSelectState:
		m.config.SetDefaultModel(state.SelectedModel())
		if err := m.config.Save(); err != nil {
			logger.Warn("persisting model choice failed: %v", err)
		}
		m.modal.Hide()
		return m, nil
	}

	m.modal.Hide()
	return m, nil
}
