package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parleychat/parley/internal/api"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/errors"
	"github.com/parleychat/parley/internal/timeline"
	"github.com/parleychat/parley/internal/ui"
)

// fakeBackend implements Backend in memory and counts calls so tests can
// assert which operations hit the network.
type fakeBackend struct {
	chats     []api.Chat
	currentID string
	history   map[string][]api.Message
	profile   api.Profile
	reply     api.ChatReply

	listErr    error
	sendErr    error
	searchErr  error
	profileErr error

	listCalls   int
	createCalls int
	switchCalls int
	fetchCalls  int
	deleteCalls int
	renameCalls int
	searchCalls int
	sendCalls   int
	saveCalls   int

	lastRenameTitle string
	lastSavedName   string
	lastSearchQuery string
}

func (f *fakeBackend) ListChats(ctx context.Context) ([]api.Chat, string, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, "", f.listErr
	}
	return append([]api.Chat(nil), f.chats...), f.currentID, nil
}

func (f *fakeBackend) CreateChat(ctx context.Context) (api.Chat, error) {
	f.createCalls++
	chat := api.Chat{
		ID:        fmt.Sprintf("chat-%d", f.createCalls),
		Title:     "New Chat",
		UpdatedAt: time.Now(),
	}
	f.chats = append([]api.Chat{chat}, f.chats...)
	f.currentID = chat.ID
	return chat, nil
}

func (f *fakeBackend) SwitchChat(ctx context.Context, id string) error {
	f.switchCalls++
	f.currentID = id
	return nil
}

func (f *fakeBackend) FetchMessages(ctx context.Context, id string) ([]api.Message, error) {
	f.fetchCalls++
	return f.history[id], nil
}

func (f *fakeBackend) DeleteChat(ctx context.Context, id string) error {
	f.deleteCalls++
	kept := f.chats[:0]
	for _, c := range f.chats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.chats = kept
	if f.currentID == id {
		f.currentID = ""
	}
	return nil
}

func (f *fakeBackend) RenameChat(ctx context.Context, id, title string) error {
	f.renameCalls++
	f.lastRenameTitle = title
	for i := range f.chats {
		if f.chats[i].ID == id {
			f.chats[i].Title = title
		}
	}
	return nil
}

func (f *fakeBackend) SearchChats(ctx context.Context, query string) ([]api.Chat, error) {
	f.searchCalls++
	f.lastSearchQuery = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var matches []api.Chat
	for _, c := range f.chats {
		if strings.Contains(strings.ToLower(c.Title), strings.ToLower(query)) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, message, model string) (api.ChatReply, error) {
	f.sendCalls++
	if f.sendErr != nil {
		return api.ChatReply{}, f.sendErr
	}
	return f.reply, nil
}

func (f *fakeBackend) FetchProfile(ctx context.Context) (api.Profile, error) {
	if f.profileErr != nil {
		return api.Profile{}, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeBackend) SaveProfile(ctx context.Context, name string) (api.Profile, error) {
	f.saveCalls++
	f.lastSavedName = name
	f.profile = api.Profile{Name: name}
	return f.profile, nil
}

var _ Backend = (*fakeBackend)(nil)

func twoChatBackend() *fakeBackend {
	now := time.Now()
	return &fakeBackend{
		chats: []api.Chat{
			{ID: "c1", Title: "Weather talk", Preview: "Sunny today", UpdatedAt: now},
			{ID: "c2", Title: "Recipes", Preview: "Pasta", UpdatedAt: now.Add(-time.Hour)},
		},
		currentID: "c1",
		history: map[string][]api.Message{
			"c1": {
				{Role: "user", Content: "What's the weather?"},
				{Role: "assistant", Content: "Sunny today", Model: "llama3-8b-8192"},
			},
		},
		reply: api.ChatReply{Response: "Here you go.", ModelUsed: "llama3-8b-8192", ChatID: "c1"},
	}
}

func newTestModel(t *testing.T, backend Backend) *Model {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	m := New(cfg, backend, "test")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// runCmd executes a command tree and returns the messages it produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds every message a command produces back into the model until the
// command chain runs dry. Animation ticks are dropped so the loop terminates.
func pump(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		switch msg.(type) {
		case ui.SidebarTickMsg, ui.StopwatchTickMsg, searchDebounceMsg:
			continue
		}
		_, next := m.Update(msg)
		pump(t, m, next)
	}
}

func startApp(t *testing.T, backend Backend) *Model {
	t.Helper()
	m := newTestModel(t, backend)
	pump(t, m, m.Init())
	return m
}

func press(m *Model, key tea.KeyPressMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enterKey() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

// viewString renders what the user would see as a plain string. tea.View
// does not expose its content, so this recomposes the same panels the
// model's View assembles, after letting View sync the chrome.
func viewString(m *Model) string {
	_ = m.View()
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.chat.View()),
		m.footer.View(),
	)
}

func TestStartupOpensCurrentChat(t *testing.T) {
	backend := twoChatBackend()
	m := startApp(t, backend)

	if got := m.registry.ActiveID(); got != "c1" {
		t.Errorf("active = %q, want c1", got)
	}
	if got := m.timeline.ChatID(); got != "c1" {
		t.Errorf("timeline chat = %q, want c1", got)
	}
	if len(m.timeline.Messages()) != 2 {
		t.Errorf("timeline has %d messages, want 2", len(m.timeline.Messages()))
	}

	view := viewString(m)
	if !strings.Contains(view, "Weather talk") {
		t.Error("view should show the active chat title")
	}
	if !strings.Contains(view, "Recipes") {
		t.Error("view should list the other chat in the sidebar")
	}
}

func TestStartupNoChatsShowsWelcome(t *testing.T) {
	m := startApp(t, &fakeBackend{})

	if m.registry.ActiveID() != "" {
		t.Errorf("active = %q, want empty", m.registry.ActiveID())
	}
	view := viewString(m)
	if !strings.Contains(view, "Welcome to Parley") {
		t.Error("view should show the welcome screen when no chats exist")
	}
	if !strings.Contains(view, "No chat sessions yet") {
		t.Error("sidebar should show its empty placeholder")
	}
}

func TestStartupListFailureShowsErrorOverlay(t *testing.T) {
	backend := &fakeBackend{listErr: fmt.Errorf("connection refused")}
	m := startApp(t, backend)

	if !m.modal.IsVisible() {
		t.Fatal("error overlay should be visible")
	}
	if !strings.Contains(viewString(m), fallbackLoadChats) {
		t.Error("overlay should carry the load failure fallback message")
	}
}

func TestSendPipeline(t *testing.T) {
	backend := twoChatBackend()
	m := startApp(t, backend)

	typeText(m, "hello there")
	pump(t, m, press(m, enterKey()))

	if backend.sendCalls != 1 {
		t.Fatalf("sendCalls = %d, want 1", backend.sendCalls)
	}

	msgs := m.timeline.Messages()
	if len(msgs) != 4 {
		t.Fatalf("timeline has %d messages, want 4", len(msgs))
	}
	if msgs[2].Role != timeline.RoleUser || msgs[2].Content != "hello there" {
		t.Errorf("third message = %+v, want the user's text", msgs[2])
	}
	if msgs[3].Role != timeline.RoleAssistant || msgs[3].Content != "Here you go." {
		t.Errorf("fourth message = %+v, want the assistant reply", msgs[3])
	}

	// The post-send refresh must settle the gate
	if m.sendGate.Busy() {
		t.Error("send gate should be idle after the closing refresh")
	}
	if m.chat.IsWaiting() {
		t.Error("waiting indicator should be cleared")
	}
}

func TestSecondSendWhileBusyIsIgnored(t *testing.T) {
	backend := twoChatBackend()
	m := startApp(t, backend)

	typeText(m, "first")
	msgs := runCmd(press(m, enterKey()))

	var held []tea.Msg
	for _, msg := range msgs {
		if _, ok := msg.(assistantReplyMsg); ok {
			held = append(held, msg)
		}
	}
	if len(held) != 1 {
		t.Fatalf("expected one in-flight reply, got %d", len(held))
	}

	// A second enter while the round trip is outstanding goes nowhere
	typeText(m, "second")
	if cmd := press(m, enterKey()); cmd != nil {
		t.Error("second submit should produce no command")
	}
	if backend.sendCalls != 1 {
		t.Errorf("sendCalls = %d, want 1", backend.sendCalls)
	}

	// Delivering the held reply unblocks sending again
	_, next := m.Update(held[0])
	pump(t, m, next)
	if m.sendGate.Busy() {
		t.Error("gate should be idle after reply and refresh")
	}
}

func TestSendFailureKeepsOptimisticMessage(t *testing.T) {
	backend := twoChatBackend()
	backend.sendErr = fmt.Errorf("boom")
	m := startApp(t, backend)

	typeText(m, "doomed")
	pump(t, m, press(m, enterKey()))

	msgs := m.timeline.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != timeline.RoleUser || last.Content != "doomed" {
		t.Errorf("optimistic user message should survive the failure, got %+v", last)
	}

	if !m.modal.IsVisible() {
		t.Fatal("error overlay should be visible")
	}
	if !strings.Contains(viewString(m), fallbackSendMessage) {
		t.Error("overlay should carry the send failure fallback")
	}
	if m.sendGate.Busy() {
		t.Error("gate must return to idle so the user can retry")
	}
	if m.chat.IsWaiting() {
		t.Error("waiting indicator should be cleared on failure")
	}
}

func TestBlankDraftIsNotSent(t *testing.T) {
	backend := twoChatBackend()
	m := startApp(t, backend)

	typeText(m, "   ")
	if cmd := press(m, enterKey()); cmd != nil {
		t.Error("blank draft should produce no command")
	}
	if backend.sendCalls != 0 {
		t.Errorf("sendCalls = %d, want 0", backend.sendCalls)
	}
}

func TestSendErrorUsesServerMessage(t *testing.T) {
	backend := twoChatBackend()
	backend.sendErr = errors.E(errors.Op("api.SendMessage"), errors.KindServer, "Model is overloaded")
	m := startApp(t, backend)

	typeText(m, "hi")
	pump(t, m, press(m, enterKey()))

	if !strings.Contains(viewString(m), "Model is overloaded") {
		t.Error("server-provided message should surface verbatim")
	}
}

func TestCreateChatFocusesComposer(t *testing.T) {
	backend := twoChatBackend()
	m := startApp(t, backend)

	// Back to the sidebar, then create
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	pump(t, m, press(m, tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}))

	if backend.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1", backend.createCalls)
	}
	if m.focus != FocusChat {
		t.Error("focus should move to the composer after creating a chat")
	}
	if !m.timeline.IsEmpty() {
		t.Error("new chat starts with an empty conversation")
	}
	if !strings.Contains(viewString(m), "Start the conversation") {
		t.Error("empty conversation shows its placeholder, not the welcome screen")
	}
}

func TestProfileLoadFailureStaysGuest(t *testing.T) {
	backend := twoChatBackend()
	backend.profileErr = fmt.Errorf("profile service down")
	m := startApp(t, backend)

	if m.modal.IsVisible() {
		t.Error("profile load failure must not raise the error overlay")
	}
	if !strings.Contains(viewString(m), "Guest User") {
		t.Error("header should fall back to the guest identity")
	}
}

func TestProfileNameShownInHeader(t *testing.T) {
	backend := twoChatBackend()
	backend.profile = api.Profile{Name: "Ada"}
	m := startApp(t, backend)

	if !strings.Contains(viewString(m), "Ada") {
		t.Error("header should show the loaded profile name")
	}
}
