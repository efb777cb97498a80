package ui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbarron/m365prof/internal/profile"
	"github.com/tbarron/m365prof/internal/store"
)

// ViewState represents the current view in the profile browser.
type ViewState int

const (
	ProfileListView ViewState = iota
	DetailView
	ConfirmDeleteView
)

// Model represents the profile browser state.
type Model struct {
	store       store.Store
	view        ViewState
	width       int
	height      int
	profileList list.Model
	profiles    []profile.Info
	attrList    list.Model
	selected    *profile.Details
	status      string
	err         error
	help        help.Model
	keys        keyMap
}

type profilesLoadedMsg struct {
	profiles []profile.Info
	err      error
}

type detailLoadedMsg struct {
	details *profile.Details
	err     error
}

type removeDoneMsg struct {
	name string
	err  error
}

// NewModel creates a profile browser over the provided store.
func NewModel(s store.Store) *Model {
	return &Model{
		store: s,
		view:  ProfileListView,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init loads the profile listing from the store.
func (m *Model) Init() tea.Cmd {
	return m.loadProfiles()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.profileList.SetSize(msg.Width-4, msg.Height-8)
		m.attrList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ProfileListView:
			return m.handleProfileListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case profilesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.profiles = msg.profiles
		items := make([]list.Item, len(msg.profiles))
		for i, p := range msg.profiles {
			items[i] = profileItem{info: p}
		}
		m.profileList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.profileList.Title = "Provisioned Profiles"
		m.profileList.SetSize(m.width-4, m.height-8)
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ProfileListView
			return m, nil
		}
		m.selected = msg.details
		items := attrItems(msg.details)
		m.attrList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.attrList.Title = msg.details.Name
		m.attrList.SetSize(m.width-4, m.height-8)
		m.view = DetailView
		return m, nil

	case removeDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ProfileListView
			return m, nil
		}
		m.status = fmt.Sprintf("Removed %s", msg.name)
		m.selected = nil
		m.view = ProfileListView
		return m, m.loadProfiles()
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ProfileListView:
		return m.renderProfileList()
	case DetailView:
		return m.renderDetail()
	case ConfirmDeleteView:
		return m.renderConfirmDelete()
	default:
		return ""
	}
}

func (m *Model) handleProfileListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if p, ok := m.selectedProfile(); ok {
			return m, m.loadDetail(p.Name)
		}
	case "x":
		if p, ok := m.selectedProfile(); ok {
			m.selected = &profile.Details{Info: p}
			m.view = ConfirmDeleteView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.profileList, cmd = m.profileList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ProfileListView
		return m, nil
	case "x":
		m.view = ConfirmDeleteView
		return m, nil
	}

	var cmd tea.Cmd
	m.attrList, cmd = m.attrList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = ProfileListView
		return m, nil
	case "y":
		name := m.selected.Name
		return m, m.removeProfile(name)
	}
	return m, nil
}

func (m *Model) selectedProfile() (profile.Info, bool) {
	item := m.profileList.SelectedItem()
	if item == nil {
		return profile.Info{}, false
	}
	p, ok := item.(profileItem)
	return p.info, ok
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ProfileListView:
		m.profileList, cmd = m.profileList.Update(msg)
	case DetailView:
		m.attrList, cmd = m.attrList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadProfiles() tea.Cmd {
	return func() tea.Msg {
		profiles, err := profile.List(m.store)
		return profilesLoadedMsg{profiles: profiles, err: err}
	}
}

func (m *Model) loadDetail(name string) tea.Cmd {
	return func() tea.Msg {
		details, err := profile.Inspect(m.store, name)
		return detailLoadedMsg{details: details, err: err}
	}
}

func (m *Model) removeProfile(name string) tea.Cmd {
	return func() tea.Msg {
		return removeDoneMsg{name: name, err: profile.Remove(m.store, name)}
	}
}

func attrItems(d *profile.Details) []list.Item {
	items := make([]list.Item, 0, len(d.Account)+len(d.Service))
	for _, name := range sortedKeys(d.Account) {
		items = append(items, attrItem{section: "account", name: name, value: d.Account[name]})
	}
	for _, name := range sortedKeys(d.Service) {
		items = append(items, attrItem{section: "service", name: name, value: d.Service[name]})
	}
	return items
}

func sortedKeys(m map[string]store.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Model) renderProfileList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.remove, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var status string
	if m.status != "" {
		status = styles.ok.Render(m.status) + "\n\n"
	}
	return fmt.Sprintf("%s%s\n\n%s", status, m.profileList.View(), helpView)
}

func (m *Model) renderDetail() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.remove, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.attrList.View(), helpView)
}

func (m *Model) renderConfirmDelete() string {
	title := styles.title.Render(fmt.Sprintf("Remove profile '%s'?", m.selected.Name))
	info := styles.warn.Render("This deletes the profile from both settings trees and cannot be undone.")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
