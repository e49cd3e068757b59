package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateCards
)

type RootModel struct {
	State    state
	Client   *Client
	Login    LoginModel
	Cards    CardsModel
	Quitting bool
	width    int
	height   int
}

func NewRootModel(c *Client) RootModel {
	return RootModel{
		State:  stateLogin,
		Client: c,
		Login:  NewLoginModel(c),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.State == stateCards {
			m.Cards.Table.SetHeight(max(msg.Height-10, 5))
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case loginResultMsg:
		if msg.Err != nil {
			m.Login.Err = msg.Err
			return m, nil
		}
		m.State = stateCards
		m.Cards = NewCardsModel(m.Client, m.height)
		return m, m.Cards.Init()
	}

	switch m.State {
	case stateLogin:
		newLogin, cmd := m.Login.Update(msg)
		m.Login = newLogin
		cmds = append(cmds, cmd)
	case stateCards:
		newCards, cmd := m.Cards.Update(msg)
		m.Cards = newCards
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateCards:
		return m.Cards.View()
	}
	return ""
}
