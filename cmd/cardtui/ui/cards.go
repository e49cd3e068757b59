package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pageSize = 15

type CardsModel struct {
	Client *Client
	Table  table.Model
	Page   int
	Err    error
}

func NewCardsModel(c *Client, height int) CardsModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 30},
		{Title: "Status", Width: 12},
		{Title: "Color", Width: 8},
		{Title: "Created By", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 5)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return CardsModel{Client: c, Table: t}
}

type cardsLoadedMsg struct {
	Cards []Card
	Err   error
}

func (m CardsModel) loadCmd() tea.Msg {
	cards, err := m.Client.ListCards(m.Page, pageSize)
	return cardsLoadedMsg{Cards: cards, Err: err}
}

func (m CardsModel) Init() tea.Cmd {
	return m.loadCmd
}

func (m CardsModel) Update(msg tea.Msg) (CardsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.loadCmd
		case "right", "n":
			m.Page++
			return m, m.loadCmd
		case "left", "p":
			if m.Page > 0 {
				m.Page--
				return m, m.loadCmd
			}
		case "q":
			return m, tea.Quit
		}

	case cardsLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Err = nil
		rows := make([]table.Row, 0, len(msg.Cards))
		for _, c := range msg.Cards {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", c.ID), c.Name, c.Status, c.Color, c.CreatedBy,
			})
		}
		m.Table.SetRows(rows)
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m CardsModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("Cards - page %d", m.Page))
	footer := blurredStyle.Render("r refresh · ←/→ page · q quit")
	body := m.Table.View()
	if m.Err != nil {
		body = errorMessageStyle(m.Err.Error())
	}
	return docStyle.Render(header + "\n\n" + body + "\n\n" + footer)
}
