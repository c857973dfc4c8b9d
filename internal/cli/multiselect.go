package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
)

// tagItem represents a selectable deployment tag in the multi-select
type tagItem struct {
	tag      string
	selected bool
}

// multiSelectModel is the bubbletea model for multi-select
type multiSelectModel struct {
	items     []tagItem
	cursor    int
	title     string
	done      bool
	cancelled bool
}

func initialMultiSelectModel(tags []string, title string) multiSelectModel {
	items := make([]tagItem, len(tags))
	for i, tag := range tags {
		items[i] = tagItem{tag: tag}
	}
	return multiSelectModel{
		items: items,
		title: title,
	}
}

// Init is the initial command for bubbletea
func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		m.items[m.cursor].selected = !m.items[m.cursor].selected
	case "enter":
		if len(m.selectedTags()) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the UI
func (m multiSelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if item.selected {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		fmt.Fprintf(&b, "%s %s %s\n", cursor, checkbox, item.tag)
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  Enter: confirm  q: quit\n"))

	return b.String()
}

func (m multiSelectModel) selectedTags() []string {
	var tags []string
	for _, item := range m.items {
		if item.selected {
			tags = append(tags, item.tag)
		}
	}
	return tags
}

// SelectTags shows a multi-select interface and returns the chosen tags
func SelectTags(tags []string, title string) ([]string, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("no tags to select")
	}

	p := tea.NewProgram(initialMultiSelectModel(tags, title))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	m := finalModel.(multiSelectModel)
	if m.cancelled || !m.done {
		return nil, fmt.Errorf("selection cancelled")
	}

	return m.selectedTags(), nil
}
