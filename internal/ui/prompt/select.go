package prompt

import (
	"context"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/raphi011/githooks/internal/ui/styles"
)

// Option is one entry of a selection prompt.
type Option struct {
	Label string
	Key   string // optional single-key shortcut
}

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Index     int
	Cancelled bool
}

type listItem struct {
	title string
	index int
}

func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.title }

type selectModel struct {
	header    string
	list      list.Model
	shortcuts map[string]int
	done      bool
	cancelled bool
	selected  int
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		key := msg.String()
		if idx, ok := m.shortcuts[key]; ok {
			m.selected = idx
			m.done = true
			return m, tea.Quit
		}
		switch key {
		case "enter":
			if item, ok := m.list.SelectedItem().(listItem); ok {
				m.selected = item.index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) content() string {
	if m.done {
		return ""
	}
	if m.header == "" {
		return m.list.View()
	}
	return m.header + "\n" + m.list.View()
}

func (m selectModel) View() tea.View {
	return tea.NewView(m.content())
}

func newSelectModel(header, prompt string, options []Option) selectModel {
	items := make([]list.Item, len(options))
	shortcuts := make(map[string]int)
	for i, opt := range options {
		title := opt.Label
		if opt.Key != "" {
			title = "[" + opt.Key + "] " + opt.Label
			shortcuts[opt.Key] = i
		}
		items[i] = listItem{title: title, index: i}
	}

	// Custom delegate with minimal styling
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)

	l := list.New(items, delegate, 60, min(len(options)+6, 20))
	l.Title = prompt
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return selectModel{
		header:    header,
		list:      l,
		shortcuts: shortcuts,
		selected:  -1,
	}
}

// Select shows header above a list of options and returns the chosen index.
func Select(ctx context.Context, header, prompt string, options []Option, in io.Reader, out io.Writer) (SelectResult, error) {
	if len(options) == 0 {
		return SelectResult{Cancelled: true}, nil
	}

	model := newSelectModel(header, prompt, options)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return SelectResult{}, err
	}
	m := finalModel.(selectModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(options) {
		return SelectResult{Cancelled: true}, nil
	}
	return SelectResult{Index: m.selected}, nil
}
