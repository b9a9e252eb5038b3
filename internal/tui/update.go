package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kms-app/dinnerboard/internal/constants"
	"github.com/kms-app/dinnerboard/internal/gate"
	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case sessionReadyMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = "Failed to start session: " + msg.err.Error()
			return m, nil
		}
		m.ctrl = msg.ctrl
		m.nickname = msg.nickname
		if msg.notice != nil {
			m.notice = msg.notice.Error()
		}
		return m, nil

	case saveDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = "Published."
		}
		return m, nil

	case deleteDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = "Record removed; answers reset to undecided."
		}
		return m, nil

	case refreshDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = ""
		}
		return m, nil

	case cooldownExpiredMsg:
		// The gate clears its own buffer once the cool-down has elapsed;
		// this tick only forces a redraw.
		m.gate.State()
		return m, nil
	}

	switch m.state {
	case constants.StateGate:
		return m.updateGate(msg)
	case constants.StateEditNickname, constants.StateEditTime:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m.updateBoard(msg)
}

func (m Model) updateGate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyRunes:
		var cmd tea.Cmd
		for _, r := range keyMsg.Runes {
			switch m.gate.Input(gate.Token(r)) {
			case gate.StateUnlocked:
				m.state = constants.StateBoard
				m.loading = true
				return m, m.startSession()
			case gate.StateRejected:
				// One-shot delay; the gate re-opens for input on its own once
				// the cool-down has elapsed
				cmd = tea.Tick(m.gate.RemainingCooldown()+50*time.Millisecond, func(time.Time) tea.Msg {
					return cooldownExpiredMsg{}
				})
			}
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.ctrl == nil || m.loading {
		return m, nil
	}

	window := m.ctrl.Window()

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Right):
		if m.cursor < len(window)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Cycle):
		day := window[m.cursor]
		current := m.ctrl.Record()[day]
		if err := m.ctrl.SetAnswer(day, nextStatus(current.Status), current.Time); err != nil {
			m.notice = err.Error()
		} else {
			m.notice = ""
		}

	case key.Matches(keyMsg, m.keys.Time):
		m.formValue = m.ctrl.Record()[window[m.cursor]].Time
		m.form = newTimeForm(&m.formValue)
		m.state = constants.StateEditTime
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Nickname):
		m.formValue = m.nickname
		m.form = newNicknameForm(&m.formValue)
		m.state = constants.StateEditNickname
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Save):
		if m.nickname == "" {
			m.formValue = ""
			m.form = newNicknameForm(&m.formValue)
			m.state = constants.StateEditNickname
			return m, m.form.Init()
		}
		m.loading = true
		m.notice = "Publishing..."
		ctrl, name := m.ctrl, m.nickname
		return m, func() tea.Msg { return saveDoneMsg{err: ctrl.Save(name)} }

	case key.Matches(keyMsg, m.keys.Delete):
		m.state = constants.StateConfirmDelete

	case key.Matches(keyMsg, m.keys.Refresh):
		m.loading = true
		m.notice = "Refreshing..."
		ctrl := m.ctrl
		return m, func() tea.Msg { return refreshDoneMsg{err: ctrl.Refresh()} }

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = constants.StateBoard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case constants.StateEditNickname:
			if err := m.store.SaveNickname(m.formValue); err != nil {
				m.notice = "Failed to save display name: " + err.Error()
			} else {
				m.nickname = m.formValue
				m.notice = "Display name saved."
			}
		case constants.StateEditTime:
			window := m.ctrl.Window()
			day := window[m.cursor]
			current := m.ctrl.Record()[day]
			if err := m.ctrl.SetAnswer(day, current.Status, m.formValue); err != nil {
				m.notice = err.Error()
			} else {
				m.notice = ""
			}
		}
		m.state = constants.StateBoard
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.state = constants.StateBoard
		m.loading = true
		m.notice = "Deleting..."
		ctrl := m.ctrl
		return m, func() tea.Msg { return deleteDoneMsg{err: ctrl.Delete()} }
	case "n", "N", "esc", "q":
		m.state = constants.StateBoard
	}
	return m, nil
}

func nextStatus(s models.AnswerStatus) models.AnswerStatus {
	for i, st := range models.AllStatuses {
		if st == s {
			return models.AllStatuses[(i+1)%len(models.AllStatuses)]
		}
	}
	return models.StatusUndecided
}

func newNicknameForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Display name").
				Description("Shown to everyone on the board").
				Validate(validation.ValidateNickname).
				Value(value),
		),
	)
}

func newTimeForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dinner time").
				Description("Optional HH:MM annotation, empty to clear").
				Validate(validation.ValidateTimeAnnotation).
				Value(value),
		),
	)
}
