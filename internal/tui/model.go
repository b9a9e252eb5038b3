package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kms-app/dinnerboard/internal/constants"
	"github.com/kms-app/dinnerboard/internal/gate"
	"github.com/kms-app/dinnerboard/internal/identity"
	"github.com/kms-app/dinnerboard/internal/logger"
	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/remote"
	"github.com/kms-app/dinnerboard/internal/storage"
	"github.com/kms-app/dinnerboard/internal/sync"
	"github.com/kms-app/dinnerboard/internal/utils"
)

type Model struct {
	store    storage.Provider
	remote   remote.Store
	ident    identity.Provider
	settings models.Settings

	state constants.SessionState
	keys  KeyMap
	help  help.Model

	gate *gate.Gate

	ctrl     *sync.Controller
	loading  bool
	nickname string
	cursor   int
	notice   string

	form      *huh.Form
	formValue string

	quitting bool
	width    int
	height   int
}

// Messages produced by one-shot async completions
type sessionReadyMsg struct {
	ctrl     *sync.Controller
	nickname string
	notice   error
	err      error
}

type saveDoneMsg struct{ err error }
type deleteDoneMsg struct{ err error }
type refreshDoneMsg struct{ err error }
type cooldownExpiredMsg struct{}

func NewModel(store storage.Provider, rem remote.Store, ident identity.Provider, settings models.Settings) Model {
	cooldown := time.Duration(settings.GateCooldownSec) * time.Second
	g := gate.NewFromPassphrase(settings.Passphrase, cooldown)

	state := constants.StateGate
	if g.Unlocked() {
		// Empty passphrase configured: nothing to gate
		state = constants.StateBoard
	}

	return Model{
		store:    store,
		remote:   rem,
		ident:    ident,
		settings: settings,
		state:    state,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		gate:     g,
		loading:  state == constants.StateBoard,
	}
}

func (m Model) Init() tea.Cmd {
	if m.state == constants.StateBoard {
		return m.startSession()
	}
	return nil
}

// startSession builds and starts the synchronization controller off the UI
// loop. Start notices (offline identity, unreachable shared store) come back
// with a usable controller; only a cache failure is fatal to the session.
func (m Model) startSession() tea.Cmd {
	store, rem, ident, settings := m.store, m.remote, m.ident, m.settings
	return func() tea.Msg {
		now, err := utils.NowInTimezone(settings.Timezone)
		if err != nil {
			return sessionReadyMsg{err: err}
		}

		// Open the shared store connection before the controller touches it;
		// a failure here degrades to the usual snapshot-refresh notice.
		if err := rem.Load(); err != nil {
			logger.Debug("Shared store unavailable at session start", "error", err)
		}

		ctrl := sync.New(store, rem, ident)
		startErr := ctrl.Start(now, settings.WindowDays)
		if startErr != nil && ctrl.Phase() != sync.PhaseReady {
			return sessionReadyMsg{err: startErr}
		}

		name, _ := store.GetNickname()
		return sessionReadyMsg{ctrl: ctrl, nickname: name, notice: startErr}
	}
}
