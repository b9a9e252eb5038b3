package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kms-app/dinnerboard/internal/gate"
	"github.com/kms-app/dinnerboard/internal/identity"
	"github.com/kms-app/dinnerboard/internal/logger"
	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/remote"
	"github.com/kms-app/dinnerboard/internal/storage"
	"github.com/kms-app/dinnerboard/internal/sync"
	"github.com/kms-app/dinnerboard/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Remote   remote.Store
	Identity identity.Provider
	Debug    bool
}

// Unlock runs the access gate against the stored passphrase. Commands that
// touch answer state call this before doing anything else. An empty
// passphrase argument prompts on stdin.
func (c *Context) Unlock(passphrase string) error {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if passphrase == "" {
		fmt.Print("Passphrase: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read passphrase: %w", err)
		}
		passphrase = strings.TrimRight(line, "\r\n")
	}

	g := gate.New(gate.Config{Sequence: gate.Tokens(settings.Passphrase)})
	for _, tok := range gate.Tokens(passphrase) {
		g.Input(tok)
	}
	if !g.Unlocked() {
		logger.Warn("Gate rejected passphrase attempt")
		return fmt.Errorf("wrong passphrase")
	}
	return nil
}

// StartSession builds the synchronization controller for this session:
// window fixed at today in the configured timezone, cached answers
// reconciled, shared snapshot fetched. Non-fatal start notices (offline
// identity, unreachable shared store) are printed and the session continues.
func (c *Context) StartSession() (*sync.Controller, models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return nil, models.Settings{}, err
	}

	// Open the shared store connection before the controller touches it.
	// sql.Open does not dial, so an unreachable server still surfaces later
	// as the usual remote notice rather than failing the session here.
	if err := c.Remote.Load(); err != nil {
		logger.Debug("Shared store unavailable at session start", "error", err)
	}

	ctrl := sync.New(c.Store, c.Remote, c.Identity)
	if err := ctrl.Start(now, settings.WindowDays); err != nil {
		if ctrl.Phase() != sync.PhaseReady {
			return nil, models.Settings{}, err
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return ctrl, settings, nil
}
