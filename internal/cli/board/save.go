package board

import (
	"fmt"

	"github.com/kms-app/dinnerboard/internal/cli"
	"github.com/kms-app/dinnerboard/internal/sync"
	"github.com/kms-app/dinnerboard/internal/validation"
)

type SaveCmd struct {
	Name       string `help:"Display name to publish under (defaults to the saved nickname)."`
	Passphrase string `help:"Board passphrase (prompted if omitted)." short:"p"`
}

func (cmd *SaveCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Unlock(cmd.Passphrase); err != nil {
		return err
	}

	ctrl, _, err := appCtx.StartSession()
	if err != nil {
		return err
	}

	name := cmd.Name
	if name == "" {
		name, err = appCtx.Store.GetNickname()
		if err != nil {
			return fmt.Errorf("failed to load nickname: %w", err)
		}
	}
	if name == "" {
		return fmt.Errorf("%w: set one with 'dinnerboard nickname <name>' or pass --name", sync.ErrMissingNickname)
	}
	if err := validation.ValidateNickname(name); err != nil {
		return err
	}

	if err := ctrl.Save(name); err != nil {
		return err
	}

	fmt.Printf("Published your plans as %q.\n\n", name)
	fmt.Print(Render(ctrl.Window(), ctrl.Everyone()))
	return nil
}
