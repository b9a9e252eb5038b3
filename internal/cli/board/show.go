package board

import (
	"fmt"

	"github.com/kms-app/dinnerboard/internal/cli"
)

type ShowCmd struct {
	Passphrase string `help:"Board passphrase (prompted if omitted)." short:"p"`
}

func (cmd *ShowCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Unlock(cmd.Passphrase); err != nil {
		return err
	}

	ctrl, _, err := appCtx.StartSession()
	if err != nil {
		return err
	}

	fmt.Println(Legend())
	fmt.Println()
	fmt.Print(Render(ctrl.Window(), ctrl.Everyone()))
	return nil
}
