package board

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kms-app/dinnerboard/internal/cli"
	"github.com/kms-app/dinnerboard/internal/remote"
)

type DeleteCmd struct {
	Yes        bool   `help:"Skip the confirmation prompt."`
	Passphrase string `help:"Board passphrase (prompted if omitted)." short:"p"`
}

func (cmd *DeleteCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Unlock(cmd.Passphrase); err != nil {
		return err
	}

	if !cmd.Yes {
		fmt.Print("Really remove your record from the shared board? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctrl, _, err := appCtx.StartSession()
	if err != nil {
		return err
	}

	if err := ctrl.Delete(); err != nil {
		if errors.Is(err, remote.ErrRecordNotFound) {
			fmt.Println("Nothing to remove: no record published for this device.")
			return nil
		}
		return err
	}

	fmt.Println("Removed your record. Your local answers were reset to undecided.")
	return nil
}
