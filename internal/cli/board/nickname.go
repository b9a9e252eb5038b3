package board

import (
	"fmt"

	"github.com/kms-app/dinnerboard/internal/cli"
	"github.com/kms-app/dinnerboard/internal/validation"
)

type NicknameCmd struct {
	Name       string `arg:"" optional:"" help:"New display name. Omit to show the current one."`
	Passphrase string `help:"Board passphrase (prompted if omitted)." short:"p"`
}

func (cmd *NicknameCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Unlock(cmd.Passphrase); err != nil {
		return err
	}

	if cmd.Name == "" {
		name, err := appCtx.Store.GetNickname()
		if err != nil {
			return fmt.Errorf("failed to load nickname: %w", err)
		}
		if name == "" {
			fmt.Println("No display name set. Use 'dinnerboard nickname <name>' to set one.")
			return nil
		}
		fmt.Printf("Display name: %s\n", name)
		return nil
	}

	if err := validation.ValidateNickname(cmd.Name); err != nil {
		return err
	}
	if err := appCtx.Store.SaveNickname(cmd.Name); err != nil {
		return fmt.Errorf("failed to save nickname: %w", err)
	}

	fmt.Printf("Display name saved: %s\n", cmd.Name)
	return nil
}
