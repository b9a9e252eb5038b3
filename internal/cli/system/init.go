package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/kms-app/dinnerboard/internal/cli"
	"github.com/kms-app/dinnerboard/internal/remote"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing local database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized dinnerboard storage at: %s\n", ctx.Store.GetConfigPath())

	// Set up the shared store schema when a connection is configured
	if err := ctx.Remote.Init(); err != nil {
		if errors.Is(err, remote.ErrNotConfigured) {
			fmt.Println("No shared store configured yet; only local editing is available.")
			fmt.Println("Configure one with 'dinnerboard remote set <connection-string>'.")
			return nil
		}
		return fmt.Errorf("failed to initialize shared store: %w", err)
	}
	defer ctx.Remote.Close()
	fmt.Println("Shared store ready.")

	return nil
}
