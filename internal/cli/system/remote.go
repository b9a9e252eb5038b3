package system

import (
	"errors"
	"fmt"

	"github.com/kms-app/dinnerboard/internal/cli"
	"github.com/kms-app/dinnerboard/internal/identity"
	"github.com/kms-app/dinnerboard/internal/remote/postgres"
)

type RemoteCmd struct {
	Set   *RemoteSetCmd   `cmd:"" help:"Store the shared store connection string in the OS keyring."`
	Show  *RemoteShowCmd  `cmd:"" help:"Show whether a connection string is stored."`
	Clear *RemoteClearCmd `cmd:"" help:"Remove the stored connection string."`
}

type RemoteSetCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string (without embedded password)."`
}

func (cmd *RemoteSetCmd) Run(ctx *cli.Context) error {
	if ok, err := postgres.ValidateConnString(cmd.ConnStr); !ok {
		return err
	}
	if err := identity.SetConnectionString(cmd.ConnStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in the OS keyring.")
	return nil
}

type RemoteShowCmd struct{}

func (cmd *RemoteShowCmd) Run(ctx *cli.Context) error {
	connStr, err := identity.GetConnectionString()
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Printf("Connection string stored (%d characters).\n", len(connStr))
	return nil
}

type RemoteClearCmd struct{}

func (cmd *RemoteClearCmd) Run(ctx *cli.Context) error {
	if err := identity.DeleteConnectionString(); err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from the OS keyring.")
	return nil
}
