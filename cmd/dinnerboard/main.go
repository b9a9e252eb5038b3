package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/kms-app/dinnerboard/internal/cli"
	"github.com/kms-app/dinnerboard/internal/cli/board"
	"github.com/kms-app/dinnerboard/internal/cli/system"
	"github.com/kms-app/dinnerboard/internal/constants"
	apperrors "github.com/kms-app/dinnerboard/internal/errors"
	"github.com/kms-app/dinnerboard/internal/identity"
	"github.com/kms-app/dinnerboard/internal/logger"
	"github.com/kms-app/dinnerboard/internal/remote"
	"github.com/kms-app/dinnerboard/internal/remote/postgres"
	"github.com/kms-app/dinnerboard/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Local database path." type:"string" default:"~/.config/dinnerboard/dinnerboard.db"`
	Remote  string `help:"Shared store connection string. Credentials must NOT be embedded; store them with 'dinnerboard remote set' or use .pgpass." env:"DINNERBOARD_REMOTE"`
	Debug   bool   `help:"Enable debug logging."`

	Init       system.InitCmd    `cmd:"" help:"Initialize dinnerboard storage."`
	Tui        system.TuiCmd     `cmd:"" help:"Launch the interactive board." default:"1"`
	Show       board.ShowCmd     `cmd:"" help:"Print everyone's dinner plans."`
	Set        board.SetCmd      `cmd:"" help:"Set your answer for a day."`
	Save       board.SaveCmd     `cmd:"" help:"Publish your answers to the shared board."`
	Delete     board.DeleteCmd   `cmd:"" help:"Remove your record from the shared board."`
	Nickname   board.NicknameCmd `cmd:"" help:"Show or change your display name."`
	RemoteConn system.RemoteCmd  `cmd:"" name:"remote" help:"Manage the shared store connection string."`
	Doctor     system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	DebugInfo  system.DebugCmd   `cmd:"" hidden:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Shared dinner-plan board for a small household"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandPath(CLI.Config)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(configPath)

	appCtx := &cli.Context{
		Store:    store,
		Remote:   resolveRemote(CLI.Remote),
		Identity: identity.NewKeyringProvider(),
		Debug:    CLI.Debug,
	}
	defer appCtx.Remote.Close()

	// Load the store before running the command (init handles its own setup,
	// and remote subcommands only touch the keyring)
	command := ctx.Command()
	if command != "init" && !strings.HasPrefix(command, "remote ") && command != "remote" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Remote.Close()
		store.Close()
		apperrors.Fatal(err)
	}
}

// resolveRemote picks the shared store connection string: the flag (or its
// environment variable) wins, then the OS keyring. Without either, remote
// operations report that no shared store is configured.
func resolveRemote(flag string) remote.Store {
	connStr := flag
	if connStr == "" {
		stored, err := identity.GetConnectionString()
		if err == nil {
			connStr = stored
		}
	}
	if connStr == "" {
		return remote.Unconfigured()
	}

	if ok, err := postgres.ValidateConnString(connStr); !ok {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			fmt.Fprintf(os.Stderr, "       Store credentials securely instead:\n")
			fmt.Fprintf(os.Stderr, "       1. OS keyring:    %s remote set \"postgresql://user@host:5432/%s\"\n", constants.AppName, constants.AppName)
			fmt.Fprintf(os.Stderr, "       2. .pgpass file:  keep the password out of the connection string\n")
		}
		os.Exit(1)
	}

	return postgres.New(connStr)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
