package system

import (
	"encoding/json"
	"fmt"

	"github.com/kms-app/dinnerboard/internal/cli"
)

type DebugCmd struct {
	DBPath      *DebugDBPathCmd      `cmd:"" help:"Show database path."`
	DumpAnswers *DebugDumpAnswersCmd `cmd:"" help:"Dump cached answers as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpAnswersCmd struct{}

func (cmd *DebugDumpAnswersCmd) Run(ctx *cli.Context) error {
	ownerID, err := ctx.Identity.Establish()
	if err != nil {
		return fmt.Errorf("failed to establish identity: %w", err)
	}

	rec, err := ctx.Store.GetAnswers(ownerID)
	if err != nil {
		return fmt.Errorf("failed to load cached answers: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
