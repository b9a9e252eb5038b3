package system

import (
	"fmt"
	"time"

	"github.com/kms-app/dinnerboard/internal/cli"
	"github.com/kms-app/dinnerboard/internal/identity"
	"github.com/kms-app/dinnerboard/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: Local database reachable
	settingsOK := false
	if _, err := ctx.Store.GetSettings(); err != nil {
		fmt.Printf("❌ Local database: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Local database: OK\n")
		settingsOK = true
	}

	// Check 2: Timezone setting valid
	if settingsOK {
		if err := checkTimezone(ctx); err != nil {
			fmt.Printf("❌ Timezone setting: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Timezone setting: OK\n")
		}
	} else {
		fmt.Printf("⊘ Timezone setting: SKIPPED (local database not reachable)\n")
	}

	// Check 3: OS keyring available (warning only; identity falls back to offline)
	if identity.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; no owner identity can be established, so publishing is disabled.\n")
	}

	// Check 4: Shared store reachable
	if err := checkRemote(ctx); err != nil {
		fmt.Printf("⚠ Shared store: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Shared store: OK\n")
	}

	// Check 5: Clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	return nil
}

func checkRemote(ctx *cli.Context) error {
	if err := ctx.Remote.Load(); err != nil {
		return err
	}
	defer ctx.Remote.Close()
	if _, err := ctx.Remote.GetAllRecords(); err != nil {
		return err
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}
