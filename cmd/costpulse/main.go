package main

import (
	"fmt"
	"os"

	"github.com/costpulse/costpulse/internal/adapter/driven/aws"
	"github.com/costpulse/costpulse/internal/adapter/driven/config"
	"github.com/costpulse/costpulse/internal/adapter/driven/export"
	"github.com/costpulse/costpulse/internal/adapter/driving/cli"
	"github.com/costpulse/costpulse/internal/domain/repository"
	"github.com/costpulse/costpulse/internal/shared/types"
	"github.com/costpulse/costpulse/pkg/console"
	"github.com/costpulse/costpulse/pkg/version"
)

func main() {
	buildBilling := func(cfg *types.Config, profile, region string) repository.BillingRepository {
		return aws.NewBillingRepository(region, aws.DefaultCredentialChain(cfg, profile))
	}

	app := cli.NewCLIApp(
		version.Version,
		console.NewConsole(),
		config.NewConfigRepository(),
		export.NewExportRepository(),
		buildBilling,
	)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
