package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/costpulse/costpulse/internal/application/usecase"
	"github.com/costpulse/costpulse/internal/domain/repository"
	"github.com/costpulse/costpulse/internal/shared/types"
	"github.com/costpulse/costpulse/pkg/version"
)

// BillingFactory builds the billing repository for one run, after the
// profile and region for that run are known.
type BillingFactory func(cfg *types.Config, profile, region string) repository.BillingRepository

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	console      types.ConsoleInterface
	configRepo   repository.ConfigRepository
	exportRepo   repository.ExportRepository
	buildBilling BillingFactory
	version      string
}

// NewCLIApp creates the CLI application with its dependencies.
func NewCLIApp(
	versionStr string,
	console types.ConsoleInterface,
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	buildBilling BillingFactory,
) *CLIApp {
	app := &CLIApp{
		console:      console,
		configRepo:   configRepo,
		exportRepo:   exportRepo,
		buildBilling: buildBilling,
		version:      versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "costpulse",
		Short:   "AWS spending summary for your terminal",
		Long:    "CostPulse shows the account's month-to-date spend, the forecast for the current month, and how both compare to last month.",
		Version: formattedVersion,
		RunE:    app.runSummary,
	}
	rootCmd.SetVersionTemplate(`{{printf "CostPulse version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "Named AWS profile to read credentials from")
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region for the STS endpoint (default: us-east-1)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Base name for report files (no report is written without it)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Report types to write: csv, json, pdf, html")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save report files (default: current directory)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("debug", false, "Print the computed query windows and debug messages")

	rootCmd.Flags().StringP("schedule", "s", "", "Cron expression to refresh the summary on, e.g. \"@hourly\"")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show monthly cost history with statistics and trend",
		RunE:  app.runHistory,
	}
	historyCmd.Flags().IntP("months", "m", 6, "Number of months to include (max 24)")
	rootCmd.AddCommand(historyCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs reads the command-line flags into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	profile, _ := cmd.Flags().GetString("profile")
	region, _ := cmd.Flags().GetString("region")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	dir, _ := cmd.Flags().GetString("dir")
	months, _ := cmd.Flags().GetInt("months")
	schedule, _ := cmd.Flags().GetString("schedule")
	noColor, _ := cmd.Flags().GetBool("no-color")
	debug, _ := cmd.Flags().GetBool("debug")

	return &types.CLIArgs{
		ConfigFile: configFile,
		Profile:    profile,
		Region:     region,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Months:     months,
		Schedule:   schedule,
		NoColor:    noColor,
		Debug:      debug,
	}, nil
}

// loadArgs parses the flags, folds in the configuration file when one
// is given, and normalizes the output directory. Flags win over the
// file; the file wins over defaults.
func (app *CLIApp) loadArgs(cmd *cobra.Command) (*types.CLIArgs, *types.Config, error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, nil, err
	}

	var cfg *types.Config
	if args.ConfigFile != "" {
		cfg, err = app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, nil, err
		}
		applyConfig(args, cfg, cmd)
	}

	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, nil, err
		}
		args.Dir = absDir
	}

	return args, cfg, nil
}

// applyConfig fills in the args a flag did not set explicitly.
func applyConfig(args *types.CLIArgs, cfg *types.Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if !flags.Changed("profile") && cfg.Profile != "" {
		args.Profile = cfg.Profile
	}
	if !flags.Changed("region") && cfg.Region != "" {
		args.Region = cfg.Region
	}
	if !flags.Changed("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if !flags.Changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !flags.Changed("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}
	if !flags.Changed("months") && cfg.Months > 0 {
		args.Months = cfg.Months
	}
	if !flags.Changed("schedule") && cfg.Schedule != "" {
		args.Schedule = cfg.Schedule
	}
}

// applyOutputFlags turns global output switches into console state.
func applyOutputFlags(args *types.CLIArgs) {
	if args.NoColor {
		color.NoColor = true
		pterm.DisableColor()
	}
	if args.Debug {
		pterm.EnableDebugMessages()
	}
}

// runSummary is the entry point of the root command.
func (app *CLIApp) runSummary(cmd *cobra.Command, _ []string) error {
	args, cfg, err := app.loadArgs(cmd)
	if err != nil {
		return err
	}
	applyOutputFlags(args)

	displayWelcomeBanner(app.version)
	go version.CheckLatestVersion(app.version)

	summary := usecase.NewSummaryUseCase(app.buildBilling(cfg, args.Profile, args.Region), app.exportRepo, app.console)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if args.Schedule != "" {
		return summary.RunOnSchedule(ctx, args, args.Schedule)
	}
	return summary.Run(ctx, args)
}

// runHistory is the entry point of the history subcommand.
func (app *CLIApp) runHistory(cmd *cobra.Command, _ []string) error {
	args, cfg, err := app.loadArgs(cmd)
	if err != nil {
		return err
	}
	applyOutputFlags(args)

	displayWelcomeBanner(app.version)
	go version.CheckLatestVersion(app.version)

	history := usecase.NewHistoryUseCase(app.buildBilling(cfg, args.Profile, args.Region), app.exportRepo, app.console)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return history.Run(ctx, args)
}
