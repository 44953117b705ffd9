package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/roster/internal/cli"
	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/errors"
	"github.com/julianstephens/roster/internal/holidays"
	"github.com/julianstephens/roster/internal/logger"
	"github.com/julianstephens/roster/internal/storage/postgres"
)

// openStore is replaced in tests
var openStore = cli.OpenStore

type CLI struct {
	Version       kong.VersionFlag
	Config        string `help:"Database path (.db for SQLite, .json for a JSON file), 'keyring', or a PostgreSQL connection string without password. Passwords belong in the OS keyring or ROSTER_DB_CONNECTION." type:"string" env:"ROSTER_CONFIG" default:"${config}"`
	HolidaySource string `help:"Holiday source: builtin, http or a path to a YAML file." env:"ROSTER_HOLIDAYS" default:"builtin"`
	Verbose       bool   `help:"Write debug output to the log file." short:"v"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize roster storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive grid." default:"1"`
	Show     cli.ShowCmd     `cmd:"" help:"Print the roster."`
	Set      cli.SetCmd      `cmd:"" help:"Set one cell."`
	Clear    cli.ClearCmd    `cmd:"" help:"Clear one cell."`
	Fill     cli.FillCmd     `cmd:"" help:"Fill an employee's week with one value."`
	FillDay  cli.FillDayCmd  `cmd:"" name:"fill-day" help:"Fill one weekday for every employee."`
	Employee cli.EmployeeCmd `cmd:"" help:"Manage employees."`
	Rebase   cli.RebaseCmd   `cmd:"" help:"Move the week window to a new start date."`
	Export   cli.ExportCmd   `cmd:"" help:"Export the roster as CSV or Excel."`
	Import   cli.ImportCmd   `cmd:"" help:"Import assignments from CSV or Excel."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change settings."`
	Holidays cli.HolidaysCmd `cmd:"" help:"List the public holidays of the visible weeks."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show assignment counts."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Validate cli.ValidateCmd `cmd:"" help:"Check the stored roster for problems."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
}

// configDir is where logs live: next to a file database, or the default
// directory for PostgreSQL and keyring configurations.
func configDir(config string) string {
	if config == cli.KeyringConfig || postgres.IsConnString(config) {
		return filepath.Dir(cli.ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(cli.ExpandPath(config))
}

func newParser(args *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Calendar-anchored weekly staff roster"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	}, options...)
	return kong.New(args, options...)
}

// run opens the configured store and holiday source and executes the
// selected command.
func run(args *CLI, kctx *kong.Context, out io.Writer) error {
	store, err := openStore(args.Config, args.Config == constants.DefaultConfigPath)
	if err != nil {
		return err
	}

	provider, err := holidays.NewProvider(args.HolidaySource)
	if err != nil {
		_ = store.Close()
		return err
	}

	appCtx := &cli.Context{
		Store:    store,
		Holidays: provider,
		Out:      out,
	}

	err = kctx.Run(appCtx)
	if closeErr := appCtx.Close(); err == nil {
		err = closeErr
	}
	return err
}

func main() {
	var args CLI
	parser, err := newParser(&args)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := logger.Init(logger.Config{Debug: args.Verbose, ConfigDir: configDir(args.Config)}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	err = run(&args, kctx, os.Stdout)
	if err != nil {
		logger.Error("Command failed", "error", err)
	}
	// Fatal exits without running deferred calls, so the log is closed first
	_ = logger.Close()
	errors.Fatal(err)
}
