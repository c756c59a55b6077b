package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/angas/elpris-go/config"
	"github.com/angas/elpris-go/database"
	"github.com/angas/elpris-go/elprisetjustnu"
	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/logging"
	"github.com/angas/elpris-go/nordpool"
	"github.com/angas/elpris-go/pipeline"
	"github.com/angas/elpris-go/provider"
	"github.com/angas/elpris-go/report"
	"github.com/angas/elpris-go/series"
	"github.com/angas/elpris-go/types"
	"github.com/angas/elpris-go/types/maybe"
	"github.com/spf13/pflag"
)

var Version = "?.?.?"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Charging window lengths offered on the command line.
var chargingDurations = []int{2, 4, 8}

const usage = `Usage:
  elpris --zone SE3 [--date YYYY-MM-DD] [--charging 2h|4h|8h] [--sorted]

Options:
`

func main() {
	defer func() {
		if err := recover(); err != nil {
			slog.Default().Error("application panicked", slog.Any("error", err))
			os.Exit(exitError)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("elpris", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	configPath := flags.String("config", "", "path to config file")
	flags.String("zone", "", "price zone SE1|SE2|SE3|SE4 (required unless set in config)")
	dateArg := flags.String("date", "", "first day YYYY-MM-DD, defaults to today")
	chargingArg := flags.String("charging", "", "find the cheapest charging window of 2h, 4h or 8h")
	flags.Bool("sorted", false, "list hours by price, most expensive first")
	flags.String("locale", report.LocalePlain, `number format, "plain" or a locale such as sv-SE`)
	flags.String("unit", string(report.UnitSEK), "price unit, sek or ore")
	logEntries := flags.Int("log-entries", 0, "print the latest N log entries from the log database and exit")
	showVersion := flags.Bool("version", false, "print version and exit")
	help := flags.BoolP("help", "h", false, "show this help")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *help {
		flags.Usage()
		return exitOK
	}
	if *showVersion {
		fmt.Fprintln(stdout, Version)
		return exitOK
	}

	cnfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return exitError
	}

	logger := slog.New(logging.NewConsoleHandler(stderr, cnfg.Logging.GetConsoleLevel()))

	var db *database.Database
	if cnfg.Logging.DbPath != "" {
		db, err = database.New(ctx, cnfg.Logging.DbPath)
		if err != nil {
			logger.Error("failed to open log database", slog.Any("error", err))
			return exitError
		}
		defer db.Close()

		logger = slog.New(logging.NewMultiHandler(
			logging.NewConsoleHandler(stderr, cnfg.Logging.GetConsoleLevel()),
			logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
		db.SetLogger(logger.With(slog.String("module", "database")))

		defer func() {
			if _, err := db.PurgeLog(context.Background(), cnfg.Logging.GetDbMaxEntries()); err != nil {
				logger.Warn("failed to purge log", slog.Any("error", err))
			}
		}()
	}
	logger.Debug("elpris is starting...", slog.String("version", Version))

	unit, err := report.ParseUnit(cnfg.Display.Unit)
	if err != nil {
		return usageError(stderr, flags, err)
	}
	printer, err := report.New(stdout, report.Options{
		Locale:        cnfg.Display.Locale,
		Unit:          unit,
		ChargingPower: cnfg.Charging.Power,
		EnergyTax:     cnfg.EnergyPrice.Tax,
		GridBenefit:   cnfg.EnergyPrice.GridBenefit,
	})
	if err != nil {
		return usageError(stderr, flags, err)
	}

	if *logEntries > 0 {
		if db == nil {
			return usageError(stderr, flags, errors.New("--log-entries needs logging.db_path in the config"))
		}
		entries, err := db.TailLog(ctx, database.LogQuery{MinLevel: slog.LevelDebug, Limit: *logEntries})
		if err != nil {
			logger.Error("failed to read log entries", slog.Any("error", err))
			return exitError
		}
		if err := printer.PrintLogEntries(entries); err != nil {
			logger.Error("failed to print log entries", slog.Any("error", err))
			return exitError
		}
		return exitOK
	}

	opts, err := pipelineOptions(cnfg, flags.Changed("date"), *dateArg, flags.Changed("charging"), *chargingArg)
	if err != nil {
		return usageError(stderr, flags, err)
	}
	opts.Logger = logger

	httpClient := &http.Client{Timeout: cnfg.Price.GetHttpTimeout()}
	source := provider.NewFallback(logger,
		provider.Named{Name: "elprisetjustnu", Source: elprisetjustnu.New(cnfg.Price.PrimaryURL, httpClient)}, // Primary provider
		provider.Named{Name: "nordpool", Source: nordpool.New(cnfg.Price.SecondaryURL, httpClient)},           // Secondary provider
	)

	result, err := pipeline.Run(ctx, source, opts)
	if err != nil {
		logger.Error("failed to analyze prices", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if err := printer.Print(result); err != nil {
		logger.Error("failed to print report", slog.Any("error", err))
		return exitError
	}
	return exitOK
}

func pipelineOptions(cnfg *config.AppConfig, dateGiven bool, dateArg string, chargingGiven bool, chargingArg string) (pipeline.Options, error) {
	if cnfg.Price.Zone == "" {
		return pipeline.Options{}, errors.New("--zone is required")
	}
	zone, err := types.ParseZone(cnfg.Price.Zone)
	if err != nil {
		return pipeline.Options{}, err
	}

	loc, err := hours.LoadLocation(cnfg.Display.GetTimezone())
	if err != nil {
		return pipeline.Options{}, err
	}

	date := hours.Today(loc)
	if dateGiven {
		if date, err = hours.ParseDate(dateArg, loc); err != nil {
			return pipeline.Options{}, err
		}
	}

	mode, err := series.ParseDisplayMode(cnfg.Display.Mode)
	if err != nil {
		return pipeline.Options{}, err
	}

	charging := maybe.FromPointer(cnfg.Charging.Hours)
	if chargingGiven {
		h, err := parseChargingHours(chargingArg)
		if err != nil {
			return pipeline.Options{}, err
		}
		charging = maybe.Some(h)
	} else if h, ok := charging.Get(); ok && !slices.Contains(chargingDurations, h) {
		return pipeline.Options{}, fmt.Errorf("unsupported charging window of %d hours in config, use 2, 4 or 8", h)
	}

	return pipeline.Options{
		Zone:          zone,
		Date:          date,
		Location:      loc,
		DisplayMode:   mode,
		ChargingHours: charging,
	}, nil
}

// parseChargingHours accepts "2h", "4h", "8h" and the bare numbers.
func parseChargingHours(s string) (int, error) {
	h, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "h"))
	if err != nil || !slices.Contains(chargingDurations, h) {
		return 0, fmt.Errorf("unsupported charging window %q, use 2h, 4h or 8h", s)
	}
	return h, nil
}

func usageError(stderr io.Writer, flags *pflag.FlagSet, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	flags.Usage()
	return exitUsage
}
