package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/contacts"
	"github.com/tartampluch/go-datepicker/internal/engine"
	"github.com/tartampluch/go-datepicker/internal/export"
	"github.com/tartampluch/go-datepicker/internal/locale"
	"github.com/tartampluch/go-datepicker/internal/server"
	"github.com/tartampluch/go-datepicker/internal/tui"
	"github.com/tartampluch/go-datepicker/internal/ui"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	settingsPath := flag.String(config.FlagConfig, "", config.FlagDescConfig)
	terminal := flag.Bool(config.FlagTUI, false, config.FlagDescTUI)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// The terminal UI owns stdout, so it only logs to the file.
	logCloser := setupLogging(*debugMode, !*terminal)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, *settingsPath, *terminal); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		if *terminal {
			fmt.Fprintln(os.Stderr, err)
		}
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run loads the settings, builds the picker and hands it to the selected
// front end.
func run(ctx context.Context, settingsPath string, terminal bool) error {
	if settingsPath == "" {
		p, err := config.DefaultSettingsPath()
		if err != nil {
			return err
		}
		settingsPath = p
	}

	settings, found, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	if found {
		slog.Info(config.MsgSettingsLoaded,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, settingsPath)
	} else {
		slog.Info(config.MsgSettingsNone,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, settingsPath)
	}

	tr := locale.New(settings.Language)

	var srv *server.SelectionServer
	if settings.Server.Enabled {
		srv = server.NewSelectionServer(settings.Server.Port, &export.Exporter{
			Clock:        engine.RealClock{},
			Summary:      tr.EventSummary,
			RangeSummary: tr.EventSummaryRange,
		})
	}

	picker, err := newPicker(settings, tr, srv)
	if err != nil {
		return err
	}

	if srv != nil {
		publish(srv, picker)
		go func() {
			if err := srv.Start(ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
					config.LogKeyPort, srv.Port)
			}
		}()
	}

	if terminal {
		return tui.Run(ctx, tui.New(picker, tr, tui.Config{
			Highlights: config.Times(settings.HighlightedDates),
			Source:     settings.Contacts,
			Loader:     contacts.NewLoader(),
		}))
	}

	a := app.NewWithID(config.AppID)
	ui.NewPickerApp(a, ctx, picker, tr, settings, settingsPath).Run()
	return nil
}

// newPicker builds the picker described by s. Every rebuilt grid is
// published to srv when it is not nil.
func newPicker(s config.Settings, tr *locale.Translator, srv *server.SelectionServer) (*engine.Picker, error) {
	opts, err := pickerOptions(s, tr)
	if err != nil {
		return nil, err
	}

	var picker *engine.Picker
	opts.Listener = engine.ListenerFuncs{
		Selected: func(d time.Time) {
			slog.Info(config.MsgDateSelected,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyDate, d.Format(config.DateFormatDisplay))
		},
		Unselected: func(d time.Time) {
			slog.Info(config.MsgDateUnselected,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyDate, d.Format(config.DateFormatDisplay))
		},
	}
	if srv != nil {
		opts.OnChange = func(engine.Grid) { publish(srv, picker) }
	}

	picker, err = engine.NewPicker(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPickerInitFailed, err)
	}
	return picker, nil
}

// pickerOptions maps the settings onto engine options. The locale picks
// the first day of the week unless the settings fix it.
func pickerOptions(s config.Settings, tr *locale.Translator) (engine.Options, error) {
	mode, err := engine.ParseSelectionMode(s.SelectionMode)
	if err != nil {
		return engine.Options{}, err
	}

	firstDay := tr.FirstDayOfWeek()
	if s.FirstDayOfWeek != nil {
		firstDay = time.Weekday(*s.FirstDayOfWeek)
	}

	var filters []engine.DateSelectableFilter
	if len(s.DisabledWeekdays) > 0 {
		filters = append(filters, engine.WeekdayFilter(config.Weekdays(s.DisabledWeekdays)))
	}
	if len(s.BlockedDates) > 0 {
		filters = append(filters, engine.NewBlockedDatesFilter(config.Times(s.BlockedDates)))
	}

	return engine.Options{
		Mode:           mode,
		MinDate:        s.MinDate.Time(),
		MaxDate:        s.MaxDate.Time(),
		FirstDayOfWeek: firstDay,
		StartDate:      s.StartDate.Time(),
		SelectedDates:  config.Times(s.SelectedDates),
		Highlighted:    config.Times(s.HighlightedDates),
		Today:          s.Today.Time(),
		Clock:          engine.RealClock{},
		Filter:         engine.AllFilters(filters...),
		Labeler:        tr.MonthLabel,
		Collapsed:      s.Collapsed,
	}, nil
}

// publish pushes the current selection to the feed server.
func publish(srv *server.SelectionServer, p *engine.Picker) {
	if p == nil {
		return
	}
	if err := srv.Publish(export.SnapshotOf(p)); err != nil {
		slog.Error(config.ErrExportFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err)
	}
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.BuildDate,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default JSON slog logger writing to the log
// file and, when toStdout is set, to stdout.
func setupLogging(debugMode, toStdout bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if toStdout {
		writers = append(writers, os.Stdout)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
