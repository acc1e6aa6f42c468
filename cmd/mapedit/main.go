// Command mapedit loads a vector shape, replays an editing script against it
// and prints the resulting geometry as WKT.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/OCAP2/mapedit/internal/config"
	"github.com/OCAP2/mapedit/internal/dispatcher"
	"github.com/OCAP2/mapedit/internal/edit"
	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/logging"
	"github.com/OCAP2/mapedit/internal/render/memory"
	"github.com/OCAP2/mapedit/internal/shape"
	"github.com/joho/godotenv"
)

// BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configDir string
	envFile   string
	wkt       string
	name      string
	script    string
	open      bool
	save      bool
	dump      string
}

func parseFlags(args []string) (options, error) {
	var o options
	flags := flag.NewFlagSet("mapedit", flag.ContinueOnError)
	flags.StringVar(&o.configDir, "config", ".", "directory holding "+config.FileName)
	flags.StringVar(&o.envFile, "env", ".env", "dotenv file with "+config.EnvPrefix+"_* overrides")
	flags.StringVar(&o.wkt, "wkt", "", "starting geometry as WKT (overrides the script geometry)")
	flags.StringVar(&o.name, "name", "", "feature name (overrides the script name)")
	flags.StringVar(&o.script, "script", "", "YAML editing script to replay")
	flags.BoolVar(&o.open, "open", false, "load the named feature from the store instead of WKT")
	flags.BoolVar(&o.save, "save", false, "commit the result to the feature store")
	flags.StringVar(&o.dump, "dump", "", "vacuum an in-memory sqlite store to this file when done")
	if err := flags.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func run(args []string, out io.Writer) error {
	sessionStart := time.Now()

	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	cfgErr := config.Load(o.configDir)
	if cfgErr != nil {
		config.LoadDefaults()
	}

	logFile, err := openLogFile(config.GetString("logsDir"), sessionStart)
	if err != nil {
		return err
	}
	defer logFile.Close()

	var extra []logging.Sink
	if gl := config.GetGraylogConfig(); gl.Enabled {
		h, closer, err := logging.NewGraylogHandler(gl.Address, slog.LevelDebug)
		if err != nil {
			return err
		}
		defer closer.Close()
		extra = append(extra, logging.Sink{Name: "graylog", Handler: h})
	}

	slogManager := logging.NewSlogManager()
	slogManager.Setup(logFile, config.GetString("logLevel"), extra...)
	defer func() {
		for sink, n := range slogManager.SinkFailures() {
			fmt.Fprintf(os.Stderr, "log sink %s dropped %d records\n", sink, n)
		}
	}()
	if cfgErr != nil {
		slogManager.Logger().Warn("Using default config", "error", cfgErr)
	}
	slogManager.Logger().Info("Starting mapedit", "version", CurrentVersion, "buildDate", BuildDate)

	script := &Script{}
	if o.script != "" {
		if script, err = LoadScript(o.script); err != nil {
			return err
		}
	}
	if o.name != "" {
		script.Name = o.name
	}
	if o.wkt != "" {
		script.Geometry = o.wkt
	}
	if script.Name == "" {
		script.Name = "shape"
	}

	var session *edit.Session
	logger := slogManager.WithContext(func() []slog.Attr {
		if session == nil {
			return nil
		}
		if _, name := session.Active(); name != "" {
			return []slog.Attr{slog.String("shape", name)}
		}
		return nil
	})
	session = edit.NewSession(memory.New(), logger)

	d, err := dispatcher.New(logger)
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	session.RegisterHandlers(d)

	opts := shapeOptions(config.GetEditConfig())

	var st *store
	if o.open || o.save || o.dump != "" || config.GetStorageConfig().Enabled {
		if st, err = openStore(config.GetStorageConfig(), logFile); err != nil {
			return err
		}
		defer st.Close()
	}

	if o.open {
		if _, err := session.Open(st.backend, script.Name, opts); err != nil {
			return err
		}
	} else {
		if script.Geometry == "" {
			return errors.New("no geometry given: use -wkt, -open or a script geometry")
		}
		g, err := geo.ParseWKT(script.Geometry)
		if err != nil {
			return err
		}
		if _, err := session.Load(script.Name, g, opts); err != nil {
			return err
		}
	}

	if err := script.Replay(d); err != nil {
		slogManager.WriteLog("replay", err.Error(), "error")
		return err
	}
	slogManager.WriteLog("replay", fmt.Sprintf("replayed %d events", len(script.Events)), "debug")

	g, err := session.Geometry(script.Name)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, g.AsText())

	if st != nil && (o.save || config.GetStorageConfig().Enabled) {
		if err := session.Commit(st.backend, script.Name); err != nil {
			return err
		}
		logger.Info("Saved feature", "name", script.Name)
	}
	if o.dump != "" {
		if err := st.Dump(o.dump); err != nil {
			return err
		}
		logger.Info("Dumped store", "path", o.dump)
	}
	return nil
}

func openLogFile(logsDir string, sessionStart time.Time) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}
	f, err := os.OpenFile(logging.LogFilePath(logsDir, "mapedit", sessionStart), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func shapeOptions(cfg config.EditConfig) shape.Options {
	return shape.Options{
		ZIndex:         cfg.ZIndex,
		MarkersVisible: cfg.MarkersVisible,
	}
}
