package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"

	"apiglass/internal/config"
	"apiglass/internal/httpclient"
	"apiglass/internal/logging"
	"apiglass/internal/session"
	"apiglass/internal/telemetry"
	"apiglass/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var flags config.Flags
	flags.Register(flag.CommandLine)
	flag.Parse()

	// flags beat env, env beats the config file
	cfg, err := config.Load(os.Getenv)
	if err == nil {
		err = flags.Apply(flag.CommandLine, &cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	closeLog, err := logging.Setup(cfg.DebugLog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closeLog()

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, cfg.TelemetryConfig(os.Getenv, version))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logging.Errorf("telemetry shutdown: %v", err)
		}
	}()

	sess := session.New(cfg.ImportOptions())
	app := ui.NewApp(sess, httpclient.NewClient(nil), ui.Options{
		Theme:   cfg.Theme,
		Editor:  cfg.Editor,
		Profile: termenv.EnvColorProfile(),
	})
	if err := app.Init(ctx, cfg.Spec, cfg.Sample); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
