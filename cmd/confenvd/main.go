package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/confenv/confenv"
	"github.com/confenv/confenv/internal/application"
	"github.com/confenv/confenv/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("confenvd", "Configuration resolution daemon - resolves options from CLI, YAML file and environment, publishes them, and serves the result")
	prefix := kingpinApp.Flag("prefix", "Environment variable prefix identifying this instance").Required().String()
	configFile := kingpinApp.Flag("config", "Path to YAML option file").String()
	envFile := kingpinApp.Flag("env-file", "Path to dotenv file seeding the environment tier").String()
	sets := kingpinApp.Flag("set", "Option override in name=value form (repeatable)").StringMap()
	debugFlag := kingpinApp.Flag("debug", "Enable debug logging").Bool()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	cliOpts := cliOptions(*sets, *debugFlag)

	var loadOpts []confenv.LoadOption
	if *configFile != "" {
		loadOpts = append(loadOpts, confenv.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		loadOpts = append(loadOpts, confenv.WithEnvFile(*envFile))
	}

	snapshot, err := confenv.Load(cliOpts, *prefix, loadOpts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	settings := application.SettingsFromSnapshot(snapshot)

	logger, err := logging.New(settings.Debug)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("configuration resolved",
		zap.String("prefix", snapshot.Prefix()),
		zap.Int("options", snapshot.Len()),
	)

	app, err := application.New(snapshot, settings, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), settings.ShutdownGrace, logger)
}

// cliOptions converts parsed flags into the CLI option mapping consumed by
// the resolver. The --debug flag is only forwarded when set, so it does not
// shadow a debug option from the file or environment tiers.
func cliOptions(sets map[string]string, debug bool) map[string]any {
	opts := make(map[string]any, len(sets)+1)
	for name, value := range sets {
		opts[name] = value
	}
	if debug {
		opts["debug"] = true
	}
	return opts
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
