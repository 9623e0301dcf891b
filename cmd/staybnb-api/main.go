package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/staybnb-project/backend/internal/database"
	"github.com/staybnb-project/backend/internal/session"
)

const envPrefix = "STAYBNB_API_"

func env(name string) []string {
	return []string{envPrefix + name}
}

var postgresURIFlag = &cli.StringFlag{
	Name:     "postgres-uri",
	Required: true,
	EnvVars:  env("POSTGRES_URI"),
}

func main() {
	ctx := context.Background()
	ctx, _ = signal.NotifyContext(ctx, os.Interrupt)

	app := &cli.App{
		Name:  "staybnb-api",
		Usage: "room listing backend",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Value:   false,
				EnvVars: env("DEBUG"),
			},
		},
		Before: func(cctx *cli.Context) (err error) {
			err = setupLogging(cctx.Bool("debug"))
			return
		},
		Commands: []*cli.Command{
			serveCommand,
			{
				Name:      "migrate",
				Usage:     "run database migrations",
				ArgsUsage: "up|down|status|version",
				Flags:     []cli.Flag{postgresURIFlag},
				Action:    migrateEntrypoint,
			},
			{
				Name:   "keygen",
				Usage:  "generate a session key pair",
				Action: keygenEntrypoint,
			},
			{
				Name:  "issue-token",
				Usage: "sign a session token for local testing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "session-secret-key",
						Required: true,
						EnvVars:  env("SESSION_SECRET_KEY"),
					},
					&cli.StringFlag{
						Name:     "subject",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Value: 24 * time.Hour,
					},
				},
				Action: issueTokenEntrypoint,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		zap.L().Fatal("unhandled error", zap.Error(err))
	}
}

func setupLogging(debugMode bool) error {
	var cfg zap.Config

	if debugMode {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level.SetLevel(zapcore.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Development = false
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level.SetLevel(zapcore.InfoLevel)
	}

	cfg.OutputPaths = []string{
		"stdout",
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)

	return nil
}

func migrateEntrypoint(cctx *cli.Context) (err error) {
	defer func() { _ = zap.L().Sync() }()

	command := cctx.Args().First()
	if command == "" {
		command = "up"
	}

	db, err := database.Open(cctx.Context, database.Options{
		URI:   cctx.String("postgres-uri"),
		Debug: cctx.Bool("debug"),
	})
	if err != nil {
		return
	}
	defer func() { _ = db.Close() }()

	err = database.Migrate(db, command, cctx.Args().Tail()...)
	return
}

func keygenEntrypoint(cctx *cli.Context) (err error) {
	secret, public := session.GenerateKeys()
	_, err = fmt.Fprintf(cctx.App.Writer, "secret key: %s\npublic key: %s\n", secret, public)
	return
}

func issueTokenEntrypoint(cctx *cli.Context) (err error) {
	var signer *session.Signer
	if signer, err = session.NewSignerFromBase64(cctx.String("session-secret-key")); err != nil {
		return
	}

	_, err = fmt.Fprintln(cctx.App.Writer, signer.Sign(cctx.String("subject"), cctx.Duration("ttl")))
	return
}
