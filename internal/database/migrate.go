package database

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate runs a goose command ("up", "down", "status", ...) against the
// embedded migrations.
func Migrate(db *bun.DB, command string, args ...string) (err error) {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{zap.S().With("section", "goose")})

	if err = goose.SetDialect("postgres"); err != nil {
		return
	}

	if err = goose.Run(command, db.DB, "migrations", args...); err != nil {
		err = fmt.Errorf("goose %s: %w", command, err)
	}
	return
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Fatal(v ...interface{})                 { l.log.Fatal(v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatalf(format, v...) }
func (l gooseLogger) Print(v ...interface{})                 { l.log.Info(v...) }
func (l gooseLogger) Println(v ...interface{})               { l.log.Info(v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }
