package gormstore

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slogWriter manda las trazas de GORM (consultas lentas y errores) al logger
// de la aplicación.
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.log.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}

// Config arma la configuración común para cualquier dialecto.
func Config(log *slog.Logger) *gorm.Config {
	if log == nil {
		return &gorm.Config{Logger: gormlogger.Discard}
	}
	return &gorm.Config{
		Logger: gormlogger.New(slogWriter{log: log}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}
