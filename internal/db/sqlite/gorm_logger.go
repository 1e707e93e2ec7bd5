package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxSQLLength caps SQL text in log lines.
const maxSQLLength = 200

// zapGormLogger routes GORM logs into zap. SQL is only formatted when debug is enabled.
type zapGormLogger struct {
	logger *zap.Logger
}

func newGormLogger(l *zap.Logger) gormlogger.Interface {
	return zapGormLogger{logger: l.Named("gorm")}
}

// LogMode is a no-op; level filtering is handled by zap.
func (l zapGormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface { return l }

func (l zapGormLogger) Info(_ context.Context, msg string, args ...any) {
	l.logger.Info(fmt.Sprintf(msg, args...))
}

func (l zapGormLogger) Warn(_ context.Context, msg string, args ...any) {
	l.logger.Warn(fmt.Sprintf(msg, args...))
}

func (l zapGormLogger) Error(_ context.Context, msg string, args ...any) {
	l.logger.Error(fmt.Sprintf(msg, args...))
}

// Trace logs every statement. ErrRecordNotFound is a normal "no rows" outcome, not an error.
func (l zapGormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		l.logger.Error("gorm query error",
			zap.String("sql", truncateSQL(sql)),
			zap.Int64("rows", rows),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return
	}

	if !l.logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}

	sql, rows := fc()
	l.logger.Debug("gorm query",
		zap.String("sql", truncateSQL(sql)),
		zap.Int64("rows", rows),
		zap.Duration("duration", elapsed),
	)
}

func truncateSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	half := (maxSQLLength - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}
