// Package logger builds the zap logger shared by the pipeline stages.
// Lines are written as "timestamp - logger_name - level - message" to the
// console and to a log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultName = "uni-etl"
	separator   = " - "
	timeLayout  = "2006-01-02 15:04:05,000"
)

var bufferPool = buffer.NewPool()

type Options struct {
	// File is the log file, opened in append mode. Empty disables file output.
	File  string
	Level string
	Name  string
	// Console defaults to os.Stderr.
	Console io.Writer
}

// New builds the logger. The returned cleanup func flushes the logger and
// closes the log file; call it once before the process exits.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	enc := newLineEncoder()
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(console)), level),
	}

	var logFile *os.File
	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file '%s': %w", opts.File, err)
		}
		logFile = f
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(f), level))
	}

	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	log := zap.New(zapcore.NewTee(cores...)).Named(name)

	cleanup := func() {
		_ = log.Sync()
		if logFile != nil {
			logFile.Close()
		}
	}
	return log, cleanup, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// lineEncoder prefixes each entry with time, logger name and level, then
// lets a console encoder write the message and any structured fields.
type lineEncoder struct {
	zapcore.Encoder
}

func newLineEncoder() zapcore.Encoder {
	return lineEncoder{zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: separator,
	})}
}

func (e lineEncoder) Clone() zapcore.Encoder {
	return lineEncoder{e.Encoder.Clone()}
}

func (e lineEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	body, err := e.Encoder.EncodeEntry(ent, fields)
	if err != nil {
		return nil, err
	}
	defer body.Free()

	line := bufferPool.Get()
	line.AppendString(ent.Time.Format(timeLayout))
	line.AppendString(separator)
	line.AppendString(ent.LoggerName)
	line.AppendString(separator)
	line.AppendString(ent.Level.CapitalString())
	line.AppendString(separator)
	_, _ = line.Write(body.Bytes())
	return line, nil
}
