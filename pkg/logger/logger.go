// Package logger 基于zerolog的结构化日志
//
// 使用方式：
//
//	logger.Init(logger.Options{Level: "info", Format: "json", Output: "stdout"})
//	logger.Info("图书已创建", map[string]interface{}{"book_id": 1})
//	logger.Error("保存图书失败", err, nil)
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// Init 初始化全局日志
// 返回的io.Closer在输出到文件时需要在退出前关闭
func Init(opts Options) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	switch opts.Output {
	case "", "stdout":
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
		closer = f
	}

	if opts.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006/01/02 15:04:05"}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if opts.EnableCaller {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	return closer, nil
}

// L 返回全局logger（需要链式API时使用）
func L() *zerolog.Logger {
	return &log.Logger
}

func Debug(msg string, fields map[string]interface{}) {
	log.Debug().Fields(fields).Msg(msg)
}

func Info(msg string, fields map[string]interface{}) {
	log.Info().Fields(fields).Msg(msg)
}

func Warn(msg string, err error, fields map[string]interface{}) {
	log.Warn().Err(err).Fields(fields).Msg(msg)
}

func Error(msg string, err error, fields map[string]interface{}) {
	log.Error().Err(err).Fields(fields).Msg(msg)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
