package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"tamilnews/internal/config"
)

// New создает логгер приложения на основе конфигурации.
// Если файлы не заданы, обычные сообщения и ошибки пишутся в stderr.
// Возвращает ошибку при проблемах с открытием файлов логов.
func New(cfg config.LoggerConfig) (*slog.Logger, error) {
	var logWriter io.Writer = os.Stderr
	var errorWriter io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		logWriter = f
		errorWriter = f
	}
	if cfg.ErrorFile != "" {
		f, err := os.OpenFile(cfg.ErrorFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open error log file %s: %w", cfg.ErrorFile, err)
		}
		errorWriter = f
	}
	return NewWithWriters(cfg.Level, logWriter, errorWriter), nil
}

// NewWithWriters создает логгер с маршрутизацией по уровням поверх произвольных writer'ов.
func NewWithWriters(level string, defaultOut, errorOut io.Writer) *slog.Logger {
	handler := NewLevelDispatcherHandler(defaultOut, errorOut, &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	})
	return slog.New(handler)
}

// ParseLevel преобразует строковое представление уровня логирования в slog.Level.
// Поддерживает уровни: debug, info, warn, error.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelDispatcherHandler реализует slog.Handler с маршрутизацией сообщений по уровням.
// Сообщения уровня ERROR и выше направляются в errorHandler, остальные - в defaultHandler.
type LevelDispatcherHandler struct {
	defaultHandler slog.Handler
	errorHandler   slog.Handler
}

// NewLevelDispatcherHandler создает новый обработчик логов с маршрутизацией по уровням.
// Сообщения с уровнем ERROR и выше направляются в errorOut, остальные - в defaultOut.
func NewLevelDispatcherHandler(defaultOut, errorOut io.Writer, opts *slog.HandlerOptions) *LevelDispatcherHandler {
	return &LevelDispatcherHandler{
		defaultHandler: NewReadableHandler(defaultOut, opts),
		errorHandler:   NewReadableHandler(errorOut, opts),
	}
}

// Enabled определяет, обрабатывается ли указанный уровень логирования.
func (h *LevelDispatcherHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.defaultHandler.Enabled(ctx, level)
}

// Handle обрабатывает запись лога, направляя её в соответствующий обработчик.
func (h *LevelDispatcherHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return h.errorHandler.Handle(ctx, r)
	}
	return h.defaultHandler.Handle(ctx, r)
}

// WithAttrs создает новый обработчик с добавленными атрибутами.
// Распространяет атрибуты на оба внутренних обработчика.
func (h *LevelDispatcherHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LevelDispatcherHandler{
		defaultHandler: h.defaultHandler.WithAttrs(attrs),
		errorHandler:   h.errorHandler.WithAttrs(attrs),
	}
}

// WithGroup создает новый обработчик с добавленной группой атрибутов.
func (h *LevelDispatcherHandler) WithGroup(name string) slog.Handler {
	return &LevelDispatcherHandler{
		defaultHandler: h.defaultHandler.WithGroup(name),
		errorHandler:   h.errorHandler.WithGroup(name),
	}
}

// ReadableHandler форматирует записи в человекочитаемом виде:
// [15:04:05.000] LEVEL [component] (op) <file:line>: message | key=value, ...
// Атрибуты, добавленные через With, сохраняются; группы становятся префиксом ключа.
type ReadableHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	prefix string
}

// NewReadableHandler создает новый обработчик с читаемым форматированием.
// Если opts равен nil, используются настройки по умолчанию.
func NewReadableHandler(w io.Writer, opts *slog.HandlerOptions) *ReadableHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ReadableHandler{mu: &sync.Mutex{}, w: w, opts: opts}
}

// Enabled сравнивает уровень записи с минимальным уровнем из настроек.
func (h *ReadableHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle форматирует и записывает запись лога.
func (h *ReadableHandler) Handle(_ context.Context, r slog.Record) error {
	var component, operation string
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	collect := func(a slog.Attr) {
		switch a.Key {
		case "component":
			component = a.Value.String()
		case "op":
			operation = a.Value.String()
		default:
			attrs = append(attrs, a)
		}
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		collect(a)
		return true
	})

	var prefix strings.Builder
	prefix.WriteString(fmt.Sprintf("[%s] %s", r.Time.Format("15:04:05.000"), formatLevel(r.Level)))
	if component != "" {
		prefix.WriteString(fmt.Sprintf(" [%s]", component))
	}
	if operation != "" {
		prefix.WriteString(fmt.Sprintf(" (%s)", operation))
	}
	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			prefix.WriteString(fmt.Sprintf(" <%s:%d>", filepath.Base(frame.File), frame.Line))
		}
	}
	message := r.Message
	if len(attrs) > 0 {
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, formatAttr(attr))
		}
		message += " | " + strings.Join(parts, ", ")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s: %s\n", prefix.String(), message)
	return err
}

// WithAttrs возвращает копию обработчика с добавленными атрибутами.
func (h *ReadableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return next
}

// WithGroup возвращает копию обработчика, добавляющую имя группы к ключам атрибутов.
func (h *ReadableHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *ReadableHandler) clone() *ReadableHandler {
	attrs := make([]slog.Attr, len(h.attrs))
	copy(attrs, h.attrs)
	return &ReadableHandler{mu: h.mu, w: h.w, opts: h.opts, attrs: attrs, prefix: h.prefix}
}

func formatLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// formatAttr форматирует атрибут: ошибки в кавычках, длинные URL сокращаются,
// длительности округляются до миллисекунд.
func formatAttr(attr slog.Attr) string {
	switch {
	case attr.Key == "error":
		return fmt.Sprintf("error=%q", attr.Value.String())
	case attr.Key == "url":
		return fmt.Sprintf("url=%s", shortenURL(attr.Value.String()))
	case attr.Value.Kind() == slog.KindDuration:
		return fmt.Sprintf("%s=%s", attr.Key, attr.Value.Duration().Round(time.Millisecond))
	default:
		return fmt.Sprintf("%s=%s", attr.Key, attr.Value.String())
	}
}

// shortenURL обрезает URL длиннее 50 символов до схемы и домена.
func shortenURL(url string) string {
	if len(url) > 50 {
		parts := strings.Split(url, "/")
		if len(parts) >= 3 {
			return fmt.Sprintf("%s//%s/...", parts[0], parts[2])
		}
	}
	return url
}
