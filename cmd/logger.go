package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/heroku/color"
	"golang.org/x/term"
)

var (
	DefaultLogger = &Logger{
		&log.Logger{
			Handler: &handler{writer: Stderr},
			Level:   log.InfoLevel,
		},
	}
	Stdout = color.NewConsole(os.Stdout)
	Stderr = color.NewConsole(os.Stderr)

	warnStyle  = color.New(color.FgYellow, color.Bold).SprintfFunc()
	errorStyle = color.New(color.FgRed, color.Bold).SprintfFunc()
)

// Logger wraps an apex logger so commands can set the level from a flag value.
type Logger struct {
	*log.Logger
}

func (l *Logger) SetLevel(requested string) error {
	var err error
	l.Level, err = log.ParseLevel(requested)
	if err != nil {
		return FailErrCode(fmt.Errorf("log level %q is invalid", requested), CodeForInvalidArgs, "parse log level")
	}
	return nil
}

func (l *Logger) LogLevel() log.Level {
	return l.Level
}

func DisableColor(noColor bool) {
	noColor = noColor || !term.IsTerminal(int(os.Stderr.Fd()))
	Stdout.DisableColors(noColor)
	Stderr.DisableColors(noColor)
	color.Disable(noColor)
}

type handler struct {
	mu     sync.Mutex
	writer io.Writer
}

func (h *handler) HandleLog(entry *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var prefix string
	switch entry.Level {
	case log.WarnLevel:
		prefix = warnStyle("Warning: ")
	case log.ErrorLevel:
		prefix = errorStyle("Error: ")
	}
	_, err := fmt.Fprintln(h.writer, prefix+strings.TrimRight(entry.Message, "\n"))
	return err
}
