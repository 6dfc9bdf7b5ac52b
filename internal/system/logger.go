package system

import (
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger. It writes to stderr so that
// stdout stays reserved for reports (JSON or human summary).
var Logger = New(os.Stderr)

// New builds a logger in the application's format.
func New(w io.Writer) *clog.Logger {
	return clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "cigate",
	})
}

// SetVerbose toggles debug output on the shared logger.
func SetVerbose(v bool) {
	if v {
		Logger.SetLevel(clog.DebugLevel)
		return
	}
	Logger.SetLevel(clog.InfoLevel)
}
