// Package logger configures the process-wide logrus logger.
package logger

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Init sets level and output format. Unknown levels fall back to info.
func Init(level, format string) {
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
}

// RequestLogger is a chi middleware.LogFormatter writing access logs through logrus.
type RequestLogger struct {
	Logger logrus.FieldLogger
}

func (l *RequestLogger) NewLogEntry(r *http.Request) middleware.LogEntry {
	entry := l.Logger.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": middleware.GetReqID(r.Context()),
		"remote":     r.RemoteAddr,
	})
	return &requestEntry{entry: entry}
}

type requestEntry struct {
	entry logrus.FieldLogger
}

func (e *requestEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	e.entry.WithFields(logrus.Fields{
		"status":  status,
		"bytes":   bytes,
		"elapsed": elapsed.String(),
	}).Info("[HTTP] request completed")
}

func (e *requestEntry) Panic(v interface{}, stack []byte) {
	e.entry.WithField("panic", v).Errorf("[HTTP] panic recovered\n%s", stack)
}
