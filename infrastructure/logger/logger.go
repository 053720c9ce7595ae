package logger

import (
	"os"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	logger.Out = os.Stdout
	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}
	logger.SetLevel(log.DebugLevel)
	if os.Getenv("LOG_LEVEL") == "info" {
		logger.SetLevel(log.InfoLevel)
	}
}

// GetLogger returns an entry annotated with the caller's location.
func GetLogger() *log.Entry {
	function, file, line, _ := runtime.Caller(1)

	functionObject := runtime.FuncForPC(function)
	entry := logger.WithFields(log.Fields{
		"requestId": time.Now().UnixNano() / int64(time.Millisecond),
		"function":  functionObject.Name(),
		"file":      file,
		"line":      line,
	})

	return entry
}
