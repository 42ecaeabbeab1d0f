package appendbytes

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// logWrapper guards a logrus logger so logging stays a no-op until a
// caller opts in via SetLogger. All call sites are nil-safe.
type logWrapper struct {
	mu     sync.RWMutex
	logger *logrus.Logger
}

var pkgLog logWrapper

// SetLogger routes growth and misuse diagnostics to the given logger.
// Pass nil to silence them again.
func SetLogger(logger *logrus.Logger) {
	pkgLog.mu.Lock()
	pkgLog.logger = logger
	pkgLog.mu.Unlock()
}

func (l *logWrapper) log(level logrus.Level, format string, args ...interface{}) {
	l.mu.RLock()
	logger := l.logger
	l.mu.RUnlock()
	if logger != nil {
		logger.Logf(level, format, args...)
	}
}

func logDebugf(format string, args ...interface{}) {
	pkgLog.log(logrus.DebugLevel, format, args...)
}

func logWarnf(format string, args ...interface{}) {
	pkgLog.log(logrus.WarnLevel, format, args...)
}
