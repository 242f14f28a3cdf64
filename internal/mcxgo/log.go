package mcxgo

import "github.com/sirupsen/logrus"

// Logger is the package-level logrus instance; cmd/mcxgo raises its level
// to debug when --debug is set, everything below just logs through it. Keeping a
// package var (rather than threading a logger through every call) keeps
// call sites terse for a hot inner loop.
var Logger = logrus.New()

var logOnce = map[string]bool{}

// DebugLog emits a printf-formatted debug-level line, gated on the Debug
// toggle so a production run pays no formatting cost.
func DebugLog(format string, args ...interface{}) {
	if !Debug {
		return
	}
	Logger.Debugf(format, args...)
}

// DebugLogOnce logs the same message class exactly once per process, used
// for invariants that would otherwise spam the log once per photon/voxel
// (e.g. "voxel size" logged once instead of once per photon).
func DebugLogOnce(key, format string, args ...interface{}) {
	if !Debug || logOnce[key] {
		return
	}
	logOnce[key] = true
	Logger.Debugf(format, args...)
}
