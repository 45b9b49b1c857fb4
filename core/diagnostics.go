package core

import (
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// DebugEnv enables debug level logging when set at InstallDiagnostics time.
const DebugEnv = "PIXTENSOR_DEBUG"

var (
	diagnosticsOnce      sync.Once
	diagnosticsInstalled atomic.Bool
)

// InstallDiagnostics configures logging and turns on panic reporting for the
// exported operations. It only does work the first time it is called.
func InstallDiagnostics() {
	diagnosticsOnce.Do(func() {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		if os.Getenv(DebugEnv) != "" {
			log.SetLevel(log.DebugLevel)
		}
		diagnosticsInstalled.Store(true)
		log.Debugf("diagnostics installed")
	})
}

func DiagnosticsInstalled() bool {
	return diagnosticsInstalled.Load()
}

// reportPanic must be deferred directly. Once diagnostics are installed it logs
// a panic with its stack before letting it continue.
func reportPanic(op string) {
	if !diagnosticsInstalled.Load() {
		return
	}
	if r := recover(); r != nil {
		log.WithField("op", op).Errorf("panic: %v\n%s", r, debug.Stack())
		panic(r)
	}
}
