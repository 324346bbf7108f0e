package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logrus logger. Unknown levels fall
// back to info.
func SetupLogging(level string) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
		log.Warnf("Unknown log level %q, defaulting to info", level)
		return
	}
	log.SetLevel(lvl)
}
