package service

import (
	"log"

	"github.com/beka-birhanu/mazebound/config"
)

// LogNotifier is the default Notifier collaborator: it writes event
// transitions to a logger so a headless deployment still has a visible trail.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a LogNotifier writing to the given logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements the sim notifier interface.
func (n *LogNotifier) Notify(event, message string) {
	n.logger.Printf("%s[INFO]%s [%s] %s", config.LogInfoColor, config.LogColorReset, event, message)
}
