package exithandler

import (
	"os"
	"os/signal"
	"syscall"
)

// Init blocks until SIGINT or SIGTERM arrives, then runs the cleanup
// callback. Call it last in main.
func Init(cleanup func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-sigs
	cleanup()
}
