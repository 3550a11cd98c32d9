package errutil

import (
	log "github.com/sirupsen/logrus"
)

// Check logs the error and exits when it is not nil. The full error chain is
// logged at debug level before the final message.
func Check(err error) {
	if err != nil {
		log.Debugf("%+v", err)
		log.Fatalf("%v", err)
	}
}

// CheckWithContext behaves like Check and prefixes the given context message.
func CheckWithContext(err error, context string) {
	if err != nil {
		log.Debugf("%s: %+v", context, err)
		log.Fatalf("%s: %v", context, err)
	}
}
