package logging

import (
	"log"
	"os"
)

var logger = log.New(os.Stdout, "", log.LstdFlags)

// Infof logs a formatted info message
func Infof(format string, v ...any) {
	logger.Printf(format, v...)
}

// Errorf logs a formatted error message
func Errorf(format string, v ...any) {
	logger.Printf(format, v...)
}

// Debugf logs a formatted debug message
func Debugf(format string, v ...any) {
	logger.Printf(format, v...)
}
