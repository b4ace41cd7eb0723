// Package logutil provides logging utilities.
//
// All loggers obtained with GetLogger share a single output, which discards
// everything until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	loggers []*log.Logger
	mutex   sync.Mutex
)

// GetLogger gets a logger with a prefix.
func GetLogger(prefix string) *log.Logger {
	mutex.Lock()
	defer mutex.Unlock()
	logger := log.New(out, prefix, log.LstdFlags|log.Lmicroseconds)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to the
// new io.Writer. If the old output was a file opened by SetOutputFile, it is
// closed.
func SetOutput(newout io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	setOutput(newout)
}

func setOutput(newout io.Writer) {
	if f, ok := out.(*os.File); ok && f == opened {
		f.Close()
		opened = nil
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

var opened *os.File

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file, which is opened for appending. If the file name is empty,
// logs are discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	mutex.Lock()
	defer mutex.Unlock()
	setOutput(file)
	opened = file
	return nil
}
