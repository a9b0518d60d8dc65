package log

import (
	"fmt"
	"log"
)

// Infoln takes a pointer SubLogger struct and interface sends to newLogEvent
func Infoln(sl *SubLogger, v ...interface{}) {
	if sl == nil || !sl.Info || !enabled() {
		return
	}
	emit(sl, logger.InfoHeader, fmt.Sprintln(v...))
}

// Infof takes a pointer SubLogger struct, string & interface formats and sends to newLogEvent
func Infof(sl *SubLogger, data string, v ...interface{}) {
	if sl == nil || !sl.Info || !enabled() {
		return
	}
	emit(sl, logger.InfoHeader, fmt.Sprintf(data, v...))
}

// Debugln takes a pointer SubLogger struct, string and interface sends to newLogEvent
func Debugln(sl *SubLogger, v ...interface{}) {
	if sl == nil || !sl.Debug || !enabled() {
		return
	}
	emit(sl, logger.DebugHeader, fmt.Sprintln(v...))
}

// Debugf takes a pointer SubLogger struct, string & interface formats and sends to newLogEvent
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	if sl == nil || !sl.Debug || !enabled() {
		return
	}
	emit(sl, logger.DebugHeader, fmt.Sprintf(data, v...))
}

// Warnln takes a pointer SubLogger struct & interface formats and sends to newLogEvent
func Warnln(sl *SubLogger, v ...interface{}) {
	if sl == nil || !sl.Warn || !enabled() {
		return
	}
	emit(sl, logger.WarnHeader, fmt.Sprintln(v...))
}

// Warnf takes a pointer SubLogger struct, string & interface formats and sends to newLogEvent
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	if sl == nil || !sl.Warn || !enabled() {
		return
	}
	emit(sl, logger.WarnHeader, fmt.Sprintf(data, v...))
}

// Errorln takes a pointer SubLogger struct, string & interface formats and sends to newLogEvent
func Errorln(sl *SubLogger, v ...interface{}) {
	if sl == nil || !sl.Error || !enabled() {
		return
	}
	emit(sl, logger.ErrorHeader, fmt.Sprintln(v...))
}

// Errorf takes a pointer SubLogger struct, string & interface formats and sends to newLogEvent
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	if sl == nil || !sl.Error || !enabled() {
		return
	}
	emit(sl, logger.ErrorHeader, fmt.Sprintf(data, v...))
}

func emit(sl *SubLogger, header, data string) {
	RWM.RLock()
	l, output := logger, sl.output
	RWM.RUnlock()
	displayError(l.newLogEvent(data, header, sl.name, output))
}

func displayError(err error) {
	if err != nil {
		log.Printf("Logger write error: %v\n", err)
	}
}

func enabled() bool {
	RWM.RLock()
	defer RWM.RUnlock()
	if GlobalLogConfig == nil || GlobalLogConfig.Enabled == nil {
		return false
	}
	return *GlobalLogConfig.Enabled
}
