package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"okex-futures-go/adapter/convert"
)

func getWriters(s *SubLoggerConfig) io.Writer {
	mw := MultiWriter()
	m := mw.(*multiWriter)

	outputWriters := strings.Split(s.Output, "|")
	for x := range outputWriters {
		switch outputWriters[x] {
		case "stdout", "console":
			_ = m.Add(os.Stdout)
		case "stderr":
			_ = m.Add(os.Stderr)
		case "file":
			if FileLoggingConfiguredCorrectly {
				_ = m.Add(GlobalLogFile)
			}
		default:
			_ = m.Add(io.Discard)
		}
	}
	return m
}

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() (log Config) {
	log = Config{
		Enabled: convert.BoolPtr(true),
		SubLoggerConfig: SubLoggerConfig{
			Level:  "INFO|WARN|ERROR",
			Output: "console",
		},
		LoggerFileConfig: &LoggerFileConfig{
			FileName: "log.txt",
			Rotate:   convert.BoolPtr(true),
			MaxSize:  200,
		},
		AdvancedSettings: AdvancedSettings{
			ShowLogSystemName: convert.BoolPtr(true),
			Spacer:            Spacer,
			TimeStampFormat:   TimestampFormat,
			Headers: Headers{
				Info:  "[INFO]",
				Warn:  "[WARN]",
				Debug: "[DEBUG]",
				Error: "[ERROR]",
			},
		},
	}
	return
}

func configureSubLogger(logger, levels string, output io.Writer) error {
	logPtr, found := SubLoggers[logger]
	if !found {
		return fmt.Errorf("logger %v not found", logger)
	}

	logPtr.output = output
	logPtr.Levels = splitLevel(levels)

	return nil
}

// SetupSubLoggers configure all sub loggers with provided configuration values
func SetupSubLoggers(s []SubLoggerConfig) {
	for x := range s {
		output := getWriters(&s[x])
		RWM.Lock()
		err := configureSubLogger(strings.ToUpper(s[x].Name), s[x].Level, output)
		RWM.Unlock()
		if err != nil {
			continue
		}
	}
}

// SetupGlobalLogger setup the global loggers with the default global config values
func SetupGlobalLogger() {
	RWM.Lock()
	defer RWM.Unlock()
	if FileLoggingConfiguredCorrectly {
		GlobalLogFile = &Rotate{
			FileName: GlobalLogConfig.LoggerFileConfig.FileName,
			MaxSize:  GlobalLogConfig.LoggerFileConfig.MaxSize,
			Rotate:   GlobalLogConfig.LoggerFileConfig.Rotate,
		}
	}

	for x := range SubLoggers {
		SubLoggers[x].Levels = splitLevel(GlobalLogConfig.Level)
		SubLoggers[x].output = getWriters(&GlobalLogConfig.SubLoggerConfig)
	}

	logger = newLogger(GlobalLogConfig)
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch level := enabledLevels[x]; level {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}

func RegisterNewSubLogger(logger string) *SubLogger {
	temp := SubLogger{
		name:   strings.ToUpper(logger),
		output: os.Stdout,
	}

	temp.Levels = splitLevel("INFO|WARN|DEBUG|ERROR")
	SubLoggers[temp.name] = &temp

	return &temp
}

// ConfigLog switches logging on with the given level mask and outputs.
// An empty LogFilePath keeps file output disabled.
func ConfigLog(logcfg Log) {
	cfg := GenDefaultSettings()
	if logcfg.Level != "" {
		cfg.Level = logcfg.Level
	}
	if logcfg.Output != "" {
		cfg.Output = logcfg.Output
	}
	if logcfg.MaxFileSize > 0 {
		cfg.LoggerFileConfig.MaxSize = logcfg.MaxFileSize
	}

	fileOK := false
	if logcfg.LogFilePath != "" {
		if _, err := os.Stat(logcfg.LogFilePath); os.IsNotExist(err) {
			_ = os.MkdirAll(logcfg.LogFilePath, os.ModePerm)
		}
		fileOK = true
	}

	RWM.Lock()
	GlobalLogConfig = &cfg
	FileLoggingConfiguredCorrectly = fileOK
	LogPath = logcfg.LogFilePath
	RWM.Unlock()
	SetupGlobalLogger()
	SetupSubLoggers(GlobalLogConfig.SubLoggers)
}

// register all loggers at package init()
func init() {
	Global = RegisterNewSubLogger("LOG")
	Conn = RegisterNewSubLogger("CONN")
	Wss = RegisterNewSubLogger("WSS")
	Redis = RegisterNewSubLogger("REDIS")
	Cli = RegisterNewSubLogger("CLI")
}
