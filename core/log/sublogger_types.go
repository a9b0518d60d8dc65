package log

import (
	"io"
	"sync"
)

// Global vars related to the logger package
var (
	SubLoggers = map[string]*SubLogger{}
	Global     *SubLogger
	Conn       *SubLogger
	Wss        *SubLogger
	Redis      *SubLogger
	Cli        *SubLogger

	RWM                            = &sync.RWMutex{}
	GlobalLogConfig                = &Config{}
	GlobalLogFile                  = &Rotate{}
	FileLoggingConfiguredCorrectly bool
	LogPath                        string

	logger = &Logger{}
)

const (
	Spacer          = " | "
	TimestampFormat = " 02/01/2006 15:04:05 "
	defaultMaxSize  = 100
	megabyte        = 1024 * 1024
)

type Log struct {
	LogFilePath  string `json:"logFilePath,omitempty" yaml:"log_file_path,omitempty"`
	Level        string `json:"level,omitempty" yaml:"level,omitempty"`
	Output       string `json:"output,omitempty" yaml:"output,omitempty"`
	MaxFileSize  int64  `json:"maxFileSize,omitempty" yaml:"max_file_size,omitempty"`
	MaxFileCount int    `json:"maxFileCount,omitempty" yaml:"max_file_count,omitempty"`
}

// Config holds the global logger configuration
type Config struct {
	Enabled *bool
	SubLoggerConfig
	LoggerFileConfig *LoggerFileConfig
	AdvancedSettings AdvancedSettings
	SubLoggers       []SubLoggerConfig
}

type SubLoggerConfig struct {
	Name   string
	Level  string
	Output string
}

type LoggerFileConfig struct {
	FileName string
	Rotate   *bool
	MaxSize  int64
}

type AdvancedSettings struct {
	ShowLogSystemName *bool
	Spacer            string
	TimeStampFormat   string
	Headers           Headers
}

type Headers struct {
	Info  string
	Warn  string
	Debug string
	Error string
}

type Levels struct {
	Info, Debug, Warn, Error bool
}

// SubLogger is a named logger with its own level mask and output
type SubLogger struct {
	name string
	Levels
	output io.Writer
}

// Logger formats log events
type Logger struct {
	ShowLogSystemName                                bool
	Timestamp                                        string
	InfoHeader, ErrorHeader, DebugHeader, WarnHeader string
	Spacer                                           string
}
