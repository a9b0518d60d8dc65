package log

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var errWriterAlreadyLoaded = errors.New("io.Writer already loaded")

func newLogger(c *Config) *Logger {
	return &Logger{
		Timestamp:         c.AdvancedSettings.TimeStampFormat,
		Spacer:            c.AdvancedSettings.Spacer,
		ErrorHeader:       c.AdvancedSettings.Headers.Error,
		InfoHeader:        c.AdvancedSettings.Headers.Info,
		WarnHeader:        c.AdvancedSettings.Headers.Warn,
		DebugHeader:       c.AdvancedSettings.Headers.Debug,
		ShowLogSystemName: c.AdvancedSettings.ShowLogSystemName != nil && *c.AdvancedSettings.ShowLogSystemName,
	}
}

func (l *Logger) newLogEvent(data, header, slName string, w io.Writer) error {
	if w == nil {
		return errors.New("io.Writer not set")
	}
	var b bytes.Buffer
	b.WriteString(header)
	if l.ShowLogSystemName {
		b.WriteString(l.Spacer)
		b.WriteString(slName)
	}
	b.WriteString(l.Spacer)
	if l.Timestamp != "" {
		b.WriteString(time.Now().Format(l.Timestamp))
	}
	b.WriteString(l.Spacer)
	b.WriteString(data)
	if data == "" || data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	_, err := w.Write(b.Bytes())
	return err
}

type multiWriter struct {
	writers []io.Writer
	mu      sync.RWMutex
}

// MultiWriter make and return a new copy of multiWriter
func MultiWriter(writers ...io.Writer) io.Writer {
	w := make([]io.Writer, 0, len(writers))
	w = append(w, writers...)
	return &multiWriter{writers: w}
}

// Add appends a new writer to the multiwriter slice
func (mw *multiWriter) Add(writer io.Writer) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	for i := range mw.writers {
		if mw.writers[i] == writer {
			return errWriterAlreadyLoaded
		}
	}
	mw.writers = append(mw.writers, writer)
	return nil
}

// Write concurrent safe Write for each writer
func (mw *multiWriter) Write(p []byte) (n int, err error) {
	mw.mu.RLock()
	defer mw.mu.RUnlock()
	for _, w := range mw.writers {
		n, err = w.Write(p)
		if err != nil {
			return
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Rotate is a file writer that starts a new file once MaxSize megabytes are written
type Rotate struct {
	FileName string
	MaxSize  int64
	Rotate   *bool

	size   int64
	output *os.File
	mu     sync.Mutex
}

func (r *Rotate) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.output == nil {
		if err = r.openOrCreate(); err != nil {
			return 0, err
		}
	}
	if r.Rotate != nil && *r.Rotate && r.size+int64(len(p)) > r.maxSize() {
		if err = r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err = r.output.Write(p)
	r.size += int64(n)
	return n, err
}

// Close closes the current log file
func (r *Rotate) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.output == nil {
		return nil
	}
	err := r.output.Close()
	r.output = nil
	return err
}

func (r *Rotate) maxSize() int64 {
	if r.MaxSize <= 0 {
		return defaultMaxSize * megabyte
	}
	return r.MaxSize * megabyte
}

func (r *Rotate) path() string {
	return filepath.Join(LogPath, r.FileName)
}

func (r *Rotate) openOrCreate() error {
	name := r.path()
	info, err := os.Stat(name)
	if os.IsNotExist(err) {
		return r.openNew()
	}
	if err != nil {
		return fmt.Errorf("error getting log file info: %s", err)
	}
	f, err := os.OpenFile(name, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return r.openNew()
	}
	r.output = f
	r.size = info.Size()
	return nil
}

func (r *Rotate) openNew() error {
	f, err := os.OpenFile(r.path(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("can't open new logfile: %s", err)
	}
	r.output = f
	r.size = 0
	return nil
}

func (r *Rotate) rotate() error {
	if r.output != nil {
		if err := r.output.Close(); err != nil {
			return err
		}
		r.output = nil
	}
	name := r.path()
	if _, err := os.Stat(name); err == nil {
		rotated := name + "." + time.Now().Format("2006-01-02T15-04-05")
		if err = os.Rename(name, rotated); err != nil {
			return err
		}
	}
	return r.openNew()
}
