// Package ttylog records the standard streams of a shell session and plays
// them back.
package ttylog

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/josephlewis42/minibash/core/vos"
)

// FD identifies the stream an entry was seen on.
type FD int

const (
	FD_STDIN FD = iota
	FD_STDOUT
	FD_STDERR
)

// Entry is a single chunk of data seen on a stream.
type Entry struct {
	TimestampMicros int64
	Fd              FD
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause, otherwise
// entries are forwarded without pausing.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(entry *Entry) error {
		once.Do(func() {
			prevTimeMicros = entry.TimestampMicros
		})

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.Fd == FD_STDIN {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}

// Recorder is a vos.VIO that copies everything passing through the wrapped
// streams to a LogSink.
type Recorder struct {
	*vos.VIOAdapter
	mutex  sync.Mutex
	output LogSink
	now    func() time.Time
}

var _ vos.VIO = (*Recorder)(nil)

func (r *Recorder) recordIO(mockFd FD, data []byte, dest func([]byte) (int, error)) (int, error) {
	eventTime := r.now()
	amount, err := dest(data)
	if amount > 0 {
		chunk := make([]byte, amount)
		copy(chunk, data[:amount])

		r.mutex.Lock()
		e2 := r.output(&Entry{
			TimestampMicros: eventTime.UnixMicro(),
			Fd:              mockFd,
			Data:            chunk,
		})
		r.mutex.Unlock()
		if e2 != nil {
			log.Print(e2)
		}
	}
	return amount, err
}

type recorderReadCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.ReadCloser
}

var _ io.ReadCloser = (*recorderReadCloser)(nil)

func (rc *recorderReadCloser) Read(p []byte) (int, error) {
	return rc.r.recordIO(rc.mockFd, p, rc.wrapped.Read)
}

func (rc *recorderReadCloser) Close() error {
	return rc.wrapped.Close()
}

type recorderWriteCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.WriteCloser
}

var _ io.WriteCloser = (*recorderWriteCloser)(nil)

func (rc *recorderWriteCloser) Write(p []byte) (int, error) {
	return rc.r.recordIO(rc.mockFd, p, rc.wrapped.Write)
}

func (rc *recorderWriteCloser) Close() error {
	return rc.wrapped.Close()
}

// NewRecorder creates a recorder that forwards all events to output.
func NewRecorder(toWrap vos.VIO, output LogSink) *Recorder {
	recorder := &Recorder{
		output: output,
		now:    time.Now,
	}

	recorder.VIOAdapter = vos.NewVIOAdapter(
		&recorderReadCloser{mockFd: FD_STDIN, r: recorder, wrapped: toWrap.Stdin()},
		&recorderWriteCloser{mockFd: FD_STDOUT, r: recorder, wrapped: toWrap.Stdout()},
		&recorderWriteCloser{mockFd: FD_STDERR, r: recorder, wrapped: toWrap.Stderr()},
	)

	return recorder
}
