package shell

import (
	"bufio"
	"io"
)

// LineReader reads newline terminated lines of bounded length.
type LineReader struct {
	r   *bufio.Reader
	max int
}

// NewLineReader creates a reader returning at most max bytes per line.
func NewLineReader(r io.Reader, max int) *LineReader {
	return &LineReader{r: bufio.NewReader(r), max: max}
}

// ReadLine returns the next line without its trailing newline.
//
// Bytes past the limit are dropped up to the end of the physical line. A
// final line with no newline is returned normally and the following call
// returns io.EOF. Other read errors are wrapped in ErrReadFailed.
func (lr *LineReader) ReadLine() (string, error) {
	var line []byte
	read := 0

	for {
		chunk, err := lr.r.ReadSlice('\n')
		read += len(chunk)
		if room := lr.max - len(line); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			line = append(line, chunk...)
		}

		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && read == 0:
			return "", io.EOF
		case err == io.EOF:
			return string(line), nil
		case err != nil:
			return "", wrap(ErrReadFailed, err)
		}

		if n := len(line); n > 0 && line[n-1] == '\n' {
			line = line[:n-1]
		}
		return string(line), nil
	}
}
