package server

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// maxLineBytes bounds a single framed envelope on the stream transport.
const maxLineBytes = 10 << 20

var errLineTooLong = fmt.Errorf("frame exceeds %d bytes", maxLineBytes)

// Stdio serves the newline-delimited stream transport: one envelope per
// line in, one envelope per line out, on a single duplex byte channel.
type Stdio struct {
	server *Server
	in     io.Reader
	out    io.Writer
	mu     sync.Mutex
	wg     sync.WaitGroup
}

// Stdio returns the stream transport bound to the process stdin/stdout.
func (s *Server) Stdio() *Stdio {
	return NewStdio(s, os.Stdin, os.Stdout)
}

// NewStdio creates a stream transport over the given reader/writer pair.
func NewStdio(server *Server, in io.Reader, out io.Writer) *Stdio {
	return &Stdio{server: server, in: in, out: out}
}

// ListenAndServe reads envelopes until EOF or context cancellation. Partial
// lines persist across reads; a malformed or oversized line yields a null-id
// parse error without disturbing the rest of the stream. Requests run
// concurrently, so responses may complete out of order; writes are serialized
// line by line. On cancellation, in-flight requests drain before returning.
func (t *Stdio) ListenAndServe(ctx context.Context) error {
	handler := t.server.NewHandler()
	done := make(chan error, 1)
	go func() {
		done <- t.serveLines(ctx, handler)
	}()
	select {
	case err := <-done:
		t.wg.Wait()
		return err
	case <-ctx.Done():
		// the read loop may stay blocked on its reader; the process is on
		// its way out, so only in-flight requests are drained
		t.server.logger.Info().Msg("stream transport stopping")
		t.wg.Wait()
		return nil
	}
}

func (t *Stdio) serveLines(ctx context.Context, handler *Handler) error {
	reader := bufio.NewReaderSize(t.in, 64*1024)
	for {
		line, err := readLine(reader)
		if err == errLineTooLong {
			t.write(parseErrorResponse(err))
			continue
		}
		if data := bytes.TrimSpace(line); len(data) > 0 {
			t.wg.Add(1)
			go func() {
				defer t.wg.Done()
				if response := handleLine(ctx, handler, data); response != nil {
					t.write(response)
				}
			}()
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// readLine returns one newline-terminated frame, accumulating partial reads
// until the terminator arrives. A frame exceeding maxLineBytes is discarded
// through its terminator and reported as errLineTooLong so the stream can
// continue past it.
func readLine(reader *bufio.Reader) ([]byte, error) {
	var line []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		line = append(line, chunk...)
		if err == bufio.ErrBufferFull {
			if len(line) > maxLineBytes {
				return nil, discardLine(reader)
			}
			continue
		}
		return line, err
	}
}

func discardLine(reader *bufio.Reader) error {
	for {
		if _, err := reader.ReadSlice('\n'); err != bufio.ErrBufferFull {
			return errLineTooLong
		}
	}
}

func (t *Stdio) write(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.out.Write(append(data, '\n')); err != nil {
		t.server.logger.Error().Err(err).Msg("failed to write response")
	}
}
