package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdmcp/tdbridge/schema"
	"github.com/tdmcp/tdbridge/td"
)

// syncBuffer collects transport output under the write mutex's protection.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var lines []string
	for _, line := range strings.Split(b.buf.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

type decodedResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func decodeLines(t *testing.T, lines []string) []decodedResponse {
	t.Helper()
	var responses []decodedResponse
	for _, line := range lines {
		var response decodedResponse
		require.NoError(t, json.Unmarshal([]byte(line), &response), line)
		responses = append(responses, response)
	}
	return responses
}

func runStdio(t *testing.T, server *Server, input string) []decodedResponse {
	t.Helper()
	out := &syncBuffer{}
	transport := NewStdio(server, strings.NewReader(input), out)
	require.NoError(t, transport.ListenAndServe(context.Background()))
	return decodeLines(t, out.lines())
}

// A chunk with one malformed and one well-formed envelope yields one null-id
// parse error and one normal response; neither blocks the other.
func TestStdio_MalformedLineIsIsolated(t *testing.T) {
	backend := newTestBackend(t, nil)
	server := New(td.New(backend.URL))

	input := "{not json\n" +
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n"
	responses := runStdio(t, server, input)
	require.Len(t, responses, 2)

	var parseErrors, results int
	for _, response := range responses {
		if response.Error != nil {
			assert.Equal(t, -32700, response.Error.Code)
			assert.Nil(t, response.Id, "parse error must carry a null id")
			parseErrors++
		} else {
			assert.Equal(t, float64(1), response.Id)
			results++
		}
	}
	assert.Equal(t, 1, parseErrors)
	assert.Equal(t, 1, results)
}

// Every envelope with a non-null id gets exactly one response with the same
// id, whatever the interleaving; ids are echoed verbatim.
func TestStdio_OneResponsePerRequest(t *testing.T) {
	backend := newTestBackend(t, nil)
	server := New(td.New(backend.URL))

	var input strings.Builder
	ids := []string{`1`, `"two"`, `3`, `"four"`, `5`}
	for _, id := range ids {
		input.WriteString(`{"jsonrpc":"2.0","id":` + id + `,"method":"tools/list"}` + "\n")
	}
	responses := runStdio(t, server, input.String())
	require.Len(t, responses, len(ids))

	seen := map[string]int{}
	for _, response := range responses {
		data, _ := json.Marshal(response.Id)
		seen[string(data)]++
	}
	for _, id := range ids {
		assert.Equal(t, 1, seen[id], "id %v", id)
	}
}

func TestStdio_NotificationsProduceNoResponse(t *testing.T) {
	backend := newTestBackend(t, nil)
	server := New(td.New(backend.URL))

	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
		`{"jsonrpc":"2.0","id":null,"method":"notifications/initialized"}` + "\n" +
		`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"
	responses := runStdio(t, server, input)
	require.Len(t, responses, 1)
	assert.Equal(t, float64(1), responses[0].Id)
}

// Partial lines persist across reads: an envelope split over several writes
// is still parsed as one frame, and nothing after it is lost.
func TestStdio_PartialLineAcrossReads(t *testing.T) {
	backend := newTestBackend(t, nil)
	server := New(td.New(backend.URL))

	reader, writer := io.Pipe()
	out := &syncBuffer{}
	transport := NewStdio(server, reader, out)

	done := make(chan error, 1)
	go func() {
		done <- transport.ListenAndServe(context.Background())
	}()

	chunks := []string{
		`{"jsonrpc":"2.0","id":1,`,
		`"method":"tools/list"}` + "\n" + `{"jsonrpc":"2.0","id":2,"meth`,
		`od":"ping"}` + "\n",
	}
	for _, chunk := range chunks {
		_, err := io.WriteString(writer, chunk)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, <-done)

	responses := decodeLines(t, out.lines())
	require.Len(t, responses, 2)
	ids := map[float64]bool{}
	for _, response := range responses {
		require.Nil(t, response.Error)
		ids[response.Id.(float64)] = true
	}
	assert.True(t, ids[1] && ids[2])
}

// A frame over the size ceiling is discarded through its terminator and
// answered with one null-id parse error; later envelopes still get served.
func TestStdio_OversizedLineIsIsolated(t *testing.T) {
	backend := newTestBackend(t, nil)
	server := New(td.New(backend.URL))

	var input bytes.Buffer
	input.WriteString(`{"pad":"`)
	input.Write(bytes.Repeat([]byte("x"), maxLineBytes))
	input.WriteString(`"}` + "\n")
	input.WriteString(`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n")

	responses := runStdio(t, server, input.String())
	require.Len(t, responses, 2)

	var parseErrors, results int
	for _, response := range responses {
		if response.Error != nil {
			assert.Equal(t, -32700, response.Error.Code)
			assert.Nil(t, response.Id, "parse error must carry a null id")
			parseErrors++
		} else {
			assert.Equal(t, float64(1), response.Id)
			results++
		}
	}
	assert.Equal(t, 1, parseErrors)
	assert.Equal(t, 1, results)
}

// A termination signal cancels the serving context; the transport must stop
// even while its reader stays open, after serving what already arrived.
func TestStdio_StopsOnContextCancellation(t *testing.T) {
	backend := newTestBackend(t, nil)
	server := New(td.New(backend.URL))

	reader, writer := io.Pipe()
	defer writer.Close()
	out := &syncBuffer{}
	transport := NewStdio(server, reader, out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- transport.ListenAndServe(ctx)
	}()

	_, err := io.WriteString(writer, `{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(out.lines()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("transport kept serving after cancellation")
	}
}

// Out-of-order completion: a slow tool call must not block a later request,
// and both responses arrive with their own ids.
func TestStdio_NoHeadOfLineBlocking(t *testing.T) {
	release := make(chan struct{})
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"result":{"content":[{"type":"text","text":"done"}]}}`))
	})
	server := New(td.New(backend.URL))
	server.session.MarkInitialized()

	reader, writer := io.Pipe()
	out := &syncBuffer{}
	transport := NewStdio(server, reader, out)
	done := make(chan error, 1)
	go func() {
		done <- transport.ListenAndServe(context.Background())
	}()

	_, err := io.WriteString(writer,
		`{"jsonrpc":"2.0","id":"slow","method":"tools/call","params":{"name":"create","arguments":{}}}`+"\n"+
			`{"jsonrpc":"2.0","id":"fast","method":"ping"}`+"\n")
	require.NoError(t, err)

	// the fast response must land while the slow call is still pending
	require.Eventually(t, func() bool {
		for _, response := range decodeLines(t, out.lines()) {
			if response.Id == "fast" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	close(release)
	require.NoError(t, writer.Close())
	require.NoError(t, <-done)

	responses := decodeLines(t, out.lines())
	require.Len(t, responses, 2)
}

// Writes are serialized: racing completions never interleave bytes.
func TestStdio_ConcurrentWritesStayFramed(t *testing.T) {
	backend := newTestBackend(t, nil)
	server := New(td.New(backend.URL))

	var input strings.Builder
	const total = 64
	for i := 0; i < total; i++ {
		input.WriteString(`{"jsonrpc":"2.0","id":` + string(rune('0'+i%10)) + `,"method":"tools/list"}` + "\n")
	}
	out := &syncBuffer{}
	transport := NewStdio(server, strings.NewReader(input.String()), out)
	require.NoError(t, transport.ListenAndServe(context.Background()))

	scanner := bufio.NewScanner(strings.NewReader(out.buf.String()))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	count := 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		var response decodedResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &response))
		count++
	}
	assert.Equal(t, total, count)
}

func TestStdio_ParseErrorShape(t *testing.T) {
	backend := newTestBackend(t, nil)
	server := New(td.New(backend.URL))

	responses := runStdio(t, server, "garbage\n")
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, -32700, responses[0].Error.Code)
	assert.Equal(t, "2.0", responses[0].Jsonrpc)
}

func TestStdio_InitializeGateOverStream(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"content":[{"type":"text","text":"Command queued: create component"}]}}`))
	})
	server := New(td.New(backend.URL))

	input := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"create"}}` + "\n"
	responses := runStdio(t, server, input)
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, schema.NotInitialized, responses[0].Error.Code)
}
