package ipc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/poiesic/dictcc/core"
)

type fakeTranslator struct {
	rows  []core.Translation
	words []string
	err   error
	seen  []string
}

func (f *fakeTranslator) From() string { return "de" }
func (f *fakeTranslator) To() string   { return "en" }

func (f *fakeTranslator) Lookup(_ context.Context, q string) ([]core.Translation, error) {
	f.seen = append(f.seen, q)
	return f.rows, f.err
}

func (f *fakeTranslator) Complete(_ context.Context, partial string) ([]string, error) {
	f.seen = append(f.seen, partial)
	return f.words, f.err
}

func encodeRequests(t *testing.T, reqs ...Request) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, req := range reqs {
		require.NoError(t, enc.Encode(req))
	}
	return &buf
}

func serve(t *testing.T, tr Translator, in *bytes.Buffer) *msgpack.Decoder {
	t.Helper()
	var out bytes.Buffer
	server, err := NewServer(tr, in, &out)
	require.NoError(t, err)
	require.NoError(t, server.Serve(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
	return dec
}

func TestNewServer_RequiresTranslator(t *testing.T) {
	_, err := NewServer(nil, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrTranslatorRequired)
}

func TestServer_Lookup(t *testing.T) {
	tr := &fakeTranslator{rows: []core.Translation{
		{Source: "Haus {n}", Target: "house", WordClasses: "noun", Score: 1000},
		{Source: "Maus {f}", Target: "mouse", WordClasses: "noun", SubjectLabels: "[zool.]", Score: 666},
	}}
	dec := serve(t, tr, encodeRequests(t,
		Request{ID: "1", Command: CommandLookup, Query: "Haus"},
		Request{ID: "2", Command: CommandLookup, Query: "Haus", Limit: 1},
	))

	var resp LookupResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, Translation{Source: "Maus {f}", Target: "mouse", WordClasses: "noun", SubjectLabels: "[zool.]", Score: 666}, resp.Results[1])

	resp = LookupResponse{}
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "2", resp.ID)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "house", resp.Results[0].Target)

	assert.Equal(t, []string{"Haus", "Haus"}, tr.seen)
}

func TestServer_Complete(t *testing.T) {
	tr := &fakeTranslator{words: []string{"Haus", "Hausboot"}}
	dec := serve(t, tr, encodeRequests(t, Request{ID: "c", Command: CommandComplete, Query: "Hau"}))

	var resp CompleteResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "c", resp.ID)
	assert.Equal(t, []string{"Haus", "Hausboot"}, resp.Words)
	assert.Equal(t, 2, resp.Count)
}

func TestServer_CompleteNoMatches(t *testing.T) {
	dec := serve(t, &fakeTranslator{}, encodeRequests(t, Request{ID: "c", Command: CommandComplete, Query: "xyz"}))

	var resp CompleteResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Empty(t, resp.Words)
	assert.Zero(t, resp.Count)
}

func TestServer_Health(t *testing.T) {
	dec := serve(t, &fakeTranslator{}, encodeRequests(t, Request{ID: "h", Command: CommandHealth}))

	var resp StatusResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, StatusResponse{ID: "h", Status: "ok", Pair: "de-en", From: "de"}, resp)
}

func TestServer_Errors(t *testing.T) {
	tr := &fakeTranslator{err: errors.New("boom")}
	dec := serve(t, tr, encodeRequests(t,
		Request{ID: "1", Command: "translate"},
		Request{ID: "2", Command: CommandLookup},
		Request{ID: "3", Command: CommandLookup, Query: strings.Repeat("a", MaxQueryLength+1)},
		Request{ID: "4", Command: CommandLookup, Query: "Haus"},
		Request{ID: "5", Command: CommandHealth},
	))

	expected := []struct {
		id     string
		status int
	}{{"1", 400}, {"2", 400}, {"3", 400}, {"4", 500}}
	for _, want := range expected {
		var resp ErrorResponse
		require.NoError(t, dec.Decode(&resp))
		assert.Equal(t, want.id, resp.ID)
		assert.Equal(t, want.status, resp.Status)
		assert.NotEmpty(t, resp.Error)
	}

	// The server keeps going after failed requests.
	var health StatusResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, "ok", health.Status)
}

func TestServer_CancelledContext(t *testing.T) {
	var out bytes.Buffer
	server, err := NewServer(&fakeTranslator{}, encodeRequests(t, Request{ID: "1", Command: CommandHealth}), &out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, server.Serve(ctx), context.Canceled)
}

func TestServer_MalformedInput(t *testing.T) {
	var out bytes.Buffer
	server, err := NewServer(&fakeTranslator{}, bytes.NewBufferString("\xc1"), &out)
	require.NoError(t, err)
	assert.Error(t, server.Serve(context.Background()))
}
