package printer

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/andreyxaxa/Scan-Checkin/config"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	assert.Equal(t, "---\nCheck-in Receipt\nName: Ada Lovelace\nCompany: Analytical\n---\n", Text(" Ada Lovelace ", "Analytical"))
	assert.Equal(t, "---\nCheck-in Receipt\nName: Ada\nCompany: —\n---\n", Text("Ada", "  "))
}

func TestPNG(t *testing.T) {
	b, err := PNG("Ada Lovelace", "")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, _pngWidth, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 5*_lineHeight)
}

func TestTCPPrinter(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()

	p := NewTCPPrinter(ln.Addr().String(), time.Second)
	require.NoError(t, p.Emit(context.Background(), "Ada", "Analytical"))

	select {
	case b := <-received:
		assert.True(t, bytes.HasPrefix(b, _escInit))
		assert.True(t, bytes.HasSuffix(b, _escCut))
		assert.Contains(t, string(b), "Name: Ada\nCompany: Analytical\n")
	case <-time.After(2 * time.Second):
		t.Fatal("printer received nothing")
	}
}

func TestTCPPrinter_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	err = NewTCPPrinter(addr, 200*time.Millisecond).Emit(context.Background(), "Ada", "")
	assert.Error(t, err)
}

func TestSpoolPrinter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")

	p, err := NewSpoolPrinter(dir)
	require.NoError(t, err)

	require.NoError(t, p.Emit(context.Background(), "Ada", "Analytical"))
	require.NoError(t, p.Emit(context.Background(), "Grace", ""))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var all string
	for _, e := range entries {
		assert.Equal(t, ".txt", filepath.Ext(e.Name()))
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		all += string(b)
	}
	assert.Contains(t, all, "Name: Ada\n")
	assert.Contains(t, all, "Name: Grace\nCompany: —\n")
}

func TestSpoolPrinter_CanceledContext(t *testing.T) {
	p, err := NewSpoolPrinter(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Emit(ctx, "Ada", ""), context.Canceled)
}

func TestLogPrinter(t *testing.T) {
	var buf bytes.Buffer

	p := NewLogPrinter(logger.NewWithWriter("info", &buf))
	require.NoError(t, p.Emit(context.Background(), "Ada", "Analytical"))

	assert.Contains(t, buf.String(), "Check-in Receipt")
}

func TestNew(t *testing.T) {
	l := logger.NewWithWriter("disabled", io.Discard)

	p, err := New(config.Printer{Driver: "log"}, l)
	require.NoError(t, err)
	assert.IsType(t, &LogPrinter{}, p)

	p, err = New(config.Printer{Driver: "spool", SpoolDir: t.TempDir()}, l)
	require.NoError(t, err)
	assert.IsType(t, &SpoolPrinter{}, p)

	p, err = New(config.Printer{Driver: "tcp", Addr: "127.0.0.1:9100", Timeout: time.Second}, l)
	require.NoError(t, err)
	assert.IsType(t, &TCPPrinter{}, p)

	_, err = New(config.Printer{Driver: "tcp"}, l)
	assert.Error(t, err)

	_, err = New(config.Printer{Driver: "laser"}, l)
	assert.ErrorIs(t, err, errs.ErrUnknownPrinterDriver)
}

type stubEmitter struct{ err error }

func (e stubEmitter) Emit(context.Context, string, string) error { return e.err }

type memArchive struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (a *memArchive) Store(_ context.Context, key string, png []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)

	return nil
}

func TestArchived(t *testing.T) {
	l := logger.NewWithWriter("disabled", io.Discard)

	t.Run("stores after print", func(t *testing.T) {
		a := &memArchive{}
		e := NewArchived(stubEmitter{}, a, l)

		require.NoError(t, e.Emit(context.Background(), "Ada", ""))
		require.Len(t, a.keys, 1)
		assert.Equal(t, ".png", filepath.Ext(a.keys[0]))
	})

	t.Run("print failure skips archive", func(t *testing.T) {
		a := &memArchive{}
		e := NewArchived(stubEmitter{err: errors.New("paper out")}, a, l)

		assert.EqualError(t, e.Emit(context.Background(), "Ada", ""), "paper out")
		assert.Empty(t, a.keys)
	})

	t.Run("archive failure does not fail print", func(t *testing.T) {
		e := NewArchived(stubEmitter{}, &memArchive{err: errors.New("bucket gone")}, l)

		assert.NoError(t, e.Emit(context.Background(), "Ada", ""))
	})
}
