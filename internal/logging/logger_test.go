package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

type failingWriter struct{ err error }

func (f failingWriter) Write(p []byte) (int, error) { return 0, f.err }

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, GetLevel("chatty"))
}

func TestOutput(t *testing.T) {
	assert.Equal(t, os.Stdout, Output(LoggerSetupParams{}))

	name := filepath.Join(t.TempDir(), "kanso")

	w := Output(LoggerSetupParams{LogFileName: name})
	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, name+".log", lj.Filename)
	assert.Equal(t, 50, lj.MaxSize)

	w = Output(LoggerSetupParams{LogFileName: name + ".log", LogToStdout: true, MaxSizeMB: 5})
	cw, ok := w.(*CombinedWriter)
	require.True(t, ok)
	require.Len(t, cw.Writers, 2)
	assert.Equal(t, 5, cw.Writers[1].(*lumberjack.Logger).MaxSize)
}

func TestCombinedWriter(t *testing.T) {
	var a, b bytes.Buffer
	errA := errors.New("disk full")
	errB := errors.New("pipe closed")

	cw := NewCombinedWriter(&a, failingWriter{errA}, &b, failingWriter{errB})
	_, err := cw.Write([]byte("hello"))

	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String(), "a failing writer must not stop the next one")
	assert.Len(t, multierr.Errors(err), 2)

	n, err := NewCombinedWriter(&a).Write([]byte("!"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
