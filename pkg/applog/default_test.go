package applog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/applog/internal/sink"
)

func swapDefault(t *testing.T, l *Logger) {
	t.Helper()
	prev := Default()
	SetDefault(l)
	t.Cleanup(func() { SetDefault(prev) })
}

func TestDefault_IsUsable(t *testing.T) {
	require.NotNil(t, Default())
	assert.Equal(t, Verbose, GetConfig().Level())
}

func TestSetDefault_IgnoresNil(t *testing.T) {
	prev := Default()
	SetDefault(nil)
	assert.Same(t, prev, Default())
}

func TestPackageLevelFunctions(t *testing.T) {
	l, err := New(Options{Console: sink.Discard{}})
	require.NoError(t, err)
	defer func() { _ = l.Close(context.Background()) }()
	swapDefault(t, l)

	rec := sink.NewRecorder()
	SetSink(rec)

	V("v")
	D("d")
	I("i")
	W("w")
	E("e")
	A("a")

	require.Equal(t, 6, rec.Len())
	assert.Equal(t, Assert, rec.Calls()[5].Level)

	GetConfig().SetLevel(Info)
	assert.False(t, IsDebugEnabled())
	assert.False(t, IsVerboseEnabled())
}

func TestPackageLevelVariants(t *testing.T) {
	console := sink.NewWriterConsole(&bytes.Buffer{})
	console.SetTagLevel("net", Error)
	l, err := New(Options{Console: console})
	require.NoError(t, err)
	defer func() { _ = l.Close(context.Background()) }()
	swapDefault(t, l)

	rec := sink.NewRecorder()
	SetSink(rec)
	cause := errors.New("eof")

	Println(Warn, "plain")
	Vf("v %d", 1)
	Df("d %d", 2)
	If("i %d", 3)
	Wf("w %d", 4)
	Ef("e %d", 5)
	Af("a %d", 6)
	Verr(cause)
	Derr(cause)
	Ierr(cause)
	Werr(cause)
	Eerr(cause)
	Aerr(cause)

	calls := rec.Calls()
	require.Len(t, calls, 13)
	assert.Equal(t, Warn, calls[0].Level)
	assert.Equal(t, "plain", calls[0].Msg)
	assert.Equal(t, "e 5", calls[5].Msg)
	assert.Equal(t, Error, calls[5].Level)
	assert.Equal(t, "eof", calls[12].Msg)
	assert.Equal(t, Assert, calls[12].Level)

	assert.False(t, IsLoggable("net", Warn))
	assert.True(t, IsLoggable("net", Error))
}

func TestInit_InstallsDefaultAndPersists(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	app := StaticApp{Dir: t.TempDir(), Package: "com.example.init", IsDebuggable: true}
	l, err := Init(app, "init.log")
	require.NoError(t, err)
	l.SetSink(sink.NewRecorder())

	assert.Same(t, l, Default())

	I("hello")
	require.NoError(t, l.Close(context.Background()))

	data, err := os.ReadFile(filepath.Join(app.Dir, "log", "init.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO@COM.EXAMPLE.INIT\thello\n")
	// The configuration message is persisted too.
	assert.Contains(t, string(data), "DEBUG@COM.EXAMPLE.INIT\tConfiguring Logging, minimum log level is VERBOSE\n")
}

func TestLocalApp(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(DebuggableEnv, "")

	app := LocalApp("com.example.local")
	assert.Equal(t, "com.example.local", app.PackageName())
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "applog", "com.example.local", "files"), app.FilesDir())

	dbg, err := app.Debuggable()
	require.NoError(t, err)
	assert.False(t, dbg)

	t.Setenv(DebuggableEnv, "true")
	dbg, err = app.Debuggable()
	require.NoError(t, err)
	assert.True(t, dbg)

	t.Setenv(DebuggableEnv, "maybe")
	_, err = app.Debuggable()
	assert.Error(t, err)
}
