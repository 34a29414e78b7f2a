package logconfig

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aman-CERP/applog/internal/errors"
	"github.com/Aman-CERP/applog/internal/severity"
)

type fakeApp struct {
	pkg        string
	debuggable bool
	err        error
}

func (a fakeApp) PackageName() string { return a.pkg }
func (a fakeApp) Debuggable() (bool, error) { return a.debuggable, a.err }

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, severity.Verbose, cfg.Level())
	assert.Equal(t, "", cfg.Scope())
	assert.True(t, cfg.IsDebugEnabled())
	assert.True(t, cfg.IsVerboseEnabled())
}

func TestFromApp_Debuggable(t *testing.T) {
	cfg, err := FromApp(fakeApp{pkg: "com.example.notes", debuggable: true})

	require.NoError(t, err)
	assert.Equal(t, severity.Verbose, cfg.Level())
	assert.Equal(t, "COM.EXAMPLE.NOTES", cfg.Scope())
	assert.Equal(t, "com.example.notes", cfg.PackageName())
}

func TestFromApp_Release(t *testing.T) {
	cfg, err := FromApp(fakeApp{pkg: "com.example.notes"})

	require.NoError(t, err)
	assert.Equal(t, severity.Info, cfg.Level())
	assert.False(t, cfg.IsDebugEnabled())
	assert.False(t, cfg.IsVerboseEnabled())
}

func TestFromApp_MetadataFailureKeepsDefault(t *testing.T) {
	cause := errors.New("package not found")
	cfg, err := FromApp(fakeApp{pkg: "com.example.gone", err: cause})

	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperrors.ErrCodeAppMetadata, apperrors.GetCode(err))
	assert.Equal(t, DefaultLevel, cfg.Level())
	assert.Equal(t, "com.example.gone", cfg.PackageName())
	assert.Empty(t, cfg.Scope())
}

func TestFromApp_Nil(t *testing.T) {
	cfg, err := FromApp(nil)

	require.Error(t, err)
	assert.Equal(t, DefaultLevel, cfg.Level())
}

func TestSetLevel(t *testing.T) {
	cfg := New()
	cfg.SetLevel(severity.Error)

	assert.Equal(t, severity.Error, cfg.Level())
	assert.True(t, cfg.Enabled(severity.Assert))
	assert.True(t, cfg.Enabled(severity.Error))
	assert.False(t, cfg.Enabled(severity.Warn))
}

func TestSetLevel_KeepsScope(t *testing.T) {
	cfg := NewFromSnapshot(Snapshot{MinimumLevel: severity.Info, Scope: "APP"})
	cfg.SetLevel(severity.Debug)

	assert.Equal(t, Snapshot{MinimumLevel: severity.Debug, Scope: "APP"}, cfg.Snapshot())
}

func TestSnapshot_IsACopy(t *testing.T) {
	cfg := New()
	snap := cfg.Snapshot()
	snap.MinimumLevel = severity.Assert

	assert.Equal(t, severity.Verbose, cfg.Level())
}

func TestReplace(t *testing.T) {
	cfg := New()
	cfg.Replace(Snapshot{MinimumLevel: severity.Warn, Scope: "X", PackageName: "x"})

	assert.Equal(t, severity.Warn, cfg.Level())
	assert.Equal(t, "X", cfg.Scope())
	assert.Equal(t, "x", cfg.PackageName())
}

func TestConcurrentUpdates_NoLostWrites(t *testing.T) {
	cfg := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetLevel(severity.Warn)
		}()
		go func() {
			defer wg.Done()
			cfg.SetScope("SCOPE")
		}()
	}
	wg.Wait()

	// Both fields were written by independent updaters; neither may be lost.
	assert.Equal(t, severity.Warn, cfg.Level())
	assert.Equal(t, "SCOPE", cfg.Scope())
}
