package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/applog/internal/severity"
)

func TestDefaultStyles_CoversEveryLevel(t *testing.T) {
	styles := DefaultStyles(nil)

	for _, l := range severity.All() {
		_, ok := styles.Levels[l]
		assert.True(t, ok, "missing style for %s", l)
	}
	assert.True(t, styles.Level(severity.Assert).GetBold())
	assert.True(t, styles.Header.GetBold())
}

func TestNoColorStyles_RenderPlain(t *testing.T) {
	styles := NoColorStyles()

	assert.Equal(t, "WARN", styles.Level(severity.Warn).Render("WARN"))
	assert.Equal(t, "TAG", styles.Tag.Render("TAG"))
	assert.Equal(t, "x", styles.Dim.Render("x"))
}

func TestStyles_LevelUnknownFallsBack(t *testing.T) {
	styles := DefaultStyles(nil)

	assert.Equal(t, "?", styles.Level(severity.Level(42)).Render("?"))
}
