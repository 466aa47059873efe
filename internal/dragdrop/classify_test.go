package dragdrop

import (
	"testing"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		path string
		want config.ActionType
		exec bool
	}{
		{`C:\apps\notepad.exe`, config.ActionLaunchApp, true},
		{`C:\apps\SETUP.MSI`, config.ActionLaunchApp, true},
		{"/usr/local/bin/deploy.sh", config.ActionLaunchApp, true},
		{"build.py", config.ActionLaunchApp, true},
		{"/home/u/notes.txt", config.ActionOpen, false},
		{"/home/u/photo.png", config.ActionOpen, false},
		{"/home/u/Makefile", config.ActionOpen, false},
		{"/home/u/projects/", config.ActionOpen, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ClassifyFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ActionType)
			assert.Equal(t, tt.exec, got.IsExecutable)
		})
	}
}

func TestClassifyAmbiguous(t *testing.T) {
	for _, p := range []string{"", "/", `\\`, "..", `C:\`} {
		_, err := ClassifyFile(p)
		assert.ErrorIs(t, err, ErrClassificationAmbiguous, p)
	}
}

func TestCustomPatterns(t *testing.T) {
	c, err := NewClassifier([]string{"*.AppImage", "run-*"})
	require.NoError(t, err)

	got, err := c.Classify("/opt/Krita.appimage")
	require.NoError(t, err)
	assert.True(t, got.IsExecutable)

	got, err = c.Classify("/opt/run-server")
	require.NoError(t, err)
	assert.True(t, got.IsExecutable)

	got, err = c.Classify("/opt/tool.exe")
	require.NoError(t, err)
	assert.False(t, got.IsExecutable)
}

func TestBuildActionConfigScripts(t *testing.T) {
	cfg := BuildActionConfig(`D:\scripts\sync.ps1`, Classification{ActionType: config.ActionLaunchApp, IsExecutable: true})
	assert.Equal(t, "powershell", cfg["interpreter"])
	assert.Equal(t, []any{"-ExecutionPolicy", "Bypass", "-File", `D:\scripts\sync.ps1`}, cfg["args"])
	assert.Equal(t, `D:\scripts`, cfg["workdir"])

	cfg = BuildActionConfig(`C:\tool.exe`, Classification{ActionType: config.ActionLaunchApp, IsExecutable: true})
	assert.Equal(t, `C:\`, cfg["workdir"])
	assert.NotContains(t, cfg, "interpreter")
}
