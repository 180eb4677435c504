//go:build !ci

package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSilence(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, generators.Silence(rate.N(50*time.Millisecond)), format))
}

func TestLoadSoundFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeSilence(t, filepath.Join(dir, Reveal+".wav"), sampleRate)
	writeSilence(t, filepath.Join(dir, Win+".wav"), beep.SampleRate(22050))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Wrong+".wav"), []byte("not a wav"), 0o644))

	sm := NewSoundManager(dir)
	require.NoError(t, sm.loadSoundFiles())

	assert.True(t, sm.has(Reveal))
	assert.True(t, sm.has(Win), "resampled effects load too")
	assert.False(t, sm.has(Wrong), "broken files are skipped")
	assert.False(t, sm.has("notes"))
}

func TestLoadSoundFiles_MissingDir(t *testing.T) {
	t.Parallel()
	sm := NewSoundManager(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, sm.loadSoundFiles())
	assert.False(t, sm.has(Reveal))
}

func TestPlay_DisabledIsSilent(t *testing.T) {
	t.Parallel()
	sm := NewSoundManager(t.TempDir())
	assert.NotPanics(t, func() {
		sm.Play(Reveal)
		sm.Play("")
		sm.Close()
	})
}

func TestPlay_WhileLoading(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{Reveal, Pass, Wrong, RoundEnd, Win} {
		writeSilence(t, filepath.Join(dir, name+".wav"), sampleRate)
	}

	sm := NewSoundManager(dir)
	done := make(chan error, 1)
	go func() { done <- sm.loadSoundFiles() }()

	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			assert.True(t, sm.has(RoundEnd))
			sm.Close()
			return
		default:
			sm.Play(Reveal)
			_ = sm.has(Win)
		}
	}
}
