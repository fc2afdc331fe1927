package scheduler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/config"
)

func writeAgedFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestRunSweep_RemovesOnlyExpiredArtifacts(t *testing.T) {
	imageDir := t.TempDir()
	outputDir := t.TempDir()

	expiredImage := writeAgedFile(t, imageDir, "bg_old.png", 48*time.Hour)
	freshImage := writeAgedFile(t, imageDir, "final_new.png", time.Hour)
	expiredPost := writeAgedFile(t, outputDir, "post_old_caption.txt", 72*time.Hour)

	service := NewService(&config.Config{
		ImageOutputDir: imageDir,
		OutputDir:      outputDir,
		RetentionDays:  1,
	})

	service.RunSweep()

	assert.NoFileExists(t, expiredImage)
	assert.NoFileExists(t, expiredPost)
	assert.FileExists(t, freshImage)
}

func TestRunSweep_SkipsSubdirectories(t *testing.T) {
	imageDir := t.TempDir()
	nested := filepath.Join(imageDir, "keep")
	require.NoError(t, os.Mkdir(nested, 0o755))
	stamp := time.Now().Add(-96 * time.Hour)
	require.NoError(t, os.Chtimes(nested, stamp, stamp))

	service := NewService(&config.Config{
		ImageOutputDir: imageDir,
		OutputDir:      t.TempDir(),
		RetentionDays:  1,
	})

	service.RunSweep()

	assert.DirExists(t, nested)
}

func TestRunSweep_MissingDirectoryIsHarmless(t *testing.T) {
	service := NewService(&config.Config{
		ImageOutputDir: filepath.Join(t.TempDir(), "never-created"),
		OutputDir:      filepath.Join(t.TempDir(), "also-missing"),
		RetentionDays:  1,
	})

	assert.NotPanics(t, func() { service.RunSweep() })
}

func TestStartAndStop(t *testing.T) {
	service := NewService(&config.Config{
		CleanupSchedule: "hourly",
		ImageOutputDir:  t.TempDir(),
		OutputDir:       t.TempDir(),
		RetentionDays:   30,
	})

	require.NoError(t, service.Start())
	service.Stop()
}
