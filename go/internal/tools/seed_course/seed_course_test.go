package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcdev12/minigolf/go/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCourse(t *testing.T) {
	t.Run("bundled course", func(t *testing.T) {
		course, err := loadCourse(filepath.Join("..", "..", "assets", "course.json"))
		require.NoError(t, err)
		assert.Equal(t, "demo-windmill-course", course.Room)
		assert.Len(t, course.Holes, 9)
		assert.NotEmpty(t, course.Players)
	})

	t.Run("room name is normalized", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "course.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"room":" Windmill-Hill ","players":[],"holes":[{"number":1}]}`), 0o600))
		course, err := loadCourse(path)
		require.NoError(t, err)
		assert.Equal(t, "windmill-hill", course.Room)
		assert.Nil(t, course.Holes[0].Par)
	})

	t.Run("invalid course", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "course.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"room":"","holes":[{"number":0}]}`), 0o600))
		_, err := loadCourse(path)
		require.Error(t, err)
		assert.True(t, validate.IsValidationError(err))
	})
}
