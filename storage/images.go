package storage

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotImage is returned when an upload does not decode as an image.
var ErrNotImage = errors.New("uploaded file is not a valid image")

const recipeImageDir = "uploads/recipe"

// SaveRecipeImage validates the payload and writes it under the media
// directory with a random filename. Returns the path relative to mediaDir.
func SaveRecipeImage(mediaDir string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotImage
	}

	ext := format
	if format == "jpeg" {
		ext = "jpg"
	}

	rel := filepath.Join(recipeImageDir, uuid.New().String()+"."+ext)
	abs := filepath.Join(mediaDir, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// RemoveImage deletes a previously stored file. A missing file is not an
// error; the row is already the source of truth.
func RemoveImage(mediaDir, rel string) {
	if rel == "" {
		return
	}
	_ = os.Remove(filepath.Join(mediaDir, rel))
}
