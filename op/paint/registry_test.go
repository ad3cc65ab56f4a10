// SPDX-License-Identifier: Unlicense OR MIT

package paint

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

type countingUploader struct {
	uploads map[ImageID]int
}

func (u *countingUploader) Upload(id ImageID, img image.Image) error {
	u.uploads[id]++
	return nil
}

func TestRegistryUploadsOnce(t *testing.T) {
	u := &countingUploader{uploads: make(map[ImageID]int)}
	r := NewRegistry(u)
	id := r.Add(image.NewRGBA(image.Rect(0, 0, 30, 20)))
	if r.Resident(id) {
		t.Fatal("image resident before first use")
	}
	for i := 0; i < 3; i++ {
		sz, err := r.ImageSize(id)
		if err != nil {
			t.Fatal(err)
		}
		if sz != image.Pt(30, 20) {
			t.Errorf("size %v", sz)
		}
	}
	if u.uploads[id] != 1 {
		t.Errorf("uploaded %d times, want 1", u.uploads[id])
	}
	if !r.Resident(id) {
		t.Error("image not resident after use")
	}
}

func TestRegistryDecode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	r := NewRegistry(nil)
	id, err := r.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if sz, _ := r.ImageSize(id); sz != image.Pt(4, 3) {
		t.Errorf("decoded size %v", sz)
	}
}

func TestRegistryOpenFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewRegistry(nil)
	id := r.Open(bad)
	if _, err := r.ImageSize(id); err == nil {
		t.Fatal("decoding garbage succeeded")
	}
	missing := r.Open(filepath.Join(dir, "missing.png"))
	if _, err := r.ImageSize(missing); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}
	if _, err := r.ImageSize(999); !errors.Is(err, ErrUnknownImage) {
		t.Errorf("unknown id: got %v", err)
	}
	if ids := r.IDs(); len(ids) != 2 || ids[0] != id {
		t.Errorf("IDs: %v", ids)
	}
}
