// SPDX-License-Identifier: Unlicense OR MIT

package paint

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageID is the stable identity of an image in a Registry.
type ImageID uint64

// ErrUnknownImage is returned for ids not known to the registry.
var ErrUnknownImage = errors.New("paint: unknown image")

// Uploader is implemented by backends that keep images in textures.
type Uploader interface {
	Upload(id ImageID, img image.Image) error
}

// Registry owns images by id. It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	next     ImageID
	images   map[ImageID]*entry
	uploader Uploader
}

type entry struct {
	path     string
	img      image.Image
	err      error
	decoded  bool
	resident bool
}

// NewRegistry returns a registry uploading images through u. A nil u
// means images are never uploaded.
func NewRegistry(u Uploader) *Registry {
	return &Registry{
		images:   make(map[ImageID]*entry),
		uploader: u,
	}
}

// Add registers a decoded image.
func (r *Registry) Add(img image.Image) ImageID {
	return r.add(&entry{img: img, decoded: true})
}

// Open registers the image file at path. The file is read and decoded
// the first time the image is needed.
func (r *Registry) Open(path string) ImageID {
	return r.add(&entry{path: path})
}

// Decode reads and registers an image.
func (r *Registry) Decode(rd io.Reader) (ImageID, error) {
	img, _, err := image.Decode(rd)
	if err != nil {
		return 0, fmt.Errorf("paint: decode image: %w", err)
	}
	return r.Add(img), nil
}

func (r *Registry) add(e *entry) ImageID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.images[r.next] = e
	return r.next
}

// ImageSize returns the natural size of image id in pixels, decoding
// the image and making it resident if that has not happened yet.
// Decode failures are remembered and returned on every call.
func (r *Registry) ImageSize(id ImageID) (image.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.load(id)
	if err != nil {
		return image.Point{}, err
	}
	if !e.resident && r.uploader != nil {
		if err := r.uploader.Upload(id, e.img); err != nil {
			return image.Point{}, fmt.Errorf("paint: upload image %d: %w", id, err)
		}
	}
	e.resident = true
	return e.img.Bounds().Size(), nil
}

// Image returns the decoded image.
func (r *Registry) Image(id ImageID) (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.load(id)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

// Resident reports whether image id has been made resident.
func (r *Registry) Resident(id ImageID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.images[id]
	return ok && e.resident
}

// IDs returns the registered ids in increasing order.
func (r *Registry) IDs() []ImageID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := maps.Keys(r.images)
	slices.Sort(ids)
	return ids
}

func (r *Registry) load(id ImageID) (*entry, error) {
	e, ok := r.images[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}
	if !e.decoded {
		e.decoded = true
		e.img, e.err = decodeFile(e.path)
	}
	if e.err != nil {
		return nil, e.err
	}
	return e, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("paint: open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("paint: decode %s: %w", path, err)
	}
	return img, nil
}
