package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// imageExts are tried in order for each key.
var imageExts = []string{".png", ".bmp", ".webp"}

// FileLoader decodes <Dir>/<key>.{png,bmp,webp}. Keys use forward slashes,
// e.g. "weapon/sword".
type FileLoader struct {
	Dir string
}

// Load implements Loader.
func (l FileLoader) Load(key string) (image.Image, error) {
	base := filepath.Join(l.Dir, filepath.FromSlash(key))
	for _, ext := range imageExts {
		f, err := os.Open(base + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", base+ext, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("no image for %q under %s: %w", key, l.Dir, fs.ErrNotExist)
}
