package roadgraph

import (
	"bytes"
	"image"
	"image/png"
	"os"
)

// savePNG to disk
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, buff.Bytes(), 0644)
}

// containsID returns if id is in the list
func containsID[K comparable](in []K, id K) bool {
	for _, v := range in {
		if v == id {
			return true
		}
	}
	return false
}
