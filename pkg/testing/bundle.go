package testing

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/TkwkT/CircleImageView/pkg/resources"
	"gopkg.in/yaml.v3"
)

// SolidImage returns a w×h image filled with c.
func SolidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// EncodePNG encodes img as PNG, failing the test on error.
func EncodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// NewBundle builds an in-memory resource bundle holding images as PNG
// files. Handles are assigned from 1 in name order.
func NewBundle(t testing.TB, images map[string]image.Image) *resources.Bundle {
	t.Helper()
	fsys, _ := BundleFS(t, images)
	bundle, err := resources.Load(fsys)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return bundle
}

// BundleFS returns the file system backing NewBundle along with its
// manifest, for tests that need to alter either before loading.
func BundleFS(t testing.TB, images map[string]image.Image) (fstest.MapFS, *resources.Manifest) {
	t.Helper()
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	slices.Sort(names)

	fsys := fstest.MapFS{}
	manifest := &resources.Manifest{Version: "v1.0.0"}
	for i, name := range names {
		path := "images/" + name + ".png"
		fsys[path] = &fstest.MapFile{Data: EncodePNG(t, images[name])}
		manifest.Resources = append(manifest.Resources, resources.Entry{
			ID:   resources.Handle(i + 1),
			Name: name,
			Path: path,
		})
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	fsys[resources.ManifestFile] = &fstest.MapFile{Data: data}
	return fsys, manifest
}
