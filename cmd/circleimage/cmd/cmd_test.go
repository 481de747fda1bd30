package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TkwkT/CircleImageView/cmd/circleimage/internal/config"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func solidPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func assertCircle(t *testing.T, img image.Image, size int) {
	t.Helper()
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		t.Fatalf("output is %dx%d, want %dx%d", b.Dx(), b.Dy(), size, size)
	}
	if _, _, _, a := img.At(size/2, size/2).RGBA(); a != 0xffff {
		t.Error("center is not opaque")
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner is not transparent")
	}
}

func newBundleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "images", "avatar.png"), solidPNG(t, 80, 60))
	writeFile(t, filepath.Join(dir, "resources.yaml"), []byte(`version: v1.0.0
resources:
  - id: 1
    name: avatar
    path: images/avatar.png
`))
	return dir
}

func TestParseSourceOptions(t *testing.T) {
	cfg := &config.Config{Render: config.RenderConfig{Size: 128}}
	tests := []struct {
		name    string
		args    []string
		withOut bool
		want    sourceOptions
		wantErr bool
	}{
		{"file defaults", []string{"--file", "a.png"}, true,
			sourceOptions{file: "a.png", size: 128, out: "circle.png"}, false},
		{"equals form", []string{"--url=http://x/a.png?s=1", "--size=64", "--padding=2"}, false,
			sourceOptions{url: "http://x/a.png?s=1", size: 64, padding: 2}, false},
		{"res with manifest", []string{"--res", "avatar", "--manifest", "assets", "--out", "o.png"}, true,
			sourceOptions{res: "avatar", manifest: "assets", size: 128, out: "o.png"}, false},
		{"no source", []string{"--size", "10"}, true, sourceOptions{}, true},
		{"two sources", []string{"--file", "a", "--url", "b"}, true, sourceOptions{}, true},
		{"res without manifest", []string{"--res", "avatar"}, true, sourceOptions{}, true},
		{"bad size", []string{"--file", "a", "--size", "big"}, true, sourceOptions{}, true},
		{"zero size", []string{"--file", "a", "--size", "0"}, true, sourceOptions{}, true},
		{"missing value", []string{"--file"}, true, sourceOptions{}, true},
		{"out not allowed", []string{"--file", "a", "--out", "b"}, false, sourceOptions{}, true},
		{"unknown flag", []string{"--file", "a", "--zoom", "2"}, true, sourceOptions{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSourceOptions(tt.args, cfg, tt.withOut)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := map[string]string{
		"v0.1.0":                         "v0.1.0",
		"0.1.0":                          "v0.1.0",
		"circleimage-v0.1.0":             "v0.1.0",
		"v0.2.0-rc1":                     "v0.2.0-rc1",
		"0.1.0-dev":                      "",
		"v0.2.1-0.20260122153045-abc123": "",
		"v1.2":                           "",
		"garbage":                        "",
	}
	for in, want := range tests {
		if got := NormalizeVersion(in); got != want {
			t.Errorf("NormalizeVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	out := filepath.Join(dir, "out.png")
	writeFile(t, src, solidPNG(t, 200, 100))

	if err := execute([]string{"render", "--file", src, "--size", "40", "--out", out}); err != nil {
		t.Fatal(err)
	}
	assertCircle(t, readPNG(t, out), 40)
}

func TestRenderResource(t *testing.T) {
	bundle := newBundleDir(t)
	out := filepath.Join(t.TempDir(), "avatar.png")

	if err := execute([]string{"render", "--manifest", bundle, "--res", "avatar", "--size", "50", "--padding", "5", "--out", out}); err != nil {
		t.Fatal(err)
	}
	img := readPNG(t, out)
	assertCircle(t, img, 50)
	if _, _, _, a := img.At(2, 25).RGBA(); a != 0 {
		t.Error("padding area is not transparent")
	}
}

func TestRenderResource_Unknown(t *testing.T) {
	bundle := newBundleDir(t)
	err := execute([]string{"render", "--manifest", bundle, "--res", "missing", "--out", filepath.Join(t.TempDir(), "x.png")})
	if err == nil || !strings.Contains(err.Error(), "unknown resource") {
		t.Errorf("error = %v, want unknown resource", err)
	}
}

func TestRenderURL(t *testing.T) {
	data := solidPNG(t, 64, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()
	out := filepath.Join(t.TempDir(), "url.png")

	if err := execute([]string{"render", "--url", srv.URL, "--size", "32", "--out", out}); err != nil {
		t.Fatal(err)
	}
	assertCircle(t, readPNG(t, out), 32)
}

func TestRenderURL_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	out := filepath.Join(t.TempDir(), "url.png")

	if err := execute([]string{"render", "--url", srv.URL, "--out", out}); err == nil {
		t.Fatal("expected error for 404")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written for a failed load")
	}
}

func TestRenderUsesConfig(t *testing.T) {
	bundle := newBundleDir(t)
	cfgDir := t.TempDir()
	writeFile(t, filepath.Join(cfgDir, config.FileName), []byte("render:\n  size: 24\nresources:\n  dir: "+bundle+"\n"))
	out := filepath.Join(t.TempDir(), "cfg.png")

	if err := execute([]string{"--config", cfgDir, "render", "--res", "avatar", "--out", out}); err != nil {
		t.Fatal(err)
	}
	assertCircle(t, readPNG(t, out), 24)
}

func TestProbeFile(t *testing.T) {
	buf := captureStdout(t)
	src := filepath.Join(t.TempDir(), "big.png")
	writeFile(t, src, solidPNG(t, 800, 400))

	if err := execute([]string{"probe", "--file", src, "--size", "100"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"format: png", "size:   800x400", "target: 100", "sample: 2"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestProbeResource(t *testing.T) {
	buf := captureStdout(t)
	bundle := newBundleDir(t)

	if err := execute([]string{"probe", "--manifest", bundle, "--res", "1"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "size:   80x60") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestList(t *testing.T) {
	buf := captureStdout(t)
	bundle := newBundleDir(t)

	if err := execute([]string{"list", "--manifest", bundle}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "avatar") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestExecute_HelpAndUnknown(t *testing.T) {
	buf := captureStdout(t)
	if err := execute(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Commands:") {
		t.Errorf("help output missing commands:\n%s", buf.String())
	}
	if err := execute([]string{"frobnicate"}); err == nil {
		t.Error("expected error for unknown command")
	}
	buf.Reset()
	if err := execute([]string{"render", "--help"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "circleimage render") {
		t.Errorf("command help missing usage:\n%s", buf.String())
	}
}

func TestVersion(t *testing.T) {
	buf := captureStdout(t)
	if err := execute([]string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "development build") {
		t.Errorf("unexpected version output:\n%s", buf.String())
	}
}
