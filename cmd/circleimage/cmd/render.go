package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/TkwkT/CircleImageView/cmd/circleimage/internal/config"
	"github.com/TkwkT/CircleImageView/pkg/bitmap"
	"github.com/TkwkT/CircleImageView/pkg/fetch"
	"github.com/TkwkT/CircleImageView/pkg/graphics"
	"github.com/TkwkT/CircleImageView/pkg/layout"
	"github.com/TkwkT/CircleImageView/pkg/platform"
	"github.com/TkwkT/CircleImageView/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render an image cropped to a circle",
		Long: `Render an image cropped to a circle and write it as PNG.

The image is loaded the way the CircleImage widget loads it: resources
and URLs are decoded with power-of-two subsampling for the target size,
then scaled so the smaller side fills the circle.

Flags:
  --res NAME        Resource name or handle from the bundle manifest
  --file PATH       Local image file (PNG, JPEG, GIF, BMP, TIFF, WebP)
  --url URL         Remote image
  --manifest DIR    Directory holding resources.yaml
  --size N          Output width and height in pixels (default 128)
  --padding N       Padding on every side (default 0)
  --out PATH        Output file (default circle.png)

Examples:
  circleimage render --file photo.jpg --size 96 --out avatar.png
  circleimage render --manifest assets --res avatar --padding 4`,
		Usage: "circleimage render (--res NAME | --file PATH | --url URL) [flags]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := parseSourceOptions(args, cfg, true)
	if err != nil {
		return err
	}

	img, err := render(context.Background(), opts, cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d)", opts.out, opts.size, opts.size)
	return nil
}

// render drives a CircleImage through one layout and paint pass on a
// looper standing in for the UI thread.
func render(ctx context.Context, opts sourceOptions, cfg *config.Config) (*image.RGBA, error) {
	looper := platform.NewLooper(16)
	looper.Install()
	defer platform.RegisterDispatch(nil)
	defer looper.Stop()

	fetcher := fetch.New(fetchOptions(cfg))
	defer fetcher.Close()

	var loadErr error
	host := widgets.Host{
		Fetcher: fetcher,
		OnError: func(err error) {
			if loadErr == nil {
				loadErr = err
			}
		},
	}
	if opts.manifest != "" {
		bundle, err := loadBundle(opts.manifest)
		if err != nil {
			return nil, err
		}
		host.Resources = bundle
	}

	attrs := widgets.Attributes{
		Src: opts.res,
		Padding: widgets.Padding{
			Left: opts.padding, Top: opts.padding, Right: opts.padding, Bottom: opts.padding,
		},
	}
	if opts.res != "" && attrs.Resource(host.Resources) == 0 {
		return nil, fmt.Errorf("unknown resource %q", opts.res)
	}

	w := widgets.NewCircleImage(host, attrs)
	defer w.Dispose()

	owner := &layout.PipelineOwner{}
	owner.Attach(w)
	owner.FlushLayout(w, layout.Exactly(opts.size), layout.Exactly(opts.size))
	size := w.ResultSize()
	if size <= 0 {
		return nil, fmt.Errorf("padding %d leaves no room in a %dpx image", opts.padding, opts.size)
	}

	switch {
	case opts.file != "":
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, err
		}
		img, err := bitmap.DecodeStream(f, size, size)
		f.Close()
		if err != nil {
			return nil, err
		}
		w.SetBitmap(img)
	case opts.url != "":
		req := w.SetBitmapFromURL(opts.url)
		if err := req.Wait(ctx); err != nil {
			return nil, err
		}
		looper.RunPending()
	}

	canvas := graphics.NewRasterCanvas(opts.size, opts.size)
	owner.FlushPaint(w, canvas)
	looper.RunPending()

	if loadErr != nil {
		return nil, loadErr
	}
	if w.Bitmap() == nil {
		return nil, fmt.Errorf("no image loaded")
	}
	return canvas.Image(), nil
}
