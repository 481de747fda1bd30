package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/TkwkT/CircleImageView/pkg/bitmap"
	"github.com/TkwkT/CircleImageView/pkg/fetch"
	"github.com/TkwkT/CircleImageView/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "probe",
		Short: "Show image bounds and sample size",
		Long: `Read only the header of an image and report its format, dimensions
and the subsampling factor used to decode it for a target size.

Flags:
  --res NAME        Resource name or handle from the bundle manifest
  --file PATH       Local image file
  --url URL         Remote image
  --manifest DIR    Directory holding resources.yaml
  --size N          Target size in pixels (default 128)`,
		Usage: "circleimage probe (--res NAME | --file PATH | --url URL) [flags]",
		Run:   runProbe,
	})
}

// probeResult describes an image header.
type probeResult struct {
	Format string
	Width  int
	Height int
	Target int
	Sample int
}

func runProbe(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := parseSourceOptions(args, cfg, false)
	if err != nil {
		return err
	}

	var res probeResult
	switch {
	case opts.file != "":
		f, err := os.Open(opts.file)
		if err != nil {
			return err
		}
		defer f.Close()
		res, err = probe(f, opts.size)
		if err != nil {
			return err
		}
	case opts.url != "":
		fetcher := fetch.New(fetchOptions(cfg))
		defer fetcher.Close()
		body, err := fetcher.Get(context.Background(), opts.url)
		if err != nil {
			return err
		}
		defer body.Close()
		res, err = probe(body, opts.size)
		if err != nil {
			return err
		}
	default:
		bundle, err := loadBundle(opts.manifest)
		if err != nil {
			return err
		}
		h := widgets.Attributes{Src: opts.res}.Resource(bundle)
		rc, err := bundle.Open(h)
		if err != nil {
			return err
		}
		defer rc.Close()
		res, err = probe(rc, opts.size)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "format: %s\n", res.Format)
	fmt.Fprintf(stdout, "size:   %dx%d\n", res.Width, res.Height)
	fmt.Fprintf(stdout, "target: %d\n", res.Target)
	fmt.Fprintf(stdout, "sample: %d\n", res.Sample)
	return nil
}

func probe(r io.Reader, target int) (probeResult, error) {
	cfg, format, err := bitmap.DecodeBounds(r)
	if err != nil {
		return probeResult{}, err
	}
	return probeResult{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Target: target,
		Sample: bitmap.CalculateSampleSize(cfg.Width, cfg.Height, target, target),
	}, nil
}
