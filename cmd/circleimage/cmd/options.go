package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/TkwkT/CircleImageView/cmd/circleimage/internal/config"
	"github.com/TkwkT/CircleImageView/pkg/fetch"
	"github.com/TkwkT/CircleImageView/pkg/resources"
)

// sourceOptions are the flags shared by render and probe.
type sourceOptions struct {
	res      string
	file     string
	url      string
	manifest string
	size     int
	padding  int
	out      string
}

// parseSourceOptions parses flags on top of config defaults. Exactly one
// of --res, --file or --url must be given. withOut enables --out.
func parseSourceOptions(args []string, cfg *config.Config, withOut bool) (sourceOptions, error) {
	opts := sourceOptions{
		manifest: cfg.Resources.Dir,
		size:     cfg.Render.Size,
		padding:  cfg.Render.Padding,
	}
	if withOut {
		opts.out = "circle.png"
	}

	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if !hasValue {
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		switch name {
		case "--res":
			opts.res = value
		case "--file":
			opts.file = value
		case "--url":
			opts.url = value
		case "--manifest":
			opts.manifest = value
		case "--size", "--padding":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return opts, fmt.Errorf("%s must be a non-negative integer, got %q", name, value)
			}
			if name == "--size" {
				opts.size = n
			} else {
				opts.padding = n
			}
		case "--out":
			if !withOut {
				return opts, fmt.Errorf("unknown flag: %s", name)
			}
			opts.out = value
		default:
			return opts, fmt.Errorf("unknown flag: %s", name)
		}
	}

	sources := 0
	for _, s := range []string{opts.res, opts.file, opts.url} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return opts, fmt.Errorf("exactly one of --res, --file or --url is required")
	}
	if opts.res != "" && opts.manifest == "" {
		return opts, fmt.Errorf("--res requires --manifest or resources.dir in %s", config.FileName)
	}
	if opts.size == 0 {
		return opts, fmt.Errorf("--size must be positive")
	}
	return opts, nil
}

// loadBundle opens the resource bundle in dir.
func loadBundle(dir string) (*resources.Bundle, error) {
	bundle, err := resources.Load(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to load resources from %s: %w", dir, err)
	}
	return bundle, nil
}

func fetchOptions(cfg *config.Config) fetch.Options {
	return fetch.Options{
		ConnectTimeout: cfg.Fetch.ConnectTimeout,
		ReadTimeout:    cfg.Fetch.ReadTimeout,
		MaxConcurrent:  cfg.Fetch.MaxConcurrent,
	}
}
