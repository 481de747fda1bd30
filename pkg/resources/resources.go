// Package resources maps integer resource handles to image files bundled
// with an application.
//
// A bundle is any fs.FS holding a resources.yaml manifest:
//
//	version: v1.0.0
//	resources:
//	  - id: 1
//	    name: avatar
//	    path: images/avatar.png
//
// Handle 0 means "no resource" and is never valid in a manifest.
package resources

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest name looked up at the bundle root.
const ManifestFile = "resources.yaml"

// ErrNotFound is returned for handles or names missing from the manifest.
var ErrNotFound = errors.New("resource not found")

// Handle identifies a bundled resource. The zero Handle means none.
type Handle int

// Entry is one manifest record.
type Entry struct {
	ID   Handle `yaml:"id"`
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Manifest describes the resources in a bundle.
type Manifest struct {
	Version   string  `yaml:"version"`
	Resources []Entry `yaml:"resources"`
}

// ParseManifest decodes and validates a manifest. The version must be a
// semantic version with major version v1.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest version and that every entry has a unique
// positive id, a unique name and a clean relative path.
func (m *Manifest) Validate() error {
	v := strings.TrimSpace(m.Version)
	if !semver.IsValid(v) {
		return fmt.Errorf("manifest version %q is not a semantic version", m.Version)
	}
	if major := semver.Major(v); major != "v1" {
		return fmt.Errorf("unsupported manifest version %s (want v1)", major)
	}

	ids := make(map[Handle]bool, len(m.Resources))
	names := make(map[string]bool, len(m.Resources))
	for i, e := range m.Resources {
		if e.ID <= 0 {
			return fmt.Errorf("resource %d: id must be positive, got %d", i, e.ID)
		}
		if ids[e.ID] {
			return fmt.Errorf("resource %d: duplicate id %d", i, e.ID)
		}
		ids[e.ID] = true
		if e.Name == "" {
			return fmt.Errorf("resource %d: missing name", i)
		}
		if names[e.Name] {
			return fmt.Errorf("resource %d: duplicate name %q", i, e.Name)
		}
		names[e.Name] = true
		if p := path.Clean(e.Path); !fs.ValidPath(p) || p == "." {
			return fmt.Errorf("resource %q: invalid path %q", e.Name, e.Path)
		}
	}
	return nil
}

// Bundle resolves handles to files in an fs.FS.
type Bundle struct {
	fsys   fs.FS
	byID   map[Handle]Entry
	byName map[string]Handle
}

// Load reads the manifest from the root of fsys and returns the bundle.
func Load(fsys fs.FS) (*Bundle, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	return NewBundle(fsys, m)
}

// NewBundle builds a bundle from an already parsed manifest.
func NewBundle(fsys fs.FS, m *Manifest) (*Bundle, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	b := &Bundle{
		fsys:   fsys,
		byID:   make(map[Handle]Entry, len(m.Resources)),
		byName: make(map[string]Handle, len(m.Resources)),
	}
	for _, e := range m.Resources {
		e.Path = path.Clean(e.Path)
		b.byID[e.ID] = e
		b.byName[e.Name] = e.ID
	}
	return b, nil
}

// Open returns the contents of the resource. The caller must close it.
func (b *Bundle) Open(h Handle) (io.ReadCloser, error) {
	e, ok := b.byID[h]
	if !ok {
		return nil, fmt.Errorf("handle %d: %w", h, ErrNotFound)
	}
	f, err := b.fsys.Open(e.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", e.Path, err)
	}
	return f, nil
}

// Lookup returns the handle registered under name.
func (b *Bundle) Lookup(name string) (Handle, bool) {
	h, ok := b.byName[name]
	return h, ok
}

// Entry returns the manifest entry for h.
func (b *Bundle) Entry(h Handle) (Entry, bool) {
	e, ok := b.byID[h]
	return e, ok
}

// Handles returns all handles in ascending order.
func (b *Bundle) Handles() []Handle {
	out := make([]Handle, 0, len(b.byID))
	for h := range b.byID {
		out = append(out, h)
	}
	slices.Sort(out)
	return out
}
