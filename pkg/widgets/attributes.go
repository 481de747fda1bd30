package widgets

import (
	"strconv"

	"github.com/TkwkT/CircleImageView/pkg/errors"
	"github.com/TkwkT/CircleImageView/pkg/layout"
	"github.com/TkwkT/CircleImageView/pkg/resources"
	"gopkg.in/yaml.v3"
)

// Attributes are the style attributes a CircleImage is inflated with.
//
//	src: avatar
//	padding:
//	  left: 4
//	  right: 4
type Attributes struct {
	// Src names the default resource, either by manifest name or by
	// numeric handle. Empty means no default.
	Src string `yaml:"src"`
	// Padding insets the circle within the widget bounds.
	Padding Padding `yaml:"padding"`
}

// Padding is the YAML form of [layout.EdgeInsets].
type Padding struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// EdgeInsets converts p to layout insets. Negative values are treated as 0.
func (p Padding) EdgeInsets() layout.EdgeInsets {
	return layout.EdgeInsets{
		Left:   max(p.Left, 0),
		Top:    max(p.Top, 0),
		Right:  max(p.Right, 0),
		Bottom: max(p.Bottom, 0),
	}
}

// ParseAttributes decodes style attributes from YAML.
func ParseAttributes(data []byte) (Attributes, error) {
	var attrs Attributes
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return Attributes{}, errors.New("widgets.ParseAttributes", errors.KindResource, err)
	}
	return attrs, nil
}

// Resource resolves Src against res. A numeric Src is used as a handle
// directly; anything else is looked up by name. Unknown names resolve to 0.
func (a Attributes) Resource(res Resources) resources.Handle {
	if a.Src == "" {
		return 0
	}
	if id, err := strconv.Atoi(a.Src); err == nil {
		return resources.Handle(max(id, 0))
	}
	if res == nil {
		return 0
	}
	h, ok := res.Lookup(a.Src)
	if !ok {
		return 0
	}
	return h
}
