package content

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gosimple/slug"
)

// TargetKind classifies where selecting an entry leads.
type TargetKind string

const (
	// TargetPath is a root-relative path that triggers full navigation.
	TargetPath TargetKind = "path"

	// TargetAnchor is an in-page fragment that triggers a smooth scroll.
	TargetAnchor TargetKind = "anchor"

	// TargetExternal is an absolute http(s) URL.
	TargetExternal TargetKind = "external"
)

// Target is a resolved navigation target.
type Target struct {
	Kind TargetKind
	// Value is the path, the fragment identifier without '#', or the URL.
	Value string
}

// String returns the target in the form it was declared.
func (t Target) String() string {
	if t.Kind == TargetAnchor {
		return "#" + t.Value
	}
	return t.Value
}

// ParseTarget resolves a declared URL into a Target.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Target{}, fmt.Errorf("%w: empty url", ErrInvalidEntry)
	case strings.HasPrefix(raw, "#"):
		id := strings.TrimPrefix(raw, "#")
		if id == "" {
			return Target{}, fmt.Errorf("%w: empty fragment", ErrInvalidEntry)
		}
		return Target{Kind: TargetAnchor, Value: id}, nil
	case strings.HasPrefix(raw, "//"):
		return Target{}, fmt.Errorf("%w: protocol-relative url %q", ErrInvalidEntry, raw)
	case strings.HasPrefix(raw, "/"):
		return Target{Kind: TargetPath, Value: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Target{}, fmt.Errorf("%w: unsupported url %q", ErrInvalidEntry, raw)
	}
	return Target{Kind: TargetExternal, Value: raw}, nil
}

// AnchorFor returns the fragment used for an entry declared without a URL.
func AnchorFor(title string) string {
	return "#" + slug.Make(title)
}
