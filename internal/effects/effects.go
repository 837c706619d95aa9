package effects

import (
	"context"
	"fmt"
	"strings"
)

// Effect is a post-processing pass over an image it was built for.
type Effect interface {
	Name() string
	// Render runs the pass. Cancellation through ctx ends the pass early
	// without an error; the image is then only partly processed.
	Render(ctx context.Context) error
}

// Kind names the post effects the tool can build.
const (
	KindHDRBlur = "hdr_blur"
	KindNone    = "none"
)

// ParseKind validates an effect name from configuration.
func ParseKind(s string) (string, error) {
	switch k := strings.ToLower(strings.TrimSpace(s)); k {
	case "", KindHDRBlur:
		return KindHDRBlur, nil
	case KindNone:
		return KindNone, nil
	default:
		return "", fmt.Errorf("unknown effect: %s", s)
	}
}
