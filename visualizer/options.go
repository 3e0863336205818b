package visualizer

import (
	"github.com/swdee/go-schlemmer"
	"github.com/swdee/go-schlemmer/render"
	"go.uber.org/zap"
)

// Option configures a Visualizer
type Option func(*Visualizer)

// WithLogger sets the logger used for state transitions
func WithLogger(log *zap.SugaredLogger) Option {
	return func(v *Visualizer) {
		if log != nil {
			v.log = log
		}
	}
}

// WithSurfaces sets the output surfaces frames are drawn onto
func WithSurfaces(surfaces ...Surface) Option {
	return func(v *Visualizer) {
		v.surfaces = append(v.surfaces[:0], surfaces...)
	}
}

// WithConnections replaces the default stick connection table
func WithConnections(conns []schlemmer.Connection) Option {
	return func(v *Visualizer) {
		v.connections = append([]schlemmer.Connection(nil), conns...)
	}
}

// WithPalette sets the stick colors, one per connection index
func WithPalette(p render.Palette) Option {
	return func(v *Visualizer) {
		v.palette = p
	}
}

// WithBaseLength starts the visualizer already calibrated
func WithBaseLength(length float64) Option {
	return func(v *Visualizer) {
		if length > 0 {
			v.baseLength = length
		}
	}
}
