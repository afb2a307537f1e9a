package model

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-sensenav/internal/log"
)

// Resolver produces the option list of a field. Sourced options are fetched
// on every call; there is no caching.
type Resolver struct {
	logger zerolog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger overrides the logger used to report source failures.
func WithLogger(logger zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver constructs a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{logger: log.WithComponent("model")}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Options returns the field's static options or, when a source is set, the
// options it produces. A failing source yields an empty list.
func (r *Resolver) Options(ctx context.Context, field *Field) []Option {
	if field == nil {
		return nil
	}
	if field.OptionSource == nil {
		return cloneOptions(field.Options)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	options, err := field.OptionSource(ctx)
	if err != nil {
		r.logger.Warn().Err(err).
			Str("field", field.Key).
			Str("ref", field.Ref).
			Msg("option source failed; using empty list")
		return []Option{}
	}
	if options == nil {
		return []Option{}
	}
	return cloneOptions(options)
}

// Resolve returns a deep copy of the tree where every option source has been
// replaced by the list it produced.
func (r *Resolver) Resolve(ctx context.Context, root *Field) (*Field, error) {
	if root == nil {
		return nil, ErrNilField
	}
	return r.resolve(ctx, root), nil
}

func (r *Resolver) resolve(ctx context.Context, field *Field) *Field {
	out := *field
	if field.OptionSource != nil {
		out.Options = r.Options(ctx, field)
		out.OptionSource = nil
	} else {
		out.Options = cloneOptions(field.Options)
	}
	if len(field.Items) > 0 {
		out.Items = make([]*Field, 0, len(field.Items))
		for _, child := range field.Items {
			if child == nil {
				continue
			}
			out.Items = append(out.Items, r.resolve(ctx, child))
		}
	}
	return &out
}

func cloneOptions(in []Option) []Option {
	if in == nil {
		return nil
	}
	out := make([]Option, len(in))
	copy(out, in)
	return out
}
