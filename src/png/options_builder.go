package png

import (
	"github.com/mac/mtpng-go/src/compress"
	"github.com/mac/mtpng-go/src/workpool"
)

// OptionsBuilder is a fluent constructor for Options, matching the
// presets' defaults until overridden.
type OptionsBuilder struct {
	opts Options
}

// NewOptionsBuilder starts from BalancedOptions.
func NewOptionsBuilder() *OptionsBuilder {
	return &OptionsBuilder{opts: BalancedOptions()}
}

func (b *OptionsBuilder) Fast() *OptionsBuilder {
	b.opts = FastOptions()
	return b
}

func (b *OptionsBuilder) Balanced() *OptionsBuilder {
	b.opts = BalancedOptions()
	return b
}

func (b *OptionsBuilder) Max() *OptionsBuilder {
	b.opts = MaxOptions()
	return b
}

func (b *OptionsBuilder) CompressionLevel(level int) *OptionsBuilder {
	if level < 1 {
		level = 1
	} else if level > 9 {
		level = 9
	}
	b.opts.CompressionLevel = level
	return b
}

func (b *OptionsBuilder) FilterStrategy(strategy FilterStrategy) *OptionsBuilder {
	b.opts.FilterStrategy = strategy
	return b
}

func (b *OptionsBuilder) Strategy(strategy compress.Strategy) *OptionsBuilder {
	b.opts.Strategy = strategy
	return b
}

func (b *OptionsBuilder) ChunkSize(size int) *OptionsBuilder {
	b.opts.ChunkSize = size
	return b
}

func (b *OptionsBuilder) ThreadPool(pool *workpool.Pool) *OptionsBuilder {
	b.opts.ThreadPool = pool
	return b
}

func (b *OptionsBuilder) Build() Options {
	return b.opts
}
