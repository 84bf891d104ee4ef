package parquet

import (
	"strings"

	"github.com/segmentio/parquet-core/format"
)

const (
	DefaultDataPageSize            = 1 * 1024 * 1024
	DefaultDictionaryEnabled       = true
	DefaultDictionaryPageSizeLimit = 1 * 1024 * 1024
	DefaultStatisticsEnabled       = true
)

// ColumnProperties are the per-leaf write options: compression, page-size
// target, dictionary policy, and whether statistics are tracked.
type ColumnProperties struct {
	Compression             format.CompressionCodec
	DataPageSize            int
	DictionaryEnabled       bool
	DictionaryPageSizeLimit int
	StatisticsEnabled       bool
}

// DefaultColumnProperties returns the built-in column defaults.
func DefaultColumnProperties() ColumnProperties {
	return ColumnProperties{
		Compression:             format.Uncompressed,
		DataPageSize:            DefaultDataPageSize,
		DictionaryEnabled:       DefaultDictionaryEnabled,
		DictionaryPageSizeLimit: DefaultDictionaryPageSizeLimit,
		StatisticsEnabled:       DefaultStatisticsEnabled,
	}
}

// ColumnOption configures a ColumnProperties value.
type ColumnOption interface {
	ConfigureColumn(*ColumnProperties)
}

type columnOptionFunc func(*ColumnProperties)

func (f columnOptionFunc) ConfigureColumn(c *ColumnProperties) { f(c) }

// WithCompression sets the page compression codec.
func WithCompression(codec format.CompressionCodec) ColumnOption {
	return columnOptionFunc(func(c *ColumnProperties) { c.Compression = codec })
}

// WithDataPageSize sets the target uncompressed size of a data page before
// the writer flushes it.
func WithDataPageSize(n int) ColumnOption {
	return columnOptionFunc(func(c *ColumnProperties) { c.DataPageSize = n })
}

// WithDictionaryEnabled toggles dictionary encoding.
func WithDictionaryEnabled(enabled bool) ColumnOption {
	return columnOptionFunc(func(c *ColumnProperties) { c.DictionaryEnabled = enabled })
}

// WithDictionaryPageSizeLimit sets the byte budget past which the writer
// falls back to PLAIN for the rest of the chunk.
func WithDictionaryPageSizeLimit(n int) ColumnOption {
	return columnOptionFunc(func(c *ColumnProperties) { c.DictionaryPageSizeLimit = n })
}

// WithStatisticsEnabled toggles statistics tracking.
func WithStatisticsEnabled(enabled bool) ColumnOption {
	return columnOptionFunc(func(c *ColumnProperties) { c.StatisticsEnabled = enabled })
}

// WriterProperties holds the file-wide default ColumnProperties plus
// per-column overrides keyed by dotted leaf path, with "most specific wins"
// resolution.
type WriterProperties struct {
	Default ColumnProperties
	columns map[string]ColumnProperties
}

// NewWriterProperties builds a WriterProperties, applying options to the
// file-wide default.
func NewWriterProperties(options ...ColumnOption) *WriterProperties {
	p := &WriterProperties{Default: DefaultColumnProperties(), columns: make(map[string]ColumnProperties)}
	for _, opt := range options {
		opt.ConfigureColumn(&p.Default)
	}
	return p
}

// WithColumn registers overrides for the leaf at path, layered on top of the
// current file-wide default.
func (p *WriterProperties) WithColumn(path []string, options ...ColumnOption) *WriterProperties {
	cp := p.Default
	for _, opt := range options {
		opt.ConfigureColumn(&cp)
	}
	p.columns[joinPath(path)] = cp
	return p
}

// ResolveColumn returns the effective properties for the leaf at path.
func (p *WriterProperties) ResolveColumn(path []string) ColumnProperties {
	if cp, ok := p.columns[joinPath(path)]; ok {
		return cp
	}
	return p.Default
}

func joinPath(path []string) string { return strings.Join(path, ".") }
