// Package format declares the subset of the parquet file metadata that the
// Dremel shredding/reconstruction core consumes and produces.
//
// These types mirror the structures described by parquet.thrift, but this
// package does not implement the thrift compact protocol itself; encoding
// and decoding the byte representation is delegated to
// github.com/segmentio/encoding/thrift, which understands the struct tags
// below. Framing the file (the magic words, the footer offset, locating the
// footer in a random-access file) is outside this package: callers own an
// io.ReaderAt/io.Writer and hand this package only the footer bytes.
package format

import "sort"

// Type is the physical type of a primitive schema leaf.
type Type int32

const (
	Boolean Type = iota
	Int32
	Int64
	Int96 // kept for wire compatibility; the core never produces it
	Float
	Double
	ByteArray
	FixedLenByteArray
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// FieldRepetitionType is the repetition of a schema node.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = iota
	Optional
	Repeated
)

func (r FieldRepetitionType) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return "UNKNOWN"
	}
}

// Encoding identifies how a page's values (or levels) are laid out on disk.
//
// Only the subset that the core implements is listed; encountering any other
// value on a data page is a fatal decode error.
type Encoding int32

const (
	Plain           Encoding = 0
	PlainDictionary Encoding = 2
	RLE             Encoding = 3
	RLEDictionary   Encoding = 8
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	default:
		return "UNKNOWN"
	}
}

// CompressionCodec identifies the block compression applied to a page body.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	Brotli       CompressionCodec = 4
	Zstd         CompressionCodec = 6
	Lz4Raw       CompressionCodec = 7
)

// PageType distinguishes the page header variants the core understands.
// IndexPage is skipped (not read) during a linear page scan; DataPageV2 is
// unsupported and rejected.
type PageType int32

const (
	DataPage PageType = iota
	IndexPage
	DictionaryPage
	DataPageV2
)

// LogicalType is a passive annotation on a schema node: it never changes how
// levels are computed, only how leaf values round-trip through the API
// boundary (e.g. a ByteArray tagged UTF8 is validated as UTF-8 on decode).
type LogicalType struct {
	UTF8 *StringType `thrift:"1,optional"`
	List *ListType   `thrift:"2,optional"`
	Map  *MapType    `thrift:"3,optional"`
	Enum *EnumType   `thrift:"5,optional"`
	UUID *UUIDType   `thrift:"9,optional"`
}

type StringType struct{}
type ListType struct{}
type MapType struct{}
type EnumType struct{}
type UUIDType struct{}

// SchemaElement is one flattened node of the schema tree (the file-level
// `schema[]`). Groups carry NumChildren and no Type; leaves carry Type and
// NumChildren == 0.
type SchemaElement struct {
	Type           *Type                `thrift:"1,optional"`
	TypeLength     *int32               `thrift:"2,optional"`
	RepetitionType *FieldRepetitionType `thrift:"3,optional"`
	Name           string               `thrift:"4"`
	NumChildren    *int32               `thrift:"5,optional"`
	LogicalType    *LogicalType         `thrift:"10,optional"`
}

// KeyValue is one entry of the file-level key/value metadata.
type KeyValue struct {
	Key   string `thrift:"1"`
	Value string `thrift:"2,optional"`
}

// SortKeyValueMetadata sorts key/value metadata entries for deterministic
// footer output.
func SortKeyValueMetadata(kv []KeyValue) {
	sort.Slice(kv, func(i, j int) bool {
		switch {
		case kv[i].Key < kv[j].Key:
			return true
		case kv[i].Key > kv[j].Key:
			return false
		default:
			return kv[i].Value < kv[j].Value
		}
	})
}

// Statistics carries per-column or per-page value statistics. Min/Max are
// the legacy fields kept for readers that predate MinValue/MaxValue; the
// column chunk writer populates all four identically.
type Statistics struct {
	Max           []byte `thrift:"1,optional"`
	Min           []byte `thrift:"2,optional"`
	NullCount     *int64 `thrift:"3,optional"`
	DistinctCount *int64 `thrift:"4,optional"`
	MaxValue      []byte `thrift:"5,optional"`
	MinValue      []byte `thrift:"6,optional"`
}

// DataPageHeader describes a DataPage (V1) page header.
type DataPageHeader struct {
	NumValues               int32       `thrift:"1"`
	Encoding                Encoding    `thrift:"2"`
	DefinitionLevelEncoding Encoding    `thrift:"3"`
	RepetitionLevelEncoding Encoding    `thrift:"4"`
	Statistics              *Statistics `thrift:"5,optional"`
}

// DictionaryPageHeader describes a dictionary page header.
type DictionaryPageHeader struct {
	NumValues int32    `thrift:"1"`
	Encoding  Encoding `thrift:"2"`
	IsSorted  *bool    `thrift:"3,optional"`
}

// DataPageHeaderV2 is parsed only far enough to be recognized and rejected:
// the core does not implement DataPage V2.
type DataPageHeaderV2 struct {
	NumValues int32 `thrift:"1"`
}

// PageHeader is the per-page metadata preceding the (possibly compressed)
// page body.
type PageHeader struct {
	Type                 PageType              `thrift:"1"`
	UncompressedPageSize int32                 `thrift:"2"`
	CompressedPageSize   int32                 `thrift:"3"`
	DataPageHeader       *DataPageHeader       `thrift:"5,optional"`
	DictionaryPageHeader *DictionaryPageHeader `thrift:"7,optional"`
	DataPageHeaderV2     *DataPageHeaderV2     `thrift:"8,optional"`
}

// ColumnMetaData is the per-leaf metadata recorded in a column chunk.
type ColumnMetaData struct {
	Type                  Type             `thrift:"1"`
	Encodings             []Encoding       `thrift:"2"`
	PathInSchema          []string         `thrift:"3"`
	Codec                 CompressionCodec `thrift:"4"`
	NumValues             int64            `thrift:"5"`
	TotalUncompressedSize int64            `thrift:"6"`
	TotalCompressedSize   int64            `thrift:"7"`
	DataPageOffset        int64            `thrift:"9"`
	DictionaryPageOffset  *int64           `thrift:"10,optional"`
	Statistics            *Statistics      `thrift:"12,optional"`
}

// ColumnChunk is one leaf's chunk within a row group.
type ColumnChunk struct {
	FileOffset int64          `thrift:"1"`
	MetaData   ColumnMetaData `thrift:"2"`
}

// RowGroup is a horizontal partition of rows across every leaf column.
type RowGroup struct {
	Columns       []ColumnChunk `thrift:"1"`
	TotalByteSize int64         `thrift:"2"`
	NumRows       int64         `thrift:"3"`
}

// FileMetaData is the parsed file footer.
type FileMetaData struct {
	Version          int32           `thrift:"1"`
	Schema           []SchemaElement `thrift:"2"`
	NumRows          int64           `thrift:"3"`
	RowGroups        []RowGroup      `thrift:"4"`
	KeyValueMetadata []KeyValue      `thrift:"5,optional"`
	CreatedBy        *string         `thrift:"6,optional"`
}
