package format_test

import (
	"reflect"
	"testing"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/parquet-core/format"
)

// TestMarshalUnmarshalFileMetaData round-trips a footer that exercises the
// struct surface a UUID-logical leaf with statistics needs: LogicalType's
// UUID variant, a populated Statistics on both the data page header and the
// column chunk metadata, and a dictionary-encoded column.
func TestMarshalUnmarshalFileMetaData(t *testing.T) {
	protocol := &thrift.CompactProtocol{}

	fixedLen := int32(16)
	repetition := format.Required
	typ := format.FixedLenByteArray
	numChildren := int32(1)
	nullCount := int64(0)
	distinctCount := int64(3)
	dictOffset := int64(4)
	createdBy := "parquet-core"

	stats := &format.Statistics{
		Max:           []byte{0xff},
		Min:           []byte{0x00},
		NullCount:     &nullCount,
		DistinctCount: &distinctCount,
		MaxValue:      []byte{0xff},
		MinValue:      []byte{0x00},
	}

	metadata := &format.FileMetaData{
		Version: 1,
		Schema: []format.SchemaElement{
			{Name: "root", NumChildren: &numChildren},
			{
				Type:           &typ,
				TypeLength:     &fixedLen,
				RepetitionType: &repetition,
				Name:           "id",
				LogicalType:    &format.LogicalType{UUID: &format.UUIDType{}},
			},
		},
		NumRows: 3,
		RowGroups: []format.RowGroup{
			{
				Columns: []format.ColumnChunk{
					{
						FileOffset: 4,
						MetaData: format.ColumnMetaData{
							Type:                  format.FixedLenByteArray,
							Encodings:             []format.Encoding{format.RLEDictionary, format.Plain},
							PathInSchema:          []string{"id"},
							Codec:                 format.Snappy,
							NumValues:             3,
							TotalUncompressedSize: 64,
							TotalCompressedSize:   48,
							DataPageOffset:        20,
							DictionaryPageOffset:  &dictOffset,
							Statistics:            stats,
						},
					},
				},
				TotalByteSize: 48,
				NumRows:       3,
			},
		},
		KeyValueMetadata: []format.KeyValue{{Key: "k", Value: "v"}},
		CreatedBy:        &createdBy,
	}

	isSorted := false
	dictionaryPageHeader := &format.PageHeader{
		Type:                 format.DictionaryPage,
		UncompressedPageSize: 48,
		CompressedPageSize:   48,
		DictionaryPageHeader: &format.DictionaryPageHeader{
			NumValues: 3,
			Encoding:  format.Plain,
			IsSorted:  &isSorted,
		},
	}

	dataPageHeader := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: 16,
		CompressedPageSize:   16,
		DataPageHeader: &format.DataPageHeader{
			NumValues:               3,
			Encoding:                format.RLEDictionary,
			DefinitionLevelEncoding: format.RLE,
			RepetitionLevelEncoding: format.RLE,
			Statistics:              stats,
		},
	}

	roundTrip(t, protocol, metadata, &format.FileMetaData{})
	roundTrip(t, protocol, dictionaryPageHeader, &format.PageHeader{})
	roundTrip(t, protocol, dataPageHeader, &format.PageHeader{})
}

func roundTrip(t *testing.T, protocol *thrift.CompactProtocol, in, out interface{}) {
	t.Helper()
	b, err := thrift.Marshal(protocol, in)
	if err != nil {
		t.Fatal(err)
	}
	if err := thrift.Unmarshal(protocol, b, out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", in)
		t.Logf("found:\n%#v", out)
	}
}
