package bridge

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/roach88/sift/internal/table"
)

// typeMetadataKey carries the nominal column type in Arrow field metadata.
// Arrow has no distinct categorical string type at this level, so category
// columns serialize as utf8 and recover their type from this key.
const typeMetadataKey = "sift.type"

// Schema builds the Arrow schema for a table.
func Schema(t *table.Table) *arrow.Schema {
	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	for i, c := range cols {
		fields[i] = arrow.Field{
			Name:     c.Name,
			Type:     arrowType(c.Type),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{typeMetadataKey}, []string{string(c.Type)}),
		}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(t table.Type) arrow.DataType {
	switch t {
	case table.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case table.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// ToRecord converts a table to an Arrow record. The caller must Release the
// record when done.
func ToRecord(t *table.Table) (arrow.Record, error) {
	builder := array.NewRecordBuilder(memory.DefaultAllocator, Schema(t))
	defer builder.Release()

	for i, c := range t.Columns() {
		if err := appendColumn(builder.Field(i), c); err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
	}
	return builder.NewRecord(), nil
}

func appendColumn(b array.Builder, c table.Column) error {
	switch c.Type {
	case table.TypeInt:
		ib := b.(*array.Int64Builder)
		for i, v := range c.Values {
			switch val := v.(type) {
			case table.Null:
				ib.AppendNull()
			case table.Int:
				ib.Append(int64(val))
			default:
				return fmt.Errorf("row %d holds non-int value", i)
			}
		}
	case table.TypeFloat:
		fb := b.(*array.Float64Builder)
		for i, v := range c.Values {
			switch val := v.(type) {
			case table.Null:
				fb.AppendNull()
			case table.Float:
				fb.Append(float64(val))
			default:
				return fmt.Errorf("row %d holds non-float value", i)
			}
		}
	default:
		sb := b.(*array.StringBuilder)
		for i, v := range c.Values {
			switch val := v.(type) {
			case table.Null:
				sb.AppendNull()
			case table.String:
				sb.Append(string(val))
			default:
				return fmt.Errorf("row %d holds non-text value", i)
			}
		}
	}
	return nil
}

// FromRecord converts an Arrow record back into a table. The nominal column
// type comes from the field metadata when present, otherwise it is inferred
// from the Arrow type.
func FromRecord(rec arrow.Record) (*table.Table, error) {
	schema := rec.Schema()
	cols := make([]table.Column, rec.NumCols())

	for i := 0; i < int(rec.NumCols()); i++ {
		field := schema.Field(i)
		typ, err := columnType(field)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}

		values, err := readColumn(rec.Column(i), typ)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}
		cols[i] = table.Column{Name: field.Name, Type: typ, Values: values}
	}

	return table.New(cols...)
}

func columnType(field arrow.Field) (table.Type, error) {
	if tag, ok := field.Metadata.GetValue(typeMetadataKey); ok {
		return table.ParseType(tag)
	}
	switch field.Type.ID() {
	case arrow.INT64:
		return table.TypeInt, nil
	case arrow.FLOAT64:
		return table.TypeFloat, nil
	case arrow.STRING:
		return table.TypeString, nil
	default:
		return "", fmt.Errorf("unsupported arrow type %s", field.Type)
	}
}

func readColumn(col arrow.Array, typ table.Type) ([]table.Value, error) {
	values := make([]table.Value, col.Len())
	switch typ {
	case table.TypeInt:
		arr, ok := col.(*array.Int64)
		if !ok {
			return nil, fmt.Errorf("expected int64 array, got %T", col)
		}
		for i := range values {
			if arr.IsNull(i) {
				values[i] = table.Null{}
			} else {
				values[i] = table.Int(arr.Value(i))
			}
		}
	case table.TypeFloat:
		arr, ok := col.(*array.Float64)
		if !ok {
			return nil, fmt.Errorf("expected float64 array, got %T", col)
		}
		for i := range values {
			if arr.IsNull(i) {
				values[i] = table.Null{}
			} else {
				values[i] = table.Float(arr.Value(i))
			}
		}
	default:
		arr, ok := col.(*array.String)
		if !ok {
			return nil, fmt.Errorf("expected string array, got %T", col)
		}
		for i := range values {
			if arr.IsNull(i) {
				values[i] = table.Null{}
			} else {
				values[i] = table.String(arr.Value(i))
			}
		}
	}
	return values, nil
}

// SerializeIPC serializes a table to an Arrow IPC stream.
func SerializeIPC(t *table.Table) ([]byte, error) {
	rec, err := ToRecord(t)
	if err != nil {
		return nil, err
	}
	defer rec.Release()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	if err := writer.Write(rec); err != nil {
		writer.Close()
		return nil, fmt.Errorf("write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close writer: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeIPC reads a table back from an Arrow IPC stream.
func DeserializeIPC(data []byte) (*table.Table, error) {
	reader, err := ipc.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create reader: %w", err)
	}
	defer reader.Release()

	if !reader.Next() {
		if reader.Err() != nil {
			return nil, reader.Err()
		}
		return nil, fmt.Errorf("no records in IPC data")
	}
	return FromRecord(reader.Record())
}
