package fabrik

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/fabrik/schema"
)

// EncodeAttributes serializes a built attribute map, keyed by column name,
// for reuse across processes or for golden-file fixtures. The inverse is
// DecodeAttributes.
func EncodeAttributes(attrs map[*schema.Column]any) ([]byte, error) {
	byName := make(map[string]any, len(attrs))
	for c, v := range attrs {
		byName[c.Name()] = v
	}
	data, err := msgpack.Marshal(byName)
	if err != nil {
		return nil, fmt.Errorf("fabrik: encode attributes: %w", err)
	}
	return data, nil
}

// DecodeAttributes deserializes an attribute snapshot against a table,
// mapping column names back to the table's column handles. A snapshot naming
// a column the table does not have fails.
func DecodeAttributes(table *schema.Table, data []byte) (map[*schema.Column]any, error) {
	var byName map[string]any
	if err := msgpack.Unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("fabrik: decode attributes: %w", err)
	}
	attrs := make(map[*schema.Column]any, len(byName))
	for name, v := range byName {
		col := table.Column(name)
		if col == nil {
			return nil, fmt.Errorf("fabrik: decode attributes: table %q has no column %q", table.Name(), name)
		}
		attrs[col] = v
	}
	return attrs, nil
}
