package fabrik

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/syssam/fabrik/schema"
)

// fixtureFile is the on-disk shape accepted by DefineYAML:
//
//	parent: baseAuthor   # optional
//	defaults:
//	  name: "Base Author"
//	  country: "US"
type fixtureFile struct {
	Parent   string         `yaml:"parent"`
	Defaults map[string]any `yaml:"defaults"`
}

// DefineYAML registers a factory definition for a table whose defaults come
// from a YAML document, keyed by the table name. A default naming a column
// the table does not have fails before anything is registered.
func (c *Context) DefineYAML(table *schema.Table, data []byte) error {
	return c.DefineYAMLAs(table.Name(), table, data)
}

// DefineYAMLAs registers a named YAML-backed factory definition.
func (c *Context) DefineYAMLAs(name string, table *schema.Table, data []byte) error {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("fabrik: fixture %q: %w", name, err)
	}
	defaults := make(map[*schema.Column]any, len(f.Defaults))
	for colName, v := range f.Defaults {
		col := table.Column(colName)
		if col == nil {
			return fmt.Errorf("fabrik: fixture %q: table %q has no column %q", name, table.Name(), colName)
		}
		defaults[col] = v
	}
	c.DefineAs(name, table, func(b *DefinitionBuilder) {
		if f.Parent != "" {
			b.Parent(f.Parent)
		}
		for col, v := range defaults {
			b.Set(col, v)
		}
	})
	return nil
}
