package schema

import "fmt"

// DatabaseDescriptor is the catalog: the set of tables a Database
// knows about, keyed by name. It is intentionally a thin wrapper
// around TableDescriptor lookups rather than a separate package —
// there is no catalog state beyond "which tables exist".
type DatabaseDescriptor struct {
	Name   string
	tables map[string]*TableDescriptor
	order  []string
}

// NewDatabaseDescriptor returns an empty catalog for a database named name.
func NewDatabaseDescriptor(name string) *DatabaseDescriptor {
	return &DatabaseDescriptor{
		Name:   name,
		tables: make(map[string]*TableDescriptor),
	}
}

// DuplicateTableError reports an AddTable call for a name already
// present in the catalog.
type DuplicateTableError struct {
	Name string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("schema: table %q already exists", e.Name)
}

// AddTable registers table in the catalog. It fails if a table with
// the same name is already registered.
func (d *DatabaseDescriptor) AddTable(table *TableDescriptor) error {
	if _, exists := d.tables[table.Name]; exists {
		return &DuplicateTableError{Name: table.Name}
	}
	d.tables[table.Name] = table
	d.order = append(d.order, table.Name)
	return nil
}

// UnknownTableError reports a lookup for a table name the catalog
// doesn't know about.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("schema: unknown table %q", e.Name)
}

// TableWithName looks up a registered table by name.
func (d *DatabaseDescriptor) TableWithName(name string) (*TableDescriptor, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, &UnknownTableError{Name: name}
	}
	return t, nil
}

// TableNames returns the registered table names in registration order.
func (d *DatabaseDescriptor) TableNames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}
