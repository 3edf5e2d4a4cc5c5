package obj

// Well-known names in class declaration dicts.
const (
	// InitName is the class initializer.
	InitName = "__init__"
	// SchemaFieldsKey is the field registry of schema-object classes.
	SchemaFieldsKey = "__fields__"
	// DeclaredFieldsKey is the field registry of declared-fields classes.
	DeclaredFieldsKey = "_declared_fields"
	// RecordFieldsKey is the field registry of record-style classes.
	RecordFieldsKey = "__dataclass_fields__"
)

// SchemaField is an entry in a schema-object field registry.
type SchemaField struct {
	Description string
	Type        string
	Required    bool
}

// DeclaredField is implemented by entries of a declared-fields registry.
// The documentation layer reads the "description" metadata key and derives
// the field's type from the entry's own Go type.
type DeclaredField interface {
	FieldMetadata() map[string]any
	FieldRequired() bool
}

// RecordField is an entry in a record-style field registry. It carries type
// metadata only; docstrings come from the scope's declared attributes.
type RecordField struct {
	Name string
	Type string
}

// Registry value types stored under the well-known dict keys.
type (
	SchemaFields   = Map[*SchemaField]
	DeclaredFields = Map[DeclaredField]
	RecordFields   = Map[*RecordField]
)
