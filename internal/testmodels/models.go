// Package testmodels builds the live object graph shared by tests: a small
// package hierarchy with inheritance, re-exports, structured field
// registries and every callable flavor.
package testmodels

import "github.com/nieomylnieja/docwalk/pkg/obj"

// Field is a declared-fields registry entry used by the fixture schema.
type Field struct {
	Metadata map[string]any
	Required bool
}

func (f Field) FieldMetadata() map[string]any { return f.Metadata }
func (f Field) FieldRequired() bool           { return f.Required }

// NewRegistry returns a fresh registry holding the fixture graph. Every
// call builds new objects so tests can mutate freely.
func NewRegistry() *obj.Registry {
	registry := obj.NewRegistry()

	models := obj.NewModule("sample.models")
	models.Doc = "Models for the sample package.\n\nAttributes:\n    DEFAULT_NAME: Fallback animal name.\n"
	models.Source = "DEFAULT_NAME = \"Rex\"\n"
	models.DeclareAttr("DEFAULT_NAME", obj.AttrDoc{Docstring: "Fallback animal name.", Annotation: "str"})
	models.Define("DEFAULT_NAME", "Rex")

	animal := newAnimal()
	dog := newDog(animal)
	models.Define("Animal", animal)
	models.Define("Dog", dog)
	models.Define("create_animal", &obj.Func{
		Name: "create_animal",
		Doc:  "Create an animal.\n\nArgs:\n    name (str): The animal's name.\n\nReturns:\n    A new animal.\n",
		Params: []obj.Param{
			{Name: "name", Kind: obj.ParamPositionalOrKeyword, Annotation: "str", Default: "DEFAULT_NAME"},
		},
		Return: "Animal",
		Source: &obj.Source{Text: "def create_animal(name=DEFAULT_NAME):\n    return Animal(name)\n", Line: 40},
	})
	models.Define("fetch_remote", &obj.Func{
		Name:   "fetch_remote",
		Doc:    "Fetch animal data from a remote service.",
		Async:  true,
		Params: []obj.Param{{Name: "url", Kind: obj.ParamPositionalOrKeyword, Annotation: "str"}},
		Source: &obj.Source{Text: "async def fetch_remote(url):\n    ...\n", Line: 50},
	})
	models.Define("User", newSchemaUser())
	models.Define("UserSchema", newDeclaredUserSchema())
	models.Define("Point", newRecordPoint(models))

	sample := obj.NewModule("sample")
	sample.Doc = "The sample package."
	sample.Source = "from sample.models import Dog\n"
	// Re-export: Dog's defining module stays sample.models.
	sample.Define("Dog", dog)

	if err := registry.Register(models); err != nil {
		panic(err)
	}
	if err := registry.Register(sample); err != nil {
		panic(err)
	}
	return registry
}

func newAnimal() *obj.Class {
	animal := obj.NewClass("Animal")
	animal.Doc = "A basic animal.\n\nAttributes:\n    name (str): The animal's name.\n"
	animal.DeclareAttr("name", obj.AttrDoc{Docstring: "The animal's name.", Annotation: "str"})

	init := &obj.Func{
		Name: obj.InitName,
		Doc:  "Initialize the animal.\n\nArgs:\n    name (str): The animal's name.\n",
		Params: []obj.Param{
			{Name: "self", Kind: obj.ParamPositionalOrKeyword},
			{Name: "name", Kind: obj.ParamPositionalOrKeyword, Annotation: "str"},
		},
		Source: &obj.Source{Text: "def __init__(self, name):\n    self.name = name\n", Line: 10},
	}
	init.DeclareAttr("sound", obj.AttrDoc{Docstring: "The noise this animal makes.", Annotation: "str"})
	animal.Define(obj.InitName, init)

	animal.Define("speak", &obj.Func{
		Name:   "speak",
		Doc:    "Make a noise.",
		Params: []obj.Param{{Name: "self", Kind: obj.ParamPositionalOrKeyword}},
		Return: "str",
		Source: &obj.Source{Text: "def speak(self):\n    return self.sound\n", Line: 14},
	})
	animal.Define("__repr__", &obj.Func{
		Name:   "__repr__",
		Doc:    "Animal representation.",
		Params: []obj.Param{{Name: "self", Kind: obj.ParamPositionalOrKeyword}},
		Source: &obj.Source{Text: "def __repr__(self):\n    return f\"Animal({self.name})\"\n", Line: 18},
	})
	return animal
}

func newDog(animal *obj.Class) *obj.Class {
	dog := obj.NewClass("Dog", animal)
	dog.Doc = "A dog.\n\nAttributes:\n    name (str): The dog's pedigree name.\n"
	dog.DeclareAttr("name", obj.AttrDoc{Docstring: "The dog's pedigree name.", Annotation: "str"})

	dog.Define("speak", &obj.Func{
		Name:   "speak",
		Doc:    "Bark.",
		Params: []obj.Param{{Name: "self", Kind: obj.ParamPositionalOrKeyword}},
		Return: "str",
		Source: &obj.Source{Text: "def speak(self):\n    return \"woof\"\n", Line: 30},
	})
	// Mechanically inherited special-method docstring: same text as the
	// ancestor's, so documentation blanks it.
	dog.Define("__repr__", &obj.Func{
		Name:   "__repr__",
		Doc:    "Animal representation.",
		Params: []obj.Param{{Name: "self", Kind: obj.ParamPositionalOrKeyword}},
		Source: &obj.Source{Text: "def __repr__(self):\n    return f\"Dog({self.name})\"\n", Line: 33},
	})
	// Genuinely overridden special method keeps its docstring.
	dog.Define("__str__", &obj.Func{
		Name:   "__str__",
		Doc:    "The dog's name.",
		Params: []obj.Param{{Name: "self", Kind: obj.ParamPositionalOrKeyword}},
		Source: &obj.Source{Text: "def __str__(self):\n    return self.name\n", Line: 36},
	})
	dog.Define("fetch", &obj.StaticMethod{Func: &obj.Func{
		Name:   "fetch",
		Doc:    "Fetch the stick.",
		Params: []obj.Param{{Name: "stick", Kind: obj.ParamPositionalOrKeyword}},
		Source: &obj.Source{Text: "@staticmethod\ndef fetch(stick):\n    ...\n", Line: 39},
	}})
	dog.Define("breed_count", &obj.ClassMethod{Func: &obj.Func{
		Name:   "breed_count",
		Doc:    "Count known breeds.",
		Params: []obj.Param{{Name: "cls", Kind: obj.ParamPositionalOrKeyword}},
		Return: "int",
		Source: &obj.Source{Text: "@classmethod\ndef breed_count(cls):\n    ...\n", Line: 43},
	}})
	dog.Define("age", &obj.Property{Get: &obj.Func{
		Name:   "age",
		Doc:    "The dog's age in years.",
		Params: []obj.Param{{Name: "self", Kind: obj.ParamPositionalOrKeyword}},
		Return: "int",
		Source: &obj.Source{Text: "@property\ndef age(self):\n    return self._age\n", Line: 47},
	}})
	return dog
}

func newSchemaUser() *obj.Class {
	user := obj.NewClass("User")
	user.Doc = "A schema-validated user."
	fields := obj.NewMap[*obj.SchemaField]()
	fields.Set("login", &obj.SchemaField{Description: "Unique login.", Type: "str", Required: true})
	fields.Set("email", &obj.SchemaField{Description: "Contact address.", Type: "str"})
	user.Define(obj.SchemaFieldsKey, fields)
	return user
}

func newDeclaredUserSchema() *obj.Class {
	schema := obj.NewClass("UserSchema")
	schema.Doc = "Serialization schema for users."
	fields := obj.NewMap[obj.DeclaredField]()
	fields.Set("login", Field{Metadata: map[string]any{"description": "Unique login."}, Required: true})
	fields.Set("email", Field{Metadata: map[string]any{"description": "Contact address."}})
	schema.Define(obj.DeclaredFieldsKey, fields)
	return schema
}

func newRecordPoint(models *obj.Module) *obj.Class {
	point := obj.NewClass("Point")
	point.Doc = "A 2D point."
	point.DeclareAttr("x", obj.AttrDoc{Docstring: "Horizontal coordinate.", Annotation: "float"})
	fields := obj.NewMap[*obj.RecordField]()
	fields.Set("x", &obj.RecordField{Name: "x", Type: "float"})
	fields.Set("y", &obj.RecordField{Name: "y", Type: "float"})
	point.Define(obj.RecordFieldsKey, fields)
	// y has no class-scope declaration; its docstring resolves through the
	// module scope.
	models.DeclareAttr("y", obj.AttrDoc{Docstring: "Vertical coordinate."})
	return point
}
