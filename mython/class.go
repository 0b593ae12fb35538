package mython

// Method is a single method record: its name, the formal parameter names
// (excluding the implicit self) and the executable body.
type Method struct {
	Name   string
	Params []string
	Body   []Statement
}

// ClassDef is a class descriptor. Definitions are immutable once built: the
// method resolution table is precomputed by newClassDef and define, and does
// not change after the class body has been installed.
type ClassDef struct {
	Name    string
	Methods []*Method
	Parent  *ClassDef

	table map[string]*Method
}

// newClassDef builds the descriptor and its method resolution table. The
// parent's table is copied first (it already carries the full ancestor
// chain), then own methods overlay it; within own methods the last
// occurrence of a name wins.
func newClassDef(name string, methods []*Method, parent *ClassDef) *ClassDef {
	def := &ClassDef{
		Name:   name,
		Parent: parent,
		table:  make(map[string]*Method),
	}
	if parent != nil {
		for name, m := range parent.table {
			def.table[name] = m
		}
	}
	def.define(methods)
	return def
}

// define installs the class's own methods over the inherited table. The
// parser calls it once the class body has been parsed; splitting it from
// construction lets a class name be visible inside its own method bodies.
func (c *ClassDef) define(methods []*Method) {
	c.Methods = methods
	for _, m := range methods {
		c.table[m.Name] = m
	}
}

// GetMethod resolves a method by name through the precomputed table, or nil.
func (c *ClassDef) GetMethod(name string) *Method {
	return c.table[name]
}

// hasMethod reports whether the class resolves name to a method taking
// exactly argc parameters.
func (c *ClassDef) hasMethod(name string, argc int) bool {
	m := c.table[name]
	return m != nil && len(m.Params) == argc
}

// Instance pairs a class descriptor with its mutable field scope. Instances
// are always handled through pointers so aliases observe field mutation.
type Instance struct {
	Class  *ClassDef
	Fields map[string]Value
}

func newInstance(class *ClassDef) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}
