package interpreter

import "github.com/dop251/goja"

// Module is a handle to an imported module.
type Module struct {
	id     string
	path   string
	record *goja.Object // the CommonJS module object
	owner  *Interpreter
}

// ID returns the identifier the module was imported under.
func (m *Module) ID() string {
	return m.id
}

// Path returns the source file the module was loaded from.
func (m *Module) Path() string {
	return m.path
}

// Exports returns the current value of module.exports. Only use it while
// holding access.
func (m *Module) Exports() goja.Value {
	v := m.record.Get("exports")
	if v == nil {
		return goja.Undefined()
	}
	return v
}
