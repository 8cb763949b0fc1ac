package graph

// Emitter generates target content for an inspected file
type Emitter interface {
	Emit(file *File) ([]byte, error)
}

// EmitterFunc adapts a function to Emitter
type EmitterFunc func(file *File) ([]byte, error)

// Emit calls fn(file)
func (fn EmitterFunc) Emit(file *File) ([]byte, error) {
	return fn(file)
}
