package bind_group_provider

// BufferWrite stages the bytes of one uniform for a binding on a provider.
// Uniforms are always rewritten whole, so writes start at offset zero.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Data     []byte
}

// Marshaler is implemented by the GPU uniform types.
type Marshaler interface {
	Marshal() []byte
}

// NewBufferWrite stages a uniform for upload.
//
// Parameters:
//   - provider: the provider owning the buffer
//   - binding: the binding index of the buffer
//   - m: the uniform to serialize
//
// Returns:
//   - BufferWrite: the staged write
func NewBufferWrite(provider BindGroupProvider, binding int, m Marshaler) BufferWrite {
	return BufferWrite{Provider: provider, Binding: binding, Data: m.Marshal()}
}
