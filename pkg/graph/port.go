package graph

// Port is a named, typed terminal on a node through which a value flows.
// Inputs receive values from incoming connections (or fall back to their
// defaults); outputs are written by the node's computation and read by
// downstream connections.
//
// A port's name is unique within its owning node and direction. The port set
// of a node is fixed at construction time and never changes shape during the
// node's lifetime.
type Port struct {
	name        string
	displayName string
	dataType    DataType
	isInput     bool
	optional    bool
	value       Value
	defaultVal  Value
}

// NewInput creates an input port. Inputs are required by default: a required
// input that is neither connected nor holds an effective value is reported by
// [Graph.Validate]. Chain [Port.Default] and [Port.Optional] to configure.
func NewInput(name, displayName string, t DataType) *Port {
	return &Port{name: name, displayName: displayName, dataType: t, isInput: true}
}

// NewOutput creates an output port.
func NewOutput(name, displayName string, t DataType) *Port {
	return &Port{name: name, displayName: displayName, dataType: t}
}

// Default sets the port's default value and returns the port for chaining.
func (p *Port) Default(v Value) *Port {
	p.defaultVal = v
	return p
}

// Optional marks the port as optional and returns the port for chaining.
// Optional inputs are skipped by [Graph.Validate] even when unconnected and
// without a value.
func (p *Port) Optional() *Port {
	p.optional = true
	return p
}

// Name returns the port's identifier, unique per node and direction.
func (p *Port) Name() string { return p.name }

// DisplayName returns the human-readable port label.
func (p *Port) DisplayName() string { return p.displayName }

// Type returns the port's declared data type.
func (p *Port) Type() DataType { return p.dataType }

// IsInput reports whether the port is an input terminal.
func (p *Port) IsInput() bool { return p.isInput }

// IsOptional reports whether the port may stay unconnected and valueless
// without being reported by [Graph.Validate].
func (p *Port) IsOptional() bool { return p.optional }

// Value returns the port's current value, which may be Nil.
func (p *Port) Value() Value { return p.value }

// DefaultValue returns the port's default value, which may be Nil.
func (p *Port) DefaultValue() Value { return p.defaultVal }

// EffectiveValue returns the current value if one is set, else the default.
// This is the value a computation observes.
func (p *Port) EffectiveValue() Value {
	if p.value.IsNil() {
		return p.defaultVal
	}
	return p.value
}

// SetValue replaces the port's current value. On inputs the current value is
// transient wire state: [Node.Execute] overwrites it from the connected
// source, or clears it when unconnected. Literals that must survive a run
// belong in the default, via [Port.SetDefault].
func (p *Port) SetValue(v Value) { p.value = v }

// SetDefault replaces the port's default value. Node parameters land here:
// the default is what an unconnected input falls back to on every run, so a
// loaded or user-entered literal survives the per-run input reset.
func (p *Port) SetDefault(v Value) { p.defaultVal = v }

// ResetToDefault clears the current value so the effective value falls back
// to the default. [Node.Execute] calls this on every unconnected input before
// computing, so a disconnected wire never leaves a stale propagated value
// behind.
func (p *Port) ResetToDefault() { p.value = Nil }
