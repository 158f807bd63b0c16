package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:    id,
			Name:  name,
			Min:   0,
			Max:   1,
			Flags: CanAutomate,
		},
	}
}

// Range sets the min and max plain values
func (b *Builder) Range(min, max float32) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default plain value
func (b *Builder) Default(value float32) *Builder {
	b.param.DefaultValue = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Smoothed sets the ramp used when the value changes.
func (b *Builder) Smoothed(style SmoothingStyle) *Builder {
	b.param.Smoothing = style
	return b
}

// Toggle configures a 0/1 switch.
func (b *Builder) Toggle() *Builder {
	b.param.Min = 0
	b.param.Max = 1
	return b
}

// Build returns the configured parameter holding its default value.
func (b *Builder) Build() *Parameter {
	b.param.ResetToDefault()
	return b.param
}
