package overlay

// BlendOperation is the equation combining the weighted source and destination.
type BlendOperation int

const (
	BlendOperationAdd BlendOperation = iota
	BlendOperationSubtract
	BlendOperationReverseSubtract
	BlendOperationMin
	BlendOperationMax
)

// BlendFactor weights the source or destination term of a BlendOperation.
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrc
	BlendFactorOneMinusSrc
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDst
	BlendFactorOneMinusDst
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

// BlendComponent is one equation and factor pair.
type BlendComponent struct {
	Operation BlendOperation
	Src       BlendFactor
	Dst       BlendFactor
}

// BlendConfig is the blend state of the overlay pipeline. Alpha is optional; when nil the alpha
// channel blends with the same pair as the color channels.
type BlendConfig struct {
	Color BlendComponent
	Alpha *BlendComponent
}

// PremultipliedAlpha returns the blend state for premultiplied-alpha UI output:
// result = src + dst * (1 - src.a), on color and alpha alike.
//
// Returns:
//   - BlendConfig: add, one, one-minus-source-alpha
func PremultipliedAlpha() BlendConfig {
	return BlendConfig{
		Color: BlendComponent{
			Operation: BlendOperationAdd,
			Src:       BlendFactorOne,
			Dst:       BlendFactorOneMinusSrcAlpha,
		},
	}
}

// AlphaComponent resolves the pair used for the alpha channel.
//
// Returns:
//   - BlendComponent: Alpha when set, otherwise Color
func (b BlendConfig) AlphaComponent() BlendComponent {
	if b.Alpha != nil {
		return *b.Alpha
	}
	return b.Color
}
