package starfield

// GeneratorBuilderOption is a functional option for configuring a Generator.
type GeneratorBuilderOption func(*generatorImpl)

// WithStarScale sets the voxel density of the star layer; larger values give smaller, denser stars.
func WithStarScale(scale float64) GeneratorBuilderOption {
	return func(g *generatorImpl) {
		g.scale = scale
	}
}

// WithStarsOnly disables the nebula layer.
func WithStarsOnly() GeneratorBuilderOption {
	return func(g *generatorImpl) {
		g.starsOnly = true
		g.nebulaOnly = false
	}
}

// WithNebulaOnly disables the star layer.
func WithNebulaOnly() GeneratorBuilderOption {
	return func(g *generatorImpl) {
		g.nebulaOnly = true
		g.starsOnly = false
	}
}
