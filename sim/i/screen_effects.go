package i

// ScreenEffects is the optional capability interface for a rendering
// collaborator that can display ambient atmosphere. Holders keep a nullable
// reference and skip the calls when no implementation is attached.
type ScreenEffects interface {
	// SetFogDensity updates the ambient fog density.
	SetFogDensity(density float64)

	// SetDarkness toggles the darkness visual state.
	SetDarkness(active bool)
}
