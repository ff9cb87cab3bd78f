package disclosure

// DrawerShadow is the box-shadow applied to the open drawer.
const DrawerShadow = "0 0 24px rgba(0, 0, 0, 0.35)"

// Presentation is the visual treatment of the overlay drawer.
type Presentation struct {
	Offset string // CSS left offset
	Shadow string // CSS box-shadow
}

var (
	hidden  = Presentation{Offset: "-100%", Shadow: "none"}
	visible = Presentation{Offset: "0", Shadow: DrawerShadow}
)

// PresentationFor maps the disclosure state to one of exactly two
// presentations: off-screen without shadow, or on-screen with shadow.
func PresentationFor(isOpen bool) Presentation {
	if isOpen {
		return visible
	}
	return hidden
}

// Hidden reports whether p is the closed presentation.
func (p Presentation) Hidden() bool {
	return p == hidden
}

// Style renders p as an inline CSS declaration list.
func (p Presentation) Style() string {
	return "left: " + p.Offset + "; box-shadow: " + p.Shadow + ";"
}
