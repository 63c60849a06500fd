package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// FaceState is the side of a card that faces the camera.
type FaceState string

const (
	FaceUp   FaceState = "face_up"
	FaceDown FaceState = "face_down"
)

// Flip returns the opposite face.
func (f FaceState) Flip() FaceState {
	if f == FaceUp {
		return FaceDown
	}
	return FaceUp
}

// Vec3 is a point or offset in game-world coordinates.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Card is a single card on the table. A card belongs to at most one
// CardStack; otherwise it is loose.
type Card struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Location string    `json:"location"`
	Face     FaceState `json:"face"`
	Position Vec3      `json:"position"`
	ZOrder   int       `json:"z_order"`
	Selected bool      `json:"selected"`
}

// Flip turns the card over.
func (c *Card) Flip() {
	c.Face = c.Face.Flip()
}

// MenuItem is one entry of a context menu. OnClick is bound to a
// controller operation when the menu is built.
type MenuItem struct {
	Label   string
	OnClick func()
}
