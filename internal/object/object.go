package object

import (
	"errors"
	"time"

	"github.com/tomz197/steady/internal/loop/config"
	"github.com/tomz197/steady/internal/scene"
)

// Spawner allows objects to spawn new targets during update.
type Spawner interface {
	Spawn(t *Target)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Now     time.Duration // Session clock, paused time excluded
	Delta   time.Duration // Session time since the previous update
	Field   Field
	Spawner Spawner
	Targets []*Target
}

// Ticks converts Delta into reference ticks (60 Hz) for per-tick physics.
func (ctx UpdateContext) Ticks() float64 {
	return ctx.Delta.Seconds() * config.ReferenceTickRate
}

// ErrNoFrame is returned by Draw when the context carries no frame.
var ErrNoFrame = errors.New("draw context has no frame")

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Frame *scene.Frame
}

// Field is the playfield in logical units.
type Field struct {
	Width  int
	Height int
}

// DefaultField returns the standard 1024x768 playfield.
func DefaultField() Field {
	return Field{Width: config.FieldWidth, Height: config.FieldHeight}
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw appends the object's shapes to ctx.Frame.
	Draw(ctx DrawContext) error
}
