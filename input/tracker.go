// Package input turns pointer contacts into ripple impulses.
//
// Each active contact is an ECS entity carrying its platform ID, last grid position,
// pressure and age. Began contacts stamp a single impulse, moved contacts drag from
// their last position, ended and cancelled contacts are forgotten.
package input

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ripples/components"
	"github.com/pthm-cable/ripples/viewport"
)

// ImpulseSink receives impulses in grid coordinates. *ripple.Engine satisfies it.
type ImpulseSink interface {
	ApplyImpulse(px, py, pressure float32)
	ApplyDrag(fromX, fromY, toX, toY, pressure float32)
}

// Tracker keeps the set of active contacts and forwards their motion to a sink.
type Tracker struct {
	world *ecs.World

	touchMapper *ecs.Map4[
		components.Touch,
		components.Position,
		components.Pressure,
		components.Age,
	]
	touchFilter *ecs.Filter4[
		components.Touch,
		components.Position,
		components.Pressure,
		components.Age,
	]
	posMap      *ecs.Map1[components.Position]
	pressureMap *ecs.Map1[components.Pressure]
	ageMap      *ecs.Map1[components.Age]

	byID map[uint64]ecs.Entity

	sink     ImpulseSink
	viewport *viewport.Viewport

	minPressure float32
	maxPressure float32
}

// NewTracker creates a tracker that maps screen points through vp and clamps
// pressure to [minPressure, maxPressure].
func NewTracker(sink ImpulseSink, vp *viewport.Viewport, minPressure, maxPressure float32) *Tracker {
	world := ecs.NewWorld()
	return &Tracker{
		world: world,
		touchMapper: ecs.NewMap4[
			components.Touch,
			components.Position,
			components.Pressure,
			components.Age,
		](world),
		touchFilter: ecs.NewFilter4[
			components.Touch,
			components.Position,
			components.Pressure,
			components.Age,
		](world),
		posMap:      ecs.NewMap1[components.Position](world),
		pressureMap: ecs.NewMap1[components.Pressure](world),
		ageMap:      ecs.NewMap1[components.Age](world),
		byID:        make(map[uint64]ecs.Entity),
		sink:        sink,
		viewport:    vp,
		minPressure: minPressure,
		maxPressure: maxPressure,
	}
}

// Pressure normalizes a platform force reading. A zero maxForce means the device
// does not report force, which counts as full pressure.
func (t *Tracker) Pressure(force, maxForce float32) float32 {
	p := float32(1)
	if maxForce > 0 {
		p = force / maxForce
	}
	if p != p || p < t.minPressure {
		return t.minPressure
	}
	if p > t.maxPressure {
		return t.maxPressure
	}
	return p
}

// Begin registers a new contact at screen point (sx, sy) and stamps one impulse.
// A repeated Begin for a live ID restarts that contact.
func (t *Tracker) Begin(id uint64, sx, sy, force, maxForce float32) {
	gx, gy := t.viewport.ScreenToGrid(sx, sy)
	p := t.Pressure(force, maxForce)

	if e, ok := t.byID[id]; ok && t.world.Alive(e) {
		pos := t.posMap.Get(e)
		pos.X, pos.Y = gx, gy
		t.pressureMap.Get(e).Value = p
		t.ageMap.Get(e).Frames = 0
	} else {
		touch := components.Touch{ID: id}
		pos := components.Position{X: gx, Y: gy}
		pressure := components.Pressure{Value: p}
		age := components.Age{}
		t.byID[id] = t.touchMapper.NewEntity(&touch, &pos, &pressure, &age)
	}

	t.sink.ApplyImpulse(gx, gy, p)
}

// Move drags an active contact to (sx, sy). Moves for unknown IDs only record the
// position, so the next Move drags from there.
func (t *Tracker) Move(id uint64, sx, sy, force, maxForce float32) {
	gx, gy := t.viewport.ScreenToGrid(sx, sy)
	p := t.Pressure(force, maxForce)

	e, ok := t.byID[id]
	if !ok || !t.world.Alive(e) {
		touch := components.Touch{ID: id}
		pos := components.Position{X: gx, Y: gy}
		pressure := components.Pressure{Value: p}
		age := components.Age{}
		t.byID[id] = t.touchMapper.NewEntity(&touch, &pos, &pressure, &age)
		return
	}

	pos := t.posMap.Get(e)
	t.sink.ApplyDrag(pos.X, pos.Y, gx, gy, p)
	pos.X, pos.Y = gx, gy
	t.pressureMap.Get(e).Value = p
}

// End forgets a contact. Unknown IDs are ignored.
func (t *Tracker) End(id uint64) {
	e, ok := t.byID[id]
	if !ok {
		return
	}
	delete(t.byID, id)
	if t.world.Alive(e) {
		t.world.RemoveEntity(e)
	}
}

// Cancel forgets a contact the platform withdrew. It behaves like End.
func (t *Tracker) Cancel(id uint64) {
	t.End(id)
}

// EndAll forgets every active contact.
func (t *Tracker) EndAll() {
	for id := range t.byID {
		t.End(id)
	}
}

// Age advances the frame counter of every active contact.
func (t *Tracker) Age() {
	query := t.touchFilter.Query()
	for query.Next() {
		_, _, _, age := query.Get()
		age.Frames++
	}
}

// Active reports whether id is a live contact.
func (t *Tracker) Active(id uint64) bool {
	e, ok := t.byID[id]
	return ok && t.world.Alive(e)
}

// Count returns the number of live contacts.
func (t *Tracker) Count() int {
	return len(t.byID)
}

// Contact is a read-only view of one live touch.
type Contact struct {
	ID       uint64
	X, Y     float32
	Pressure float32
	Frames   int
}

// Contacts appends every live contact to dst.
func (t *Tracker) Contacts(dst []Contact) []Contact {
	query := t.touchFilter.Query()
	for query.Next() {
		touch, pos, pressure, age := query.Get()
		dst = append(dst, Contact{
			ID:       touch.ID,
			X:        pos.X,
			Y:        pos.Y,
			Pressure: pressure.Value,
			Frames:   age.Frames,
		})
	}
	return dst
}

// Resize updates the screen size used to map contacts onto the grid.
func (t *Tracker) Resize(w, h float32) {
	t.viewport.Resize(w, h)
}
