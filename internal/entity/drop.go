package entity

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/logging"
	"github.com/annel0/blockforge/internal/physics"
	"github.com/annel0/blockforge/internal/vec"
)

// Параметры выпавших предметов
const (
	dropHalfSize    = 0.25
	dropPickupDelay = 0.5
	dropMaxAge      = 300.0
	dropFriction    = 0.85
	collectRadius   = 1.5
)

// DroppedItem — предмет, лежащий в мире
type DroppedItem struct {
	ID   string
	Item block.ID

	Pos vec.Vec3Float
	Vel vec.Vec3Float

	// Age — сколько секунд предмет существует
	Age      float64
	OnGround bool
}

// AABB возвращает маленький хитбокс предмета, центрированный на позиции
func (d *DroppedItem) AABB() physics.AABB {
	return physics.AABB{
		MinX: d.Pos.X - dropHalfSize, MaxX: d.Pos.X + dropHalfSize,
		MinY: d.Pos.Y - dropHalfSize, MaxY: d.Pos.Y + dropHalfSize,
		MinZ: d.Pos.Z - dropHalfSize, MaxZ: d.Pos.Z + dropHalfSize,
	}
}

// Collectable сообщает, можно ли уже подобрать предмет
func (d *DroppedItem) Collectable() bool {
	return d.Age >= dropPickupDelay
}

// Expired сообщает, пора ли предмету исчезнуть
func (d *DroppedItem) Expired() bool {
	return d.Age >= dropMaxAge
}

// DropSystem управляет выпавшими предметами: физика, старение, подбор
type DropSystem struct {
	solid physics.SolidFunc
	rng   *rand.Rand
	items []*DroppedItem
}

// NewDropSystem создаёт систему дропа. solid — проверка твёрдости
// блоков мира.
func NewDropSystem(solid physics.SolidFunc, seed int64) *DropSystem {
	return &DropSystem{
		solid: solid,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Items возвращает срез предметов (для чтения)
func (ds *DropSystem) Items() []*DroppedItem { return ds.items }

// Count возвращает число предметов в мире
func (ds *DropSystem) Count() int { return len(ds.items) }

// Spawn роняет предмет с небольшим случайным разлётом вверх и в стороны
func (ds *DropSystem) Spawn(item block.ID, pos vec.Vec3Float) *DroppedItem {
	vel := vec.Vec3Float{
		X: ds.rng.Float64()*3.0 - 1.5,
		Y: 2.0 + ds.rng.Float64()*2.0,
		Z: ds.rng.Float64()*3.0 - 1.5,
	}
	return ds.SpawnWithVelocity(item, pos, vel)
}

// SpawnWithVelocity роняет предмет с заданной начальной скоростью
func (ds *DropSystem) SpawnWithVelocity(item block.ID, pos, vel vec.Vec3Float) *DroppedItem {
	d := &DroppedItem{
		ID:   uuid.NewString(),
		Item: item,
		Pos:  pos,
		Vel:  vel,
	}
	ds.items = append(ds.items, d)
	logging.LogDropSpawn(d.ID, item.Name(), pos.X, pos.Y, pos.Z)
	return d
}

// Update продвигает предметы на dt и возвращает подобранные игроком
// типы предметов. Просроченные предметы удаляются.
func (ds *DropSystem) Update(dt float64, playerPos vec.Vec3Float) []block.ID {
	var collected []block.ID

	remaining := ds.items[:0]
	for _, d := range ds.items {
		d.Age += dt
		if d.Expired() {
			continue
		}

		ds.updatePhysics(d, dt)

		if d.Collectable() && d.Pos.DistanceTo(playerPos) < collectRadius {
			collected = append(collected, d.Item)
			continue
		}

		remaining = append(remaining, d)
	}
	ds.items = remaining

	return collected
}

// updatePhysics применяет гравитацию и свип коллизий к предмету.
// При касании земли горизонтальная скорость гасится трением.
func (ds *DropSystem) updatePhysics(d *DroppedItem, dt float64) {
	d.Vel.Y -= Gravity * dt

	delta := d.Vel.Mul(dt)
	res := physics.Move(d.AABB(), delta, ds.solid)

	d.Pos = d.Pos.Add(res.Delta)

	if res.HitX {
		d.Vel.X = 0
	}
	if res.HitZ {
		d.Vel.Z = 0
	}

	if res.HitY {
		if delta.Y < 0 {
			d.OnGround = true
			d.Vel.X *= dropFriction
			d.Vel.Z *= dropFriction
		}
		d.Vel.Y = 0
	} else {
		d.OnGround = false
	}
}
