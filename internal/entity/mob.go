package entity

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/physics"
	"github.com/annel0/blockforge/internal/vec"
)

// MobKind — тип моба
type MobKind uint8

const (
	MobSheep MobKind = iota
	MobCow
	MobChicken
	MobPig
	MobCreeper
	MobZombie
	MobSkeleton
)

var mobNames = map[MobKind]string{
	MobSheep: "sheep", MobCow: "cow", MobChicken: "chicken", MobPig: "pig",
	MobCreeper: "creeper", MobZombie: "zombie", MobSkeleton: "skeleton",
}

func (k MobKind) String() string {
	if name, ok := mobNames[k]; ok {
		return name
	}
	return "unknown"
}

// Hostile сообщает, враждебен ли тип моба игроку
func (k MobKind) Hostile() bool {
	return k == MobCreeper || k == MobZombie || k == MobSkeleton
}

// mobStats — параметры типа моба: размер хитбокса, здоровье, урон, скорость
type mobStats struct {
	width, height, depth float64
	maxHealth            float64
	damage               float64
	speed                float64
}

var mobTable = map[MobKind]mobStats{
	MobSheep:    {0.6, 0.8, 0.6, 8, 0, 1.5},
	MobCow:      {0.7, 1.0, 0.7, 10, 0, 1.5},
	MobChicken:  {0.4, 0.5, 0.4, 4, 0, 1.5},
	MobPig:      {0.6, 0.8, 0.6, 10, 0, 1.5},
	MobCreeper:  {0.6, 1.7, 0.6, 20, 10, 2.0},
	MobZombie:   {0.6, 1.95, 0.6, 20, 3, 2.0},
	MobSkeleton: {0.5, 1.95, 0.5, 20, 2, 2.0},
}

// Параметры ИИ мобов
const (
	mobDetectionRange = 16.0
	mobAttackRange    = 1.5
	mobAttackCooldown = 1.5
	mobHitCooldown    = 0.5

	// Подпрыгивание при упоре в стену
	mobHopImpulse  = 8.0
	mobHopCooldown = 0.5

	mobAccelGround = 10.0
	mobAccelAir    = 2.0
	mobIdleDrag    = 0.8

	hardSpeedMult = 1.2
)

// AttackFunc вызывается мобом при атаке. Владелец системы применяет
// урон и отбрасывание, моб лишь взводит свой кулдаун.
type AttackFunc func(m *Mob)

// Mob — моб с физикой, здоровьем и простым ИИ блуждания/преследования
type Mob struct {
	ID   string
	Kind MobKind

	Pos vec.Vec3Float
	Vel vec.Vec3Float

	OnGround bool
	Health   float64
	Dead     bool

	stats mobStats
	rng   *rand.Rand

	deathTimer     float64
	hitCooldown    float64
	attackCooldown float64
	hopCooldown    float64

	idle        bool
	idleTimer   float64
	wanderTimer float64
	// heading — направление блуждания в градусах
	heading float64
}

// NewMob создаёт моба указанного типа. rng определяет тайминги ИИ
// и дроп, что делает поведение воспроизводимым в тестах.
func NewMob(kind MobKind, pos vec.Vec3Float, rng *rand.Rand) *Mob {
	stats := mobTable[kind]
	return &Mob{
		ID:        uuid.NewString(),
		Kind:      kind,
		Pos:       pos,
		stats:     stats,
		Health:    stats.maxHealth,
		rng:       rng,
		idle:      true,
		idleTimer: 2.0 + rng.Float64()*3.0,
		heading:   rng.Float64() * 360.0,
	}
}

// AABB возвращает хитбокс моба (позиция — центр ступней)
func (m *Mob) AABB() physics.AABB {
	return physics.NewAABB(m.Pos, m.stats.width*0.5, m.stats.depth*0.5, m.stats.height)
}

// MaxHealth возвращает максимум здоровья типа
func (m *Mob) MaxHealth() float64 { return m.stats.maxHealth }

// AttackDamage возвращает урон атаки типа
func (m *Mob) AttackDamage() float64 { return m.stats.damage }

// Damage наносит мобу урон. Повторные удары в течение кулдауна
// игнорируются. Возвращает true, если моб погиб от этого удара.
func (m *Mob) Damage(amount float64) bool {
	if m.Dead || m.hitCooldown > 0 {
		return false
	}

	m.Health -= amount
	m.hitCooldown = mobHitCooldown

	if m.Health <= 0 {
		m.Health = 0
		m.Dead = true
		return true
	}
	return false
}

// Drops возвращает предметы, выпадающие при смерти моба
func (m *Mob) Drops() []block.ID {
	switch m.Kind {
	case MobSheep:
		return repeatItem(block.RawMeat, 1+m.rng.Intn(2))
	case MobCow:
		return repeatItem(block.RawMeat, 1+m.rng.Intn(3))
	case MobChicken:
		return repeatItem(block.RawChicken, 1+m.rng.Intn(2))
	case MobPig:
		return repeatItem(block.RawPork, 1+m.rng.Intn(3))
	case MobCreeper:
		return repeatItem(block.Gunpowder, m.rng.Intn(3))
	case MobZombie:
		return repeatItem(block.RottenFlesh, m.rng.Intn(3))
	case MobSkeleton:
		return repeatItem(block.Bone, m.rng.Intn(3))
	default:
		return nil
	}
}

func repeatItem(id block.ID, n int) []block.ID {
	items := make([]block.ID, n)
	for i := range items {
		items[i] = id
	}
	return items
}

// Update продвигает моба на dt: кулдауны, ИИ и физика.
// Атака сигнализируется через attack, урон применяет владелец.
func (m *Mob) Update(dt float64, playerPos vec.Vec3Float, mode GameMode, diff Difficulty, solid physics.SolidFunc, attack AttackFunc) {
	if m.Dead {
		m.deathTimer += dt
		return
	}

	m.hitCooldown = math.Max(0, m.hitCooldown-dt)
	m.attackCooldown = math.Max(0, m.attackCooldown-dt)
	m.hopCooldown = math.Max(0, m.hopCooldown-dt)

	m.updateAI(dt, playerPos, mode, diff, attack)
	m.updatePhysics(dt, solid)
}

// DeathTimer возвращает время с момента смерти
func (m *Mob) DeathTimer() float64 { return m.deathTimer }

func (m *Mob) updateAI(dt float64, playerPos vec.Vec3Float, mode GameMode, diff Difficulty, attack AttackFunc) {
	if !m.Kind.Hostile() {
		m.wander(dt)
		return
	}

	// В мирной сложности враждебные мобы замирают до деспавна
	if diff == DifficultyPeaceful {
		m.Vel.X = 0
		m.Vel.Z = 0
		return
	}

	// В креативе игрок не цель
	if mode == ModeCreative {
		m.wander(dt)
		return
	}

	distSq := m.Pos.PlanarDistanceSqTo(playerPos)
	if distSq > mobDetectionRange*mobDetectionRange {
		m.wander(dt)
		return
	}

	dist := math.Sqrt(distSq)
	dx := playerPos.X - m.Pos.X
	dz := playerPos.Z - m.Pos.Z
	if dist > 0 {
		dx /= dist
		dz /= dist
	}

	speed := m.stats.speed
	if diff == DifficultyHard {
		speed *= hardSpeedMult
	}

	m.Vel.X = approach(m.Vel.X, dx*speed, mobAccelGround*dt)
	m.Vel.Z = approach(m.Vel.Z, dz*speed, mobAccelGround*dt)

	if dist <= mobAttackRange && m.attackCooldown <= 0 {
		m.attackCooldown = mobAttackCooldown
		if attack != nil {
			attack(m)
		}
	}
}

// wander чередует простой и блуждание в случайном направлении
func (m *Mob) wander(dt float64) {
	if m.idle {
		m.idleTimer -= dt
		if m.idleTimer <= 0 {
			m.idle = false
			m.wanderTimer = 2.0 + m.rng.Float64()*2.0
			m.heading = m.rng.Float64() * 360.0
		}
		return
	}

	m.wanderTimer -= dt
	if m.wanderTimer <= 0 {
		m.idle = true
		m.idleTimer = 2.0 + m.rng.Float64()*3.0
		return
	}

	rad := m.heading * math.Pi / 180.0
	desiredX := math.Sin(rad) * m.stats.speed
	desiredZ := math.Cos(rad) * m.stats.speed

	accel := mobAccelAir
	if m.OnGround {
		accel = mobAccelGround
	}
	m.Vel.X = approach(m.Vel.X, desiredX, accel*dt)
	m.Vel.Z = approach(m.Vel.Z, desiredZ, accel*dt)
}

// updatePhysics применяет гравитацию и перемещение со свипом. Упёршись
// в стену на земле, моб подпрыгивает, иначе выбирает новое направление.
func (m *Mob) updatePhysics(dt float64, solid physics.SolidFunc) {
	m.Vel.Y -= Gravity * dt

	delta := m.Vel.Mul(dt)
	res := physics.Move(m.AABB(), delta, m.solidOrNothing(solid))

	m.Pos = m.Pos.Add(res.Delta)

	if res.HitX {
		m.Vel.X = 0
	}
	if res.HitZ {
		m.Vel.Z = 0
	}
	if res.HitX || res.HitZ {
		if m.OnGround && m.hopCooldown <= 0 {
			m.Vel.Y = mobHopImpulse
			m.hopCooldown = mobHopCooldown
		} else if !m.idle {
			m.heading = m.rng.Float64() * 360.0
		}
	}

	if res.HitY {
		m.Vel.Y = 0
	}
	m.OnGround = res.HitY && delta.Y < 0

	if m.OnGround && m.idle {
		m.Vel.X *= mobIdleDrag
		m.Vel.Z *= mobIdleDrag
	}
}

func (m *Mob) solidOrNothing(solid physics.SolidFunc) physics.SolidFunc {
	if solid != nil {
		return solid
	}
	return func(wx, wy, wz int) bool { return false }
}
