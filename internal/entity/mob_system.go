package entity

import (
	"math"
	"math/rand"

	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/logging"
	"github.com/annel0/blockforge/internal/vec"
)

// Difficulty — сложность игры, управляет спавном и уроном мобов
type Difficulty uint8

const (
	DifficultyPeaceful Difficulty = iota
	DifficultyEasy
	DifficultyNormal
	DifficultyHard
)

var difficultyNames = map[Difficulty]string{
	DifficultyPeaceful: "peaceful",
	DifficultyEasy:     "easy",
	DifficultyNormal:   "normal",
	DifficultyHard:     "hard",
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseDifficulty разбирает имя сложности из конфигурации
func ParseDifficulty(name string) (Difficulty, bool) {
	for d, n := range difficultyNames {
		if n == name {
			return d, true
		}
	}
	return DifficultyNormal, false
}

// maxMobsPerChunk возвращает предел мобов на чанк для сложности
func (d Difficulty) maxMobsPerChunk() int {
	switch d {
	case DifficultyPeaceful:
		return 2
	case DifficultyEasy:
		return 3
	case DifficultyHard:
		return 8
	default:
		return 5
	}
}

// WorldView — то, что системам сущностей нужно от мира
type WorldView interface {
	IsSolid(wx, wy, wz int) bool
	SurfaceHeight(wx, wz int) int
}

// Параметры спавна мобов
const (
	spawnInterval     = 5.0
	spawnAttempts     = 5
	spawnMinY         = 5.0
	spawnMaxY         = 50.0
	playerKnockback   = 8.0
	playerKnockbackUp = 4.0
	nightStart        = 0.5
	nightEnd          = 0.9
)

// IsNight сообщает, ночь ли на данной доле суток [0..1)
func IsNight(timeOfDay float64) bool {
	return timeOfDay >= nightStart && timeOfDay < nightEnd
}

// MobSystem управляет всеми мобами: спавн, деспавн, ИИ, атаки и дроп
type MobSystem struct {
	world      WorldView
	drops      *DropSystem
	difficulty Difficulty
	renderDist int
	rng        *rand.Rand

	mobs       []*Mob
	spawnTimer float64
}

// NewMobSystem создаёт систему мобов. renderDist — радиус колец чанков,
// за пределами которого мобы деспавнятся.
func NewMobSystem(world WorldView, drops *DropSystem, difficulty Difficulty, renderDist int, seed int64) *MobSystem {
	return &MobSystem{
		world:      world,
		drops:      drops,
		difficulty: difficulty,
		renderDist: renderDist,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Mobs возвращает живой срез мобов (для чтения)
func (ms *MobSystem) Mobs() []*Mob { return ms.mobs }

// Count возвращает число мобов, включая умирающих
func (ms *MobSystem) Count() int { return len(ms.mobs) }

// Spawn добавляет моба указанного типа в мир
func (ms *MobSystem) Spawn(kind MobKind, pos vec.Vec3Float) *Mob {
	m := NewMob(kind, pos, ms.rng)
	ms.mobs = append(ms.mobs, m)
	logging.LogMobSpawn(m.ID, kind.String(), pos.X, pos.Y, pos.Z)
	return m
}

// Update продвигает всех мобов на dt, пробует спавн по таймеру и
// убирает погибших и вышедших за дистанцию прорисовки.
func (ms *MobSystem) Update(dt float64, player *Player, timeOfDay float64) {
	ms.spawnTimer += dt
	if ms.spawnTimer >= spawnInterval {
		ms.spawnTimer = 0
		ms.trySpawn(player.Pos, timeOfDay)
	}

	night := IsNight(timeOfDay)

	// Атаку применяет система: урон игроку плюс отбрасывание от моба
	attack := func(m *Mob) {
		if player.Mode != ModeSurvival {
			return
		}
		player.TakeDamage(m.AttackDamage())

		dx := player.Pos.X - m.Pos.X
		dz := player.Pos.Z - m.Pos.Z
		length := math.Hypot(dx, dz)
		if length > 0 {
			player.Vel.X += dx / length * playerKnockback
			player.Vel.Z += dz / length * playerKnockback
			player.Vel.Y += playerKnockbackUp
		}
	}

	alive := ms.mobs[:0]
	for _, m := range ms.mobs {
		if ms.outsideRenderDistance(m, player.Pos) {
			continue
		}
		if m.Kind.Hostile() && (!night || ms.difficulty == DifficultyPeaceful) {
			continue
		}

		m.Update(dt, player.Pos, player.Mode, ms.difficulty, ms.world.IsSolid, attack)

		// Короткая пауза после смерти, затем дроп и удаление
		if m.Dead && m.DeathTimer() > 0.1 {
			for _, item := range m.Drops() {
				ms.drops.Spawn(item, m.Pos)
			}
			continue
		}

		alive = append(alive, m)
	}
	ms.mobs = alive
}

// outsideRenderDistance проверяет чебышёвское расстояние в чанках
func (ms *MobSystem) outsideRenderDistance(m *Mob, playerPos vec.Vec3Float) bool {
	pc := chunk.WorldToChunk(int(math.Floor(playerPos.X)), int(math.Floor(playerPos.Z)))
	mc := chunk.WorldToChunk(int(math.Floor(m.Pos.X)), int(math.Floor(m.Pos.Z)))
	return mc.ChebyshevDistance(pc) > ms.renderDist
}

// trySpawn делает несколько попыток заспавнить одного моба в случайном
// чанке возле игрока. Ночью спавнятся враждебные, днём животные.
func (ms *MobSystem) trySpawn(playerPos vec.Vec3Float, timeOfDay float64) {
	pc := chunk.WorldToChunk(int(math.Floor(playerPos.X)), int(math.Floor(playerPos.Z)))
	night := IsNight(timeOfDay)

	for attempt := 0; attempt < spawnAttempts; attempt++ {
		cx := pc.X + ms.rng.Intn(2*ms.renderDist+1) - ms.renderDist
		cz := pc.Z + ms.rng.Intn(2*ms.renderDist+1) - ms.renderDist

		if ms.mobsInChunk(cx, cz) >= ms.difficulty.maxMobsPerChunk() {
			continue
		}

		wx := float64(cx*chunk.SizeX) + 1 + ms.rng.Float64()*float64(chunk.SizeX-2)
		wz := float64(cz*chunk.SizeZ) + 1 + ms.rng.Float64()*float64(chunk.SizeZ-2)
		wy := float64(ms.world.SurfaceHeight(int(wx), int(wz))) + 1

		if wy < spawnMinY || wy > spawnMaxY {
			continue
		}
		// Позиция и блок над ней должны быть свободны
		if ms.world.IsSolid(int(wx), int(wy), int(wz)) ||
			ms.world.IsSolid(int(wx), int(wy)+1, int(wz)) {
			continue
		}

		var kind MobKind
		if night {
			if ms.difficulty == DifficultyPeaceful {
				continue
			}
			hostiles := [...]MobKind{MobCreeper, MobZombie, MobSkeleton}
			kind = hostiles[ms.rng.Intn(len(hostiles))]
		} else {
			animals := [...]MobKind{MobSheep, MobCow, MobChicken, MobPig}
			kind = animals[ms.rng.Intn(len(animals))]
		}

		ms.Spawn(kind, vec.Vec3Float{X: wx, Y: wy, Z: wz})
		return
	}
}

// mobsInChunk считает мобов в чанке (cx, cz)
func (ms *MobSystem) mobsInChunk(cx, cz int) int {
	count := 0
	for _, m := range ms.mobs {
		mc := chunk.WorldToChunk(int(math.Floor(m.Pos.X)), int(math.Floor(m.Pos.Z)))
		if mc.X == cx && mc.Z == cz {
			count++
		}
	}
	return count
}

// Closest возвращает ближайшего живого моба в радиусе maxDist от точки
func (ms *MobSystem) Closest(pos vec.Vec3Float, maxDist float64) *Mob {
	var closest *Mob
	closestSq := maxDist * maxDist

	for _, m := range ms.mobs {
		if m.Dead {
			continue
		}
		d := m.Pos.Sub(pos)
		distSq := d.Dot(d)
		if distSq < closestSq {
			closestSq = distSq
			closest = m
		}
	}
	return closest
}

// Raycast возвращает первого моба на пути луча и параметр t попадания
func (ms *MobSystem) Raycast(origin, dir vec.Vec3Float, maxDist float64) (*Mob, float64) {
	var closest *Mob
	closestT := maxDist

	for _, m := range ms.mobs {
		if m.Dead {
			continue
		}
		if t, ok := RayAABB(origin, dir, m.AABB()); ok && t < closestT {
			closestT = t
			closest = m
		}
	}
	return closest, closestT
}
