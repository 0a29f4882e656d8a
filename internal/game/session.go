// Package game собирает мир, игрока, мобов и дроп в единую игровую
// сессию с общим тактом обновления и часами суток.
package game

import (
	"math"
	"time"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/entity"
	"github.com/annel0/blockforge/internal/mesh"
	"github.com/annel0/blockforge/internal/metrics"
	"github.com/annel0/blockforge/internal/noise"
	"github.com/annel0/blockforge/internal/terrain"
	"github.com/annel0/blockforge/internal/vec"
	"github.com/annel0/blockforge/internal/world"
)

// Дальность взаимодействия и урон удара рукой
const (
	ReachDistance = 5.0
	punchDamage   = 2.0

	// Отбрасывание моба от удара игрока
	mobKnockback   = 8.0
	mobKnockbackUp = 4.0

	// DefaultDayLength — длительность суток в секундах
	DefaultDayLength = 600.0
)

// Options — параметры новой сессии
type Options struct {
	Seed           int64
	Mode           entity.GameMode
	Difficulty     entity.Difficulty
	DayLength      float64
	RenderDistance int

	// Бюджеты стриминга чанков; нули заменяются значениями по умолчанию
	CreateBudget int
	MeshBudget   int
}

// DefaultSessionOptions повторяют настройки эталонного клиента
func DefaultSessionOptions(seed int64) Options {
	def := world.DefaultOptions()
	return Options{
		Seed:           seed,
		Mode:           entity.ModeSurvival,
		Difficulty:     entity.DifficultyNormal,
		DayLength:      DefaultDayLength,
		RenderDistance: def.RenderDistance,
		CreateBudget:   def.CreateBudget,
		MeshBudget:     def.MeshBudget,
	}
}

// Session — игровая сессия: владеет миром и всеми сущностями
type Session struct {
	world  *world.World
	player *entity.Player
	mobs   *entity.MobSystem
	drops  *entity.DropSystem
	atlas  *mesh.Atlas
	mts    *metrics.Metrics

	clock     float64
	dayLength float64

	inventory []block.ID
}

// NewSession создаёт сессию: мир из сида, игрока над поверхностью в
// начале координат, системы мобов и дропа. persist и mts могут быть nil.
func NewSession(opts Options, persist world.Persistence, mts *metrics.Metrics) *Session {
	atlas := mesh.NewGridAtlas(block.TextureNames())
	sampler := terrain.NewSampler(noise.NewField(opts.Seed))

	worldOpts := world.DefaultOptions()
	if opts.RenderDistance > 0 {
		worldOpts.RenderDistance = opts.RenderDistance
	}
	if opts.CreateBudget > 0 {
		worldOpts.CreateBudget = opts.CreateBudget
	}
	if opts.MeshBudget > 0 {
		worldOpts.MeshBudget = opts.MeshBudget
	}

	w := world.New(sampler, mesh.NewBuilder(atlas), persist, mts, worldOpts)

	spawn := vec.Vec3Float{X: 0.5, Y: float64(w.SurfaceHeight(0, 0) + 3), Z: 0.5}
	player := entity.NewPlayer(spawn, opts.Mode, w.IsSolid)

	dayLength := opts.DayLength
	if dayLength <= 0 {
		dayLength = DefaultDayLength
	}

	drops := entity.NewDropSystem(w.IsSolid, opts.Seed)
	mobs := entity.NewMobSystem(w, drops, opts.Difficulty, worldOpts.RenderDistance, opts.Seed)

	return &Session{
		world:     w,
		player:    player,
		mobs:      mobs,
		drops:     drops,
		atlas:     atlas,
		mts:       mts,
		dayLength: dayLength,
	}
}

// World возвращает мир сессии
func (s *Session) World() *world.World { return s.world }

// Player возвращает игрока сессии
func (s *Session) Player() *entity.Player { return s.player }

// Mobs возвращает систему мобов
func (s *Session) Mobs() *entity.MobSystem { return s.mobs }

// Drops возвращает систему дропа
func (s *Session) Drops() *entity.DropSystem { return s.drops }

// Atlas возвращает атлас текстур сессии
func (s *Session) Atlas() *mesh.Atlas { return s.atlas }

// Inventory возвращает подобранные предметы в порядке подбора
func (s *Session) Inventory() []block.ID { return s.inventory }

// TimeOfDay возвращает долю суток [0..1)
func (s *Session) TimeOfDay() float64 {
	return math.Mod(s.clock/s.dayLength, 1.0)
}

// IsNight сообщает, ночь ли сейчас
func (s *Session) IsNight() bool {
	return entity.IsNight(s.TimeOfDay())
}

// Preload синхронно загружает кольцо чанков вокруг игрока
func (s *Session) Preload() (created, meshed int) {
	return s.world.Preload(s.player.Pos.X, s.player.Pos.Z)
}

// Update выполняет один такт сессии: стриминг чанков, физика игрока,
// мобы и дроп. Подобранные предметы попадают в инвентарь.
func (s *Session) Update(intent entity.Intent, dt float64) {
	start := time.Now()
	s.clock += dt

	s.world.Update(s.player.Pos.X, s.player.Pos.Z)
	s.player.Update(intent, dt)
	s.mobs.Update(dt, s.player, s.TimeOfDay())

	collected := s.drops.Update(dt, s.player.Pos)
	s.inventory = append(s.inventory, collected...)

	if s.mts != nil {
		s.mts.SetMobsAlive(s.mobs.Count())
		s.mts.SetDropsAlive(s.drops.Count())
		s.mts.ObserveTick(time.Since(start).Seconds())
	}
}

// AddLook поворачивает взгляд игрока на сдвиг мыши в пикселях
func (s *Session) AddLook(dxPixels, dyPixels float64) {
	s.player.AddLook(dxPixels, dyPixels)
}

// TargetBlock возвращает блок под прицелом в пределах дальности руки
func (s *Session) TargetBlock() *entity.RayHit {
	return entity.RaycastBlock(s.player.EyePos(), s.player.LookDir(), ReachDistance, s.world.IsSolid)
}

// TargetEntity возвращает моба под прицелом. Моб перекрывает блок:
// если блок ближе по лучу, цели нет.
func (s *Session) TargetEntity() *entity.Mob {
	mob, t := s.mobs.Raycast(s.player.EyePos(), s.player.LookDir(), ReachDistance)
	if mob == nil {
		return nil
	}
	if hit := s.TargetBlock(); hit != nil && hit.T < t {
		return nil
	}
	return mob
}

// Attack бьёт цель под прицелом: моб получает урон и отбрасывание.
// Возвращает true, если удар попал.
func (s *Session) Attack() bool {
	mob := s.TargetEntity()
	if mob == nil {
		return false
	}

	mob.Damage(punchDamage)

	dx := mob.Pos.X - s.player.Pos.X
	dz := mob.Pos.Z - s.player.Pos.Z
	length := math.Hypot(dx, dz)
	if length > 0 {
		mob.Vel.X += dx / length * mobKnockback
		mob.Vel.Z += dz / length * mobKnockback
		mob.Vel.Y += mobKnockbackUp
	}
	return true
}

// Mine ведёт ломание блока под прицелом. Когда прогресс завершён, блок
// убирается из мира и падает дропом. Возвращает true в такт разрушения.
func (s *Session) Mine(dt float64) bool {
	hit := s.TargetBlock()
	if hit == nil {
		s.player.ResetBreaking()
		return false
	}

	pos := hit.Block
	id := s.world.Block(pos.X, pos.Y, pos.Z)
	s.player.StartBreaking(pos, id)

	if !s.player.UpdateBreaking(dt) {
		return false
	}
	if !s.world.RemoveBlock(pos.X, pos.Y, pos.Z) {
		return false
	}

	center := vec.Vec3Float{
		X: float64(pos.X) + 0.5,
		Y: float64(pos.Y) + 0.5,
		Z: float64(pos.Z) + 0.5,
	}
	s.drops.Spawn(id, center)
	return true
}

// StopMining сбрасывает прогресс ломания (отпускание кнопки)
func (s *Session) StopMining() {
	s.player.ResetBreaking()
}

// Place ставит блок в последнюю пустую клетку перед прицелом.
// Отказывает, если места нет или блок пересёкся бы с игроком.
func (s *Session) Place(id block.ID) bool {
	hit := s.TargetBlock()
	if hit == nil || !hit.HasPrevious {
		return false
	}

	pos := hit.Previous
	if s.player.IntersectsBlock(pos.X, pos.Y, pos.Z) {
		return false
	}
	return s.world.PlaceBlock(pos.X, pos.Y, pos.Z, id)
}

// SpawnMob добавляет моба в мир сессии
func (s *Session) SpawnMob(kind entity.MobKind, pos vec.Vec3Float) *entity.Mob {
	return s.mobs.Spawn(kind, pos)
}

// SpawnDrop роняет предмет в мир сессии
func (s *Session) SpawnDrop(item block.ID, pos vec.Vec3Float) *entity.DroppedItem {
	return s.drops.Spawn(item, pos)
}

// Save сохраняет все изменённые чанки
func (s *Session) Save() error {
	return s.world.SaveAll()
}
