package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/entity"
	"github.com/annel0/blockforge/internal/vec"
)

func newTestSession(mode entity.GameMode) *Session {
	opts := DefaultSessionOptions(1337)
	opts.Mode = mode
	opts.RenderDistance = 2
	opts.CreateBudget = 100
	opts.MeshBudget = 100

	s := NewSession(opts, nil, nil)
	s.Preload()
	return s
}

// settle даёт игроку опуститься на землю
func settle(s *Session) {
	for i := 0; i < 100; i++ {
		s.Update(entity.Intent{}, 0.05)
		if s.Player().OnGround {
			return
		}
	}
}

// buildPlatform строит ровную площадку высоко над ландшафтом и ставит
// игрока на неё: тесты прицеливания не зависят от рельефа
func buildPlatform(t *testing.T, s *Session, y int) {
	t.Helper()
	for z := -1; z <= 5; z++ {
		for x := -1; x <= 1; x++ {
			require.True(t, s.World().PlaceBlock(x, y, z, block.Stone))
		}
	}
	p := s.Player()
	p.Pos = vec.Vec3Float{X: 0.5, Y: float64(y + 1), Z: 0.5}
	p.Vel = vec.Vec3Float{}
}

func TestSessionSpawnAboveSurface(t *testing.T) {
	s := newTestSession(entity.ModeSurvival)

	h := s.World().SurfaceHeight(0, 0)
	assert.Equal(t, float64(h+3), s.Player().Pos.Y, "спавн в трёх блоках над поверхностью")

	settle(s)
	assert.True(t, s.Player().OnGround, "игрок приземляется на сгенерированный ландшафт")
}

func TestSessionDayNightClock(t *testing.T) {
	opts := DefaultSessionOptions(1)
	opts.DayLength = 10
	s := NewSession(opts, nil, nil)

	assert.False(t, s.IsNight(), "сутки начинаются днём")

	for i := 0; i < 60; i++ {
		s.Update(entity.Intent{}, 0.1)
	}
	assert.InDelta(t, 0.6, s.TimeOfDay(), 1e-6)
	assert.True(t, s.IsNight(), "доля суток 0.6 — ночь")

	for i := 0; i < 40; i++ {
		s.Update(entity.Intent{}, 0.1)
	}
	assert.False(t, s.IsNight(), "часы замкнулись на новый день")
}

func TestSessionMineBlock(t *testing.T) {
	s := newTestSession(entity.ModeCreative)
	settle(s)

	// Смотрим строго вниз: под ногами поверхность
	s.Player().Pitch = -90

	hit := s.TargetBlock()
	require.NotNil(t, hit, "под игроком есть твёрдый блок")
	id := s.World().Block(hit.Block.X, hit.Block.Y, hit.Block.Z)
	require.True(t, id.IsSolid())

	require.True(t, s.Mine(0.05), "в креативе блок ломается мгновенно")
	assert.Equal(t, block.Air, s.World().Block(hit.Block.X, hit.Block.Y, hit.Block.Z))
	assert.Equal(t, 1, s.Drops().Count(), "сломанный блок выпал дропом")
	assert.Equal(t, id, s.Drops().Items()[0].Item)
}

func TestSessionMineSurvivalProgress(t *testing.T) {
	s := newTestSession(entity.ModeSurvival)
	buildPlatform(t, s, 100)
	s.Player().Pitch = -90

	hit := s.TargetBlock()
	require.NotNil(t, hit)

	// Камень ломается 1.5 c: семь тактов прогресса, восьмой — разрушение
	for i := 0; i < 7; i++ {
		assert.False(t, s.Mine(0.2), "блок ещё не сломан")
	}
	assert.True(t, s.Mine(0.2))
	assert.Equal(t, block.Air, s.World().Block(hit.Block.X, hit.Block.Y, hit.Block.Z))
}

func TestSessionPlaceRejectedInsidePlayer(t *testing.T) {
	s := newTestSession(entity.ModeCreative)
	settle(s)
	s.Player().Pitch = -90

	// Свободная клетка перед блоком под ногами — это ноги игрока
	assert.False(t, s.Place(block.Brick), "блок внутри игрока не ставится")
}

func TestSessionPlaceAhead(t *testing.T) {
	s := newTestSession(entity.ModeCreative)
	buildPlatform(t, s, 100)

	// Смотрим вниз под углом: цель в паре блоков перед игроком
	s.Player().Yaw = 0
	s.Player().Pitch = -45

	hit := s.TargetBlock()
	require.NotNil(t, hit)
	require.True(t, hit.HasPrevious)

	require.True(t, s.Place(block.Brick))
	pos := hit.Previous
	assert.Equal(t, block.Brick, s.World().Block(pos.X, pos.Y, pos.Z))
}

func TestSessionAttackMob(t *testing.T) {
	s := newTestSession(entity.ModeSurvival)
	buildPlatform(t, s, 100)

	// Зомби прямо по курсу (yaw 0 — это +Z)
	p := s.Player()
	mob := s.SpawnMob(entity.MobZombie, vec.Vec3Float{X: p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z + 3})

	target := s.TargetEntity()
	require.Same(t, mob, target, "моб в прицеле")

	health := mob.Health
	require.True(t, s.Attack())
	assert.Equal(t, health-2, mob.Health, "удар рукой снимает две единицы")
	assert.Greater(t, mob.Vel.Z, 0.0, "моба отбрасывает от игрока")
	assert.GreaterOrEqual(t, mob.Vel.Y, 4.0)
}

func TestSessionAttackWithoutTarget(t *testing.T) {
	s := newTestSession(entity.ModeSurvival)
	settle(s)

	s.Player().Pitch = 89 // в небо
	assert.False(t, s.Attack())
	assert.Nil(t, s.TargetEntity())
}

func TestSessionInventoryCollectsDrops(t *testing.T) {
	s := newTestSession(entity.ModeSurvival)
	settle(s)

	s.SpawnDrop(block.Sticks, s.Player().Pos)
	for i := 0; i < 30 && s.Drops().Count() > 0; i++ {
		s.Update(entity.Intent{}, 0.1)
	}

	require.Contains(t, s.Inventory(), block.Sticks, "дроп подобран в инвентарь")
	assert.Equal(t, 0, s.Drops().Count())
}

func TestSessionSaveWithoutStorage(t *testing.T) {
	s := newTestSession(entity.ModeSurvival)
	assert.NoError(t, s.Save(), "сессия без хранилища сохраняется вхолостую")
}
