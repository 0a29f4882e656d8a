package entity

import (
	"math"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/physics"
	"github.com/annel0/blockforge/internal/vec"
)

// GameMode — режим игры
type GameMode uint8

const (
	ModeSurvival GameMode = iota
	ModeCreative
)

func (m GameMode) String() string {
	if m == ModeCreative {
		return "creative"
	}
	return "survival"
}

// ParseGameMode разбирает имя режима игры из конфигурации
func ParseGameMode(name string) (GameMode, bool) {
	switch name {
	case "survival":
		return ModeSurvival, true
	case "creative":
		return ModeCreative, true
	default:
		return ModeSurvival, false
	}
}

// Константы движения. Скорости в блоках в секунду,
// ускорения в блоках в секунду за секунду.
const (
	Gravity     = 26.0
	MoveSpeed   = 6.0
	AccelGround = 40.0
	AccelAir    = AccelGround * 0.25
	Friction    = 20.0
	JumpSpeed   = 8.5

	// MouseSensitivity — градусы поворота на пиксель мыши
	MouseSensitivity = 0.11
	MaxPitch         = 89.0

	// Полёт в креативе: двойное нажатие прыжка в пределах окна
	flightTapWindow = 0.3
	flightSpeedMult = 2.5
)

// Габариты игрока. Позиция — центр ступней.
const (
	PlayerWidth     = 0.6
	PlayerDepth     = 0.6
	PlayerHeight    = 1.8
	PlayerEyeOffset = 1.6
)

const (
	maxHealth = 20.0
	maxHunger = 20.0

	regenInterval  = 4.0
	regenThreshold = 16.0
	hungerInterval = 30.0
)

// Intent — намерение движения за тик: оси [-1..1] и кнопки
type Intent struct {
	// MoveX — вправо/влево, MoveY — вперёд/назад
	MoveX, MoveY float64
	Jump, Crouch bool
}

// Player — игрок с физикой, статами выживания и состоянием ломания блока
type Player struct {
	Pos vec.Vec3Float
	Vel vec.Vec3Float

	// Yaw и Pitch в градусах
	Yaw, Pitch float64

	OnGround bool
	Mode     GameMode

	Flying bool

	Health     float64
	Hunger     float64
	Saturation float64

	solid    physics.SolidFunc
	spawnPos vec.Vec3Float

	// clock — накопленное игровое время, используется для окна
	// двойного нажатия прыжка
	clock       float64
	lastJumpTap float64
	prevJump    bool

	// fallStartY — максимальная высота с момента последнего касания земли
	fallStartY float64

	regenTimer  float64
	hungerTimer float64

	breakingPos      vec.Vec3
	breakingID       block.ID
	breaking         bool
	breakingProgress float64
	creativeBroke    bool
}

// NewPlayer создаёт игрока на точке возрождения. solid — проверка
// твёрдости блоков мира для коллизий.
func NewPlayer(spawn vec.Vec3Float, mode GameMode, solid physics.SolidFunc) *Player {
	return &Player{
		Pos:         spawn,
		Mode:        mode,
		Health:      maxHealth,
		Hunger:      maxHunger,
		Saturation:  5.0,
		solid:       solid,
		spawnPos:    spawn,
		fallStartY:  spawn.Y,
		lastJumpTap: -flightTapWindow,
	}
}

// AddLook поворачивает взгляд на сдвиг мыши в пикселях.
// Pitch ограничен, чтобы камера не переворачивалась.
func (p *Player) AddLook(dxPixels, dyPixels float64) {
	p.Yaw -= dxPixels * MouseSensitivity
	p.Pitch -= dyPixels * MouseSensitivity
	if p.Pitch > MaxPitch {
		p.Pitch = MaxPitch
	} else if p.Pitch < -MaxPitch {
		p.Pitch = -MaxPitch
	}
}

// EyePos возвращает позицию глаз в мировых координатах
func (p *Player) EyePos() vec.Vec3Float {
	return vec.Vec3Float{X: p.Pos.X, Y: p.Pos.Y + PlayerEyeOffset, Z: p.Pos.Z}
}

// LookDir возвращает нормированный вектор взгляда из yaw и pitch
func (p *Player) LookDir() vec.Vec3Float {
	yaw := p.Yaw * math.Pi / 180.0
	pitch := p.Pitch * math.Pi / 180.0
	cp := math.Cos(pitch)
	return vec.Vec3Float{
		X: -math.Sin(yaw) * cp,
		Y: math.Sin(pitch),
		Z: math.Cos(yaw) * cp,
	}
}

// AABB возвращает текущий хитбокс игрока
func (p *Player) AABB() physics.AABB {
	return physics.NewAABB(p.Pos, PlayerWidth*0.5, PlayerDepth*0.5, PlayerHeight)
}

// IntersectsBlock проверяет, пересечётся ли блок на позиции с хитбоксом
// игрока. Используется для запрета установки блока внутрь себя.
func (p *Player) IntersectsBlock(wx, wy, wz int) bool {
	return p.AABB().Intersects(physics.BlockAABB(wx, wy, wz))
}

// Update продвигает игрока на dt: статы выживания, управление,
// гравитация и перемещение со свипом коллизий по осям.
func (p *Player) Update(intent Intent, dt float64) {
	p.clock += dt
	p.updateSurvival(dt)

	wishX, wishZ := p.wishDirection(intent)

	speedMult := 1.0
	if p.Flying {
		speedMult = flightSpeedMult
	}
	desiredX := wishX * MoveSpeed * speedMult
	desiredZ := wishZ * MoveSpeed * speedMult

	// На земле без ввода работает трение, иначе разгон к желаемой скорости
	if p.OnGround && intent.MoveX == 0 && intent.MoveY == 0 {
		p.applyFriction(dt)
	} else {
		accel := AccelAir
		if p.OnGround {
			accel = AccelGround
		}
		p.Vel.X = approach(p.Vel.X, desiredX, accel*dt)
		p.Vel.Z = approach(p.Vel.Z, desiredZ, accel*dt)
	}

	p.handleJump(intent)

	if p.Flying && intent.Crouch {
		p.Vel.Y = -JumpSpeed
	}

	if !p.Flying {
		p.Vel.Y -= Gravity * dt
	}

	p.integrate(dt)
}

// wishDirection строит нормированное направление движения в плоскости XZ
// из осей ввода и текущего yaw
func (p *Player) wishDirection(intent Intent) (float64, float64) {
	if intent.MoveX == 0 && intent.MoveY == 0 {
		return 0, 0
	}

	yaw := p.Yaw * math.Pi / 180.0
	fwdX, fwdZ := -math.Sin(yaw), math.Cos(yaw)
	rightX, rightZ := math.Cos(yaw), math.Sin(yaw)

	wishX := fwdX*intent.MoveY + rightX*intent.MoveX
	wishZ := fwdZ*intent.MoveY + rightZ*intent.MoveX

	length := math.Hypot(wishX, wishZ)
	if length > 0 {
		wishX /= length
		wishZ /= length
	}
	return wishX, wishZ
}

func (p *Player) applyFriction(dt float64) {
	speed := math.Hypot(p.Vel.X, p.Vel.Z)
	if speed == 0 {
		return
	}
	newSpeed := math.Max(0, speed-Friction*dt)
	scale := newSpeed / speed
	p.Vel.X *= scale
	p.Vel.Z *= scale
}

// handleJump обрабатывает прыжок по фронту нажатия. В креативе двойное
// нажатие в пределах окна переключает полёт.
func (p *Player) handleJump(intent Intent) {
	if intent.Jump {
		if !p.prevJump {
			if p.Mode == ModeCreative {
				if p.clock-p.lastJumpTap < flightTapWindow {
					p.Flying = !p.Flying
					p.Vel.Y = 0
					p.lastJumpTap = -flightTapWindow
				} else {
					p.lastJumpTap = p.clock
				}
			}

			if p.Flying {
				p.Vel.Y = JumpSpeed
			} else if p.OnGround {
				p.Vel.Y = JumpSpeed
				p.OnGround = false
			}
		}
	} else if p.Flying {
		p.Vel.Y = 0
	}
	p.prevJump = intent.Jump
}

// integrate перемещает игрока со свипом по осям и начисляет урон от
// падения при приземлении. fallStartY — наибольшая высота с момента
// последнего касания земли, обновляется только здесь.
func (p *Player) integrate(dt float64) {
	delta := p.Vel.Mul(dt)
	res := physics.Move(p.AABB(), delta, p.solid)

	wasOnGround := p.OnGround

	p.Pos = p.Pos.Add(res.Delta)

	if res.HitX {
		p.Vel.X = 0
	}
	if res.HitZ {
		p.Vel.Z = 0
	}

	landed := res.HitY && delta.Y < 0
	if res.HitY {
		p.Vel.Y = 0
	}

	if landed && !wasOnGround && !p.Flying {
		fall := p.fallStartY - p.Pos.Y
		if dmg := math.Floor(fall - 3); dmg > 0 {
			p.TakeDamage(dmg)
		}
	}

	p.OnGround = landed
	if p.OnGround {
		p.fallStartY = p.Pos.Y
	} else {
		p.fallStartY = math.Max(p.fallStartY, p.Pos.Y)
	}
}

// approach сдвигает current к target не более чем на delta
func approach(current, target, delta float64) float64 {
	if current < target {
		return math.Min(target, current+delta)
	}
	if current > target {
		return math.Max(target, current-delta)
	}
	return current
}

// --- Выживание ---

// TakeDamage снимает здоровье. В креативе урон не проходит.
func (p *Player) TakeDamage(amount float64) {
	if p.Mode == ModeCreative {
		return
	}
	p.Health = math.Max(0, p.Health-amount)
}

// Heal восстанавливает здоровье до максимума
func (p *Player) Heal(amount float64) {
	p.Health = math.Min(maxHealth, p.Health+amount)
}

// Eat восполняет голод и насыщение
func (p *Player) Eat(hunger, saturation float64) {
	p.Hunger = math.Min(maxHunger, p.Hunger+hunger)
	p.Saturation += saturation
}

// consumeHunger тратит сначала насыщение, затем голод
func (p *Player) consumeHunger(amount float64) {
	if p.Saturation > 0 {
		p.Saturation -= amount
		if p.Saturation < 0 {
			amount = -p.Saturation
			p.Saturation = 0
		} else {
			amount = 0
		}
	}
	if amount > 0 {
		p.Hunger = math.Max(0, p.Hunger-amount)
	}
}

// updateSurvival ведёт таймеры регенерации и голода
func (p *Player) updateSurvival(dt float64) {
	if p.Mode == ModeCreative {
		return
	}

	// Регенерация при почти полном голоде
	if p.Hunger > regenThreshold && p.Health < maxHealth {
		p.regenTimer += dt
		if p.regenTimer >= regenInterval {
			p.Heal(1.0)
			p.consumeHunger(0.25)
			p.regenTimer = 0
		}
	}

	p.hungerTimer += dt
	if p.hungerTimer >= hungerInterval {
		p.consumeHunger(0.5)
		p.hungerTimer = 0
	}

	if p.Health <= 0 {
		p.Respawn()
	}
}

// Respawn возвращает игрока на точку возрождения с полными статами
func (p *Player) Respawn() {
	p.Pos = p.spawnPos
	p.Vel = vec.Vec3Float{}
	p.Health = maxHealth
	p.Hunger = maxHunger
	p.fallStartY = p.Pos.Y
	p.Flying = false
}

// --- Ломание блоков ---

// StartBreaking начинает ломать блок или переключается на новый,
// сбрасывая прогресс
func (p *Player) StartBreaking(pos vec.Vec3, id block.ID) {
	if p.breaking && p.breakingPos == pos {
		return
	}
	p.breakingPos = pos
	p.breakingID = id
	p.breaking = true
	p.breakingProgress = 0
}

// UpdateBreaking продвигает прогресс ломания. Возвращает true, когда блок
// должен сломаться. В креативе блок ломается мгновенно, но один раз за
// нажатие.
func (p *Player) UpdateBreaking(dt float64) bool {
	if !p.breaking {
		return false
	}

	hardness, breakable := p.breakingID.Hardness()
	if !breakable {
		return false
	}

	if p.Mode == ModeCreative {
		if p.creativeBroke {
			return false
		}
		p.creativeBroke = true
		p.breaking = false
		p.breakingProgress = 0
		return true
	}

	p.breakingProgress += dt / hardness
	if p.breakingProgress >= 1.0 {
		p.ResetBreaking()
		return true
	}
	return false
}

// ResetBreaking сбрасывает состояние ломания (отпускание кнопки)
func (p *Player) ResetBreaking() {
	p.breaking = false
	p.breakingProgress = 0
	p.creativeBroke = false
}

// BreakingBlock возвращает позицию ломаемого блока
func (p *Player) BreakingBlock() (vec.Vec3, bool) {
	return p.breakingPos, p.breaking
}

// BreakStage возвращает стадию разрушения 0..9 для анимации трещин
func (p *Player) BreakStage() int {
	if p.breakingProgress <= 0 {
		return 0
	}
	stage := int(p.breakingProgress * block.BreakStages)
	if stage > block.BreakStages-1 {
		stage = block.BreakStages - 1
	}
	return stage
}
