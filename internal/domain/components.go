package domain

// --- КОМПОНЕНТЫ ---

// TransformComponent - позиция и масштаб относительно родителя.
// Position - точка "ступней" (низ-центр). Знак Scale.X - направление взгляда.
type TransformComponent struct {
	Position Vec2                `json:"position"`
	Scale    Vec2                `json:"scale"`
	Parent   *TransformComponent `json:"-"`
}

// BodyComponent - движение и коллайдер
type BodyComponent struct {
	Velocity        Vec2           `json:"velocity"`
	Input           Vec2           `json:"input"`
	Size            Vec2           `json:"size"` // размер коллайдера при масштабе 1
	GravityAffected bool           `json:"gravityAffected"`
	Collidable      bool           `json:"collidable"`
	Layer           Layer          `json:"layer"`
	Collisions      CollisionFlags `json:"-"`

	// VelocityXSmoothing - состояние SmoothDamp между тиками
	VelocityXSmoothing float64 `json:"-"`
	// PushDepth - сколько PushBack сейчас ведут это тело
	PushDepth int `json:"-"`

	Controller Controller `json:"-"`
}

// MotorComponent - параметры прыжка и бега
type MotorComponent struct {
	MoveSpeed                float64 `json:"moveSpeed"`
	RunSpeed                 float64 `json:"runSpeed"`
	JumpHeight               float64 `json:"jumpHeight"`
	TimeToJumpApex           float64 `json:"timeToJumpApex"`
	AccelerationTimeAirborne float64 `json:"accelerationTimeAirborne"`
	AccelerationTimeGrounded float64 `json:"accelerationTimeGrounded"`
	ClimbSpeed               float64 `json:"climbSpeed"`

	// Вычисляются в Init
	Gravity      float64 `json:"gravity"`
	JumpVelocity float64 `json:"jumpVelocity"`

	Speed    float64 `json:"speed"`
	Jumping  bool    `json:"jumping"`
	FastDrop bool    `json:"fastDrop"`

	// PendingJump - прыжок, запрошенный командой между тиками
	PendingJump *JumpRequest `json:"-"`
}

// JumpRequest - параметры команды прыжка
type JumpRequest struct {
	FastDrop  bool
	Intensity float64
}

// CombatComponent - машина состояний боевых действий
type CombatComponent struct {
	State            CombatState `json:"state"`
	HasAttackedInAir bool        `json:"hasAttackedInAir"`
	claim            uint64
}

// StatsComponent - здоровье и атрибуты
type StatsComponent struct {
	HP                   int     `json:"hp"`
	MaxHP                int     `json:"maxHp"`
	Mass                 float64 `json:"mass"`
	DamageMin            int     `json:"damageMin"`
	DamageMax            int     `json:"damageMax"`
	Destructible         bool    `json:"destructible"`
	DestructibleJumpMass float64 `json:"destructibleJumpMass"`
	IsDead               bool    `json:"isDead"`
}

// AIComponent - осведомленность и каденции планировщика
type AIComponent struct {
	Aware          bool    `json:"aware"`
	VisionRange    float64 `json:"visionRange"`
	VisionInterval float64 `json:"visionInterval"`
	MoveInterval   float64 `json:"moveInterval"`
	AttackInterval float64 `json:"attackInterval"`
	DeadZone       float64 `json:"deadZone"`
	EngageDistance float64 `json:"engageDistance"`
}

// ItemComponent - переносимый предмет
type ItemComponent struct {
	Pickable bool    `json:"pickable"`
	Pushable bool    `json:"pushable"`
	Holder   *Entity `json:"-"` // слабая ссылка на носителя
}

// LootComponent - подбираемая добыча (монеты, самоцветы)
type LootComponent struct {
	Path      string `json:"path"`
	Value     int    `json:"value"`
	Currency  bool   `json:"currency"`
	Icon      string `json:"icon"`
	Collected bool   `json:"collected"`
}

// InteractionComponent - слабые ссылки на окружение. Пишет только владелец.
type InteractionComponent struct {
	Held      *Entity `json:"-"`
	Nearby    *Entity `json:"-"`
	Ladder    *Entity `json:"-"`
	Platform  *Entity `json:"-"`
	Submerged bool    `json:"submerged"`
}

// OpenableComponent - двери и сундуки
type OpenableComponent struct {
	Opening     bool       `json:"opening"`
	Opened      bool       `json:"opened"`
	Progress    float64    `json:"progress"`
	Duration    float64    `json:"duration"`
	Contents    []LootSpec `json:"contents,omitempty"`
	Destination string     `json:"destination,omitempty"`
}

// LootSpec - описание добычи внутри сундука
type LootSpec struct {
	Archetype string `json:"archetype" yaml:"archetype"`
	Count     int    `json:"count" yaml:"count"`
}

// RenderComponent - то, что уходит клиенту для отрисовки
type RenderComponent struct {
	Sprite    string `json:"sprite"`
	Color     string `json:"color"`
	Indicator string `json:"indicator,omitempty"`
}
