package domain

// CombatTuning - константы боевых действий
type CombatTuning struct {
	AttackRange          float64 `yaml:"attackRange" json:"attackRange"`
	AttackKnockback      float64 `yaml:"attackKnockback" json:"attackKnockback"`
	AttackLift           float64 `yaml:"attackLift" json:"attackLift"`
	AttackLiftSubmerged  float64 `yaml:"attackLiftSubmerged" json:"attackLiftSubmerged"`
	AttackTargetLift     float64 `yaml:"attackTargetLift" json:"attackTargetLift"`
	AttackPush           float64 `yaml:"attackPush" json:"attackPush"`
	AttackPushDuration   float64 `yaml:"attackPushDuration" json:"attackPushDuration"`
	AttackWindup         float64 `yaml:"attackWindup" json:"attackWindup"`
	AttackRecoilDuration float64 `yaml:"attackRecoilDuration" json:"attackRecoilDuration"`
	AttackRecovery       float64 `yaml:"attackRecovery" json:"attackRecovery"`
	RollPush             float64 `yaml:"rollPush" json:"rollPush"`
	RollDuration         float64 `yaml:"rollDuration" json:"rollDuration"`
	HurtDuration         float64 `yaml:"hurtDuration" json:"hurtDuration"`
	StompKnockback       float64 `yaml:"stompKnockback" json:"stompKnockback"`
	StompMinFallSpeed    float64 `yaml:"stompMinFallSpeed" json:"stompMinFallSpeed"`
	StompOverlap         float64 `yaml:"stompOverlap" json:"stompOverlap"`
	PushFollowGain       float64 `yaml:"pushFollowGain" json:"pushFollowGain"`
	PushDecayRate        float64 `yaml:"pushDecayRate" json:"pushDecayRate"`
	DecalsMin            int     `yaml:"decalsMin" json:"decalsMin"`
	DecalsMax            int     `yaml:"decalsMax" json:"decalsMax"`
	ThrowSpeed           float64 `yaml:"throwSpeed" json:"throwSpeed"`
	ThrowLift            float64 `yaml:"throwLift" json:"throwLift"`
	HeldOffsetY          float64 `yaml:"heldOffsetY" json:"heldOffsetY"`
}

// DefaultCombatTuning - значения оригинальной игры
func DefaultCombatTuning() CombatTuning {
	return CombatTuning{
		AttackRange:          0.8,
		AttackKnockback:      1.5,
		AttackLift:           3,
		AttackLiftSubmerged:  1,
		AttackTargetLift:     3,
		AttackPush:           0.5,
		AttackPushDuration:   0.1,
		AttackWindup:         0.05,
		AttackRecoilDuration: 0.05,
		AttackRecovery:       0.1,
		RollPush:             2.5,
		RollDuration:         0.4,
		HurtDuration:         0.5,
		StompKnockback:       1,
		StompMinFallSpeed:    1.5,
		StompOverlap:         0.75,
		PushFollowGain:       10,
		PushDecayRate:        5,
		DecalsMin:            8,
		DecalsMax:            16,
		ThrowSpeed:           1.5,
		ThrowLift:            10,
		HeldOffsetY:          1,
	}
}

// MovementTuning - константы тикового обновления
type MovementTuning struct {
	FastDropClearSpeed float64 `yaml:"fastDropClearSpeed" json:"fastDropClearSpeed"`
	InputDecay         float64 `yaml:"inputDecay" json:"inputDecay"`
	InputSurfaceDamp   float64 `yaml:"inputSurfaceDamp" json:"inputSurfaceDamp"`
	FastDropFactor     float64 `yaml:"fastDropFactor" json:"fastDropFactor"`
	KillPlaneY         float64 `yaml:"-" json:"killPlaneY"` // задается в секции sim
}

func DefaultMovementTuning() MovementTuning {
	return MovementTuning{
		FastDropClearSpeed: -18,
		InputDecay:         0.99,
		InputSurfaceDamp:   0.9,
		FastDropFactor:     0.5,
		KillPlaneY:         -1,
	}
}

// LootTuning - анимация подбора добычи
type LootTuning struct {
	PositionEase float64 `yaml:"positionEase" json:"positionEase"`
	ScaleEase    float64 `yaml:"scaleEase" json:"scaleEase"`
	Epsilon      float64 `yaml:"epsilon" json:"epsilon"`
}

func DefaultLootTuning() LootTuning {
	return LootTuning{PositionEase: 5, ScaleEase: 1, Epsilon: 0.1}
}

// AITuning - параметры монстров по умолчанию
type AITuning struct {
	VisionInterval    float64 `yaml:"visionInterval" json:"visionInterval"`
	MoveInterval      float64 `yaml:"moveInterval" json:"moveInterval"`
	AttackInterval    float64 `yaml:"attackInterval" json:"attackInterval"`
	VisionRange       float64 `yaml:"visionRange" json:"visionRange"`
	DeadZone          float64 `yaml:"deadZone" json:"deadZone"`
	EngageDistance    float64 `yaml:"engageDistance" json:"engageDistance"`
	IndicatorDuration float64 `yaml:"indicatorDuration" json:"indicatorDuration"`
}

func DefaultAITuning() AITuning {
	return AITuning{
		VisionInterval:    0.5,
		MoveInterval:      0.5,
		AttackInterval:    2,
		VisionRange:       10,
		DeadZone:          1,
		EngageDistance:    1.5,
		IndicatorDuration: 0.5,
	}
}

// Apply заполняет компонент ИИ значениями по умолчанию
func (t AITuning) Apply(ai *AIComponent) {
	ai.VisionRange = t.VisionRange
	ai.VisionInterval = t.VisionInterval
	ai.MoveInterval = t.MoveInterval
	ai.AttackInterval = t.AttackInterval
	ai.DeadZone = t.DeadZone
	ai.EngageDistance = t.EngageDistance
}
