package domain

// CollisionFlags - результат одного перемещения через интегратор.
type CollisionFlags struct {
	Above bool `json:"above"`
	Below bool `json:"below"`
	Left  bool `json:"left"`
	Right bool `json:"right"`

	// Target - сущность, в которую уперлось движение (слабая ссылка)
	Target *Entity `json:"-"`
}

// Controller - интегратор движения: превращает желаемое смещение в фактическое
// и сообщает, с какими сторонами было касание. fastDrop разрешает проход вниз
// сквозь односторонние платформы.
type Controller interface {
	Move(displacement Vec2, fastDrop bool) CollisionFlags
}

// RayHit - попадание луча. Entity == nil означает статическую геометрию.
type RayHit struct {
	Entity   *Entity
	Point    Vec2
	Distance float64
}

// Raycaster - запросы лучей к миру.
type Raycaster interface {
	Raycast(origin, dir Vec2, distance float64, mask Layer, ignore *Entity) (RayHit, bool)
}
