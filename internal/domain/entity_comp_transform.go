package domain

// WorldScale - мировой масштаб. Дети наследуют модуль масштаба родителя, но не его зеркалирование.
func (t *TransformComponent) WorldScale() Vec2 {
	if t.Parent == nil {
		return t.Scale
	}
	return t.Parent.WorldScale().Abs().Mul(t.Scale)
}

// WorldPosition - мировая позиция. Смещение ребенка зеркалится вместе с родителем.
func (t *TransformComponent) WorldPosition() Vec2 {
	if t.Parent == nil {
		return t.Position
	}
	return t.Parent.WorldPosition().Add(t.Position.Mul(t.Parent.WorldScale()))
}

// SetParent меняет родителя, сохраняя мировые позицию и масштаб:
// local = world / |parent.world|. Родитель с нулевой компонентой масштаба недопустим.
func (t *TransformComponent) SetParent(parent *TransformComponent) error {
	worldScale := t.WorldScale()
	worldPos := t.WorldPosition()

	if parent == nil {
		t.Parent = nil
		t.Scale = worldScale
		t.Position = worldPos
		return nil
	}

	ps := parent.WorldScale()
	if ps.X == 0 || ps.Y == 0 {
		return ErrZeroScale
	}

	t.Parent = parent
	t.Scale = worldScale.Div(ps.Abs())
	t.Position = worldPos.Sub(parent.WorldPosition()).Div(ps)
	return nil
}

// SetWorldPosition двигает объект в мировых координатах независимо от родителя.
func (t *TransformComponent) SetWorldPosition(p Vec2) {
	if t.Parent == nil {
		t.Position = p
		return
	}
	ps := t.Parent.WorldScale()
	if ps.X == 0 || ps.Y == 0 {
		return
	}
	t.Position = p.Sub(t.Parent.WorldPosition()).Div(ps)
}

// Translate сдвигает объект на мировое смещение.
func (t *TransformComponent) Translate(d Vec2) {
	t.SetWorldPosition(t.WorldPosition().Add(d))
}
