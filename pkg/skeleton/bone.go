package skeleton

import "github.com/decker502/voxelrig/pkg/transform"

// Bone 骨骼树中的单根骨骼
//
// 骨骼沿局部 +Y 轴延伸 Length 个单位。Parent/Children 是非拥有引用，
// 由所属 Skeleton 维护；Local 是作者态数据，World 由 FK 计算得出，
// Rest 在构建后不再修改。
type Bone struct {
	Name   string
	Length float64

	Parent   *Bone
	Children []*Bone

	// Local 相对父骨骼的局部变换
	Local transform.Transform
	// World 世界变换，由 UpdateWorld 计算，不要手工赋值
	World transform.Transform
	// Rest 休息姿态（T-Pose），构建期写入后视为只读
	Rest transform.Transform

	// Constrained 为 true 时 Constraints 生效
	Constrained bool
	Constraints Constraints
}

func newBone(name string, length float64, parent *Bone) *Bone {
	b := &Bone{
		Name:   name,
		Length: length,
		Parent: parent,
		Local:  transform.New(),
		World:  transform.New(),
		Rest:   transform.New(),
	}
	if parent != nil {
		parent.Children = append(parent.Children, b)
		// 默认挂在父骨骼末端
		b.Local.Position = transform.Vec3{Y: parent.Length}
	}
	return b
}

// SetLocalRotation 设置局部旋转并立即向下传播 FK
//
// applyConstraints 为 true 且骨骼带约束时，先钳制到约束范围。
func (b *Bone) SetLocalRotation(h, p, r float64, applyConstraints bool) {
	if applyConstraints && b.Constrained {
		h, p, r = b.Constraints.Clamp(h, p, r)
	}
	b.Local.Rotation = transform.Vec3{X: h, Y: p, Z: r}
	b.UpdateWorld()
}

// UpdateWorld 由父骨骼链推导世界变换（FK），并递归传播到子骨骼
//
// 旋转按欧拉角逐轴相加，位置直接相加（不按父骨骼朝向旋转偏移），
// 缩放逐分量相乘。这是对完整矩阵复合的刻意简化，所有已制作的
// 姿态数据都依赖这一行为，修改它会改变全部现有动画的视觉结果。
func (b *Bone) UpdateWorld() {
	if b.Parent != nil {
		b.World.Position = b.Parent.World.Position.Add(b.Local.Position)
		b.World.Rotation = b.Parent.World.Rotation.Add(b.Local.Rotation)
		b.World.Scale = b.Parent.World.Scale.Mul(b.Local.Scale)
	} else {
		b.World = b.Local
	}

	for _, child := range b.Children {
		child.UpdateWorld()
	}
}

// EndPosition 返回骨骼末端（尖端）的世界坐标
//
// 末端 = 世界位置 + 世界朝向下的 +Y 方向 × 骨骼长度。
func (b *Bone) EndPosition() transform.Vec3 {
	dir := transform.DirectionHP(b.World.Rotation.X, b.World.Rotation.Y)
	return b.World.Position.Add(dir.Scale(b.Length))
}
