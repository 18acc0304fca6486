package transform

import "math"

// Transform 三维变换（位置 + 欧拉旋转 + 缩放）
//
// 值类型：在骨骼之间传递时总是复制，从不共享引用。
// Rotation 的三个分量依次为 heading（绕竖直轴）、pitch（绕横轴）、
// roll（绕骨骼自身 +Y 轴），单位为度。
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// New 返回单位变换（位置零、旋转零、缩放 1）
func New() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Lerp 变换的分量线性插值
//
// 位置、旋转、缩放各自独立插值。t=0 返回自身，t=1 返回 other。
// 旋转按欧拉角分量插值，不做最短弧处理，与关键帧数据的
// 制作约定一致。
func (t Transform) Lerp(other Transform, v float64) Transform {
	return Transform{
		Position: t.Position.Lerp(other.Position, v),
		Rotation: t.Rotation.Lerp(other.Rotation, v),
		Scale:    t.Scale.Lerp(other.Scale, v),
	}
}

// DirectionHP 返回局部 +Y 轴在给定 heading/pitch（度）下的世界方向
//
// roll 绕骨骼自身轴旋转，不改变骨骼朝向，因此不参与计算。
func DirectionHP(headingDeg, pitchDeg float64) Vec3 {
	h := headingDeg * math.Pi / 180
	p := pitchDeg * math.Pi / 180
	return Vec3{
		X: math.Sin(h) * math.Cos(p),
		Y: math.Cos(h) * math.Cos(p),
		Z: -math.Sin(p),
	}
}

// DirectionToRotation 将方向向量转换为欧拉旋转（DirectionHP 的逆运算）
//
// 返回 (heading, pitch, 0)。零向量返回零旋转（见数值边界约定）。
func DirectionToRotation(dir Vec3) Vec3 {
	if dir.Length() == 0 {
		return Vec3{}
	}
	heading := math.Atan2(dir.X, dir.Y) * 180 / math.Pi
	horizontal := math.Sqrt(dir.X*dir.X + dir.Y*dir.Y)
	pitch := math.Atan2(-dir.Z, horizontal) * 180 / math.Pi
	return Vec3{heading, pitch, 0}
}
