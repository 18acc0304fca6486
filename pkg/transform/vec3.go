// Package transform 提供动画系统的基础数学类型
//
// 包含三维向量、变换（位置/旋转/缩放）以及插值和缓动函数。
// 旋转统一使用欧拉角三元组（heading/pitch/roll，单位为度），
// 与原始骨骼数据保持一致，不引入四元数。
package transform

import "math"

// Vec3 三维向量
type Vec3 struct {
	X, Y, Z float64
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 标量乘法
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul 分量乘法
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized 返回单位向量
//
// 零向量是合法输入：此时返回 (0, 1, 0)（局部 +Y，即骨骼默认朝向），
// 避免除零。
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{0, 1, 0}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Lerp 向量线性插值，t=0 返回 v，t=1 返回 o
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}
