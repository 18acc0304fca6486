package transform

import (
	"math"
	"testing"
)

const eps = 0.001

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

// TestTransformLerp_Endpoints 测试变换插值的端点性质
// Lerp(a, b, 0) == a，Lerp(a, b, 1) == b（逐分量）
func TestTransformLerp_Endpoints(t *testing.T) {
	a := Transform{
		Position: Vec3{1, 2, 3},
		Rotation: Vec3{10, -20, 30},
		Scale:    Vec3{1, 1, 1},
	}
	b := Transform{
		Position: Vec3{-4, 5, 6},
		Rotation: Vec3{90, 45, -15},
		Scale:    Vec3{2, 2, 2},
	}

	at0 := a.Lerp(b, 0)
	if !vecNear(at0.Position, a.Position) || !vecNear(at0.Rotation, a.Rotation) || !vecNear(at0.Scale, a.Scale) {
		t.Errorf("Lerp(a, b, 0) = %+v, 期望 %+v", at0, a)
	}

	at1 := a.Lerp(b, 1)
	if !vecNear(at1.Position, b.Position) || !vecNear(at1.Rotation, b.Rotation) || !vecNear(at1.Scale, b.Scale) {
		t.Errorf("Lerp(a, b, 1) = %+v, 期望 %+v", at1, b)
	}
}

// TestTransformLerp_Midpoint 测试中点插值
func TestTransformLerp_Midpoint(t *testing.T) {
	a := Transform{Position: Vec3{0, 0, 0}, Scale: Vec3{1, 1, 1}}
	b := Transform{Position: Vec3{10, 0, 0}, Rotation: Vec3{90, 0, 0}, Scale: Vec3{3, 3, 3}}

	mid := a.Lerp(b, 0.5)
	if !vecNear(mid.Position, Vec3{5, 0, 0}) {
		t.Errorf("中点位置 = %+v, 期望 (5,0,0)", mid.Position)
	}
	if !vecNear(mid.Rotation, Vec3{45, 0, 0}) {
		t.Errorf("中点旋转 = %+v, 期望 (45,0,0)", mid.Rotation)
	}
	if !vecNear(mid.Scale, Vec3{2, 2, 2}) {
		t.Errorf("中点缩放 = %+v, 期望 (2,2,2)", mid.Scale)
	}
}

// TestNew_Identity 测试单位变换的默认值
func TestNew_Identity(t *testing.T) {
	id := New()
	if !vecNear(id.Position, Vec3{}) || !vecNear(id.Rotation, Vec3{}) {
		t.Errorf("单位变换的位置/旋转应为零，得到 %+v", id)
	}
	if !vecNear(id.Scale, Vec3{1, 1, 1}) {
		t.Errorf("单位变换的缩放应为 (1,1,1)，得到 %+v", id.Scale)
	}
}

// TestNormalized_ZeroVector 测试零向量归一化的安全默认值
func TestNormalized_ZeroVector(t *testing.T) {
	n := (Vec3{}).Normalized()
	if !vecNear(n, Vec3{0, 1, 0}) {
		t.Errorf("零向量归一化 = %+v, 期望 (0,1,0)", n)
	}
}

// TestDirectionHP 测试欧拉角到方向向量的转换
func TestDirectionHP(t *testing.T) {
	tests := []struct {
		name     string
		h, p     float64
		expected Vec3
	}{
		{"零旋转指向 +Y", 0, 0, Vec3{0, 1, 0}},
		{"heading 90 指向 +X", 90, 0, Vec3{1, 0, 0}},
		{"heading -90 指向 -X", -90, 0, Vec3{-1, 0, 0}},
		{"pitch 90 指向 -Z", 0, 90, Vec3{0, 0, -1}},
		{"pitch -90 指向 +Z", 0, -90, Vec3{0, 0, 1}},
		{"heading 180 指向 -Y", 180, 0, Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DirectionHP(tt.h, tt.p)
			if !vecNear(got, tt.expected) {
				t.Errorf("DirectionHP(%v, %v) = %+v, 期望 %+v", tt.h, tt.p, got, tt.expected)
			}
		})
	}
}

// TestDirectionToRotation_Roundtrip 测试方向与旋转的往返一致性
func TestDirectionToRotation_Roundtrip(t *testing.T) {
	dirs := []Vec3{
		{0, 1, 0},
		{1, 0, 0},
		{0.5, 0.5, 0.707},
		{-0.3, 0.9, -0.2},
	}
	for _, d := range dirs {
		rot := DirectionToRotation(d)
		back := DirectionHP(rot.X, rot.Y)
		if !vecNear(back, d.Normalized()) {
			t.Errorf("往返失败: %+v -> %+v -> %+v", d, rot, back)
		}
	}

	// 零向量返回零旋转
	if !vecNear(DirectionToRotation(Vec3{}), Vec3{}) {
		t.Errorf("零向量应返回零旋转")
	}
}

// TestSmoothstep 测试平滑阶梯缓动
func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.5}, // 0.25 * (3 - 1) = 0.5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(tt.input); math.Abs(got-tt.expected) > eps {
				t.Errorf("Smoothstep(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestHalfCosine 测试半余弦缓动
func TestHalfCosine(t *testing.T) {
	if got := HalfCosine(0); math.Abs(got) > eps {
		t.Errorf("HalfCosine(0) = %v, 期望 0", got)
	}
	if got := HalfCosine(1); math.Abs(got-1) > eps {
		t.Errorf("HalfCosine(1) = %v, 期望 1", got)
	}
	if got := HalfCosine(0.5); math.Abs(got-0.5) > eps {
		t.Errorf("HalfCosine(0.5) = %v, 期望 0.5", got)
	}
}
