// Package skeleton 提供分层骨骼结构与前向运动学（FK）
//
// 骨骼树由 Skeleton 独占持有，Bone 之间的父子引用只是索引关系，
// 不构成第二条所有权路径。所有旋转使用欧拉角（度）。
package skeleton

// Constraints 骨骼的旋转约束
//
// 为每个欧拉轴定义最小/最大角度（度），防止关节弯出生理范围
// （例如肘关节、膝关节只能朝一个方向弯曲）。
type Constraints struct {
	MinH, MaxH float64 // heading 范围
	MinP, MaxP float64 // pitch 范围
	MinR, MaxR float64 // roll 范围
}

// DefaultConstraints 返回不限制任何轴的约束（±180 度）
func DefaultConstraints() Constraints {
	return Constraints{
		MinH: -180, MaxH: 180,
		MinP: -180, MaxP: 180,
		MinR: -180, MaxR: 180,
	}
}

// Clamp 将欧拉角钳制到约束范围内
func (c Constraints) Clamp(h, p, r float64) (float64, float64, float64) {
	return clamp(h, c.MinH, c.MaxH), clamp(p, c.MinP, c.MaxP), clamp(r, c.MinR, c.MaxR)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
