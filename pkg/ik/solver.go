// Package ik 提供基于 FABRIK 算法的逆向运动学求解
//
// 用于地形自适应的脚部落点与攀爬时的手部吸附。求解结果以
// 休息姿态为基准换算回骨骼局部旋转，局部位置保持休息值不变。
package ik

import (
	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

// Target IK 目标：期望末端执行器（脚、手）到达的位置
type Target struct {
	// BoneName 末端骨骼名，如 "foot_left"、"hand_right"
	BoneName string

	// Position 目标世界坐标
	Position transform.Vec3

	// Weight 与已有姿态的混合权重（0-1）
	Weight float64

	// PoleTarget 关节朝向提示（膝盖、肘部的弯曲方向），可为 nil
	PoleTarget *transform.Vec3

	// ChainRoot 解算链的根骨骼名，为空时从骨架根开始
	ChainRoot string
}

// FABRIKSolver 前后往返式 IK 求解器
//
// 每轮迭代分两步：正向遍历把末端钉在目标上从尖端向根重新施加
// 骨长，反向遍历把根钉回原位从根向尖端恢复骨长。收敛或达到
// 迭代上限后停止。
type FABRIKSolver struct {
	// Tolerance 末端与目标的收敛距离阈值（世界单位）
	Tolerance float64

	// MaxIterations 迭代次数上限
	MaxIterations int
}

// NewSolver 创建默认参数的求解器
func NewSolver() *FABRIKSolver {
	return &FABRIKSolver{
		Tolerance:     0.01,
		MaxIterations: 10,
	}
}

// SolvePositions 对关节位置序列求解 FABRIK
//
// positions 是从根到尖端的关节位置，lengths[i] 是关节 i 到 i+1
// 段的长度。根位置在求解中保持固定。目标不可达时整条链沿直线
// 朝目标拉伸。返回求解后的位置序列（原切片被就地修改）。
func (s *FABRIKSolver) SolvePositions(positions []transform.Vec3, lengths []float64, target transform.Vec3) []transform.Vec3 {
	if len(positions) < 2 {
		return positions
	}

	root := positions[0]

	totalLength := 0.0
	for _, l := range lengths[:len(positions)-1] {
		totalLength += l
	}

	if target.Sub(root).Length() > totalLength {
		// 目标不可达：沿直线拉伸
		dir := target.Sub(root).Normalized()
		positions[0] = root
		for i := 0; i < len(positions)-1; i++ {
			positions[i+1] = positions[i].Add(dir.Scale(lengths[i]))
		}
		return positions
	}

	last := len(positions) - 1
	for iter := 0; iter < s.MaxIterations; iter++ {
		// 正向：末端钉在目标上，向根重新施加骨长
		positions[last] = target
		for i := last - 1; i >= 0; i-- {
			dir := positions[i].Sub(positions[i+1])
			if dist := dir.Length(); dist > 0 {
				positions[i] = positions[i+1].Add(dir.Scale(lengths[i] / dist))
			}
		}

		// 反向：根钉回原位，向尖端恢复骨长
		positions[0] = root
		for i := 0; i < last; i++ {
			dir := positions[i+1].Sub(positions[i])
			if dist := dir.Length(); dist > 0 {
				positions[i+1] = positions[i].Add(dir.Scale(lengths[i] / dist))
			}
		}

		if positions[last].Sub(target).Length() < s.Tolerance {
			break
		}
	}
	return positions
}

// Solve 对骨骼链求解 IK，返回各骨骼的局部变换
//
// chain 必须是根到尖端顺序的连续父子链（见 Skeleton.GetChain）。
// 链根默认钉在其当前世界位置，可通过可选的 rootPos 改钉到别处
// （例如把链挂到外部锚点上求解）。位置解算完成后换算成局部旋转：
// 链内骨骼的局部旋转是相邻段世界朝向之差，链根的局部旋转相对其
// 父骨骼当前世界朝向求出，尖端保持休息旋转。局部位置一律沿用
// 休息值。链长不足 2 时返回空。
func (s *FABRIKSolver) Solve(chain []*skeleton.Bone, target transform.Vec3, rootPos ...transform.Vec3) map[string]transform.Transform {
	if len(chain) < 2 {
		return map[string]transform.Transform{}
	}

	positions := make([]transform.Vec3, len(chain))
	lengths := make([]float64, len(chain))
	for i, bone := range chain {
		positions[i] = bone.World.Position
		lengths[i] = bone.Length
	}
	if len(rootPos) > 0 {
		positions[0] = rootPos[0]
	}

	positions = s.SolvePositions(positions, lengths, target)
	positions = s.constraintPasses(chain, positions)

	return restRelative(chain, positions)
}

// constraintPasses 约束修正
//
// 对带约束的中间关节做几轮保长度的往返修正，抑制求解把关节
// 拧出约束范围。根位置保持固定。
func (s *FABRIKSolver) constraintPasses(chain []*skeleton.Bone, positions []transform.Vec3) []transform.Vec3 {
	root := positions[0]
	last := len(positions) - 1

	for pass := 0; pass < 3; pass++ {
		for i := last - 1; i >= 1; i-- {
			if !chain[i].Constrained {
				continue
			}
			dir := positions[i+1].Sub(positions[i])
			if dist := dir.Length(); dist > 0 {
				positions[i] = positions[i+1].Sub(dir.Scale(chain[i-1].Length / dist))
			}
		}

		positions[0] = root
		for i := 0; i < last; i++ {
			dir := positions[i+1].Sub(positions[i])
			if dist := dir.Length(); dist > 0 {
				positions[i+1] = positions[i].Add(dir.Scale(chain[i].Length / dist))
			}
		}
	}
	return positions
}

// restRelative 把求解出的关节位置换算为骨骼局部变换
func restRelative(chain []*skeleton.Bone, positions []transform.Vec3) map[string]transform.Transform {
	last := len(chain) - 1

	// 各段的期望世界朝向
	worldRots := make([]transform.Vec3, last)
	for i := 0; i < last; i++ {
		worldRots[i] = transform.DirectionToRotation(positions[i+1].Sub(positions[i]))
	}

	out := make(map[string]transform.Transform, len(chain))
	for i, bone := range chain {
		local := bone.Rest
		switch {
		case i == last:
			// 尖端保持休息旋转
		case i == 0:
			// 链根相对其父骨骼当前世界朝向求局部旋转
			// （FK 按逐轴相加复合，world = parentWorld + local）
			parentRot := transform.Vec3{}
			if bone.Parent != nil {
				parentRot = bone.Parent.World.Rotation
			}
			local.Rotation = worldRots[0].Sub(parentRot)
		default:
			local.Rotation = worldRots[i].Sub(worldRots[i-1])
		}
		out[bone.Name] = local
	}
	return out
}
