package ik

import (
	"sort"

	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

// Layer 作为动画层使用的 IK 解算器
//
// 管理一组 IK 目标并解算出骨骼局部变换，通常挂在分层动画器的
// 最高优先级上，覆盖关键帧动画的结果。
type Layer struct {
	solver  *FABRIKSolver
	targets map[string]Target
}

// NewLayer 创建 IK 层，solver 为 nil 时使用默认求解器
func NewLayer(solver *FABRIKSolver) *Layer {
	if solver == nil {
		solver = NewSolver()
	}
	return &Layer{
		solver:  solver,
		targets: map[string]Target{},
	}
}

// SetTarget 设置（或替换）一个 IK 目标，按末端骨骼名索引
func (l *Layer) SetTarget(t Target) {
	if t.Weight == 0 {
		t.Weight = 1.0
	}
	l.targets[t.BoneName] = t
}

// SetTargetOpts 设置目标，显式指定位置、权重与链根
func (l *Layer) SetTargetOpts(boneName string, position transform.Vec3, weight float64, chainRoot string) {
	l.targets[boneName] = Target{
		BoneName:  boneName,
		Position:  position,
		Weight:    weight,
		ChainRoot: chainRoot,
	}
}

// SetTargets 整批替换目标集（脚部/手部控制器的输出直接喂进来）
func (l *Layer) SetTargets(targets map[string]Target) {
	l.targets = targets
}

// ClearTarget 移除指定末端骨骼的目标
func (l *Layer) ClearTarget(boneName string) {
	delete(l.targets, boneName)
}

// ClearAllTargets 移除全部目标
func (l *Layer) ClearAllTargets() {
	l.targets = map[string]Target{}
}

// Targets 返回当前目标集（调用方只读）
func (l *Layer) Targets() map[string]Target {
	return l.targets
}

// Update 解算全部目标并返回骨骼局部变换
//
// 目标按骨骼名排序后依次解算，两条链共享骨骼时混合结果才稳定。
// ChainRoot 为空时从骨架根开始。链不存在、长度不足的目标静默
// 跳过（运行时软失败，目标可能指向尚未加载的骨骼）。权重小于 1
// 的目标与先前目标已写入的同名骨骼线性混合。
func (l *Layer) Update(dt float64, skel *skeleton.Skeleton) map[string]transform.Transform {
	out := map[string]transform.Transform{}

	names := make([]string, 0, len(l.targets))
	for name := range l.targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target := l.targets[name]
		if target.Weight <= 0 {
			continue
		}

		chainRoot := target.ChainRoot
		if chainRoot == "" {
			chainRoot = skel.Root.Name
		}
		chain, err := skel.GetChain(chainRoot, target.BoneName)
		if err != nil || len(chain) < 2 {
			continue
		}

		solved := l.solver.Solve(chain, target.Position)
		for boneName, tr := range solved {
			if target.Weight < 1.0 {
				if existing, ok := out[boneName]; ok {
					tr = existing.Lerp(tr, target.Weight)
				}
			}
			out[boneName] = tr
		}
	}
	return out
}
