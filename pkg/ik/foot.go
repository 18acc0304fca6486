package ik

import (
	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

// RaycastFunc 宿主提供的射线检测回调
//
// 从 origin 沿 dir 发射射线，命中时返回命中点与 true。
type RaycastFunc func(origin, dir transform.Vec3) (transform.Vec3, bool)

// FootController 地形自适应的脚部 IK 控制器
//
// 从双脚位置向下发射射线找到地面，生成把脚踩在地形上的 IK
// 目标；站在坡面上时额外下沉骨盆保持自然站姿。
type FootController struct {
	// Raycast 地面检测回调
	Raycast RaycastFunc

	// HipAdjustment 坡面上骨盆下沉系数（0-1）
	HipAdjustment float64

	// FootOffset 脚底离地高度（脚掌厚度补偿）
	FootOffset float64

	// SlopeThreshold 双脚高差超过该值才触发骨盆下沉
	SlopeThreshold float64

	// UpdateInterval 每几帧重算一次目标（2 即 60FPS 下 30Hz）
	UpdateInterval int

	enabled      bool
	footBones    []string
	frameCounter int
	lastTargets  map[string]Target
}

// NewFootController 创建脚部 IK 控制器，默认启用
func NewFootController(raycast RaycastFunc) *FootController {
	return &FootController{
		Raycast:        raycast,
		HipAdjustment:  0.8,
		FootOffset:     0.1,
		SlopeThreshold: 0.1,
		UpdateInterval: 2,
		enabled:        true,
		footBones:      []string{"foot_left", "foot_right"},
		lastTargets:    map[string]Target{},
	}
}

// SetEnabled 启用或禁用脚部 IK
func (fc *FootController) SetEnabled(enabled bool) {
	fc.enabled = enabled
	if !enabled {
		fc.lastTargets = map[string]Target{}
		fc.frameCounter = 0
	}
}

// Enabled 返回是否启用
func (fc *FootController) Enabled() bool { return fc.enabled }

// SetHipAdjustment 设置骨盆下沉系数，钳制到 [0, 1]
func (fc *FootController) SetHipAdjustment(adjustment float64) {
	if adjustment < 0 {
		adjustment = 0
	}
	if adjustment > 1 {
		adjustment = 1
	}
	fc.HipAdjustment = adjustment
}

// Update 根据地形更新脚部 IK 目标
//
// worldPos 是角色的世界位置（骨骼世界变换相对角色原点）。禁用
// 或离地时返回空目标集。每 UpdateInterval 帧重算一次，中间帧
// 返回缓存结果。
func (fc *FootController) Update(skel *skeleton.Skeleton, worldPos transform.Vec3, grounded bool) map[string]Target {
	if !fc.enabled || !grounded {
		return map[string]Target{}
	}

	fc.frameCounter++
	if fc.UpdateInterval > 1 && fc.frameCounter%fc.UpdateInterval != 1 {
		return fc.lastTargets
	}

	targets := fc.computeTargets(skel, worldPos)
	fc.lastTargets = targets
	return targets
}

func (fc *FootController) computeTargets(skel *skeleton.Skeleton, worldPos transform.Vec3) map[string]Target {
	targets := map[string]Target{}
	var groundHeights []float64

	for _, footName := range fc.footBones {
		foot, ok := skel.GetBone(footName)
		if !ok {
			continue
		}
		footWorld := worldPos.Add(foot.World.Position)

		// 从脚上方向下找地面
		origin := transform.Vec3{X: footWorld.X, Y: footWorld.Y, Z: footWorld.Z + 2.0}
		hit, ok := fc.Raycast(origin, transform.Vec3{Z: -1})
		if !ok {
			continue
		}

		targets[footName] = Target{
			BoneName: footName,
			Position: transform.Vec3{X: footWorld.X, Y: footWorld.Y, Z: hit.Z + fc.FootOffset},
			Weight:   1.0,
		}
		groundHeights = append(groundHeights, hit.Z)
	}

	// 坡面站姿：双脚高差明显时部分权重下沉骨盆
	if len(groundHeights) >= 2 && fc.HipAdjustment > 0 {
		minH, maxH := groundHeights[0], groundHeights[0]
		for _, h := range groundHeights[1:] {
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
		}
		diff := maxH - minH
		if diff > fc.SlopeThreshold {
			if hips, ok := skel.GetBone("hips"); ok {
				pos := hips.World.Position
				pos.Z -= diff * fc.HipAdjustment
				targets["hips"] = Target{
					BoneName: "hips",
					Position: pos,
					Weight:   0.5,
				}
			}
		}
	}
	return targets
}
