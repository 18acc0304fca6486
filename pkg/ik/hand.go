package ik

import (
	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

// HandController 攀爬时的手部吸附 IK 控制器
//
// 从胸口两侧沿面朝方向发射射线找到可攀爬表面，生成把手贴在
// 墙面上的 IK 目标。默认禁用，只在攀爬状态下工作。
type HandController struct {
	// Raycast 表面检测回调
	Raycast RaycastFunc

	// ReachDistance 手能够到的最大距离
	ReachDistance float64

	// HandOffset 手与表面的间距（手掌厚度补偿）
	HandOffset float64

	// UpdateInterval 每几帧重算一次目标
	UpdateInterval int

	enabled      bool
	handBones    []string
	frameCounter int
	lastTargets  map[string]Target
}

// NewHandController 创建手部 IK 控制器，默认禁用
func NewHandController(raycast RaycastFunc) *HandController {
	return &HandController{
		Raycast:        raycast,
		ReachDistance:  0.8,
		HandOffset:     0.05,
		UpdateInterval: 2,
		handBones:      []string{"hand_left", "hand_right"},
		lastTargets:    map[string]Target{},
	}
}

// SetEnabled 启用或禁用手部 IK，禁用时清空缓存目标
func (hc *HandController) SetEnabled(enabled bool) {
	hc.enabled = enabled
	if !enabled {
		hc.lastTargets = map[string]Target{}
		hc.frameCounter = 0
	}
}

// Enabled 返回是否启用
func (hc *HandController) Enabled() bool { return hc.enabled }

// SetReachDistance 设置最大可及距离，下限 0.1
func (hc *HandController) SetReachDistance(distance float64) {
	if distance < 0.1 {
		distance = 0.1
	}
	hc.ReachDistance = distance
}

// Update 根据附近表面更新手部 IK 目标
//
// forward 是角色面朝方向。未启用或不在攀爬状态时返回空目标集。
// 每 UpdateInterval 帧重算一次，中间帧返回缓存结果。
func (hc *HandController) Update(skel *skeleton.Skeleton, worldPos, forward transform.Vec3, climbing bool) map[string]Target {
	if !hc.enabled || !climbing {
		return map[string]Target{}
	}

	hc.frameCounter++
	if hc.UpdateInterval > 1 && hc.frameCounter%hc.UpdateInterval != 1 {
		return hc.lastTargets
	}

	targets := hc.computeTargets(skel, worldPos, forward)
	hc.lastTargets = targets
	return targets
}

func (hc *HandController) computeTargets(skel *skeleton.Skeleton, worldPos, forward transform.Vec3) map[string]Target {
	targets := map[string]Target{}

	// 以胸口为射线起点（约肩高）
	chest, ok := skel.GetBone("chest")
	if !ok {
		return targets
	}
	chestWorld := worldPos.Add(chest.World.Position)

	// 面朝方向在地平面上的右手向量
	right := transform.Vec3{X: -forward.Y, Y: forward.X}.Normalized()

	for _, handName := range hc.handBones {
		if _, ok := skel.GetBone(handName); !ok {
			continue
		}

		lateral := 0.25 // 肩宽
		if handName == "hand_left" {
			lateral = -0.25
		}
		origin := chestWorld.Add(right.Scale(lateral))

		hit, ok := hc.Raycast(origin, forward)
		if !ok {
			continue
		}
		if hit.Sub(origin).Length() > hc.ReachDistance {
			continue
		}

		// 从表面略微收回，避免手掌穿墙
		targets[handName] = Target{
			BoneName: handName,
			Position: hit.Sub(forward.Scale(hc.HandOffset)),
			Weight:   1.0,
		}
	}
	return targets
}
