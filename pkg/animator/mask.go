// Package animator 提供多动画源的分层合成
//
// 把程序化步态、关键帧战斗动画、IK 修正等多个动画源按优先级、
// 权重与骨骼遮罩合成为最终姿态，再一次性写回骨架。
package animator

// BoneMask 限定动画层影响哪些骨骼
//
// 遮罩让层只作用于特定身体部位，例如上半身播攻击动画的同时
// 下半身继续走路。骨骼集为 nil 时表示全身。
type BoneMask struct {
	bones map[string]bool
}

// NewBoneMask 用给定骨骼名集合创建遮罩
func NewBoneMask(boneNames ...string) *BoneMask {
	bones := make(map[string]bool, len(boneNames))
	for _, name := range boneNames {
		bones[name] = true
	}
	return &BoneMask{bones: bones}
}

// FullBody 全身遮罩
func FullBody() *BoneMask {
	return &BoneMask{}
}

// UpperBody 胸部及以上（含双臂与头）
func UpperBody() *BoneMask {
	return NewBoneMask(
		"chest", "head",
		"shoulder_left", "upper_arm_left", "forearm_left", "hand_left",
		"shoulder_right", "upper_arm_right", "forearm_right", "hand_right",
	)
}

// LowerBody 骨盆及以下（含脊柱与双腿）
func LowerBody() *BoneMask {
	return NewBoneMask(
		"hips", "spine",
		"thigh_left", "shin_left", "foot_left",
		"thigh_right", "shin_right", "foot_right",
	)
}

// Arms 双臂
func Arms() *BoneMask {
	return NewBoneMask(
		"shoulder_left", "upper_arm_left", "forearm_left", "hand_left",
		"shoulder_right", "upper_arm_right", "forearm_right", "hand_right",
	)
}

// Legs 双腿
func Legs() *BoneMask {
	return NewBoneMask(
		"thigh_left", "shin_left", "foot_left",
		"thigh_right", "shin_right", "foot_right",
	)
}

// AffectsBone 判断遮罩是否作用于指定骨骼
//
// nil 遮罩或未限定骨骼集时按全身处理。
func (m *BoneMask) AffectsBone(boneName string) bool {
	if m == nil || m.bones == nil {
		return true
	}
	return m.bones[boneName]
}
