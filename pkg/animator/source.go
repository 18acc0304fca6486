package animator

import (
	"github.com/decker502/voxelrig/pkg/clip"
	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

// poseDriver 关键帧源可包装的剪辑驱动（clip.Player、CombatAnimator）
type poseDriver interface {
	Update(dt float64)
	Pose() map[string]transform.Transform
	CurrentClip() *clip.Clip
	Playing() bool
}

// KeyframeSource 把剪辑播放器适配为动画层的动画源
//
// 每帧推进播放器并取其当前姿态；播放器空闲时返回空映射，
// 让更低优先级的层接管。
type KeyframeSource struct {
	driver poseDriver
}

// NewKeyframeSource 包装剪辑驱动
func NewKeyframeSource(d poseDriver) *KeyframeSource {
	return &KeyframeSource{driver: d}
}

// Update 实现 Source
func (s *KeyframeSource) Update(dt float64, _ *skeleton.Skeleton) map[string]transform.Transform {
	s.driver.Update(dt)
	if s.driver.CurrentClip() == nil || !s.driver.Playing() {
		return map[string]transform.Transform{}
	}
	return s.driver.Pose()
}
