package clip

import (
	"github.com/decker502/voxelrig/pkg/config"
)

// NewPlayerFromConfig 按配置创建播放器
//
// BlendTime 取自 Playback.BlendTime，播放速率取自 Playback.SpeedScale。
func NewPlayerFromConfig(registry *Registry, cfg config.PlaybackConfig) *Player {
	p := NewPlayer(registry)
	if cfg.BlendTime >= 0 {
		p.BlendTime = cfg.BlendTime
	}
	if cfg.SpeedScale > 0 {
		p.SetSpeed(cfg.SpeedScale)
	}
	return p
}
