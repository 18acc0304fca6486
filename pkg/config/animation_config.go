// Package config 提供动画运行时的 YAML 配置
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnimationConfig 动画系统的顶层配置
type AnimationConfig struct {
	Playback   PlaybackConfig   `yaml:"playback"`
	IK         IKConfig         `yaml:"ik"`
	FootIK     FootIKConfig     `yaml:"foot_ik"`
	HandIK     HandIKConfig     `yaml:"hand_ik"`
	RootMotion RootMotionConfig `yaml:"root_motion"`
}

// PlaybackConfig 剪辑播放配置
type PlaybackConfig struct {
	BlendTime  float64 `yaml:"blend_time"`  // 剪辑切换的过渡时长（秒）
	SpeedScale float64 `yaml:"speed_scale"` // 全局播放速度倍率
}

// IKConfig FABRIK 求解器配置
type IKConfig struct {
	Tolerance     float64 `yaml:"tolerance"`      // 收敛距离阈值
	MaxIterations int     `yaml:"max_iterations"` // 单次求解的最大迭代数
}

// FootIKConfig 足部贴地配置
type FootIKConfig struct {
	FootOffset     float64 `yaml:"foot_offset"`     // 足底抬离地面的高度
	HipAdjustment  float64 `yaml:"hip_adjustment"`  // 坡面上髋部下沉比例（0-1）
	SlopeThreshold float64 `yaml:"slope_threshold"` // 触发髋部调整的左右高差
	UpdateInterval int     `yaml:"update_interval"` // 每 N 帧重新计算一次
}

// HandIKConfig 手部攀爬配置
type HandIKConfig struct {
	ReachDistance  float64 `yaml:"reach_distance"`  // 手的最大可达距离
	HandOffset     float64 `yaml:"hand_offset"`     // 手掌离墙面的间隙
	UpdateInterval int     `yaml:"update_interval"` // 每 N 帧重新计算一次
}

// RootMotionConfig 根运动配置
type RootMotionConfig struct {
	Scale float64 `yaml:"scale"` // 全局位移缩放
}

// Default 返回内置默认配置
func Default() *AnimationConfig {
	return &AnimationConfig{
		Playback: PlaybackConfig{
			BlendTime:  0.2,
			SpeedScale: 1.0,
		},
		IK: IKConfig{
			Tolerance:     0.01,
			MaxIterations: 10,
		},
		FootIK: FootIKConfig{
			FootOffset:     0.1,
			HipAdjustment:  0.8,
			SlopeThreshold: 0.1,
			UpdateInterval: 2,
		},
		HandIK: HandIKConfig{
			ReachDistance:  0.8,
			HandOffset:     0.05,
			UpdateInterval: 2,
		},
		RootMotion: RootMotionConfig{
			Scale: 1.0,
		},
	}
}

// LoadAnimationConfig 从 YAML 文件加载配置
//
// 文件中缺省的字段保留默认值，非法数值会被修正到有效范围。
func LoadAnimationConfig(path string) (*AnimationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置文件 %s: %w", path, err)
	}
	cfg.sanitize()

	return cfg, nil
}

// sanitize 把越界字段拉回有效范围
func (c *AnimationConfig) sanitize() {
	if c.Playback.BlendTime < 0 {
		c.Playback.BlendTime = 0
	}
	if c.Playback.SpeedScale <= 0 {
		c.Playback.SpeedScale = 1.0
	}
	if c.IK.Tolerance <= 0 {
		c.IK.Tolerance = 0.01
	}
	if c.IK.MaxIterations < 1 {
		c.IK.MaxIterations = 1
	}
	if c.FootIK.HipAdjustment < 0 {
		c.FootIK.HipAdjustment = 0
	}
	if c.FootIK.HipAdjustment > 1 {
		c.FootIK.HipAdjustment = 1
	}
	if c.FootIK.UpdateInterval < 1 {
		c.FootIK.UpdateInterval = 1
	}
	if c.HandIK.ReachDistance < 0.1 {
		c.HandIK.ReachDistance = 0.1
	}
	if c.HandIK.UpdateInterval < 1 {
		c.HandIK.UpdateInterval = 1
	}
	if c.RootMotion.Scale < 0 {
		c.RootMotion.Scale = 0
	}
}

// Save 把配置写入 YAML 文件
func (c *AnimationConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("无法序列化配置: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("无法写入配置文件 %s: %w", path, err)
	}
	return nil
}
