// Package clip 提供关键帧动画剪辑的定义、采样与播放
//
// 剪辑以稀疏关键帧描述骨骼局部变换随时间的变化，采样时在相邻
// 关键帧之间线性插值。循环剪辑时间取模回绕，非循环剪辑末尾钳制。
package clip

import (
	"math"
	"sort"

	"github.com/decker502/voxelrig/pkg/transform"
)

// Keyframe 单个关键帧：时间点与该帧摆放的骨骼局部变换
//
// 不在本帧 Transforms 中的骨骼不受本帧影响。
type Keyframe struct {
	Time       float64
	Transforms map[string]transform.Transform
}

// Event 剪辑时间轴上的命名事件（脚步声、命中判定等）
type Event struct {
	Time float64
	Name string
	Data map[string]any
}

// Clip 一段关键帧动画
type Clip struct {
	Name     string
	Duration float64
	Looping  bool

	// Keyframes 按时间升序维护，AddKeyframe 负责保序
	Keyframes []Keyframe
	Events    []Event

	// Combat 战斗剪辑的攻击元数据，普通剪辑为 nil
	Combat *CombatMetadata
}

// New 创建空剪辑
func New(name string, duration float64, looping bool) *Clip {
	return &Clip{
		Name:     name,
		Duration: duration,
		Looping:  looping,
	}
}

// AddKeyframe 插入关键帧并保持时间升序
func (c *Clip) AddKeyframe(time float64, transforms map[string]transform.Transform) {
	c.Keyframes = append(c.Keyframes, Keyframe{Time: time, Transforms: transforms})
	sort.SliceStable(c.Keyframes, func(i, j int) bool {
		return c.Keyframes[i].Time < c.Keyframes[j].Time
	})
}

// AddEvent 插入时间轴事件并保持时间升序
func (c *Clip) AddEvent(time float64, name string, data map[string]any) {
	c.Events = append(c.Events, Event{Time: time, Name: name, Data: data})
	sort.SliceStable(c.Events, func(i, j int) bool {
		return c.Events[i].Time < c.Events[j].Time
	})
}

// wrapTime 把任意时间折算到剪辑有效区间内
//
// 循环剪辑取模回绕（负数也折回正区间），非循环剪辑钳制到
// [0, Duration]。
func (c *Clip) wrapTime(t float64) float64 {
	if c.Looping {
		t = math.Mod(t, c.Duration)
		if t < 0 {
			t += c.Duration
		}
		return t
	}
	if t < 0 {
		return 0
	}
	if t > c.Duration {
		return c.Duration
	}
	return t
}

// GetPose 采样剪辑在指定时间的姿态
//
// 返回骨骼名到局部变换的映射。找到包围时间点的一对关键帧后逐
// 骨骼插值：骨骼只出现在其中一帧时原样取该帧的值。循环剪辑中
// 时间落在最后一帧与第一帧之间时跨过回绕段插值。
func (c *Clip) GetPose(t float64) map[string]transform.Transform {
	pose := map[string]transform.Transform{}
	if len(c.Keyframes) == 0 {
		return pose
	}
	if len(c.Keyframes) == 1 {
		for name, tr := range c.Keyframes[0].Transforms {
			pose[name] = tr
		}
		return pose
	}

	t = c.wrapTime(t)

	first := c.Keyframes[0]
	last := c.Keyframes[len(c.Keyframes)-1]

	var prev, next Keyframe
	var alpha float64

	switch {
	case t < first.Time:
		if !c.Looping {
			// 非循环剪辑首帧之前直接保持首帧
			for name, tr := range first.Transforms {
				pose[name] = tr
			}
			return pose
		}
		// 回绕段的后半：上一帧在剪辑末尾
		prev, next = last, first
		elapsed := c.Duration - prev.Time + t
		alpha = wrapAlpha(elapsed, c.Duration-prev.Time+next.Time)
	case t >= last.Time:
		if !c.Looping {
			for name, tr := range last.Transforms {
				pose[name] = tr
			}
			return pose
		}
		prev, next = last, first
		elapsed := t - prev.Time
		alpha = wrapAlpha(elapsed, c.Duration-prev.Time+next.Time)
	default:
		// 二分查找最后一个 Time <= t 的关键帧
		idx := sort.Search(len(c.Keyframes), func(i int) bool {
			return c.Keyframes[i].Time > t
		})
		prev, next = c.Keyframes[idx-1], c.Keyframes[idx]
		span := next.Time - prev.Time
		if span <= 0 {
			// 同刻关键帧：原样返回在前的一帧
			for name, tr := range prev.Transforms {
				pose[name] = tr
			}
			return pose
		}
		alpha = (t - prev.Time) / span
	}

	for name, prevTr := range prev.Transforms {
		if nextTr, ok := next.Transforms[name]; ok {
			pose[name] = prevTr.Lerp(nextTr, alpha)
		} else {
			pose[name] = prevTr
		}
	}
	for name, nextTr := range next.Transforms {
		if _, ok := prev.Transforms[name]; !ok {
			pose[name] = nextTr
		}
	}
	return pose
}

// wrapAlpha 回绕段的插值参数，跨度为零时退化为 0
func wrapAlpha(elapsed, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return elapsed / span
}
