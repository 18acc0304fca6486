// Package rootmotion 提供动画驱动的角色位移
//
// 根运动曲线描述动画播放期间角色应产生的位移（例如攻击时的前冲），
// 使动画与移动保持同步，消除"滑步"现象。
package rootmotion

import (
	"sort"

	"github.com/decker502/voxelrig/pkg/transform"
)

// Sample 是曲线上的一个位移采样点
type Sample struct {
	Time  float64        // 动画内时间（秒）
	Delta transform.Vec3 // 相对上一个采样点的位移增量
}

// Curve 是按时间排序的位移采样序列
//
// 曲线不做插值：GetDelta 只做阶梯式累加，
// 把落在时间窗口内的采样增量全部求和。
type Curve struct {
	samples []Sample
}

// NewCurve 创建空曲线
func NewCurve() *Curve {
	return &Curve{}
}

// AddSample 添加一个采样点并保持时间升序
func (c *Curve) AddSample(time float64, delta transform.Vec3) {
	c.samples = append(c.samples, Sample{Time: time, Delta: delta})
	sort.SliceStable(c.samples, func(i, j int) bool {
		return c.samples[i].Time < c.samples[j].Time
	})
}

// Samples 返回采样点副本
func (c *Curve) Samples() []Sample {
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

// GetDelta 返回 [t0, t1] 区间内（含边界）所有采样增量之和
func (c *Curve) GetDelta(t0, t1 float64) transform.Vec3 {
	var total transform.Vec3
	for _, s := range c.samples {
		if s.Time < t0 {
			continue
		}
		if s.Time > t1 {
			break
		}
		total = total.Add(s.Delta)
	}
	return total
}

// VelocityAt 返回指定时刻的瞬时速度（单位/秒）
//
// 取包围该时刻的相邻采样对，用后一个采样的增量除以时间间隔。
// 采样不足两个时返回零向量。
func (c *Curve) VelocityAt(t float64) transform.Vec3 {
	if len(c.samples) < 2 {
		return transform.Vec3{}
	}

	prev := c.samples[0]
	next := c.samples[len(c.samples)-1]
	for i := 0; i < len(c.samples)-1; i++ {
		if c.samples[i].Time <= t && t <= c.samples[i+1].Time {
			prev = c.samples[i]
			next = c.samples[i+1]
			break
		}
	}

	span := next.Time - prev.Time
	if span <= 0 {
		return transform.Vec3{}
	}
	return next.Delta.Scale(1 / span)
}

// Linear 创建匀速位移曲线
//
// total 是整段动画的总位移，均匀分摊到 samples 个采样点上。
func Linear(total transform.Vec3, duration float64, samples int) *Curve {
	if samples < 1 {
		samples = 1
	}

	curve := NewCurve()
	delta := total.Scale(1 / float64(samples))
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples) * duration
		curve.AddSample(t, delta)
	}
	return curve
}

// EaseInOut 创建缓入缓出位移曲线
//
// 使用 smoothstep 分配各段增量：起步慢，中段快，收尾慢。
func EaseInOut(total transform.Vec3, duration float64, samples int) *Curve {
	if samples < 1 {
		samples = 1
	}

	curve := NewCurve()
	prev := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		eased := transform.Smoothstep(t)
		curve.AddSample(t*duration, total.Scale(eased-prev))
		prev = eased
	}
	return curve
}

// AttackLunge 创建攻击前冲曲线
//
// 半余弦包络：蓄力慢、出招快、收招慢。位移沿 +Y（前方），
// 固定 15 个采样点。
func AttackLunge(forward, duration float64) *Curve {
	const samples = 15

	curve := NewCurve()
	prev := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		progress := transform.HalfCosine(t)
		delta := transform.Vec3{Y: forward * (progress - prev)}
		curve.AddSample(t*duration, delta)
		prev = progress
	}
	return curve
}
