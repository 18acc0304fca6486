package rootmotion

import (
	"math"

	"github.com/decker502/voxelrig/pkg/clip"
	"github.com/decker502/voxelrig/pkg/config"
	"github.com/decker502/voxelrig/pkg/transform"
)

// Clip 是携带根运动曲线的动画剪辑
type Clip struct {
	*clip.Clip
	Motion *Curve
}

// RootDelta 返回 [t0, t1] 区间内的根运动位移
func (c *Clip) RootDelta(t0, t1 float64) transform.Vec3 {
	if c.Motion == nil {
		return transform.Vec3{}
	}
	return c.Motion.GetDelta(t0, t1)
}

// Applicator 把剪辑中的根运动施加到角色位置上
//
// 每个剪辑指针独立记录上次采样时间，多个角色播放同一剪辑
// 实例时互不干扰。
type Applicator struct {
	enabled  bool
	scale    float64
	lastTime map[*Clip]float64
}

// NewApplicator 创建根运动施加器，默认启用、缩放 1.0
func NewApplicator() *Applicator {
	return &Applicator{
		enabled:  true,
		scale:    1.0,
		lastTime: make(map[*Clip]float64),
	}
}

// Apply 提取 [上次时间, currentTime] 的根运动并加到 position 上
//
// 局部位移先按 scale 缩放，再按 headingDeg 绕竖直轴旋转到世界平面
// （Y 为前方，X 为右方，Z 不变），返回施加的世界位移。
// 禁用或剪辑无曲线时返回零向量且不更新时间记录。
func (a *Applicator) Apply(c *Clip, currentTime, dt float64, position *transform.Vec3, headingDeg float64) transform.Vec3 {
	if !a.enabled || c == nil || c.Motion == nil {
		return transform.Vec3{}
	}

	last, ok := a.lastTime[c]
	if !ok {
		last = currentTime - dt
	}

	local := c.RootDelta(last, currentTime).Scale(a.scale)

	rad := headingDeg * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	world := transform.Vec3{
		X: local.X*cos - local.Y*sin,
		Y: local.X*sin + local.Y*cos,
		Z: local.Z,
	}

	if position != nil {
		*position = position.Add(world)
	}
	a.lastTime[c] = currentTime

	return world
}

// ResetClip 清除剪辑的时间记录，剪辑开始或停止播放时调用
func (a *Applicator) ResetClip(c *Clip) {
	delete(a.lastTime, c)
}

// SetEnabled 启用或禁用根运动
func (a *Applicator) SetEnabled(enabled bool) {
	a.enabled = enabled
}

// Enabled 返回是否启用
func (a *Applicator) Enabled() bool {
	return a.enabled
}

// SetScale 设置全局缩放系数，负值截断为 0
func (a *Applicator) SetScale(scale float64) {
	a.scale = math.Max(0, scale)
}

// Scale 返回当前缩放系数
func (a *Applicator) Scale() float64 {
	return a.scale
}

// AttachLunge 给普通剪辑附加一条标准根运动曲线
//
// kind 可选 "lunge"、"linear"、"ease"，未知类型按 lunge 处理。
func AttachLunge(c *clip.Clip, distance float64, kind string) *Clip {
	var curve *Curve
	switch kind {
	case "linear":
		curve = Linear(transform.Vec3{Y: distance}, c.Duration, 10)
	case "ease":
		curve = EaseInOut(transform.Vec3{Y: distance}, c.Duration, 20)
	default:
		curve = AttackLunge(distance, c.Duration)
	}
	return &Clip{Clip: c, Motion: curve}
}

// NewApplicatorFromConfig 按配置创建根运动施加器
func NewApplicatorFromConfig(cfg config.RootMotionConfig) *Applicator {
	a := NewApplicator()
	a.SetScale(cfg.Scale)
	return a
}
