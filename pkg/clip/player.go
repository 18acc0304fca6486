package clip

import (
	"log"
	"math"

	"github.com/decker502/voxelrig/pkg/transform"
)

// DefaultBlendTime 切换剪辑时的默认过渡时长（秒）
const DefaultBlendTime = 0.2

// EventHandler 时间轴事件回调
type EventHandler func(e Event)

// Player 剪辑播放器
//
// 从剪辑库按名取剪辑播放，推进时间并触发跨过的时间轴事件；
// 带过渡切换时冻结旧姿态快照，向新剪辑姿态线性过渡。播放
// 速度可正可负。
type Player struct {
	// BlendTime 带过渡切换的过渡时长（秒）
	BlendTime float64

	registry *Registry
	current  *Clip
	time     float64
	speed    float64
	playing  bool

	handlers    map[string][]EventHandler
	anyHandlers []EventHandler

	// 过渡快照：切换时冻结旧姿态，向新剪辑姿态插值
	blendFrom     map[string]transform.Transform
	blendProgress float64
	blendDur      float64
}

// NewPlayer 创建挂在剪辑库上的空闲播放器
func NewPlayer(registry *Registry) *Player {
	return &Player{
		BlendTime: DefaultBlendTime,
		registry:  registry,
		speed:     1.0,
		handlers:  map[string][]EventHandler{},
	}
}

// Play 按名播放剪辑
//
// blend 为 true 时从当前姿态平滑过渡。剪辑不存在时返回 false
// 并保持当前播放不变（运行时软失败）。
func (p *Player) Play(name string, blend bool) bool {
	c, ok := p.registry.Get(name)
	if !ok {
		log.Printf("[Player] 剪辑不存在: %s", name)
		return false
	}
	if blend {
		p.playBlended(c, p.BlendTime)
	} else {
		p.play(c)
	}
	return true
}

func (p *Player) play(c *Clip) {
	p.current = c
	p.time = 0
	p.playing = true
	p.blendFrom = nil
	p.blendProgress = 1
}

func (p *Player) playBlended(c *Clip, blendTime float64) {
	if blendTime <= 0 {
		blendTime = DefaultBlendTime
	}
	snapshot := p.Pose()
	if len(snapshot) == 0 {
		// 没有姿态可快照时退化为直接播放
		p.play(c)
		return
	}
	p.current = c
	p.time = 0
	p.playing = true
	p.blendFrom = snapshot
	p.blendProgress = 0
	p.blendDur = blendTime
}

// Stop 停止播放（保留当前剪辑与时间，便于查询最后姿态）
func (p *Player) Stop() {
	p.playing = false
}

// SetSpeed 设置播放速率（1 为原速，负值倒放）
func (p *Player) SetSpeed(s float64) {
	p.speed = s
}

// Speed 返回当前播放速率
func (p *Player) Speed() float64 { return p.speed }

// CurrentTime 返回当前剪辑时间（秒）
func (p *Player) CurrentTime() float64 { return p.time }

// Playing 返回是否正在播放
func (p *Player) Playing() bool { return p.playing }

// CurrentClip 返回当前剪辑，可能为 nil
func (p *Player) CurrentClip() *Clip { return p.current }

// BlendProgress 返回过渡进度（0-1，不在过渡中时为 1）
func (p *Player) BlendProgress() float64 {
	if p.blendFrom == nil {
		return 1
	}
	return p.blendProgress
}

// RegisterEventCallback 注册指定事件名的回调
func (p *Player) RegisterEventCallback(eventName string, h EventHandler) {
	p.handlers[eventName] = append(p.handlers[eventName], h)
}

// OnAny 注册接收全部事件的回调
func (p *Player) OnAny(h EventHandler) {
	p.anyHandlers = append(p.anyHandlers, h)
}

// Update 推进播放时间并触发跨过的事件
//
// 非循环剪辑到达末尾时钳制到 Duration 并自动停止，本帧末尾的
// 事件仍会触发一次。
func (p *Player) Update(dt float64) {
	if p.blendProgress < 1 && p.blendDur > 0 {
		p.blendProgress += dt / p.blendDur
		if p.blendProgress >= 1 {
			p.blendProgress = 1
			p.blendFrom = nil
		}
	}

	if !p.playing || p.current == nil {
		return
	}

	prev := p.time
	p.time += dt * p.speed

	if p.current.Looping {
		p.fireLooping(prev, p.time)
		return
	}

	end := p.time
	if end > p.current.Duration {
		end = p.current.Duration
	}
	p.fireRange(prev, end)
	if p.time >= p.current.Duration {
		p.time = p.current.Duration
		p.playing = false
	}
}

// fireRange 触发落在 (prev, curr] 内的事件（非循环路径）
func (p *Player) fireRange(prev, curr float64) {
	for _, ev := range p.current.Events {
		if ev.Time > prev && ev.Time <= curr {
			p.dispatch(ev)
		}
	}
}

// fireLooping 触发循环剪辑跨过的事件
//
// 时间取模后若本帧回绕（currMod < prevMod），事件落在
// (prevMod, Duration] 或 [0, currMod] 内都算跨过。
func (p *Player) fireLooping(prev, curr float64) {
	dur := p.current.Duration
	prevMod := wrapMod(prev, dur)
	currMod := wrapMod(curr, dur)

	for _, ev := range p.current.Events {
		crossed := false
		if currMod < prevMod {
			crossed = (ev.Time > prevMod && ev.Time <= dur) || (ev.Time >= 0 && ev.Time <= currMod)
		} else {
			crossed = ev.Time > prevMod && ev.Time <= currMod
		}
		if crossed {
			p.dispatch(ev)
		}
	}
}

func wrapMod(t, dur float64) float64 {
	m := math.Mod(t, dur)
	if m < 0 {
		m += dur
	}
	return m
}

func (p *Player) dispatch(ev Event) {
	for _, h := range p.handlers[ev.Name] {
		h(ev)
	}
	for _, h := range p.anyHandlers {
		h(ev)
	}
}

// Pose 返回当前时间的姿态
//
// 处于过渡中时返回旧姿态快照与新剪辑姿态的插值。无剪辑时返回
// 空映射。
func (p *Player) Pose() map[string]transform.Transform {
	if p.current == nil {
		return map[string]transform.Transform{}
	}
	target := p.current.GetPose(p.time)
	if p.blendFrom == nil || p.blendProgress >= 1 {
		return target
	}

	blended := map[string]transform.Transform{}
	for name, from := range p.blendFrom {
		if to, ok := target[name]; ok {
			blended[name] = from.Lerp(to, p.blendProgress)
		} else {
			blended[name] = from
		}
	}
	for name, to := range target {
		if _, ok := p.blendFrom[name]; !ok {
			blended[name] = to
		}
	}
	return blended
}
