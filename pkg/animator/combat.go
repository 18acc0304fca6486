package animator

import (
	"github.com/decker502/voxelrig/pkg/clip"
	"github.com/decker502/voxelrig/pkg/transform"
)

// OnHitFunc 命中窗口激活时的回调（当前剪辑时间与伤害倍率）
type OnHitFunc func(time, damageMultiplier float64)

// CombatAnimator 带战斗语义的剪辑播放器
//
// 在普通播放之上增加：命中判定窗口（每窗口每次播放只触发一次
// 回调）、取消窗口、连招衔接，以及按角色动量前倾攻击姿态。
type CombatAnimator struct {
	*clip.Player

	// MomentumBone 动量前倾作用的骨骼名
	MomentumBone string

	onHit       OnHitFunc
	momentum    transform.Vec3
	lastHitTime float64
	canCancel   bool
}

// NewCombatAnimator 创建战斗播放器
//
// onHit 在命中窗口首次激活时调用，可为 nil。
func NewCombatAnimator(registry *clip.Registry, onHit OnHitFunc) *CombatAnimator {
	return &CombatAnimator{
		Player:       clip.NewPlayer(registry),
		MomentumBone: "chest",
		onHit:        onHit,
		lastHitTime:  -1,
	}
}

// SetMomentum 设置当前移动动量
func (a *CombatAnimator) SetMomentum(velocity transform.Vec3) {
	a.momentum = velocity
}

// Play 播放剪辑并重置命中与取消状态
func (a *CombatAnimator) Play(name string, blend bool) bool {
	if !a.Player.Play(name, blend) {
		return false
	}
	a.lastHitTime = -1
	a.canCancel = false
	return true
}

// Update 推进播放并处理战斗语义
//
// 非战斗剪辑只做普通播放。命中窗口的触发条件是上次触发时间
// 早于窗口起点，保证每窗口每次播放恰好触发一次。
func (a *CombatAnimator) Update(dt float64) {
	a.Player.Update(dt)

	c := a.CurrentClip()
	if c == nil || c.Combat == nil {
		return
	}
	t := a.CurrentTime()

	a.canCancel = t >= c.Combat.CanCancelAfter

	for _, window := range c.Combat.HitWindows {
		if window.Contains(t) && a.lastHitTime < window.Start {
			if a.onHit != nil {
				a.onHit(t, window.DamageMultiplier)
			}
			a.lastHitTime = t
		}
	}
}

// CanCancelCurrent 返回当前剪辑是否已进入可取消阶段
func (a *CombatAnimator) CanCancelCurrent() bool {
	return a.canCancel
}

// TryCombo 尝试取消当前攻击接入下一招
//
// 尚不可取消时静默返回 false；成功时带过渡切换到下一剪辑。
func (a *CombatAnimator) TryCombo(nextClip string) bool {
	if !a.canCancel {
		return false
	}
	return a.Play(nextClip, true)
}

// Pose 返回当前姿态，叠加动量前倾
//
// 战斗剪辑的 MomentumInfluence 大于 0 且动量超过死区时，
// 把动量映射为 MomentumBone 的 pitch 前倾角。
func (a *CombatAnimator) Pose() map[string]transform.Transform {
	pose := a.Player.Pose()

	c := a.CurrentClip()
	if c == nil || c.Combat == nil || c.Combat.MomentumInfluence <= 0 {
		return pose
	}
	speed := a.momentum.Length()
	if speed <= 0.1 {
		return pose
	}

	if tr, ok := pose[a.MomentumBone]; ok {
		tr.Rotation.Y += speed * c.Combat.MomentumInfluence * 10
		pose[a.MomentumBone] = tr
	}
	return pose
}
