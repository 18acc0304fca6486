package clip

// HitWindow 攻击剪辑中的一段命中判定窗口
type HitWindow struct {
	// Start/End 以剪辑起点为零的秒数，两端包含
	Start float64
	End   float64

	// DamageMultiplier 命中落在本窗口时的基础伤害倍率
	DamageMultiplier float64
}

// Contains 判断时间点是否落在窗口内
func (w HitWindow) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// CombatMetadata 战斗剪辑的攻击时序元数据
type CombatMetadata struct {
	HitWindows []HitWindow

	// CanCancelAfter 最早可被取消接入其他动作的时间（秒）
	CanCancelAfter float64

	// MomentumInfluence 角色动量对攻击姿态的前倾影响系数，0 关闭
	MomentumInfluence float64

	// RecoveryTime 攻击结束后的硬直时长（秒）
	RecoveryTime float64
}

// NewCombatClip 创建带攻击元数据的战斗剪辑
//
// 战斗剪辑一律非循环：攻击播完即停，由上层决定接什么动作。
func NewCombatClip(name string, duration float64, meta CombatMetadata) *Clip {
	c := New(name, duration, false)
	c.Combat = &meta
	return c
}

// CanCancelAt 判断剪辑在指定时间是否已进入可取消阶段
func (c *Clip) CanCancelAt(t float64) bool {
	if c.Combat == nil {
		return false
	}
	return t >= c.Combat.CanCancelAfter
}

// ActiveHitWindow 返回时间点所在的命中窗口，不在任何窗口内时返回 nil
func (c *Clip) ActiveHitWindow(t float64) *HitWindow {
	if c.Combat == nil {
		return nil
	}
	for i := range c.Combat.HitWindows {
		if c.Combat.HitWindows[i].Contains(t) {
			return &c.Combat.HitWindows[i]
		}
	}
	return nil
}
