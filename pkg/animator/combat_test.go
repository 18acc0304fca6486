package animator

import (
	"math"
	"testing"

	"github.com/decker502/voxelrig/pkg/clip"
	"github.com/decker502/voxelrig/pkg/transform"
)

func combatRegistry() *clip.Registry {
	r := clip.NewRegistry()

	slash := clip.NewCombatClip("slash", 0.5, clip.CombatMetadata{
		HitWindows:        []clip.HitWindow{{Start: 0.12, End: 0.18, DamageMultiplier: 1.0}},
		CanCancelAfter:    0.35,
		MomentumInfluence: 0.4,
		RecoveryTime:      0.15,
	})
	chestPose := func(p float64) map[string]transform.Transform {
		t := transform.New()
		t.Rotation = transform.Vec3{Y: p}
		return map[string]transform.Transform{"chest": t}
	}
	slash.AddKeyframe(0, chestPose(-20))
	slash.AddKeyframe(0.15, chestPose(20))
	slash.AddKeyframe(0.5, chestPose(0))
	r.Register(slash)

	thrust := clip.NewCombatClip("thrust", 0.4, clip.CombatMetadata{
		HitWindows:     []clip.HitWindow{{Start: 0.1, End: 0.2, DamageMultiplier: 1.5}},
		CanCancelAfter: 0.3,
	})
	thrust.AddKeyframe(0, chestPose(0))
	thrust.AddKeyframe(0.4, chestPose(10))
	r.Register(thrust)

	return r
}

func TestCombatHitWindow(t *testing.T) {
	t.Run("命中窗口恰好触发一次", func(t *testing.T) {
		var hits []float64
		a := NewCombatAnimator(combatRegistry(), func(time, mult float64) {
			hits = append(hits, mult)
		})
		a.Play("slash", false)

		for i := 0; i < 30; i++ {
			a.Update(0.016)
		}

		if len(hits) != 1 {
			t.Fatalf("命中应恰好触发一次, 实际 %d 次", len(hits))
		}
		if hits[0] != 1.0 {
			t.Errorf("伤害倍率应为 1.0, 实际 %v", hits[0])
		}
	})

	t.Run("跳过窗口则不触发", func(t *testing.T) {
		var hits int
		a := NewCombatAnimator(combatRegistry(), func(time, mult float64) { hits++ })
		a.Play("slash", false)

		// 一帧跨过整个 [0.12, 0.18] 窗口
		a.Update(0.25)

		if hits != 0 {
			t.Errorf("整帧跳过窗口不应触发, 实际 %d 次", hits)
		}
	})

	t.Run("重新播放后窗口重新武装", func(t *testing.T) {
		var hits int
		a := NewCombatAnimator(combatRegistry(), func(time, mult float64) { hits++ })

		a.Play("slash", false)
		a.Update(0.15)
		a.Play("slash", false)
		a.Update(0.15)

		if hits != 2 {
			t.Errorf("两次播放应各触发一次, 实际 %d 次", hits)
		}
	})
}

func TestCombatCancel(t *testing.T) {
	a := NewCombatAnimator(combatRegistry(), nil)
	a.Play("slash", false)

	a.Update(0.2)
	if a.CanCancelCurrent() {
		t.Error("0.2s 尚不可取消")
	}
	if a.TryCombo("thrust") {
		t.Error("不可取消时连招应失败")
	}

	a.Update(0.2) // 0.4 >= 0.35
	if !a.CanCancelCurrent() {
		t.Error("0.4s 应可取消")
	}
	if !a.TryCombo("thrust") {
		t.Error("可取消时连招应成功")
	}
	if a.CurrentClip().Name != "thrust" {
		t.Errorf("连招后应播放 thrust, 实际 %s", a.CurrentClip().Name)
	}
	if a.CanCancelCurrent() {
		t.Error("连招切换后取消状态应重置")
	}
}

func TestCombatMomentum(t *testing.T) {
	t.Run("动量前倾叠加到胸部", func(t *testing.T) {
		a := NewCombatAnimator(combatRegistry(), nil)
		a.Play("slash", false)
		a.Update(0.15)

		base := a.Player.Pose()["chest"].Rotation.Y

		a.SetMomentum(transform.Vec3{X: 2})
		lean := a.Pose()["chest"].Rotation.Y - base

		// |momentum|·influence·10 = 2·0.4·10 = 8
		if math.Abs(lean-8) > eps {
			t.Errorf("前倾角应为 8, 实际 %v", lean)
		}
	})

	t.Run("动量低于死区不前倾", func(t *testing.T) {
		a := NewCombatAnimator(combatRegistry(), nil)
		a.Play("slash", false)
		a.Update(0.15)

		base := a.Player.Pose()["chest"].Rotation.Y
		a.SetMomentum(transform.Vec3{X: 0.05})

		if math.Abs(a.Pose()["chest"].Rotation.Y-base) > eps {
			t.Error("动量低于 0.1 不应前倾")
		}
	})
}

func TestKeyframeSource(t *testing.T) {
	t.Run("播放中返回姿态", func(t *testing.T) {
		r := combatRegistry()
		p := clip.NewPlayer(r)
		src := NewKeyframeSource(p)
		p.Play("slash", false)

		pose := src.Update(0.1, nil)
		if _, ok := pose["chest"]; !ok {
			t.Error("播放中应返回 chest 姿态")
		}
	})

	t.Run("停止后返回空", func(t *testing.T) {
		r := combatRegistry()
		p := clip.NewPlayer(r)
		src := NewKeyframeSource(p)
		p.Play("slash", false)
		src.Update(1.0, nil) // 非循环播完自动停止

		if pose := src.Update(0.016, nil); len(pose) != 0 {
			t.Errorf("停止后应返回空姿态, 实际 %d 项", len(pose))
		}
	})
}
