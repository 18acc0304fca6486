package clip

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/voxelrig/pkg/transform"
)

func TestRegistryRoundTrip(t *testing.T) {
	dir := t.TempDir()

	original := NewCombatClip("attack_slash", 0.8, CombatMetadata{
		HitWindows:        []HitWindow{{Start: 0.25, End: 0.45, DamageMultiplier: 1.2}},
		CanCancelAfter:    0.5,
		MomentumInfluence: 0.3,
		RecoveryTime:      0.2,
	})
	original.AddKeyframe(0, map[string]transform.Transform{"arm": rotOnly(0)})
	original.AddKeyframe(0.8, map[string]transform.Transform{"arm": rotOnly(90)})
	original.AddEvent(0.3, "swing", map[string]any{"sound": "whoosh"})

	r := NewRegistry()
	r.Register(original)

	path := filepath.Join(dir, "attack_slash.json")
	if err := r.SaveJSON("attack_slash", path); err != nil {
		t.Fatalf("SaveJSON 失败: %v", err)
	}

	r2 := NewRegistry()
	loaded, err := r2.LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON 失败: %v", err)
	}

	if loaded.Name != "attack_slash" || loaded.Duration != 0.8 || loaded.Looping {
		t.Errorf("基本字段不一致: %+v", loaded)
	}
	if len(loaded.Keyframes) != 2 {
		t.Fatalf("关键帧数量应为 2, 实际 %d", len(loaded.Keyframes))
	}
	pose := loaded.GetPose(0.4)
	if math.Abs(pose["arm"].Rotation.Y-45) > eps {
		t.Errorf("加载后采样结果应一致, 实际 %v", pose["arm"].Rotation.Y)
	}
	if len(loaded.Events) != 1 || loaded.Events[0].Name != "swing" {
		t.Errorf("事件丢失: %+v", loaded.Events)
	}
	if loaded.Combat == nil || loaded.Combat.CanCancelAfter != 0.5 {
		t.Errorf("战斗元数据丢失: %+v", loaded.Combat)
	}
	if len(loaded.Combat.HitWindows) != 1 ||
		math.Abs(loaded.Combat.HitWindows[0].DamageMultiplier-1.2) > eps {
		t.Errorf("命中窗口丢失: %+v", loaded.Combat.HitWindows)
	}
	hw := loaded.Combat.HitWindows[0]
	if math.Abs(hw.Start-0.25) > eps || math.Abs(hw.End-0.45) > eps {
		t.Errorf("命中窗口边界丢失: %+v", hw)
	}
}

// 缺省 scale 的剪辑文件加载后应得到全 1 缩放，而不是把骨骼缩到零
func TestLoadJSONOmittedScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nod.json")
	raw := []byte(`{
		"name": "nod",
		"duration": 0.5,
		"looping": false,
		"keyframes": [
			{"time": 0, "transforms": {
				"head": {"position": [0, 0.25, 0], "rotation": [0, 15, 0]}
			}}
		]
	}`)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	loaded, err := r.LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON 失败: %v", err)
	}

	pose := loaded.GetPose(0)
	scale := pose["head"].Scale
	if math.Abs(scale.X-1) > eps || math.Abs(scale.Y-1) > eps || math.Abs(scale.Z-1) > eps {
		t.Errorf("缺省缩放 = %+v, 期望全 1", scale)
	}
}

func TestRegistrySaveUnknown(t *testing.T) {
	r := NewRegistry()
	if err := r.SaveJSON("missing", "x.json"); err == nil {
		t.Error("保存未注册剪辑应返回错误")
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()

	// 两个有效剪辑 + 一个坏文件 + 一个无关文件
	r := NewRegistry()
	walk := New("walk", 1.0, true)
	walk.AddKeyframe(0, map[string]transform.Transform{"arm": rotOnly(0)})
	idle := New("idle", 2.0, true)
	idle.AddKeyframe(0, map[string]transform.Transform{"arm": rotOnly(5)})
	r.Register(walk)
	r.Register(idle)
	if err := r.SaveJSON("walk", filepath.Join(dir, "walk.json")); err != nil {
		t.Fatal(err)
	}
	if err := r.SaveJSON("idle", filepath.Join(dir, "idle.json")); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644)
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore"), 0644)

	r2 := NewRegistry()
	loaded, err := r2.ScanDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDirectory 失败: %v", err)
	}
	if loaded != 2 {
		t.Errorf("应加载 2 个剪辑, 实际 %d", loaded)
	}
	if _, ok := r2.Get("walk"); !ok {
		t.Error("walk 未注册")
	}
	if _, ok := r2.Get("idle"); !ok {
		t.Error("idle 未注册")
	}
}

func TestScanDirectoryMissing(t *testing.T) {
	r := NewRegistry()
	if _, err := r.ScanDirectory("/nonexistent/clips"); err == nil {
		t.Error("目录不存在应返回错误")
	}
}
