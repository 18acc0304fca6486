package clip

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/decker502/voxelrig/internal/clipfile"
	"github.com/decker502/voxelrig/pkg/transform"
)

// Registry 按名字管理剪辑库
//
// 支持从 JSON 剪辑文件加载、保存以及整目录扫描。
type Registry struct {
	clips map[string]*Clip
}

// NewRegistry 创建空剪辑库
func NewRegistry() *Registry {
	return &Registry{clips: map[string]*Clip{}}
}

// Register 注册剪辑，同名剪辑被替换
func (r *Registry) Register(c *Clip) {
	if _, exists := r.clips[c.Name]; exists {
		log.Printf("[Registry] 替换已有剪辑: %s", c.Name)
	}
	r.clips[c.Name] = c
}

// Get 按名字查找剪辑
func (r *Registry) Get(name string) (*Clip, bool) {
	c, ok := r.clips[name]
	return c, ok
}

// GetCombat 按名字查找战斗剪辑（剪辑存在但不带战斗元数据时也返回 false）
func (r *Registry) GetCombat(name string) (*Clip, bool) {
	c, ok := r.clips[name]
	if !ok || c.Combat == nil {
		return nil, false
	}
	return c, true
}

// List 返回全部剪辑名（升序）
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.clips))
	for name := range r.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len 返回剪辑数量
func (r *Registry) Len() int {
	return len(r.clips)
}

// LoadJSON 从 JSON 文件加载剪辑并注册
func (r *Registry) LoadJSON(path string) (*Clip, error) {
	wire, err := clipfile.Load(path)
	if err != nil {
		return nil, err
	}
	c := fromWire(wire)
	r.Register(c)
	return c, nil
}

// SaveJSON 把剪辑写为 JSON 文件
func (r *Registry) SaveJSON(name, path string) error {
	c, ok := r.clips[name]
	if !ok {
		return fmt.Errorf("clip '%s' not registered", name)
	}
	return clipfile.Save(path, toWire(c))
}

// ScanDirectory 扫描目录下的全部 .json 剪辑文件并加载
//
// 单个文件加载失败只记录日志并跳过，返回成功加载的数量。目录
// 不存在时返回错误。
func (r *Registry) ScanDirectory(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to scan clip directory '%s': %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := r.LoadJSON(path); err != nil {
			log.Printf("[Registry] 跳过无效剪辑文件 %s: %v", path, err)
			continue
		}
		loaded++
	}
	log.Printf("[Registry] 目录 %s 加载完成: %d 个剪辑", dir, loaded)
	return loaded, nil
}

// fromWire 把线格式剪辑转为运行时剪辑
func fromWire(w *clipfile.ClipJSON) *Clip {
	c := New(w.Name, w.Duration, w.Looping)
	for _, kf := range w.Keyframes {
		transforms := make(map[string]transform.Transform, len(kf.Transforms))
		for bone, tr := range kf.Transforms {
			transforms[bone] = transform.Transform{
				Position: vec3FromArray(tr.Position),
				Rotation: vec3FromArray(tr.Rotation),
				Scale:    scaleFromWire(tr.Scale),
			}
		}
		c.AddKeyframe(kf.Time, transforms)
	}
	for _, ev := range w.Events {
		c.AddEvent(ev.Time, ev.EventName, ev.Data)
	}
	if w.Combat != nil {
		meta := CombatMetadata{
			CanCancelAfter:    w.Combat.CanCancelAfter,
			MomentumInfluence: w.Combat.MomentumInfluence,
			RecoveryTime:      w.Combat.RecoveryTime,
		}
		for _, hw := range w.Combat.HitWindows {
			meta.HitWindows = append(meta.HitWindows, HitWindow{
				Start:            hw.Start,
				End:              hw.End,
				DamageMultiplier: hw.DamageMultiplier,
			})
		}
		c.Combat = &meta
	}
	return c
}

// toWire 把运行时剪辑转为线格式
func toWire(c *Clip) *clipfile.ClipJSON {
	w := &clipfile.ClipJSON{
		Name:     c.Name,
		Duration: c.Duration,
		Looping:  c.Looping,
	}
	for _, kf := range c.Keyframes {
		transforms := make(map[string]clipfile.TransformJSON, len(kf.Transforms))
		for bone, tr := range kf.Transforms {
			scale := vec3ToArray(tr.Scale)
			transforms[bone] = clipfile.TransformJSON{
				Position: vec3ToArray(tr.Position),
				Rotation: vec3ToArray(tr.Rotation),
				Scale:    &scale,
			}
		}
		w.Keyframes = append(w.Keyframes, clipfile.KeyframeJSON{Time: kf.Time, Transforms: transforms})
	}
	for _, ev := range c.Events {
		w.Events = append(w.Events, clipfile.EventJSON{Time: ev.Time, EventName: ev.Name, Data: ev.Data})
	}
	if c.Combat != nil {
		combat := &clipfile.CombatJSON{
			CanCancelAfter:    c.Combat.CanCancelAfter,
			MomentumInfluence: c.Combat.MomentumInfluence,
			RecoveryTime:      c.Combat.RecoveryTime,
		}
		for _, hw := range c.Combat.HitWindows {
			combat.HitWindows = append(combat.HitWindows, clipfile.HitWindowJSON{
				Start:            hw.Start,
				End:              hw.End,
				DamageMultiplier: hw.DamageMultiplier,
			})
		}
		w.Combat = combat
	}
	return w
}

func vec3FromArray(a [3]float64) transform.Vec3 {
	return transform.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// scaleFromWire 线格式缩放缺省为全 1
func scaleFromWire(a *[3]float64) transform.Vec3 {
	if a == nil {
		return transform.Vec3{X: 1, Y: 1, Z: 1}
	}
	return vec3FromArray(*a)
}

func vec3ToArray(v transform.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
