// Package viewer 提供骨架动画的交互式查看窗口
//
// 以正交线段的方式渲染人形骨架，叠加移动状态机层与剪辑播放层，
// 用于调试剪辑与 IK 效果。
package viewer

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/voxelrig/pkg/animator"
	"github.com/decker502/voxelrig/pkg/clip"
	"github.com/decker502/voxelrig/pkg/config"
	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 640
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 480

	// 固定步长，与 ebiten 默认 60 TPS 对齐
	stepDt = 1.0 / 60.0

	// 世界单位到屏幕像素的正交缩放
	viewScale = 160.0
)

// Viewer 骨架动画查看器，实现 ebiten.Game 接口
type Viewer struct {
	skeleton   *skeleton.Skeleton
	animator   *animator.LayeredAnimator
	locomotion *animator.LocomotionSource
	player     *clip.Player

	registry  *clip.Registry
	clipNames []string
	clipIndex int

	store    *SettingsStore
	velocity transform.Vec3
	time     float64
}

// NewViewer 创建查看器
//
// 构建人形骨架，叠加两个动画层：移动状态机层（全身，低优先级）
// 与剪辑播放层（上半身，高优先级）。store 可为 nil。
func NewViewer(registry *clip.Registry, cfg *config.AnimationConfig, store *SettingsStore) (*Viewer, error) {
	skel := skeleton.NewHumanoid()
	if err := skeleton.ValidateHumanoid(skel); err != nil {
		return nil, fmt.Errorf("无效的人形骨架: %w", err)
	}

	if cfg == nil {
		cfg = config.Default()
	}
	if store == nil {
		store = NewSettingsStore(nil)
	}

	v := &Viewer{
		skeleton:   skel,
		locomotion: animator.NewLocomotionSource(),
		player:     clip.NewPlayerFromConfig(registry, cfg.Playback),
		registry:   registry,
		clipNames:  registry.List(),
		store:      store,
	}

	v.animator = animator.New(skel)
	v.animator.AddLayer("locomotion", v.locomotion, 0, 1.0, animator.FullBody())
	v.animator.AddLayer("clip", animator.NewKeyframeSource(v.player), 10, 1.0, animator.UpperBody())

	v.restoreSettings()

	return v, nil
}

// restoreSettings 恢复上次会话的剪辑、速率和暂停状态
func (v *Viewer) restoreSettings() {
	s := v.store.Settings()

	if s.Speed > 0 {
		v.player.SetSpeed(s.Speed)
	}
	if s.LastClip == "" {
		return
	}
	for i, name := range v.clipNames {
		if name == s.LastClip {
			v.clipIndex = i
			v.player.Play(name, false)
			return
		}
	}
}

// Update 处理输入并推进一个固定步长
func (v *Viewer) Update() error {
	s := v.store.Settings()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Paused = !s.Paused
		v.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(v.clipNames) > 0 {
		v.clipIndex = (v.clipIndex + 1) % len(v.clipNames)
		name := v.clipNames[v.clipIndex]
		v.player.Play(name, true)
		s.LastClip = name
		v.saveSettings()
	}

	// 方向键驱动演示速度，观察移动状态机切换
	v.velocity = transform.Vec3{}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		v.velocity.X = 4.0
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		v.velocity.X = -4.0
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		v.velocity.Y = 4.0
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		v.velocity.Y = -4.0
	}

	if s.Paused {
		return nil
	}

	v.time += stepDt
	v.locomotion.SetMovementState(v.velocity, true)
	v.animator.Update(stepDt)
	v.animator.ApplyToSkeleton()

	return nil
}

// saveSettings 保存设置，失败只记录日志
func (v *Viewer) saveSettings() {
	if err := v.store.Save(); err != nil {
		log.Printf("[Viewer] 保存设置失败: %v", err)
	}
}

// Draw 渲染骨架线段与 HUD
func (v *Viewer) Draw(screen *ebiten.Image) {
	boneColor := color.RGBA{R: 0x66, G: 0xcc, B: 0xff, A: 0xff}

	for _, bone := range v.skeleton.Bones() {
		start := bone.World.Position
		end := bone.EndPosition()

		x1, y1 := v.project(start)
		x2, y2 := v.project(end)
		ebitenutil.DrawLine(screen, x1, y1, x2, y2, boneColor)
	}

	v.drawHUD(screen)
}

// project 把世界坐标正交投影到屏幕（X 向右，Z 向上）
func (v *Viewer) project(p transform.Vec3) (float64, float64) {
	x := float64(ScreenWidth)/2 + p.X*viewScale
	y := float64(ScreenHeight)*0.85 - p.Z*viewScale
	return x, y
}

// drawHUD 绘制状态文本
func (v *Viewer) drawHUD(screen *ebiten.Image) {
	s := v.store.Settings()

	clipName := "(无)"
	if c := v.player.CurrentClip(); c != nil {
		clipName = c.Name
	}

	lines := fmt.Sprintf(
		"clip: %s\ntime: %.2f  blend: %.0f%%\nstate: %s  speed: %.1fx",
		clipName,
		v.player.CurrentTime(),
		v.player.BlendProgress()*100,
		v.locomotion.State(),
		v.player.Speed(),
	)
	if s.Paused {
		lines += "\n[已暂停]"
	}
	lines += "\n空格:暂停  Tab:切换剪辑  方向键:移动"

	ebitenutil.DebugPrintAt(screen, lines, 8, 8)
}

// Layout 返回逻辑屏幕尺寸
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
