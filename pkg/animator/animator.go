package animator

import (
	"sort"

	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

// Source 可驱动动画层的动画源
//
// 动画源可以是程序化动画（步态、待机摆动）、关键帧播放器，
// 或 IK 解算层。每帧返回骨骼名到局部变换的映射，未覆盖的
// 骨骼不受本源影响。
type Source interface {
	Update(dt float64, skel *skeleton.Skeleton) map[string]transform.Transform
}

// Layer 单个动画层：动画源加权重、遮罩与优先级
type Layer struct {
	Name   string
	Source Source

	// Weight 混合权重（0-1）
	Weight float64

	// Mask 骨骼遮罩，nil 为全身
	Mask *BoneMask

	// Priority 决定求值顺序（低优先级先求值）
	Priority int

	Enabled bool
}

// LayeredAnimator 把多个动画层合成为最终姿态
//
// 每帧按优先级升序逐层取变换，再对每根骨骼把所有覆盖它的层按
// 权重归一化平均。合成结果缓存，由 ApplyToSkeleton 一次性写回
// 骨架并做一趟 FK。
type LayeredAnimator struct {
	skeleton *skeleton.Skeleton
	layers   []*Layer
	lastPose map[string]transform.Transform
}

// New 创建分层动画器
func New(skel *skeleton.Skeleton) *LayeredAnimator {
	return &LayeredAnimator{
		skeleton: skel,
		lastPose: map[string]transform.Transform{},
	}
}

// AddLayer 添加动画层并按优先级重排（稳定排序，同优先级保持添加顺序）
func (a *LayeredAnimator) AddLayer(name string, source Source, priority int, weight float64, mask *BoneMask) *Layer {
	layer := &Layer{
		Name:     name,
		Source:   source,
		Weight:   weight,
		Mask:     mask,
		Priority: priority,
		Enabled:  true,
	}
	a.layers = append(a.layers, layer)
	sort.SliceStable(a.layers, func(i, j int) bool {
		return a.layers[i].Priority < a.layers[j].Priority
	})
	return layer
}

// RemoveLayer 按名字移除层，移除成功返回 true
func (a *LayeredAnimator) RemoveLayer(name string) bool {
	for i, layer := range a.layers {
		if layer.Name == name {
			a.layers = append(a.layers[:i], a.layers[i+1:]...)
			return true
		}
	}
	return false
}

// GetLayer 按名字查找层，不存在时返回 nil
func (a *LayeredAnimator) GetLayer(name string) *Layer {
	for _, layer := range a.layers {
		if layer.Name == name {
			return layer
		}
	}
	return nil
}

// SetLayerWeight 设置层权重，钳制到 [0, 1]
func (a *LayeredAnimator) SetLayerWeight(name string, weight float64) {
	layer := a.GetLayer(name)
	if layer == nil {
		return
	}
	if weight < 0 {
		weight = 0
	}
	if weight > 1 {
		weight = 1
	}
	layer.Weight = weight
}

// SetLayerEnabled 启用或禁用层
func (a *LayeredAnimator) SetLayerEnabled(name string, enabled bool) {
	if layer := a.GetLayer(name); layer != nil {
		layer.Enabled = enabled
	}
}

// Update 更新全部层并合成最终姿态
//
// 禁用或权重为零的层直接跳过，其动画源不会被调用。每根骨骼
// 取所有覆盖它的层做权重归一化平均；只有单层覆盖时原样采用
// 该层的变换。优先级只决定求值顺序，不产生覆盖语义。
func (a *LayeredAnimator) Update(dt float64) map[string]transform.Transform {
	type layerPose struct {
		layer      *Layer
		transforms map[string]transform.Transform
	}
	var poses []layerPose

	for _, layer := range a.layers {
		if !layer.Enabled || layer.Weight <= 0 {
			continue
		}
		transforms := layer.Source.Update(dt, a.skeleton)
		if len(transforms) > 0 {
			poses = append(poses, layerPose{layer, transforms})
		}
	}

	final := map[string]transform.Transform{}
	for boneName := range a.skeleton.Bones() {
		var weights []float64
		var contribs []transform.Transform

		for _, lp := range poses {
			if !lp.layer.Mask.AffectsBone(boneName) {
				continue
			}
			if tr, ok := lp.transforms[boneName]; ok {
				weights = append(weights, lp.layer.Weight)
				contribs = append(contribs, tr)
			}
		}

		if len(contribs) > 0 {
			final[boneName] = blendTransforms(weights, contribs)
		}
	}

	a.lastPose = final
	return final
}

// blendTransforms 权重归一化的平坦平均
//
// 单层贡献时原样返回，避免浮点抖动。
func blendTransforms(weights []float64, contribs []transform.Transform) transform.Transform {
	if len(contribs) == 1 {
		return contribs[0]
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return transform.New()
	}

	var blended transform.Transform
	for i, tr := range contribs {
		w := weights[i] / total
		blended.Position = blended.Position.Add(tr.Position.Scale(w))
		blended.Rotation = blended.Rotation.Add(tr.Rotation.Scale(w))
		blended.Scale = blended.Scale.Add(tr.Scale.Scale(w))
	}
	return blended
}

// ApplyToSkeleton 把最近一次合成的姿态写回骨架并刷新 FK
func (a *LayeredAnimator) ApplyToSkeleton() {
	a.skeleton.ApplyPose(a.lastPose)
	a.skeleton.UpdateWorldTransforms()
}

// LastPose 返回最近一次合成的姿态副本
func (a *LayeredAnimator) LastPose() map[string]transform.Transform {
	out := make(map[string]transform.Transform, len(a.lastPose))
	for name, tr := range a.lastPose {
		out[name] = tr
	}
	return out
}
