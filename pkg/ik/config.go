package ik

import (
	"github.com/decker502/voxelrig/pkg/config"
)

// NewSolverFromConfig 按配置创建 FABRIK 求解器
func NewSolverFromConfig(cfg config.IKConfig) *FABRIKSolver {
	s := NewSolver()
	if cfg.Tolerance > 0 {
		s.Tolerance = cfg.Tolerance
	}
	if cfg.MaxIterations > 0 {
		s.MaxIterations = cfg.MaxIterations
	}
	return s
}

// NewFootControllerFromConfig 按配置创建足部贴地控制器
func NewFootControllerFromConfig(raycast RaycastFunc, cfg config.FootIKConfig) *FootController {
	fc := NewFootController(raycast)
	fc.FootOffset = cfg.FootOffset
	fc.SetHipAdjustment(cfg.HipAdjustment)
	fc.SlopeThreshold = cfg.SlopeThreshold
	if cfg.UpdateInterval >= 1 {
		fc.UpdateInterval = cfg.UpdateInterval
	}
	return fc
}

// NewHandControllerFromConfig 按配置创建手部攀爬控制器
func NewHandControllerFromConfig(raycast RaycastFunc, cfg config.HandIKConfig) *HandController {
	hc := NewHandController(raycast)
	hc.SetReachDistance(cfg.ReachDistance)
	hc.HandOffset = cfg.HandOffset
	if cfg.UpdateInterval >= 1 {
		hc.UpdateInterval = cfg.UpdateInterval
	}
	return hc
}
