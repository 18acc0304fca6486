package animator

import (
	"math"

	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

// LocomotionState 移动状态
type LocomotionState int

const (
	StateIdle LocomotionState = iota
	StateWalking
	StateJumping
	StateFalling
	StateLanding
)

// String 返回状态名
func (s LocomotionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateJumping:
		return "jumping"
	case StateFalling:
		return "falling"
	case StateLanding:
		return "landing"
	}
	return "unknown"
}

// LocomotionSource 程序化移动动画源
//
// 根据宿主喂入的速度与着地状态在待机/行走/跳跃/下落/落地之间
// 切换，用正弦摆动生成四肢姿态。输出的变换以骨骼休息姿态为
// 基准叠加摆幅。
type LocomotionSource struct {
	// 可调参数
	WalkFrequency     float64
	WalkAmplitudeArms float64
	WalkAmplitudeLegs float64
	IdleBobSpeed      float64
	IdleBobAmount     float64
	LandingDuration   float64

	state     LocomotionState
	stateTime float64
	walkPhase float64
	idleTime  float64

	velocity transform.Vec3
	grounded bool
}

// NewLocomotionSource 创建默认参数的移动动画源
func NewLocomotionSource() *LocomotionSource {
	return &LocomotionSource{
		WalkFrequency:     10.0,
		WalkAmplitudeArms: 35.0,
		WalkAmplitudeLegs: 30.0,
		IdleBobSpeed:      2.0,
		IdleBobAmount:     0.01,
		LandingDuration:   0.15,
		grounded:          true,
	}
}

// SetMovementState 喂入物理状态（每帧由宿主调用）
func (s *LocomotionSource) SetMovementState(velocity transform.Vec3, grounded bool) {
	s.velocity = velocity
	s.grounded = grounded
}

// State 返回当前移动状态
func (s *LocomotionSource) State() LocomotionState {
	return s.state
}

func (s *LocomotionSource) setState(next LocomotionState) {
	if next == s.state {
		return
	}
	s.state = next
	s.stateTime = 0
	if next == StateWalking {
		s.walkPhase = 0
	}
}

// Update 实现 Source
func (s *LocomotionSource) Update(dt float64, skel *skeleton.Skeleton) map[string]transform.Transform {
	s.stateTime += dt
	hspeed := math.Hypot(s.velocity.X, s.velocity.Y)

	switch {
	case s.state == StateLanding:
		// 落地姿态保持到时长结束
		if s.stateTime >= s.LandingDuration {
			if hspeed > 0.5 {
				s.setState(StateWalking)
			} else {
				s.setState(StateIdle)
			}
		}
	case !s.grounded:
		if s.velocity.Z > 0.5 {
			s.setState(StateJumping)
		} else if s.velocity.Z < -0.5 {
			s.setState(StateFalling)
		}
	default:
		wasAirborne := s.state == StateJumping || s.state == StateFalling
		if wasAirborne {
			s.setState(StateLanding)
		} else if hspeed > 0.5 {
			s.setState(StateWalking)
		} else {
			s.setState(StateIdle)
		}
	}

	switch s.state {
	case StateWalking:
		return s.walkPose(dt, hspeed, skel)
	case StateIdle:
		return s.idlePose(dt, skel)
	case StateJumping:
		return limbPose(skel, -60, -60, 15, 15)
	case StateFalling:
		return limbPose(skel, -30, -30, 10, -10)
	case StateLanding:
		return limbPose(skel, 20, 20, -15, -15)
	}
	return map[string]transform.Transform{}
}

// walkPose 正弦摆臂摆腿的步行循环
//
// 相位推进速度随移动速度缩放，6.0（跑速）时到达原速，上限
// 1.5 倍防止高速下四肢抽动。
func (s *LocomotionSource) walkPose(dt, hspeed float64, skel *skeleton.Skeleton) map[string]transform.Transform {
	speedFactor := math.Min(hspeed/6.0, 1.5)
	s.walkPhase += dt * s.WalkFrequency * speedFactor

	armSwing := math.Sin(s.walkPhase) * s.WalkAmplitudeArms
	legSwing := math.Sin(s.walkPhase) * s.WalkAmplitudeLegs

	// 臂腿异侧摆动
	return limbPose(skel, armSwing, -armSwing, -legSwing, legSwing)
}

// idlePose 待机呼吸：胸部轻微起伏加几乎不可察觉的摆臂
func (s *LocomotionSource) idlePose(dt float64, skel *skeleton.Skeleton) map[string]transform.Transform {
	s.idleTime += dt

	pose := map[string]transform.Transform{}
	if chest, ok := skel.GetBone("chest"); ok {
		tr := chest.Rest
		bob := math.Sin(s.idleTime*s.IdleBobSpeed) * s.IdleBobAmount
		tr.Position.Z += bob
		pose["chest"] = tr
	}

	sway := math.Sin(s.idleTime*1.5) * 2.0
	addPitched(pose, skel, "upper_arm_right", sway)
	addPitched(pose, skel, "upper_arm_left", sway)
	return pose
}

// limbPose 四肢定格姿态（跳跃、下落、落地）
func limbPose(skel *skeleton.Skeleton, armR, armL, legR, legL float64) map[string]transform.Transform {
	pose := map[string]transform.Transform{}
	addPitched(pose, skel, "upper_arm_right", armR)
	addPitched(pose, skel, "upper_arm_left", armL)
	addPitched(pose, skel, "thigh_right", legR)
	addPitched(pose, skel, "thigh_left", legL)
	return pose
}

// addPitched 在骨骼休息姿态上叠加 pitch 摆幅
func addPitched(pose map[string]transform.Transform, skel *skeleton.Skeleton, boneName string, pitch float64) {
	bone, ok := skel.GetBone(boneName)
	if !ok {
		return
	}
	tr := bone.Rest
	tr.Rotation.Y += pitch
	pose[boneName] = tr
}
