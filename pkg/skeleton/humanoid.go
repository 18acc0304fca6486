package skeleton

import (
	"fmt"

	"github.com/decker502/voxelrig/pkg/transform"
)

// 人形骨架的骨骼长度常量（世界单位，按总身高约 1.8 缩放）
const (
	HipsLength     = 0.20 // 骨盆块
	SpineLength    = 0.3
	ChestLength    = 0.3
	HeadLength     = 0.25
	ShoulderLength = 0.15
	UpperArmLength = 0.35
	ForearmLength  = 0.35
	HandLength     = 0.15
	ThighLength    = 0.45
	ShinLength     = 0.45
	FootLength     = 0.2
)

// HumanoidBoneNames 人形骨架的规范骨骼名列表（共 18 根）
//
// 层级：
//
//	hips
//	├── spine ── chest ── head
//	│            ├── shoulder_left ── upper_arm_left ── forearm_left ── hand_left
//	│            └── shoulder_right ── upper_arm_right ── forearm_right ── hand_right
//	├── thigh_left ── shin_left ── foot_left
//	└── thigh_right ── shin_right ── foot_right
var HumanoidBoneNames = []string{
	"hips", "spine", "chest", "head",
	"shoulder_left", "upper_arm_left", "forearm_left", "hand_left",
	"shoulder_right", "upper_arm_right", "forearm_right", "hand_right",
	"thigh_left", "shin_left", "foot_left",
	"thigh_right", "shin_right", "foot_right",
}

// NewHumanoid 创建带关节约束的 18 骨人形骨架预设
//
// 约束按人体工学设定：肘与膝只能朝一个方向弯曲，头部转动范围
// 受限，大腿前后摆幅不对称。构建完成后当前姿态（T-Pose）被保存
// 为休息姿态。
func NewHumanoid() *Skeleton {
	s := New("hips")
	s.Root.Length = HipsLength

	mustAdd := func(name, parent string, length float64, c *Constraints) {
		if _, err := s.AddBone(name, parent, length, c); err != nil {
			// 预设内部的骨骼名唯一且父骨骼先行添加，出错说明预设本身写错了
			panic(fmt.Sprintf("humanoid preset: %v", err))
		}
	}

	// 脊柱链
	mustAdd("spine", "hips", SpineLength, nil)
	mustAdd("chest", "spine", ChestLength, nil)
	mustAdd("head", "chest", HeadLength,
		&Constraints{MinH: -60, MaxH: 60, MinP: -45, MaxP: 45, MinR: -180, MaxR: 180})

	// 左臂链
	mustAdd("shoulder_left", "chest", ShoulderLength, nil)
	mustAdd("upper_arm_left", "shoulder_left", UpperArmLength,
		&Constraints{MinH: -90, MaxH: 180, MinP: -180, MaxP: 180, MinR: -180, MaxR: 180})
	mustAdd("forearm_left", "upper_arm_left", ForearmLength,
		&Constraints{MinH: -180, MaxH: 180, MinP: 0, MaxP: 150, MinR: -180, MaxR: 180}) // 肘只朝一个方向弯
	mustAdd("hand_left", "forearm_left", HandLength, nil)

	// 右臂链
	mustAdd("shoulder_right", "chest", ShoulderLength, nil)
	mustAdd("upper_arm_right", "shoulder_right", UpperArmLength,
		&Constraints{MinH: -180, MaxH: 90, MinP: -180, MaxP: 180, MinR: -180, MaxR: 180})
	mustAdd("forearm_right", "upper_arm_right", ForearmLength,
		&Constraints{MinH: -180, MaxH: 180, MinP: 0, MaxP: 150, MinR: -180, MaxR: 180})
	mustAdd("hand_right", "forearm_right", HandLength, nil)

	// 左腿链
	mustAdd("thigh_left", "hips", ThighLength,
		&Constraints{MinH: -180, MaxH: 180, MinP: -120, MaxP: 60, MinR: -180, MaxR: 180})
	mustAdd("shin_left", "thigh_left", ShinLength,
		&Constraints{MinH: -180, MaxH: 180, MinP: -150, MaxP: 0, MinR: -180, MaxR: 180}) // 膝只向后弯
	mustAdd("foot_left", "shin_left", FootLength, nil)

	// 右腿链
	mustAdd("thigh_right", "hips", ThighLength,
		&Constraints{MinH: -180, MaxH: 180, MinP: -120, MaxP: 60, MinR: -180, MaxR: 180})
	mustAdd("shin_right", "thigh_right", ShinLength,
		&Constraints{MinH: -180, MaxH: 180, MinP: -150, MaxP: 0, MinR: -180, MaxR: 180})
	mustAdd("foot_right", "shin_right", FootLength, nil)

	setHumanoidRestPose(s)
	addStandardSockets(s)
	return s
}

// setHumanoidRestPose 设置 T-Pose 并保存为休息姿态
//
// 根（hips）抬到腿长高度，脊柱向上延伸，手臂向两侧展开，
// 腿部向下。局部偏移沿用制作时的数值。
func setHumanoidRestPose(s *Skeleton) {
	set := func(name string, pos, rot transform.Vec3) {
		bone := s.bones[name]
		bone.Local.Position = pos
		bone.Local.Rotation = rot
	}

	// 根骨骼：骨盆抬至站立高度，+Y 指向竖直向上
	set("hips", transform.Vec3{Z: 0.95}, transform.Vec3{X: 180, Y: 90})

	// 脊柱链沿父骨骼 +Y 继续延伸
	set("spine", transform.Vec3{Y: HipsLength}, transform.Vec3{})
	set("chest", transform.Vec3{Y: SpineLength}, transform.Vec3{})
	set("head", transform.Vec3{Y: ChestLength}, transform.Vec3{})

	// 左肩指向 -X，手臂骨骼沿肩方向延伸
	set("shoulder_left", transform.Vec3{X: -0.20, Y: ChestLength * 0.9}, transform.Vec3{X: 90})
	set("upper_arm_left", transform.Vec3{Y: ShoulderLength}, transform.Vec3{})
	set("forearm_left", transform.Vec3{Y: UpperArmLength}, transform.Vec3{})
	set("hand_left", transform.Vec3{Y: ForearmLength}, transform.Vec3{})

	// 右肩指向 +X
	set("shoulder_right", transform.Vec3{X: 0.20, Y: ChestLength * 0.9}, transform.Vec3{X: -90})
	set("upper_arm_right", transform.Vec3{Y: ShoulderLength}, transform.Vec3{})
	set("forearm_right", transform.Vec3{Y: UpperArmLength}, transform.Vec3{})
	set("hand_right", transform.Vec3{Y: ForearmLength}, transform.Vec3{})

	// 腿部：heading 180 把 +Y 翻转向下，同时保持 pitch 为 0
	// （pitch 180 会违反大腿约束 MaxP=60）
	set("thigh_left", transform.Vec3{X: 0.10, Z: 0.05}, transform.Vec3{X: 180})
	set("shin_left", transform.Vec3{Y: ThighLength}, transform.Vec3{})
	set("foot_left", transform.Vec3{Y: ShinLength}, transform.Vec3{})

	set("thigh_right", transform.Vec3{X: -0.10, Z: 0.05}, transform.Vec3{X: 180})
	set("shin_right", transform.Vec3{Y: ThighLength}, transform.Vec3{})
	set("foot_right", transform.Vec3{Y: ShinLength}, transform.Vec3{})

	s.saveRestPose()
	s.UpdateWorldTransforms()
}

// addStandardSockets 添加标准装备挂点
func addStandardSockets(s *Skeleton) {
	mustAdd := func(name, parentBone string, offsetPos, offsetRot transform.Vec3) {
		if _, err := s.AddSocket(name, parentBone, offsetPos, offsetRot); err != nil {
			// 挂点的父骨骼都是预设骨骼，出错说明预设本身写错了
			panic(fmt.Sprintf("humanoid preset: %v", err))
		}
	}

	// 手部挂点：从腕部略微前移，贴合自然握持位置
	mustAdd("hand_r_socket", "hand_right",
		transform.Vec3{Y: HandLength * 0.5}, transform.Vec3{})
	mustAdd("hand_l_socket", "hand_left",
		transform.Vec3{Y: HandLength * 0.5}, transform.Vec3{})

	// 背部挂点：上背处，略向后倾，便于过肩拔出
	mustAdd("back_socket", "chest",
		transform.Vec3{Y: ChestLength * 0.7, Z: -0.15}, transform.Vec3{Y: -15})

	// 腰带挂点：挂匕首、药瓶等，朝下
	mustAdd("belt_r_socket", "hips",
		transform.Vec3{X: 0.15, Y: HipsLength * 0.3}, transform.Vec3{X: 90})
	mustAdd("belt_l_socket", "hips",
		transform.Vec3{X: -0.15, Y: HipsLength * 0.3}, transform.Vec3{X: 90})
}

// ValidateHumanoid 校验骨架是否为合法的人形结构
//
// 检查骨骼集合完整且无多余骨骼、各关节链长度正确、肘膝约束符合
// 预设。骨架结构不合法时返回错误。
func ValidateHumanoid(s *Skeleton) error {
	expected := make(map[string]bool, len(HumanoidBoneNames))
	for _, name := range HumanoidBoneNames {
		expected[name] = true
		if _, ok := s.bones[name]; !ok {
			return fmt.Errorf("humanoid skeleton is missing required bone '%s'", name)
		}
	}
	for name := range s.bones {
		if !expected[name] {
			return fmt.Errorf("humanoid skeleton has unexpected bone '%s'", name)
		}
	}

	// 关节链抽查
	chains := []struct {
		from, to string
		length   int
	}{
		{"hips", "head", 4},
		{"shoulder_left", "hand_left", 4},
		{"shoulder_right", "hand_right", 4},
		{"thigh_left", "foot_left", 3},
		{"thigh_right", "foot_right", 3},
	}
	for _, c := range chains {
		chain, err := s.GetChain(c.from, c.to)
		if err != nil {
			return fmt.Errorf("invalid chain %s->%s: %w", c.from, c.to, err)
		}
		if len(chain) != c.length {
			return fmt.Errorf("invalid chain %s->%s: expected %d bones, got %d",
				c.from, c.to, c.length, len(chain))
		}
	}

	// 肘：0..150
	for _, name := range []string{"forearm_left", "forearm_right"} {
		bone := s.bones[name]
		if !bone.Constrained {
			return fmt.Errorf("bone '%s' missing constraints", name)
		}
		if bone.Constraints.MinP != 0 || bone.Constraints.MaxP != 150 {
			return fmt.Errorf("bone '%s' has incorrect elbow constraints: min_p=%v max_p=%v",
				name, bone.Constraints.MinP, bone.Constraints.MaxP)
		}
	}
	// 膝：-150..0
	for _, name := range []string{"shin_left", "shin_right"} {
		bone := s.bones[name]
		if !bone.Constrained {
			return fmt.Errorf("bone '%s' missing constraints", name)
		}
		if bone.Constraints.MinP != -150 || bone.Constraints.MaxP != 0 {
			return fmt.Errorf("bone '%s' has incorrect knee constraints: min_p=%v max_p=%v",
				name, bone.Constraints.MinP, bone.Constraints.MaxP)
		}
	}
	return nil
}
