package skeleton

import (
	"fmt"

	"github.com/decker502/voxelrig/pkg/transform"
)

// Node 外部场景节点的不透明句柄
//
// 运行时对外的唯一副作用是把每根骨骼的世界变换写到宿主提供的
// 节点上；节点的创建与层级由宿主负责。
type Node interface {
	SetTransform(t transform.Transform)
}

// Skeleton 分层骨骼结构
//
// 独占持有全部 Bone；骨骼图是从根可达的无环树。
type Skeleton struct {
	Root  *Bone
	bones map[string]*Bone

	sockets map[string]*Socket
}

// New 创建带单根骨骼的骨架
func New(rootName string) *Skeleton {
	root := newBone(rootName, 0, nil)
	return &Skeleton{
		Root:    root,
		bones:   map[string]*Bone{rootName: root},
		sockets: map[string]*Socket{},
	}
}

// AddBone 向骨架添加一根骨骼
//
// 配置错误（重名、父骨骼不存在）立即返回硬错误，绝不静默吞掉。
func (s *Skeleton) AddBone(name, parentName string, length float64, constraints *Constraints) (*Bone, error) {
	if _, exists := s.bones[name]; exists {
		return nil, fmt.Errorf("bone '%s' already exists", name)
	}
	parent, ok := s.bones[parentName]
	if !ok {
		return nil, fmt.Errorf("parent bone '%s' not found", parentName)
	}

	bone := newBone(name, length, parent)
	if constraints != nil {
		bone.Constrained = true
		bone.Constraints = *constraints
	}
	s.bones[name] = bone
	return bone, nil
}

// GetBone 按名字查找骨骼
func (s *Skeleton) GetBone(name string) (*Bone, bool) {
	b, ok := s.bones[name]
	return b, ok
}

// Bones 返回名字到骨骼的映射（调用方只读）
func (s *Skeleton) Bones() map[string]*Bone {
	return s.bones
}

// BoneNames 返回全部骨骼名
func (s *Skeleton) BoneNames() []string {
	names := make([]string, 0, len(s.bones))
	for name := range s.bones {
		names = append(names, name)
	}
	return names
}

// GetChain 返回从 from 到 to 的骨骼链（根→尖端顺序，两端包含）
//
// to 不是 from 的后代时返回错误。
func (s *Skeleton) GetChain(from, to string) ([]*Bone, error) {
	if _, ok := s.bones[from]; !ok {
		return nil, fmt.Errorf("start bone '%s' not found", from)
	}
	end, ok := s.bones[to]
	if !ok {
		return nil, fmt.Errorf("end bone '%s' not found", to)
	}

	// 从末端向上回溯到起点
	var chain []*Bone
	current := end
	for current != nil && current.Name != from {
		chain = append(chain, current)
		current = current.Parent
	}
	if current == nil {
		return nil, fmt.Errorf("bone '%s' is not a descendant of '%s'", to, from)
	}
	chain = append(chain, current)

	// 反转为根→尖端
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// UpdateWorldTransforms 以 FK 更新全部世界变换
//
// 遍历顺序保证父骨骼严格先于子骨骼。修改任何局部变换后调用。
func (s *Skeleton) UpdateWorldTransforms() {
	s.Root.UpdateWorld()
}

// ResetPose 将所有骨骼恢复到休息姿态并刷新 FK
func (s *Skeleton) ResetPose() {
	for _, bone := range s.bones {
		bone.Local = bone.Rest
	}
	s.UpdateWorldTransforms()
}

// ApplyPose 将姿态写入骨骼局部变换（姿态中不存在的骨骼保持不变）
func (s *Skeleton) ApplyPose(pose map[string]transform.Transform) {
	for name, t := range pose {
		if bone, ok := s.bones[name]; ok {
			bone.Local = t
		}
	}
}

// ApplyToNodes 把每根骨骼的世界变换写到外部场景节点上
//
// 没有对应句柄的骨骼直接跳过；宿主需保证要渲染的骨骼都有句柄。
func (s *Skeleton) ApplyToNodes(nodes map[string]Node) {
	for name, bone := range s.bones {
		if node, ok := nodes[name]; ok {
			node.SetTransform(bone.World)
		}
	}
}

// saveRestPose 把当前局部变换记录为休息姿态（构建期使用）
func (s *Skeleton) saveRestPose() {
	for _, bone := range s.bones {
		bone.Rest = bone.Local
	}
}
