package skeleton

import (
	"fmt"

	"github.com/decker502/voxelrig/pkg/transform"
)

// Socket 骨骼上的装备挂点
//
// 定义武器、道具等相对于宿主骨骼的附着位置与朝向偏移。
type Socket struct {
	Name       string
	ParentBone string
	OffsetPos  transform.Vec3
	OffsetRot  transform.Vec3
}

// AddSocket 在指定骨骼上添加挂点
//
// 宿主骨骼不存在时返回错误（配置错误，硬失败）。
func (s *Skeleton) AddSocket(name, parentBone string, offsetPos, offsetRot transform.Vec3) (*Socket, error) {
	if _, ok := s.bones[parentBone]; !ok {
		return nil, fmt.Errorf("cannot add socket '%s': parent bone '%s' not found", name, parentBone)
	}
	socket := &Socket{
		Name:       name,
		ParentBone: parentBone,
		OffsetPos:  offsetPos,
		OffsetRot:  offsetRot,
	}
	s.sockets[name] = socket
	return socket, nil
}

// GetSocket 按名字查找挂点
func (s *Skeleton) GetSocket(name string) (*Socket, bool) {
	socket, ok := s.sockets[name]
	return socket, ok
}

// SocketWorldTransform 返回挂点的世界变换
//
// 与 FK 同样按逐轴相加复合偏移。挂点或宿主骨骼不存在时
// 返回 false（运行时软失败）。
func (s *Skeleton) SocketWorldTransform(name string) (transform.Transform, bool) {
	socket, ok := s.sockets[name]
	if !ok {
		return transform.New(), false
	}
	bone, ok := s.bones[socket.ParentBone]
	if !ok {
		return transform.New(), false
	}
	return transform.Transform{
		Position: bone.World.Position.Add(socket.OffsetPos),
		Rotation: bone.World.Rotation.Add(socket.OffsetRot),
		Scale:    bone.World.Scale,
	}, true
}
