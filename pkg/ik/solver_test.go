package ik

import (
	"math"
	"testing"

	"github.com/decker502/voxelrig/pkg/skeleton"
	"github.com/decker502/voxelrig/pkg/transform"
)

const eps = 0.001

// 一条沿 +Z 展开的三关节腿：thigh(0.45) -> shin(0.45) -> foot
func makeLeg(t *testing.T) (*skeleton.Skeleton, []*skeleton.Bone) {
	t.Helper()
	s := skeleton.New("hips")
	if _, err := s.AddBone("thigh", "hips", 0.45, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddBone("shin", "thigh", 0.45, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddBone("foot", "shin", 0.2, nil); err != nil {
		t.Fatal(err)
	}

	hips, _ := s.GetBone("hips")
	thigh, _ := s.GetBone("thigh")
	shin, _ := s.GetBone("shin")
	foot, _ := s.GetBone("foot")
	hips.Local.Position = transform.Vec3{Z: 1.0}
	thigh.Local.Position = transform.Vec3{}
	shin.Local.Position = transform.Vec3{Z: -0.45}
	foot.Local.Position = transform.Vec3{Z: -0.45}
	s.UpdateWorldTransforms()

	chain, err := s.GetChain("thigh", "foot")
	if err != nil {
		t.Fatal(err)
	}
	return s, chain
}

func TestSolvePositions(t *testing.T) {
	t.Run("可达目标收敛到容差内", func(t *testing.T) {
		solver := NewSolver()
		positions := []transform.Vec3{
			{Z: 1.0}, {Z: 0.55}, {Z: 0.1},
		}
		lengths := []float64{0.45, 0.45, 0.2}
		target := transform.Vec3{X: 0.3, Z: 0.4}

		result := solver.SolvePositions(positions, lengths, target)

		endDist := result[len(result)-1].Sub(target).Length()
		if endDist > solver.Tolerance {
			t.Errorf("末端距目标 %v, 应小于容差 %v", endDist, solver.Tolerance)
		}
	})

	t.Run("求解保持骨长", func(t *testing.T) {
		solver := NewSolver()
		positions := []transform.Vec3{
			{Z: 1.0}, {Z: 0.55}, {Z: 0.1},
		}
		lengths := []float64{0.45, 0.45, 0.2}
		target := transform.Vec3{X: 0.3, Z: 0.4}

		result := solver.SolvePositions(positions, lengths, target)

		for i := 0; i < len(result)-1; i++ {
			segLen := result[i+1].Sub(result[i]).Length()
			if math.Abs(segLen-lengths[i]) > eps {
				t.Errorf("段 %d 长度应为 %v, 实际 %v", i, lengths[i], segLen)
			}
		}
	})

	t.Run("根位置保持固定", func(t *testing.T) {
		solver := NewSolver()
		root := transform.Vec3{Z: 1.0}
		positions := []transform.Vec3{root, {Z: 0.55}, {Z: 0.1}}
		lengths := []float64{0.45, 0.45, 0.2}

		result := solver.SolvePositions(positions, lengths, transform.Vec3{X: 0.3, Z: 0.4})

		if result[0].Sub(root).Length() > eps {
			t.Errorf("根位置应保持 %+v, 实际 %+v", root, result[0])
		}
	})

	t.Run("不可达目标沿直线拉伸", func(t *testing.T) {
		solver := NewSolver()
		positions := []transform.Vec3{
			{Z: 1.0}, {Z: 0.55}, {Z: 0.1},
		}
		lengths := []float64{0.45, 0.45, 0.2}
		target := transform.Vec3{X: 10} // 远超 0.9 总长

		result := solver.SolvePositions(positions, lengths, target)

		// 全链笔直指向目标，末端在总长处
		dir := target.Sub(transform.Vec3{Z: 1.0}).Normalized()
		wantEnd := transform.Vec3{Z: 1.0}.Add(dir.Scale(0.9))
		if result[len(result)-1].Sub(wantEnd).Length() > eps {
			t.Errorf("拉伸末端应为 %+v, 实际 %+v", wantEnd, result[len(result)-1])
		}
		for i := 0; i < len(result)-1; i++ {
			segLen := result[i+1].Sub(result[i]).Length()
			if math.Abs(segLen-lengths[i]) > eps {
				t.Errorf("拉伸后段 %d 长度应为 %v, 实际 %v", i, lengths[i], segLen)
			}
		}
	})
}

func TestSolve(t *testing.T) {
	t.Run("链长不足返回空", func(t *testing.T) {
		solver := NewSolver()
		s := skeleton.New("only")
		chain, _ := s.GetChain("only", "only")
		if out := solver.Solve(chain, transform.Vec3{X: 1}); len(out) != 0 {
			t.Errorf("单骨骼链应返回空, 实际 %d 项", len(out))
		}
	})

	t.Run("结果含链上全部骨骼", func(t *testing.T) {
		_, chain := makeLeg(t)
		solver := NewSolver()
		out := solver.Solve(chain, transform.Vec3{X: 0.3, Z: 0.4})

		for _, name := range []string{"thigh", "shin", "foot"} {
			if _, ok := out[name]; !ok {
				t.Errorf("结果缺少骨骼 %s", name)
			}
		}
	})

	t.Run("局部位置保持休息值", func(t *testing.T) {
		_, chain := makeLeg(t)
		solver := NewSolver()
		out := solver.Solve(chain, transform.Vec3{X: 0.3, Z: 0.4})

		for _, bone := range chain {
			got := out[bone.Name].Position
			want := bone.Rest.Position
			if got.Sub(want).Length() > eps {
				t.Errorf("%s 局部位置应保持休息值 %+v, 实际 %+v", bone.Name, want, got)
			}
		}
	})

	t.Run("尖端保持休息旋转", func(t *testing.T) {
		_, chain := makeLeg(t)
		solver := NewSolver()
		out := solver.Solve(chain, transform.Vec3{X: 0.3, Z: 0.4})

		tip := chain[len(chain)-1]
		got := out[tip.Name].Rotation
		if got.Sub(tip.Rest.Rotation).Length() > eps {
			t.Errorf("尖端旋转应保持休息值 %+v, 实际 %+v", tip.Rest.Rotation, got)
		}
	})

	t.Run("可选根位置改钉链根", func(t *testing.T) {
		_, chain := makeLeg(t)
		solver := NewSolver()

		// 不可达目标会把链沿根到目标的直线拉直，
		// 链根旋转即暴露实际使用的根位置
		target := transform.Vec3{Z: -5}
		defaultOut := solver.Solve(chain, target)
		pinnedOut := solver.Solve(chain, target, transform.Vec3{X: 2, Z: 1})

		if defaultOut["thigh"].Rotation.Sub(pinnedOut["thigh"].Rotation).Length() < eps {
			t.Error("改钉根位置后链根旋转应发生变化")
		}

		// 从 (2,0,1) 指向 (0,0,-5)：方向 (-2,0,-6)
		got := pinnedOut["thigh"].Rotation
		want := transform.DirectionToRotation(transform.Vec3{X: -2, Z: -6})
		if got.Sub(want).Length() > 0.01 {
			t.Errorf("链根旋转 = %+v, 期望 %+v", got, want)
		}
	})
}

func TestLayer(t *testing.T) {
	t.Run("缺失骨骼的目标静默跳过", func(t *testing.T) {
		s, _ := makeLeg(t)
		layer := NewLayer(nil)
		layer.SetTarget(Target{BoneName: "missing", Position: transform.Vec3{X: 1}})

		out := layer.Update(0.016, s)
		if len(out) != 0 {
			t.Errorf("不存在的骨骼应被跳过, 实际 %d 项", len(out))
		}
	})

	t.Run("显式链根生效", func(t *testing.T) {
		s, _ := makeLeg(t)
		layer := NewLayer(nil)
		layer.SetTarget(Target{
			BoneName:  "foot",
			ChainRoot: "thigh",
			Position:  transform.Vec3{X: 0.3, Z: 0.4},
			Weight:    1.0,
		})

		out := layer.Update(0.016, s)
		if _, ok := out["hips"]; ok {
			t.Error("链根为 thigh 时不应包含 hips")
		}
		if _, ok := out["thigh"]; !ok {
			t.Error("结果应包含链根 thigh")
		}
	})

	t.Run("零权重目标跳过", func(t *testing.T) {
		s, _ := makeLeg(t)
		layer := NewLayer(nil)
		layer.SetTargets(map[string]Target{
			"foot": {BoneName: "foot", Position: transform.Vec3{X: 0.3, Z: 0.4}, Weight: 0},
		})

		if out := layer.Update(0.016, s); len(out) != 0 {
			t.Errorf("零权重目标应被跳过, 实际 %d 项", len(out))
		}
	})

	t.Run("共享骨骼的多目标结果确定", func(t *testing.T) {
		s, _ := makeLeg(t)
		layer := NewLayer(nil)
		// 两条链共享 thigh/shin，部分权重触发与已写入骨骼的混合
		layer.SetTargets(map[string]Target{
			"foot": {BoneName: "foot", Position: transform.Vec3{X: 0.3, Z: 0.4}, Weight: 0.6},
			"shin": {BoneName: "shin", Position: transform.Vec3{X: -0.2, Z: 0.6}, Weight: 0.5},
		})

		first := layer.Update(0.016, s)
		if len(first) == 0 {
			t.Fatal("应有解算输出")
		}
		for i := 0; i < 20; i++ {
			again := layer.Update(0.016, s)
			for name, tr := range first {
				if again[name].Rotation.Sub(tr.Rotation).Length() > 1e-9 {
					t.Fatalf("第 %d 次解算 %s 的结果不一致", i, name)
				}
			}
		}
	})

	t.Run("清除目标", func(t *testing.T) {
		s, _ := makeLeg(t)
		layer := NewLayer(nil)
		layer.SetTarget(Target{BoneName: "foot", ChainRoot: "thigh", Position: transform.Vec3{X: 0.3, Z: 0.4}})
		layer.ClearTarget("foot")

		if out := layer.Update(0.016, s); len(out) != 0 {
			t.Errorf("清除目标后应无输出, 实际 %d 项", len(out))
		}
	})
}
