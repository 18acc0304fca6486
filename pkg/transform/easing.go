package transform

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制位移曲线的速度分布。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。

// Lerp 标量线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep 平滑阶梯缓动
// 特点：开始慢，中间快，结束慢
// 公式：f(t) = t² (3 - 2t)
func Smoothstep(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}

// HalfCosine 半余弦缓动
// 特点：加速-峰值-减速，适合攻击突进类位移
// 公式：f(t) = (1 - cos(πt)) / 2
func HalfCosine(t float64) float64 {
	return (1.0 - math.Cos(t*math.Pi)) / 2.0
}
