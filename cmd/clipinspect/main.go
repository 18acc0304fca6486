// clipinspect 检查动画剪辑 JSON 文件并打印其内容摘要
//
// 用法:
//
//	clipinspect [-combat] <剪辑文件路径>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/decker502/voxelrig/internal/clipfile"
)

func main() {
	showCombat := flag.Bool("combat", false, "显示战斗元数据详情")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("用法: clipinspect [-combat] <剪辑文件路径>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	c, err := clipfile.Load(path)
	if err != nil {
		log.Fatalf("解析失败: %v", err)
	}

	printMetadata(path, c)
	printKeyframes(c)
	printBones(c)
	printEvents(c)

	if *showCombat {
		printCombat(c)
	}
}

func printMetadata(path string, c *clipfile.ClipJSON) {
	fmt.Printf("剪辑文件: %s\n", path)
	fmt.Printf("名称: %s\n", c.Name)
	fmt.Printf("时长: %.3f 秒\n", c.Duration)
	fmt.Printf("循环: %v\n", c.Looping)
	fmt.Printf("关键帧数: %d  事件数: %d\n", len(c.Keyframes), len(c.Events))
	if c.Combat != nil {
		fmt.Printf("战斗剪辑: 是（%d 个命中窗口）\n", len(c.Combat.HitWindows))
	}
	fmt.Println()
}

func printKeyframes(c *clipfile.ClipJSON) {
	fmt.Println("关键帧:")
	for i, kf := range c.Keyframes {
		segment := ""
		if i+1 < len(c.Keyframes) {
			segment = fmt.Sprintf("  段时长: %.3f", c.Keyframes[i+1].Time-kf.Time)
		}
		fmt.Printf("  #%-3d t=%.3f  骨骼数: %d%s\n", i, kf.Time, len(kf.Transforms), segment)
	}
	fmt.Println()
}

// printBones 汇总每根骨骼出现在多少个关键帧中
func printBones(c *clipfile.ClipJSON) {
	counts := make(map[string]int)
	for _, kf := range c.Keyframes {
		for bone := range kf.Transforms {
			counts[bone]++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("涉及骨骼 (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("  %-24s 关键帧: %d/%d\n", name, counts[name], len(c.Keyframes))
	}
	fmt.Println()
}

func printEvents(c *clipfile.ClipJSON) {
	if len(c.Events) == 0 {
		return
	}

	fmt.Println("事件:")
	for _, ev := range c.Events {
		fmt.Printf("  t=%.3f  %s", ev.Time, ev.EventName)
		if len(ev.Data) > 0 {
			fmt.Printf("  数据: %v", ev.Data)
		}
		fmt.Println()
	}
	fmt.Println()
}

func printCombat(c *clipfile.ClipJSON) {
	if c.Combat == nil {
		fmt.Println("战斗元数据: 无")
		return
	}

	fmt.Println("战斗元数据:")
	fmt.Printf("  可取消时间: %.3f 秒\n", c.Combat.CanCancelAfter)
	fmt.Printf("  动量影响: %.2f\n", c.Combat.MomentumInfluence)
	fmt.Printf("  恢复时间: %.3f 秒\n", c.Combat.RecoveryTime)
	for i, w := range c.Combat.HitWindows {
		fmt.Printf("  窗口 #%d: [%.3f, %.3f]  时长 %.3f  伤害倍率 %.2f\n",
			i, w.Start, w.End, w.End-w.Start, w.DamageMultiplier)
	}
}
