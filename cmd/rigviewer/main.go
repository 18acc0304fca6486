// rigviewer 打开一个窗口，播放并查看骨架动画剪辑
//
// 用法:
//
//	rigviewer -clips data/clips [-clip slash] [-config anim.yaml] [-verbose]
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/voxelrig/pkg/clip"
	"github.com/decker502/voxelrig/pkg/config"
	"github.com/decker502/voxelrig/pkg/viewer"
)

func main() {
	clipsDir := flag.String("clips", "data/clips", "剪辑 JSON 文件目录")
	clipName := flag.String("clip", "", "启动时播放的剪辑名（覆盖上次记录）")
	configPath := flag.String("config", "", "动画配置 YAML 文件（可选）")
	verbose := flag.Bool("verbose", false, "输出详细日志")
	flag.Parse()

	registry := clip.NewRegistry()
	loaded, err := registry.ScanDirectory(*clipsDir)
	if err != nil {
		log.Fatalf("[rigviewer] 扫描剪辑目录失败: %v", err)
	}
	if *verbose {
		log.Printf("[rigviewer] 从 %s 加载了 %d 个剪辑: %v", *clipsDir, loaded, registry.List())
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.LoadAnimationConfig(*configPath)
		if err != nil {
			log.Fatalf("[rigviewer] 加载配置失败: %v", err)
		}
	}

	// gdata 打开失败时降级为仅内存设置
	manager, err := gdata.Open(gdata.Config{
		AppName: "voxelrig",
	})
	if err != nil {
		log.Printf("[rigviewer] Warning: gdata unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	store := viewer.NewSettingsStore(manager)

	if *clipName != "" {
		store.Settings().LastClip = *clipName
	}

	v, err := viewer.NewViewer(registry, cfg, store)
	if err != nil {
		log.Fatalf("[rigviewer] 初始化失败: %v", err)
	}

	ebiten.SetWindowSize(viewer.ScreenWidth, viewer.ScreenHeight)
	ebiten.SetWindowTitle("voxelrig viewer")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatalf("[rigviewer] 运行失败: %v", err)
	}
}
