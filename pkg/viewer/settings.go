package viewer

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 查看器的持久化状态
type Settings struct {
	LastClip string  `yaml:"lastClip"` // 上次播放的剪辑名
	Speed    float64 `yaml:"speed"`    // 播放速率
	Paused   bool    `yaml:"paused"`   // 是否暂停
}

// DefaultSettings 返回默认查看器设置
func DefaultSettings() *Settings {
	return &Settings{
		Speed: 1.0,
	}
}

// SettingsStore 通过 gdata 读写查看器设置
// gdataManager 可为 nil（降级模式，仅内存，不持久化）
type SettingsStore struct {
	gdataManager *gdata.Manager
	settings     *Settings
}

const (
	settingsObject   = "viewer"
	settingsProperty = "state"
)

// NewSettingsStore 创建设置存储
//
// 加载失败不是致命错误，回退到默认设置。
func NewSettingsStore(gdataManager *gdata.Manager) *SettingsStore {
	ss := &SettingsStore{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := ss.Load(); err != nil {
		log.Printf("[SettingsStore] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return ss
}

// Load 从 gdata 加载设置
func (ss *SettingsStore) Load() error {
	if ss.gdataManager == nil {
		ss.settings = DefaultSettings()
		return nil
	}

	if !ss.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		ss.settings = DefaultSettings()
		return nil
	}

	data, err := ss.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		ss.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		ss.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.Speed <= 0 {
		loaded.Speed = 1.0
	}

	ss.settings = &loaded
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (ss *SettingsStore) Save() error {
	if ss.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(ss.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := ss.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings 返回当前设置（可就地修改后调用 Save）
func (ss *SettingsStore) Settings() *Settings {
	return ss.settings
}
