package settings

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

// newTestLogger 创建静默的测试日志器
func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// TestLoadMissingFile 测试配置文件不存在时返回默认值
func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewStore(path, newTestLogger())

	values, err := store.Load()
	if err != nil {
		t.Fatalf("缺失配置文件不应报错: %v", err)
	}

	for _, key := range []string{KeyProgramName, KeyInstallDir, KeyIcon} {
		if values[key] != "" {
			t.Errorf("键 %s 的默认值应为空，实际 %q", key, values[key])
		}
	}
}

// TestSaveLoadRoundTrip 测试保存后读回
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewStore(path, newTestLogger())

	saved := map[string]string{
		KeyProgramName: "MonApp",
		KeyInstallDir:  `C:\Program Files\MonApp`,
		KeyIcon:        `C:\build\app.ico`,
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}

	for key, want := range saved {
		if loaded[key] != want {
			t.Errorf("键 %s 读回值 %q，期望 %q", key, loaded[key], want)
		}
	}
}

// TestSaveCreatesParentDir 测试父目录自动创建
func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.json")
	store := NewStore(path, newTestLogger())

	if err := store.Save(map[string]string{KeyProgramName: "X"}); err != nil {
		t.Fatalf("保存到嵌套目录失败: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if loaded[KeyProgramName] != "X" {
		t.Errorf("读回值不正确: %q", loaded[KeyProgramName])
	}
}
