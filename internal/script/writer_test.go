package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestWriteScript 测试脚本落盘
func TestWriteScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installer.nsi")

	if err := WriteScript("Section\nSectionEnd\n", path); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if string(data) != "Section\nSectionEnd\n" {
		t.Errorf("写入内容不一致: %q", data)
	}
}

// TestWriteScriptOverwrite 测试覆盖旧脚本
func TestWriteScriptOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installer.nsi")

	if err := WriteScript("old", path); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}
	if err := WriteScript("new", path); err != nil {
		t.Fatalf("覆盖写入失败: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("覆盖后内容不正确: %q", data)
	}
}

// TestWriteScriptBadDir 测试目标目录不可用时旧脚本不受影响
func TestWriteScriptBadDir(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "nonexistent")
	path := filepath.Join(missingDir, "installer.nsi")

	err := WriteScript("content", path)
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("期望 ErrWriteFailed，实际 %v", err)
	}
}
