package manifest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// TestCheckSourcesAllAvailable 测试全部可用的情况
func TestCheckSourcesAllAvailable(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTestFile(t, dir, "a.exe"),
		writeTestFile(t, dir, "b.txt"),
		writeTestFile(t, dir, "c.dll"),
	}

	statuses, err := CheckSources(context.Background(), files)
	if err != nil {
		t.Fatalf("全部可用时不应报错: %v", err)
	}

	if len(statuses) != len(files) {
		t.Fatalf("期望 %d 条结果，实际 %d 条", len(files), len(statuses))
	}

	// 结果顺序与输入一致
	for i, status := range statuses {
		if status.Path != files[i] {
			t.Errorf("结果顺序不正确: 位置 %d 期望 %s，实际 %s", i, files[i], status.Path)
		}
		if !status.Available {
			t.Errorf("%s 应为可用", status.Path)
		}
	}
}

// TestCheckSourcesMissing 测试缺失条目的报告
func TestCheckSourcesMissing(t *testing.T) {
	dir := t.TempDir()
	present := writeTestFile(t, dir, "a.exe")
	missing := filepath.Join(dir, "gone.txt")

	statuses, err := CheckSources(context.Background(), []string{present, missing})
	if !errors.Is(err, ErrSourceFileUnavailable) {
		t.Fatalf("期望 ErrSourceFileUnavailable，实际 %v", err)
	}

	// 所有条目仍被检查
	if len(statuses) != 2 {
		t.Fatalf("期望 2 条结果，实际 %d 条", len(statuses))
	}
	if !statuses[0].Available {
		t.Error("存在的文件应报告为可用")
	}
	if statuses[1].Available {
		t.Error("缺失的文件应报告为不可用")
	}
}

// TestCheckSourcesEmpty 测试空清单
func TestCheckSourcesEmpty(t *testing.T) {
	statuses, err := CheckSources(context.Background(), nil)
	if err != nil {
		t.Fatalf("空清单不应报错: %v", err)
	}
	if len(statuses) != 0 {
		t.Errorf("空清单应返回空结果，实际 %d 条", len(statuses))
	}
}
