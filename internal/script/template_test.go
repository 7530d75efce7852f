package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// newTestLogger 创建静默的测试日志器
func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// writeTemplate 写出测试模板文件
func writeTemplate(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.nsi.tmpl")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("写模板文件失败: %v", err)
	}
	return path
}

// minimalTemplate 包含全部必需占位符的最小模板
const minimalTemplate = `name @APP_NAME@
dir @INSTALL_DIR@
icon @ICON@
@FILES@
@SHORTCUTS@
@UNINSTALL@
`

// TestLoadBuiltinTemplate 测试内置模板可用
func TestLoadBuiltinTemplate(t *testing.T) {
	tmpl, err := LoadTemplate("", newTestLogger())
	if err != nil {
		t.Fatalf("内置模板加载不应失败: %v", err)
	}

	names := tmpl.Placeholders()
	if len(names) != len(requiredPlaceholders) {
		t.Errorf("内置模板占位符数量不对: %v", names)
	}
}

// TestLoadTemplateFromFile 测试从文件加载
func TestLoadTemplateFromFile(t *testing.T) {
	path := writeTemplate(t, minimalTemplate)

	tmpl, err := LoadTemplate(path, newTestLogger())
	if err != nil {
		t.Fatalf("加载合法模板失败: %v", err)
	}
	if len(tmpl.Placeholders()) != 6 {
		t.Errorf("占位符数量不对: %v", tmpl.Placeholders())
	}
}

// TestLoadTemplateMissingPlaceholder 测试缺占位符时立即失败
func TestLoadTemplateMissingPlaceholder(t *testing.T) {
	path := writeTemplate(t, strings.Replace(minimalTemplate, "@FILES@\n", "", 1))

	_, err := LoadTemplate(path, newTestLogger())
	if !errors.Is(err, ErrBadTemplate) {
		t.Errorf("期望 ErrBadTemplate，实际 %v", err)
	}
}

// TestLoadTemplateDuplicatePlaceholder 测试占位符重复时失败
func TestLoadTemplateDuplicatePlaceholder(t *testing.T) {
	path := writeTemplate(t, minimalTemplate+"@FILES@\n")

	_, err := LoadTemplate(path, newTestLogger())
	if !errors.Is(err, ErrBadTemplate) {
		t.Errorf("期望 ErrBadTemplate，实际 %v", err)
	}
}

// TestRenderUnknownPassthrough 测试未知占位符原样透传
func TestRenderUnknownPassthrough(t *testing.T) {
	path := writeTemplate(t, minimalTemplate+"extra @CUSTOM@ here\n")

	tmpl, err := LoadTemplate(path, newTestLogger())
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}

	out := tmpl.render(map[string]string{
		PlaceholderAppName:    "X",
		PlaceholderInstallDir: "Y",
		PlaceholderIcon:       "",
		PlaceholderFiles:      "",
		PlaceholderShortcuts:  "",
		PlaceholderUninstall:  "",
	})

	if !strings.Contains(out, "@CUSTOM@") {
		t.Error("未知占位符应原样保留")
	}
}

// TestRenderSinglePass 测试单遍替换不会二次展开
func TestRenderSinglePass(t *testing.T) {
	tmpl, err := LoadTemplate("", newTestLogger())
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}

	// 程序名恰好包含另一个占位符的字面文本
	out := tmpl.render(map[string]string{
		PlaceholderAppName:    "Mon@ICON@App",
		PlaceholderInstallDir: `C:\X`,
		PlaceholderIcon:       "secret.ico",
		PlaceholderFiles:      "",
		PlaceholderShortcuts:  "",
		PlaceholderUninstall:  "",
	})

	if !strings.Contains(out, `!define APP_NAME "Mon@ICON@App"`) {
		t.Error("替换值中的占位符字面文本不应被二次展开")
	}
	if strings.Contains(out, `"Monsecret.icoApp"`) {
		t.Error("发生了二次替换")
	}
}
