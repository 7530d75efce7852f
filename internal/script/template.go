package script

import (
	"fmt"
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
)

// placeholderRegex 匹配 @NAME@ 形式的占位符
var placeholderRegex = regexp.MustCompile(`@([A-Z_]+)@`)

// defaultTemplate 内置模板，未提供模板文件时使用
const defaultTemplate = `!define APP_NAME "@APP_NAME@"
!define INSTALL_DIR "@INSTALL_DIR@"
!define ICON "@ICON@"

Name "${APP_NAME}"
OutFile "installer.exe"
InstallDir "${INSTALL_DIR}"
Icon "${ICON}"
ShowInstDetails show

Section "Installation"
    SetOutPath "$INSTDIR"

@FILES@

@SHORTCUTS@

    WriteUninstaller "$INSTDIR\uninstall.exe"
SectionEnd

Section "Uninstall"
@UNINSTALL@
SectionEnd
`

// placeholderSpan 模板中一个占位符的位置
type placeholderSpan struct {
	Name  string // 占位符名称（不含分隔符）
	Start int    // 在模板文本中的起始偏移
	End   int    // 结束偏移（不含）
}

// Template 解析后的脚本模板，启动时加载一次，只读使用
type Template struct {
	text  string            // 模板原文
	spans []placeholderSpan // 所有占位符位置，按出现顺序
}

// LoadTemplate 从文件加载并解析模板
//
// path 为空时使用内置模板。必需占位符缺失或重复时立即失败，
// 不会等到编译阶段才暴露问题。
func LoadTemplate(path string, logger *logrus.Logger) (*Template, error) {
	text := defaultTemplate

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取模板文件失败: %w", err)
		}
		text = string(data)
		logger.Debugf("模板加载成功: %s", path)
	} else {
		logger.Debug("使用内置模板")
	}

	tmpl := &Template{
		text:  text,
		spans: scanPlaceholders(text),
	}

	if err := tmpl.verify(); err != nil {
		return nil, err
	}

	return tmpl, nil
}

// scanPlaceholders 扫描模板中所有占位符的位置
func scanPlaceholders(text string) []placeholderSpan {
	matches := placeholderRegex.FindAllStringSubmatchIndex(text, -1)
	spans := make([]placeholderSpan, 0, len(matches))

	for _, m := range matches {
		spans = append(spans, placeholderSpan{
			Name:  text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		})
	}

	return spans
}

// verify 检查必需占位符各出现且仅出现一次
func (t *Template) verify() error {
	counts := make(map[string]int)
	for _, span := range t.spans {
		counts[span.Name]++
	}

	for _, name := range requiredPlaceholders {
		switch counts[name] {
		case 0:
			return fmt.Errorf("%w: @%s@ 未出现", ErrBadTemplate, name)
		case 1:
			// 正常
		default:
			return fmt.Errorf("%w: @%s@ 出现 %d 次，应为一次", ErrBadTemplate, name, counts[name])
		}
	}

	return nil
}

// Placeholders 返回模板中出现的占位符名称（按出现顺序，含未知项）
func (t *Template) Placeholders() []string {
	names := make([]string, 0, len(t.spans))
	for _, span := range t.spans {
		names = append(names, span.Name)
	}
	return names
}

// render 单遍替换：按预先定位的占位符位置拼接输出
//
// 替换值不会被二次扫描，即使值本身包含 @XXX@ 字样也原样保留。
// values 中没有的占位符原文透传。
func (t *Template) render(values map[string]string) string {
	var out []byte
	last := 0

	for _, span := range t.spans {
		out = append(out, t.text[last:span.Start]...)
		if value, known := values[span.Name]; known {
			out = append(out, value...)
		} else {
			out = append(out, t.text[span.Start:span.End]...)
		}
		last = span.End
	}
	out = append(out, t.text[last:]...)

	return string(out)
}
