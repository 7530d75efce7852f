package script

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/sirupsen/logrus"
)

// 单条指令的行模板，统一缩进四空格以匹配 Section 体
var directiveTemplates = map[string]string{
	"file":      `    File {{ .Source | nsisQuote }}`,
	"setout":    `    SetOutPath {{ .Dir | nsisQuote }}`,
	"shortcut":  `    CreateShortcut {{ .Link | nsisQuote }} {{ .Target | nsisQuote }} "" {{ .Icon | nsisQuote }}`,
	"createdir": `    CreateDirectory {{ .Dir | nsisQuote }}`,
	"delete":    `    Delete {{ .Path | nsisQuote }}`,
	"rmdir":     `    RMDir {{ .Dir | nsisQuote }}`,
	"regstr":    `    WriteRegStr HKLM {{ .Key | nsisQuote }} {{ .Name | nsisQuote }} {{ .Value | nsisQuote }}`,
	"delregkey": `    DeleteRegKey HKLM {{ .Key | nsisQuote }}`,
}

// Engine 指令渲染引擎，负责将展开记录渲染为脚本行
type Engine struct {
	templates map[string]*template.Template // 已解析的指令模板
	funcMap   template.FuncMap              // 模板函数映射
	logger    *logrus.Logger                // 日志记录器
}

// NewEngine 创建指令渲染引擎
func NewEngine(logger *logrus.Logger) (*Engine, error) {
	engine := &Engine{
		templates: make(map[string]*template.Template),
		funcMap:   createFuncMap(),
		logger:    logger,
	}

	for name, text := range directiveTemplates {
		tmpl, err := template.New(name).Funcs(engine.funcMap).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("解析指令模板 %s 失败: %w", name, err)
		}
		engine.templates[name] = tmpl
	}

	return engine, nil
}

// createFuncMap 创建模板函数映射表
func createFuncMap() template.FuncMap {
	funcMap := sprig.TxtFuncMap() // 加载 Sprig 标准函数库

	// NSIS 特定函数
	funcMap["nsisQuote"] = nsisQuote // 转义并加引号
	funcMap["winPath"] = winPath     // 转换为反斜杠路径

	return funcMap
}

// nsisQuote 将值转义为带引号的 NSIS 字符串字面量
func nsisQuote(s string) string {
	return `"` + escapeValue(s) + `"`
}

// winPath 将斜杠路径转换为 Windows 反斜杠形式
func winPath(path string) string {
	return strings.ReplaceAll(path, "/", `\`)
}

// render 渲染单条指令
func (e *Engine) render(name string, data any) (string, error) {
	tmpl, exists := e.templates[name]
	if !exists {
		return "", fmt.Errorf("未知的指令模板: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染指令 %s 失败: %w", name, err)
	}

	return buf.String(), nil
}
