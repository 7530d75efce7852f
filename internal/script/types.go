// Package script 将 BuildRequest 编译为 NSIS 安装脚本文本
package script

import (
	"errors"
)

// 脚本编译错误类型
var (
	ErrUnsafeValue = errors.New("值包含无法转义的字符")
	ErrBadTemplate = errors.New("模板缺少必需的占位符")
	ErrWriteFailed = errors.New("脚本写入失败")
)

// 模板占位符名称 - 封闭集合，未知占位符原样透传
const (
	PlaceholderAppName    = "APP_NAME"    // 程序名称（标量）
	PlaceholderInstallDir = "INSTALL_DIR" // 安装目录（标量）
	PlaceholderIcon       = "ICON"        // 图标路径（标量）
	PlaceholderFiles      = "FILES"       // 安装指令块
	PlaceholderShortcuts  = "SHORTCUTS"   // 快捷方式指令块
	PlaceholderUninstall  = "UNINSTALL"   // 卸载指令块
)

// requiredPlaceholders 编译器要求模板中各出现且仅出现一次的占位符
var requiredPlaceholders = []string{
	PlaceholderAppName,
	PlaceholderInstallDir,
	PlaceholderIcon,
	PlaceholderFiles,
	PlaceholderShortcuts,
	PlaceholderUninstall,
}

// DefaultOutputName 默认输出脚本文件名
const DefaultOutputName = "installer.nsi"

// installEntry 展开后的单条安装记录
type installEntry struct {
	Source    string // 构建机器上的源文件绝对路径
	RelPath   string // 相对安装根目录的目标路径（反斜杠分隔）
	TargetDir string // 目标子目录（相对安装根，空表示根目录）
}
