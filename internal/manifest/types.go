// Package manifest 维护安装清单（BuildRequest）的构建与校验
package manifest

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// 清单操作错误类型 - 调用方通过 errors.Is 区分处理
var (
	ErrInvalidPath           = errors.New("路径无效或不可读")
	ErrDuplicateEntry        = errors.New("文件已在清单中")
	ErrNotFound              = errors.New("清单中不存在该文件")
	ErrValidation            = errors.New("元数据验证失败")
	ErrIncompleteRequest     = errors.New("清单信息不完整")
	ErrSourceFileUnavailable = errors.New("源文件不可用")
)

// BuildRequest 一次生成操作的完整输入快照
//
// 由 Builder.Finalize 创建，Script Compiler 只读消费，
// 生成完成后即丢弃，不跨多次生成复用。
type BuildRequest struct {
	ProgramName string   // 程序显示名称
	InstallDir  string   // 目标机器上的安装目录（路径模板）
	IconPath    string   // 构建机器上的图标文件路径，可为空
	Files       []string // 待打包文件/目录的绝对路径，保持添加顺序
	MainFile    string   // 快捷方式目标文件，必须是 Files 的成员或为空
}

// Builder 清单构建器，对应用户逐步添加/删除文件的交互过程
type Builder struct {
	programName string
	installDir  string
	iconPath    string
	files       []string          // 保持插入顺序
	index       map[string]int    // 规范化路径 -> files 下标
	mainFile    string
	validator   *metadataValidator
	logger      *logrus.Logger
}

// NewBuilder 创建新的清单构建器实例
func NewBuilder(logger *logrus.Logger) *Builder {
	return &Builder{
		files:     make([]string, 0),
		index:     make(map[string]int),
		validator: newMetadataValidator(logger),
		logger:    logger,
	}
}
