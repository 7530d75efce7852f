package manifest

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// winPathRegex 匹配带盘符的 Windows 绝对路径，如 C:\Program Files\App
var winPathRegex = regexp.MustCompile(`^[A-Za-z]:\\[^<>|?*"]*$`)

// icoMagic ICO 文件头（reserved=0, type=1）
var icoMagic = []byte{0x00, 0x00, 0x01, 0x00}

// metadataFields 元数据校验用的标签结构
type metadataFields struct {
	ProgramName string `validate:"required,min=1"`
	InstallDir  string `validate:"required,winpath"`
	IconPath    string `validate:"omitempty,icofile"`
}

// metadataValidator 基于 go-playground/validator 的元数据验证器
type metadataValidator struct {
	v      *validator.Validate
	logger *logrus.Logger
}

// newMetadataValidator 创建元数据验证器并注册自定义规则
func newMetadataValidator(logger *logrus.Logger) *metadataValidator {
	v := validator.New()

	// Windows 绝对路径验证
	v.RegisterValidation("winpath", func(fl validator.FieldLevel) bool {
		return winPathRegex.MatchString(fl.Field().String())
	})

	// 图标文件验证：存在、.ico 扩展名、ICO 文件头
	v.RegisterValidation("icofile", func(fl validator.FieldLevel) bool {
		return isValidIcon(fl.Field().String())
	})

	return &metadataValidator{
		v:      v,
		logger: logger,
	}
}

// isValidIcon 检查图标文件的存在性和格式
func isValidIcon(path string) bool {
	if !strings.EqualFold(pathExt(path), ".ico") {
		return false
	}

	header := make([]byte, 4)
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if _, err := f.Read(header); err != nil {
		return false
	}

	return bytes.Equal(header, icoMagic)
}

// pathExt 提取扩展名（不依赖平台分隔符，路径可能是 Windows 形式）
func pathExt(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}

// check 校验元数据字段，报告第一个不合法的字段
func (mv *metadataValidator) check(programName, installDir, iconPath string) error {
	fields := metadataFields{
		ProgramName: strings.TrimSpace(programName),
		InstallDir:  installDir,
		IconPath:    iconPath,
	}

	if err := mv.v.Struct(fields); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		// 只报告第一个字段错误，便于界面定位
		first := validationErrors[0]
		return fmt.Errorf("%w: %s", ErrValidation, describeFieldError(first))
	}

	return nil
}

// describeFieldError 将字段错误转换为用户可读信息
func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.StructField() {
	case "ProgramName":
		return "程序名称不能为空"
	case "InstallDir":
		return fmt.Sprintf("安装目录必须是合法的绝对路径: %v", fieldErr.Value())
	case "IconPath":
		return fmt.Sprintf("图标文件不存在或不是有效的 .ico 文件: %v", fieldErr.Value())
	default:
		return fmt.Sprintf("字段 %s 验证失败: %s", fieldErr.StructField(), fieldErr.Tag())
	}
}
