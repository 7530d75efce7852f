package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// normalizePath 将路径规范化为绝对路径
func normalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: 路径为空", ErrInvalidPath)
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return abs, nil
}

// dedupKey 计算去重键，大小写不敏感的文件系统上忽略大小写
func dedupKey(normalized string) string {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.ToLower(normalized)
	}
	return normalized
}

// AddFile 添加文件或目录到清单
//
// 路径必须指向存在且可读的文件/目录。重复添加返回 ErrDuplicateEntry
// （策略选择：显式报错而非静默忽略，便于界面提示用户）。
func (b *Builder) AddFile(path string) error {
	normalized, err := normalizePath(path)
	if err != nil {
		return err
	}

	// 检查文件存在且可访问
	if _, err := os.Stat(normalized); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPath, normalized)
	}

	key := dedupKey(normalized)
	if _, exists := b.index[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, normalized)
	}

	b.index[key] = len(b.files)
	b.files = append(b.files, normalized)
	b.logger.Debugf("清单新增文件: %s", normalized)

	return nil
}

// RemoveFile 从清单移除文件
//
// 被移除的文件若是当前主文件，主文件标记一并清除。
func (b *Builder) RemoveFile(path string) error {
	normalized, err := normalizePath(path)
	if err != nil {
		return err
	}

	key := dedupKey(normalized)
	pos, exists := b.index[key]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, normalized)
	}

	removed := b.files[pos]
	b.files = append(b.files[:pos], b.files[pos+1:]...)
	delete(b.index, key)

	// 重建后续条目的下标
	for i := pos; i < len(b.files); i++ {
		b.index[dedupKey(b.files[i])] = i
	}

	if b.mainFile != "" && dedupKey(b.mainFile) == dedupKey(removed) {
		b.mainFile = ""
		b.logger.Info("主文件已被移除，请重新指定")
	}

	b.logger.Debugf("清单移除文件: %s", removed)
	return nil
}

// SetMain 指定快捷方式目标文件，必须已在清单中
func (b *Builder) SetMain(path string) error {
	normalized, err := normalizePath(path)
	if err != nil {
		return err
	}

	pos, exists := b.index[dedupKey(normalized)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, normalized)
	}

	b.mainFile = b.files[pos]
	b.logger.Debugf("设定主文件: %s", b.mainFile)
	return nil
}

// SetMetadata 设置程序名称、安装目录和图标
//
// 校验全部通过才写入状态，任一字段不合法时清单保持不变。
func (b *Builder) SetMetadata(programName, installDir, iconPath string) error {
	if err := b.validator.check(programName, installDir, iconPath); err != nil {
		return err
	}

	b.programName = programName
	b.installDir = installDir
	b.iconPath = iconPath

	b.logger.Debugf("元数据已更新: name=%s dir=%s icon=%s", programName, installDir, iconPath)
	return nil
}

// Files 返回清单当前文件列表的副本（按添加顺序）
func (b *Builder) Files() []string {
	files := make([]string, len(b.files))
	copy(files, b.files)
	return files
}

// MainFile 返回当前主文件，未设置时为空字符串
func (b *Builder) MainFile() string {
	return b.mainFile
}

// Finalize 生成不可变的 BuildRequest 快照
//
// 程序名、安装目录未设置或清单为空时返回 ErrIncompleteRequest。
func (b *Builder) Finalize() (*BuildRequest, error) {
	switch {
	case b.programName == "":
		return nil, fmt.Errorf("%w: 缺少程序名称", ErrIncompleteRequest)
	case b.installDir == "":
		return nil, fmt.Errorf("%w: 缺少安装目录", ErrIncompleteRequest)
	case len(b.files) == 0:
		return nil, fmt.Errorf("%w: 清单为空", ErrIncompleteRequest)
	}

	files := make([]string, len(b.files))
	copy(files, b.files)

	req := &BuildRequest{
		ProgramName: b.programName,
		InstallDir:  b.installDir,
		IconPath:    b.iconPath,
		Files:       files,
		MainFile:    b.mainFile,
	}

	b.logger.Infof("清单构建完成: %d 个条目", len(files))
	return req, nil
}
