package script

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteScript 将脚本文本落盘
//
// 先写同目录临时文件再原子改名，写入中途失败不会留下
// 半截脚本，已有的旧脚本也不会被破坏。
func WriteScript(text, path string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".installer-*.nsi")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return nil
}
