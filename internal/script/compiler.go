package script

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bbq191/mynsis-go/internal/manifest"
)

// arpKeyPrefix 添加/删除程序注册表键前缀
const arpKeyPrefix = `Software\Microsoft\Windows\CurrentVersion\Uninstall\`

// Compiler 脚本编译器
//
// Compile 是纯函数：相同的 BuildRequest 和模板永远产生
// 逐字节相同的输出，没有时间戳，没有随机顺序。
type Compiler struct {
	engine *Engine
	logger *logrus.Logger
}

// NewCompiler 创建脚本编译器实例
func NewCompiler(logger *logrus.Logger) (*Compiler, error) {
	engine, err := NewEngine(logger)
	if err != nil {
		return nil, err
	}

	return &Compiler{
		engine: engine,
		logger: logger,
	}, nil
}

// Compile 将 BuildRequest 渲染为完整的安装脚本文本
//
// 不写磁盘，落盘由调用方通过 WriteScript 决定。
func (c *Compiler) Compile(req *manifest.BuildRequest, tmpl *Template) (string, error) {
	// 标量值安全检查
	scalars := []struct {
		field string
		value string
	}{
		{"程序名称", req.ProgramName},
		{"安装目录", req.InstallDir},
		{"图标路径", req.IconPath},
	}
	for _, s := range scalars {
		if err := checkValue(s.field, s.value); err != nil {
			return "", err
		}
	}

	// 展开文件清单（含延迟绑定的可用性检查）
	entries, err := c.expandEntries(req.Files)
	if err != nil {
		return "", err
	}

	// 图标随程序一起安装，快捷方式引用安装后的副本
	iconEntry, hasIcon := c.iconEntry(req, entries)
	if hasIcon {
		entries = append(entries, iconEntry)
	}

	installBlock, err := c.buildInstallBlock(req, entries)
	if err != nil {
		return "", err
	}

	shortcutBlock, err := c.buildShortcutBlock(req)
	if err != nil {
		return "", err
	}

	uninstallBlock, err := c.buildUninstallBlock(req, entries)
	if err != nil {
		return "", err
	}

	values := map[string]string{
		PlaceholderAppName:    escapeValue(req.ProgramName),
		PlaceholderInstallDir: escapeValue(req.InstallDir),
		PlaceholderIcon:       escapeValue(req.IconPath),
		PlaceholderFiles:      installBlock,
		PlaceholderShortcuts:  shortcutBlock,
		PlaceholderUninstall:  uninstallBlock,
	}

	c.logger.Infof("脚本编译完成: %d 条安装记录", len(entries))
	return tmpl.render(values), nil
}

// expandEntries 将清单条目展开为逐文件的安装记录
//
// 目录条目递归展开，子目录结构在目标机器上原样保留。
// 渲染时源文件可能已被移动或删除，任何不可读条目都会使
// 整次编译失败，不存在被静默跳过的条目。
func (c *Compiler) expandEntries(files []string) ([]installEntry, error) {
	var entries []installEntry

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", manifest.ErrSourceFileUnavailable, path)
		}

		if !info.IsDir() {
			entries = append(entries, installEntry{
				Source:  path,
				RelPath: filepath.Base(path),
			})
			continue
		}

		// 目录条目：WalkDir 按字典序遍历，输出顺序稳定
		root := filepath.Base(path)
		walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("%w: %s", manifest.ErrSourceFileUnavailable, p)
			}
			if d.IsDir() {
				return nil
			}
			if !d.Type().IsRegular() {
				c.logger.Warnf("跳过非常规文件: %s", p)
				return nil
			}

			rel, err := filepath.Rel(path, p)
			if err != nil {
				return fmt.Errorf("%w: %s", manifest.ErrSourceFileUnavailable, p)
			}

			relWin := root + `\` + winPath(filepath.ToSlash(rel))
			entries = append(entries, installEntry{
				Source:    p,
				RelPath:   relWin,
				TargetDir: parentDir(relWin),
			})
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	return entries, nil
}

// iconEntry 构造图标的安装记录
//
// 图标已作为普通清单条目安装在根目录时不再重复安装。
func (c *Compiler) iconEntry(req *manifest.BuildRequest, entries []installEntry) (installEntry, bool) {
	if req.IconPath == "" {
		return installEntry{}, false
	}

	rel := filepath.Base(req.IconPath)
	for _, entry := range entries {
		if entry.TargetDir == "" && strings.EqualFold(entry.RelPath, rel) {
			return installEntry{}, false
		}
	}

	return installEntry{Source: req.IconPath, RelPath: rel}, true
}

// buildInstallBlock 生成安装指令块
//
// 目标子目录变化时插入 SetOutPath，文件按清单顺序逐条 File。
// 末尾附带添加/删除程序的注册表登记指令。
func (c *Compiler) buildInstallBlock(req *manifest.BuildRequest, entries []installEntry) (string, error) {
	var lines []string
	currentDir := ""

	appendLine := func(name string, data any) error {
		line, err := c.engine.render(name, data)
		if err != nil {
			return err
		}
		lines = append(lines, line)
		return nil
	}

	for _, entry := range entries {
		if entry.TargetDir != currentDir {
			dir := `$INSTDIR`
			if entry.TargetDir != "" {
				dir += `\` + entry.TargetDir
			}
			if err := appendLine("setout", map[string]string{"Dir": dir}); err != nil {
				return "", err
			}
			currentDir = entry.TargetDir
		}

		if err := appendLine("file", map[string]string{"Source": entry.Source}); err != nil {
			return "", err
		}
	}

	// 注册表登记：显示名称直接内联，卸载列表中可见
	regKey := arpKeyPrefix + req.ProgramName
	regValues := [][2]string{
		{"DisplayName", req.ProgramName},
		{"InstallLocation", `$INSTDIR`},
		{"UninstallString", `$INSTDIR\uninstall.exe`},
		{"DisplayIcon", c.displayIcon(req)},
	}
	for _, kv := range regValues {
		data := map[string]string{"Key": regKey, "Name": kv[0], "Value": kv[1]}
		if err := appendLine("regstr", data); err != nil {
			return "", err
		}
	}

	return strings.Join(lines, "\n"), nil
}

// displayIcon 确定添加/删除程序列表中显示的图标
func (c *Compiler) displayIcon(req *manifest.BuildRequest) string {
	if req.IconPath != "" {
		return `$INSTDIR\` + filepath.Base(req.IconPath)
	}
	if req.MainFile != "" {
		return `$INSTDIR\` + filepath.Base(req.MainFile)
	}
	return `$INSTDIR\uninstall.exe`
}

// buildShortcutBlock 生成快捷方式指令块
//
// 主文件未设置时块为空（合法状态，生成的安装器没有快捷方式）；
// 设置时恰好两条 CreateShortcut：桌面和开始菜单，
// 都指向主文件安装后的副本而非构建机器上的原路径。
func (c *Compiler) buildShortcutBlock(req *manifest.BuildRequest) (string, error) {
	if req.MainFile == "" {
		return "", nil
	}

	target := `$INSTDIR\` + filepath.Base(req.MainFile)
	icon := target
	if req.IconPath != "" {
		icon = `$INSTDIR\` + filepath.Base(req.IconPath)
	}

	name := req.ProgramName
	menuDir := `$SMPROGRAMS\` + name

	var lines []string
	directives := []struct {
		tmpl string
		data any
	}{
		{"shortcut", map[string]string{
			"Link":   `$DESKTOP\` + name + `.lnk`,
			"Target": target,
			"Icon":   icon,
		}},
		{"createdir", map[string]string{"Dir": menuDir}},
		{"shortcut", map[string]string{
			"Link":   menuDir + `\` + name + `.lnk`,
			"Target": target,
			"Icon":   icon,
		}},
	}

	for _, d := range directives {
		line, err := c.engine.render(d.tmpl, d.data)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}

// buildUninstallBlock 生成卸载指令块
//
// 每条安装记录对应恰好一条 Delete。子目录在其包含的文件全部
// 删除之后才 RMDir：目录集按字典序降序排列，子目录名以父目录
// 为前缀，必然排在父目录之前。
func (c *Compiler) buildUninstallBlock(req *manifest.BuildRequest, entries []installEntry) (string, error) {
	var lines []string

	appendLine := func(name string, data any) error {
		line, err := c.engine.render(name, data)
		if err != nil {
			return err
		}
		lines = append(lines, line)
		return nil
	}

	// 逐文件删除，保持安装顺序
	for _, entry := range entries {
		if err := appendLine("delete", map[string]string{"Path": `$INSTDIR\` + entry.RelPath}); err != nil {
			return "", err
		}
	}

	// 快捷方式清理
	if req.MainFile != "" {
		name := req.ProgramName
		menuDir := `$SMPROGRAMS\` + name
		shortcutPaths := []string{
			`$DESKTOP\` + name + `.lnk`,
			menuDir + `\` + name + `.lnk`,
		}
		for _, p := range shortcutPaths {
			if err := appendLine("delete", map[string]string{"Path": p}); err != nil {
				return "", err
			}
		}
		if err := appendLine("rmdir", map[string]string{"Dir": menuDir}); err != nil {
			return "", err
		}
	}

	// 卸载器自身与注册表登记
	if err := appendLine("delete", map[string]string{"Path": `$INSTDIR\uninstall.exe`}); err != nil {
		return "", err
	}
	if err := appendLine("delregkey", map[string]string{"Key": arpKeyPrefix + req.ProgramName}); err != nil {
		return "", err
	}

	// 子目录降序删除：文件已清空，子在前父在后
	for _, dir := range collectDirs(entries) {
		if err := appendLine("rmdir", map[string]string{"Dir": `$INSTDIR\` + dir}); err != nil {
			return "", err
		}
	}

	if err := appendLine("rmdir", map[string]string{"Dir": `$INSTDIR`}); err != nil {
		return "", err
	}

	return strings.Join(lines, "\n"), nil
}

// collectDirs 收集所有创建过的目标子目录及其父链，字典序降序
func collectDirs(entries []installEntry) []string {
	seen := make(map[string]bool)

	for _, entry := range entries {
		dir := entry.TargetDir
		for dir != "" {
			seen[dir] = true
			dir = parentDir(dir)
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))

	return dirs
}

// parentDir 返回反斜杠路径的父目录，顶层返回空
func parentDir(rel string) string {
	idx := strings.LastIndexByte(rel, '\\')
	if idx < 0 {
		return ""
	}
	return rel[:idx]
}
