package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbq191/mynsis-go/internal/i18n"
	"github.com/bbq191/mynsis-go/internal/settings"
)

// infoCmd 显示环境信息命令
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "显示环境和配置信息",
	Long: `显示当前运行环境的详细信息，包括：

• 界面语言
• 配置文件路径与内容
• 默认输出文件名

该命令主要用于诊断和了解当前运行环境。`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	fmt.Println("=== 环境信息 ===")
	fmt.Printf("界面语言: %s\n", i18n.Language())
	fmt.Printf("标题文案: %s\n", i18n.Text("app_title"))
	fmt.Println()

	store := settings.NewStore(settingsPath(), logger)
	fmt.Println("=== 配置 ===")
	fmt.Printf("配置文件: %s\n", store.Path())

	values, err := store.Load()
	if err != nil {
		return fmt.Errorf("读取配置失败: %w", err)
	}

	fmt.Printf("程序名称: %s\n", values[settings.KeyProgramName])
	fmt.Printf("安装目录: %s\n", values[settings.KeyInstallDir])
	fmt.Printf("图标文件: %s\n", values[settings.KeyIcon])

	return nil
}
