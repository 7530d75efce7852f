package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bbq191/mynsis-go/internal/script"
	"github.com/bbq191/mynsis-go/internal/settings"
	"github.com/bbq191/mynsis-go/internal/wizard"
)

var (
	wizTemplate string
	wizOutput   string
)

// wizardCmd 交互式生成向导命令
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "交互式生成向导",
	Long: `通过交互式问答收集程序信息和文件清单并生成脚本。

上次使用的程序名、安装目录和图标会自动预填，
生成成功后写回配置文件。`,
	RunE: runWizard,
}

func init() {
	rootCmd.AddCommand(wizardCmd)

	wizardCmd.Flags().StringVarP(&wizTemplate, "template", "t", "", "脚本模板路径（默认使用内置模板）")
	wizardCmd.Flags().StringVarP(&wizOutput, "output", "o", script.DefaultOutputName, "输出脚本文件名")
}

func runWizard(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	store := settings.NewStore(settingsPath(), logger)
	form := wizard.NewForm(store, wizTemplate, wizOutput, logger)

	return form.Run(context.Background())
}
