package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbq191/mynsis-go/internal/manifest"
	"github.com/bbq191/mynsis-go/internal/script"
)

var valTemplate string

// validateCmd 预检命令
var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "预检模板和源文件",
	Long: `在实际生成之前检查输入是否完备。

检查项目:
  • 模板占位符完整性（必需占位符各出现一次）
  • 源文件可读性（并发检查全部条目）

示例:
  mynsis validate app.exe readme.txt
  mynsis validate --template custom.nsi.tmpl assets\`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&valTemplate, "template", "t", "", "要检查的模板路径（默认检查内置模板）")
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	logger.Info("开始预检流程")

	// 模板占位符审计
	tmpl, err := script.LoadTemplate(valTemplate, logger)
	if err != nil {
		fmt.Printf("❌ 模板检查失败: %v\n", err)
		return err
	}
	fmt.Printf("✅ 模板检查通过，占位符: %v\n", tmpl.Placeholders())

	if len(args) == 0 {
		return nil
	}

	// 源文件并发预检
	statuses, err := manifest.CheckSources(context.Background(), args)
	if statuses != nil {
		for _, status := range statuses {
			if status.Available {
				fmt.Printf("✅ %s\n", status.Path)
			} else {
				fmt.Printf("❌ %s\n", status.Path)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("部分源文件不可用: %w", err)
	}

	fmt.Printf("✅ %d 个源文件全部可用\n", len(args))
	return nil
}
