package commands

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bbq191/mynsis-go/internal/manifest"
	"github.com/bbq191/mynsis-go/internal/script"
)

var (
	genName       string
	genInstallDir string
	genIcon       string
	genMain       string
	genTemplate   string
	genOutput     string
	genDryRun     bool
)

// generateCmd 非交互式生成命令
var generateCmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "生成安装脚本",
	Long: `根据命令行参数直接生成 NSIS 安装脚本。

位置参数是要打包的文件或目录，目录会递归展开并在
目标机器上保留子目录结构。

示例:
  mynsis generate --name MonApp --install-dir 'C:\Program Files\MonApp' \
      --main app.exe app.exe readme.txt
  mynsis generate --name Demo --install-dir 'C:\Demo' --dry-run assets\ demo.exe`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genName, "name", "n", "", "程序名称")
	generateCmd.Flags().StringVarP(&genInstallDir, "install-dir", "d", "", "目标机器上的安装目录")
	generateCmd.Flags().StringVar(&genIcon, "icon", "", "图标文件 (.ico)")
	generateCmd.Flags().StringVarP(&genMain, "main", "m", "", "快捷方式指向的主文件")
	generateCmd.Flags().StringVarP(&genTemplate, "template", "t", "", "脚本模板路径（默认使用内置模板）")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", script.DefaultOutputName, "输出脚本文件名")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "只打印脚本内容，不写文件")

	generateCmd.MarkFlagRequired("name")
	generateCmd.MarkFlagRequired("install-dir")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	logger.Info("🎯 开始脚本生成流程")

	builder := manifest.NewBuilder(logger)

	if err := builder.SetMetadata(genName, genInstallDir, genIcon); err != nil {
		return fmt.Errorf("元数据无效: %w", err)
	}

	// 逐个加入清单，进度条反映展开进度
	bar := progressbar.NewOptions(len(args),
		progressbar.OptionSetDescription("展开文件清单"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	for _, path := range args {
		if err := builder.AddFile(path); err != nil {
			return fmt.Errorf("添加文件失败: %w", err)
		}
		bar.Add(1)
	}
	bar.Finish()

	if genMain != "" {
		if err := builder.SetMain(genMain); err != nil {
			return fmt.Errorf("设置主文件失败: %w", err)
		}
	}

	// 生成前复查源文件仍然可读
	if _, err := manifest.CheckSources(context.Background(), builder.Files()); err != nil {
		return err
	}

	req, err := builder.Finalize()
	if err != nil {
		return err
	}

	tmpl, err := script.LoadTemplate(genTemplate, logger)
	if err != nil {
		return err
	}

	compiler, err := script.NewCompiler(logger)
	if err != nil {
		return err
	}

	text, err := compiler.Compile(req, tmpl)
	if err != nil {
		return fmt.Errorf("脚本编译失败: %w", err)
	}

	if genDryRun {
		fmt.Println(text)
		logger.Info("📋 预览模式：未写入文件")
		return nil
	}

	if err := script.WriteScript(text, genOutput); err != nil {
		return err
	}

	fmt.Printf("✨ 脚本已生成: %s (%d 个清单条目)\n", genOutput, len(req.Files))
	return nil
}
