// Package wizard 提供交互式的生成向导
//
// 向导扮演规范中"表单"协作者的角色：逐步收集程序信息和
// 文件清单，构建 BuildRequest 后交给脚本编译器。
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sirupsen/logrus"

	"github.com/bbq191/mynsis-go/internal/i18n"
	"github.com/bbq191/mynsis-go/internal/manifest"
	"github.com/bbq191/mynsis-go/internal/script"
	"github.com/bbq191/mynsis-go/internal/settings"
)

// noMainChoice 不设置主文件时的选项文案
const noMainChoice = "(aucun / none)"

// Form 交互式生成向导
type Form struct {
	store        *settings.Store
	logger       *logrus.Logger
	templatePath string
	outputPath   string
}

// NewForm 创建生成向导
func NewForm(store *settings.Store, templatePath, outputPath string, logger *logrus.Logger) *Form {
	if outputPath == "" {
		outputPath = script.DefaultOutputName
	}
	return &Form{
		store:        store,
		logger:       logger,
		templatePath: templatePath,
		outputPath:   outputPath,
	}
}

// Run 执行完整的向导流程
func (f *Form) Run(ctx context.Context) error {
	fmt.Println(i18n.Text("app_title"))
	fmt.Println()

	saved, err := f.store.Load()
	if err != nil {
		f.logger.Warnf("读取历史配置失败，使用空白表单: %v", err)
		saved = map[string]string{}
	}

	builder := manifest.NewBuilder(f.logger)

	// 元数据录入，校验失败时重新询问
	meta, err := f.askMetadata(builder, saved)
	if err != nil {
		return err
	}

	// 文件清单录入
	if err := f.askFiles(builder); err != nil {
		return err
	}

	// 主文件选择
	if err := f.askMainFile(builder); err != nil {
		return err
	}

	// 确认并生成
	confirmed := false
	prompt := &survey.Confirm{Message: i18n.Text("confirm_generate"), Default: true}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return err
	}
	if !confirmed {
		f.logger.Info("用户取消生成")
		return nil
	}

	req, err := builder.Finalize()
	if err != nil {
		return err
	}

	tmpl, err := script.LoadTemplate(f.templatePath, f.logger)
	if err != nil {
		return err
	}

	compiler, err := script.NewCompiler(f.logger)
	if err != nil {
		return err
	}

	text, err := compiler.Compile(req, tmpl)
	if err != nil {
		return err
	}

	if err := script.WriteScript(text, f.outputPath); err != nil {
		return err
	}

	fmt.Printf("✨ %s %s\n", i18n.Text("script_written"), f.outputPath)

	// 记住本次参数，下次启动预填
	if err := f.store.Save(meta); err != nil {
		f.logger.Warnf("保存配置失败: %v", err)
	}

	return nil
}

// askMetadata 询问程序名称、安装目录和图标，直到校验通过
func (f *Form) askMetadata(builder *manifest.Builder, saved map[string]string) (map[string]string, error) {
	for {
		answers := struct {
			Name       string
			InstallDir string
			Icon       string
		}{}

		questions := []*survey.Question{
			{
				Name: "name",
				Prompt: &survey.Input{
					Message: i18n.Text("program_name"),
					Default: saved[settings.KeyProgramName],
				},
			},
			{
				Name: "installDir",
				Prompt: &survey.Input{
					Message: i18n.Text("install_path"),
					Default: saved[settings.KeyInstallDir],
				},
			},
			{
				Name: "icon",
				Prompt: &survey.Input{
					Message: i18n.Text("program_icon"),
					Default: saved[settings.KeyIcon],
				},
			},
		}

		if err := survey.Ask(questions, &answers); err != nil {
			return nil, err
		}

		if err := builder.SetMetadata(answers.Name, answers.InstallDir, answers.Icon); err != nil {
			if errors.Is(err, manifest.ErrValidation) {
				fmt.Printf("❌ %v\n", err)
				continue
			}
			return nil, err
		}

		return map[string]string{
			settings.KeyProgramName: answers.Name,
			settings.KeyInstallDir:  answers.InstallDir,
			settings.KeyIcon:        answers.Icon,
		}, nil
	}
}

// askFiles 循环录入文件，至少一个
func (f *Form) askFiles(builder *manifest.Builder) error {
	fmt.Println(i18n.Text("add_files"))

	for {
		var path string
		if err := survey.AskOne(&survey.Input{Message: ">"}, &path); err != nil {
			return err
		}

		if path != "" {
			if err := builder.AddFile(path); err != nil {
				fmt.Printf("❌ %v\n", err)
			}
		}

		if len(builder.Files()) == 0 {
			// 清单为空无法生成，继续询问
			continue
		}

		more := false
		prompt := &survey.Confirm{Message: i18n.Text("add_another"), Default: false}
		if err := survey.AskOne(prompt, &more); err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// askMainFile 从清单中选择主文件，可以不设置
func (f *Form) askMainFile(builder *manifest.Builder) error {
	options := append([]string{noMainChoice}, builder.Files()...)

	var choice string
	prompt := &survey.Select{
		Message: i18n.Text("main_file"),
		Options: options,
		Default: noMainChoice,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return err
	}

	if choice == noMainChoice {
		return nil
	}

	return builder.SetMain(choice)
}
