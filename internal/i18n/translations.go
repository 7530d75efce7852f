// Package i18n 提供界面文案的多语言查询
//
// 文案表内置法语和英语两套，法语为默认语言（沿用旧版行为）。
// 查询表不涉及脚本生成，生成的脚本内容与语言无关。
package i18n

import (
	"os"
	"strings"
)

// 支持的语言代码
const (
	LangFR = "fr"
	LangEN = "en"
)

var translations = map[string]map[string]string{
	LangFR: {
		"app_title":        "myNSIS - Générateur de script NSIS",
		"program_name":     "Nom du programme :",
		"install_path":     "Chemin d'installation :",
		"program_icon":     "Icône du programme (.ico) :",
		"add_files":        "Fichiers à installer :",
		"main_file":        "Fichier principal :",
		"confirm_generate": "Générer le script ?",
		"script_written":   "Script généré :",
		"add_another":      "Ajouter un autre fichier ?",
	},
	LangEN: {
		"app_title":        "myNSIS - NSIS Script Generator",
		"program_name":     "Program name:",
		"install_path":     "Installation path:",
		"program_icon":     "Program icon (.ico):",
		"add_files":        "Files to install:",
		"main_file":        "Main file:",
		"confirm_generate": "Generate the script?",
		"script_written":   "Script written:",
		"add_another":      "Add another file?",
	},
}

// Language 从环境变量推断界面语言
func Language() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(env)
		if value == "" {
			continue
		}
		lang := strings.ToLower(value)
		if idx := strings.IndexAny(lang, "_."); idx > 0 {
			lang = lang[:idx]
		}
		if _, supported := translations[lang]; supported {
			return lang
		}
	}
	return LangFR
}

// Text 按当前语言查询文案，未知键原样返回
func Text(key string) string {
	return TextIn(Language(), key)
}

// TextIn 按指定语言查询文案
func TextIn(lang, key string) string {
	table, exists := translations[lang]
	if !exists {
		table = translations[LangFR]
	}
	if text, exists := table[key]; exists {
		return text
	}
	return key
}
