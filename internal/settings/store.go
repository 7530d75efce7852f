// Package settings 提供生成参数的本地持久化
//
// 界面启动时读取上次使用的程序名、安装目录和图标路径，
// 成功生成后写回，保持与旧版 config.json 的键名兼容。
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// 与旧版保持一致的配置键名
const (
	KeyProgramName = "nom_programme"
	KeyInstallDir  = "chemin_installation"
	KeyIcon        = "icone"
)

// DefaultFileName 默认配置文件名
const DefaultFileName = "config.json"

// Store viper 封装的键值存储
type Store struct {
	path   string
	logger *logrus.Logger
}

// NewStore 创建设置存储，path 为空时使用工作目录下的 config.json
func NewStore(path string, logger *logrus.Logger) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path 返回配置文件路径
func (s *Store) Path() string {
	return s.path
}

// Load 读取全部设置键值
//
// 配置文件不存在时返回空值默认集，不视为错误。
func (s *Store) Load() (map[string]string, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	defaults := map[string]string{
		KeyProgramName: "",
		KeyInstallDir:  "",
		KeyIcon:        "",
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.logger.Debugf("配置文件不存在，使用默认值: %s", s.path)
		return defaults, nil
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	values := defaults
	for key := range values {
		if v.IsSet(key) {
			values[key] = v.GetString(key)
		}
	}

	s.logger.Debugf("配置加载完成: %s", s.path)
	return values, nil
}

// Save 写回全部设置键值
func (s *Store) Save(values map[string]string) error {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	for key, value := range values {
		v.Set(key, value)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建配置目录失败: %w", err)
		}
	}

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("保存配置文件失败: %w", err)
	}

	s.logger.Infof("配置已保存: %s", s.path)
	return nil
}
