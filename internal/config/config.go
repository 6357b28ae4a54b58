// Package config 读取和保存 exprlex.toml
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	diag "github.com/tangzhangming/exprlex/internal/errors"
	"github.com/tangzhangming/exprlex/internal/i18n"
	"github.com/tangzhangming/exprlex/internal/lexer"
)

// 常量定义
const (
	FileName = "exprlex.toml" // 配置文件名

	FormatText = "text"
	FormatJSON = "json"
)

// Config 配置
type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// LexerConfig 词法分析配置
type LexerConfig struct {
	// Operators 运算符表，顺序有意义：先列出的先匹配
	Operators []string `toml:"operators"`

	// DeferredLeadingCheck 开头缺少字面量时不立即报错
	DeferredLeadingCheck bool `toml:"deferred_leading_check"`

	// ContextWidth 诊断上下文长度，0 表示默认值 30
	ContextWidth int `toml:"context_width"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	Color    string `toml:"color"`    // auto | always | never
	Language string `toml:"language"` // en | zh
	Format   string `toml:"format"`   // text | json
}

// LogConfig 日志配置
type LogConfig struct {
	Debug bool   `toml:"debug"`
	File  string `toml:"file"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Lexer: LexerConfig{
			Operators:    lexer.DefaultOperators(),
			ContextWidth: lexer.DefaultContextWidth,
		},
		Output: OutputConfig{
			Color:    string(diag.ColorAuto),
			Language: string(i18n.LangEnglish),
			Format:   FormatText,
		},
	}
}

// Load 从文件加载配置，未出现的字段保留默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse 解析配置内容，拒绝未知字段
func Parse(data []byte) (*Config, error) {
	config := Default()
	config.Lexer.Operators = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Lexer.Operators == nil {
		config.Lexer.Operators = lexer.DefaultOperators()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate 检查配置，一次返回所有问题
func (c *Config) Validate() error {
	var err error

	seen := make(map[string]int, len(c.Lexer.Operators))
	for i, op := range c.Lexer.Operators {
		if op == "" {
			err = multierr.Append(err, errors.New(i18n.T(i18n.ErrConfigEmptyOperator, i)))
			continue
		}
		if _, dup := seen[op]; dup {
			err = multierr.Append(err, errors.New(i18n.T(i18n.ErrConfigDupOperator, i, op)))
			continue
		}
		seen[op] = i
	}

	if i, j, ok := lexer.ShadowedOperator(c.Lexer.Operators); ok {
		ops := c.Lexer.Operators
		err = multierr.Append(err, errors.New(i18n.T(i18n.ErrConfigShadowed, j, ops[j], ops[i])))
	}

	if c.Lexer.ContextWidth < 0 {
		err = multierr.Append(err, errors.New(i18n.T(i18n.ErrConfigContextWidth, c.Lexer.ContextWidth)))
	}

	if !diag.ColorMode(c.Output.Color).Valid() {
		err = multierr.Append(err, errors.New(i18n.T(i18n.ErrConfigColor, c.Output.Color)))
	}

	switch c.Output.Format {
	case "", FormatText, FormatJSON:
	default:
		err = multierr.Append(err, errors.New(i18n.T(i18n.ErrConfigFormat, c.Output.Format)))
	}

	return err
}

// LexerOptions 把配置转换成词法分析器选项
func (c *Config) LexerOptions(logger *zap.Logger) []lexer.Option {
	opts := []lexer.Option{
		lexer.WithContextWidth(c.Lexer.ContextWidth),
		lexer.WithLanguage(i18n.ParseLanguage(c.Output.Language)),
	}
	if logger != nil {
		opts = append(opts, lexer.WithLogger(logger))
	}
	if c.Lexer.DeferredLeadingCheck {
		opts = append(opts, lexer.WithDeferredLeadingCheck())
	}
	return opts
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	content := "# exprlex 配置文件\n# lexer.operators 按顺序匹配，较长的运算符要放在前面\n\n" + string(data)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	// 如果是文件，从其所在目录开始
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	dir := startPath
	if !info.IsDir() {
		dir = filepath.Dir(startPath)
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	// 向上查找
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Resolve 按优先级得到配置：显式路径 > 从 startPath 向上查找 > 默认值
func Resolve(explicit, startPath string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = FindConfigFile(startPath)
	}
	if path == "" {
		return Default(), "", nil
	}

	config, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return config, path, nil
}
