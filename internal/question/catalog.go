// Package question 提供固定顺序的题目目录。
// 目录由配置文件提供，服务启动后只读，下标从 0 开始。
package question

import (
	"fmt"

	"github.com/spf13/viper"
)

// Catalog 是一组按固定顺序排列的题目文本。
type Catalog struct {
	questions []string
}

// Load 从 YAML 文件加载题目目录。
// 文件格式为顶层的 questions 字符串列表。
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取题目文件失败: %w", err)
	}

	questions := v.GetStringSlice("questions")
	if len(questions) == 0 {
		return nil, fmt.Errorf("题目文件 '%s' 中没有任何题目", path)
	}

	return &Catalog{questions: questions}, nil
}

// NewCatalog 直接从题目列表构建目录，便于测试。
func NewCatalog(questions []string) *Catalog {
	copied := make([]string, len(questions))
	copy(copied, questions)
	return &Catalog{questions: copied}
}

// Count 返回题目总数。
func (c *Catalog) Count() int {
	return len(c.questions)
}

// Get 返回下标为 index 的题目文本；下标越界时返回错误。
func (c *Catalog) Get(index int) (string, error) {
	if index < 0 || index >= len(c.questions) {
		return "", fmt.Errorf("题目下标 %d 超出范围 [0, %d)", index, len(c.questions))
	}
	return c.questions[index], nil
}

// All 返回全部题目文本的副本。
func (c *Catalog) All() []string {
	copied := make([]string, len(c.questions))
	copy(copied, c.questions)
	return copied
}
