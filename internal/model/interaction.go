package model

import "time"

// Interaction 代表一次 AI 练习场的问答交换。
// 这张表只追加不更新，同一 (email, question_number) 可以有任意多条记录，
// 自增主键即追加顺序。
type Interaction struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	Email          string    `gorm:"column:email;size:255;not null;index" json:"email"`
	QuestionNumber int       `gorm:"column:question_number;not null" json:"questionNumber"`
	Prompt         string    `gorm:"column:prompt;type:text;not null" json:"prompt"`
	Parameters     string    `gorm:"column:parameters;type:text;not null" json:"parameters"` // JSON 序列化的参数映射
	Response       string    `gorm:"column:response;type:text;not null" json:"response"`
	Timestamp      time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (Interaction) TableName() string {
	return "interactions"
}
