package model

import "time"

// Answer 代表一个用户对一道题的唯一答案。
// (email, question_number) 上的唯一索引保证同一 key 至多一行，
// 重复提交通过数据库级 upsert 原地覆盖正文和提交时间。
type Answer struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	Email          string    `gorm:"column:email;size:255;not null;uniqueIndex:uk_answer_key" json:"email"`
	QuestionNumber int       `gorm:"column:question_number;not null;uniqueIndex:uk_answer_key" json:"questionNumber"`
	Answer         string    `gorm:"column:answer;type:text;not null" json:"answer"`
	SubmittedAt    time.Time `gorm:"column:submitted_at;not null" json:"submittedAt"`
}

func (Answer) TableName() string {
	return "answers"
}
