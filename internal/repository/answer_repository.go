// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"database/sql"
	"errors"

	"course-qa-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnswerRepository 接口定义了答案数据的持久化操作。
// 同一 (email, question_number) 至多保留一行，后写覆盖先写。
type AnswerRepository interface {
	Upsert(answer *model.Answer) error
	FindAllByEmail(email string) ([]model.Answer, error)
	FindByKey(email string, questionNumber int) (*model.Answer, error)
	LastAnsweredNumber(email string) (int, error)
}

// answerRepository 是 AnswerRepository 接口的 GORM 实现。
type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository 创建一个新的 AnswerRepository 实例。
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Upsert 以 (email, question_number) 为 key 插入或覆盖一条答案。
// 依赖唯一索引在单条语句内完成原子 upsert，
// 并发的两次保存不会互相丢失对方的行。
func (r *answerRepository) Upsert(answer *model.Answer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}, {Name: "question_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer", "submitted_at"}),
	}).Create(answer).Error
}

// FindAllByEmail 按题号升序返回该用户的全部答案。
// 没有任何记录时返回空切片，而不是错误。
func (r *answerRepository) FindAllByEmail(email string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("email = ?", email).Order("question_number ASC").Find(&answers).Error
	return answers, err
}

// FindByKey 查找该用户对指定题目的答案；不存在时返回 (nil, nil)。
func (r *answerRepository) FindByKey(email string, questionNumber int) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Where("email = ? AND question_number = ?", email, questionNumber).First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// LastAnsweredNumber 返回该用户已作答的最大题号；
// 从未作答时返回 -1。
func (r *answerRepository) LastAnsweredNumber(email string) (int, error) {
	var max sql.NullInt64
	err := r.db.Model(&model.Answer{}).
		Where("email = ?", email).
		Select("MAX(question_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}
