package repository

import (
	"course-qa-go/internal/model"

	"gorm.io/gorm"
)

// InteractionRepository 接口定义了练习场交互日志的持久化操作。
// 这张表只追加，Append 从不覆盖已有记录。
type InteractionRepository interface {
	Append(interaction *model.Interaction) error
	FindAllByEmail(email string) ([]model.Interaction, error)
	FindAll() ([]model.Interaction, error)
}

// interactionRepository 是 InteractionRepository 接口的 GORM 实现。
type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository 创建一个新的 InteractionRepository 实例。
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// Append 追加一条新的交互记录。
func (r *interactionRepository) Append(interaction *model.Interaction) error {
	return r.db.Create(interaction).Error
}

// FindAllByEmail 按追加顺序返回该用户的全部交互记录。
func (r *interactionRepository) FindAllByEmail(email string) ([]model.Interaction, error) {
	var interactions []model.Interaction
	err := r.db.Where("email = ?", email).Order("id ASC").Find(&interactions).Error
	return interactions, err
}

// FindAll 按追加顺序返回所有用户的全部交互记录。
// 这是管理端视图，权限控制由调用方负责。
func (r *interactionRepository) FindAll() ([]model.Interaction, error) {
	var interactions []model.Interaction
	err := r.db.Order("id ASC").Find(&interactions).Error
	return interactions, err
}
