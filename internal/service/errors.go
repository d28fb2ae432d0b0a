// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 业务校验类错误。它们在写入任何存储之前返回，
// handler 层据此映射为 4xx 状态码；其余错误一律视为存储或上游故障。
var (
	// ErrAnswerEmpty 表示去除空白后答案内容为空。
	ErrAnswerEmpty = errors.New("答案内容不能为空")
	// ErrOutOfOrder 表示试图跳过未作答的题目提交。
	ErrOutOfOrder = errors.New("请按顺序作答")
	// ErrQuestionOutOfRange 表示题目下标不在目录范围内。
	ErrQuestionOutOfRange = errors.New("题目下标超出范围")
	// ErrPromptEmpty 表示练习场提示词为空。
	ErrPromptEmpty = errors.New("提示词不能为空")
	// ErrAssistanceDisabled 表示用户选择了无 AI 辅助档位。
	ErrAssistanceDisabled = errors.New("当前辅助档位不允许调用 AI")
	// ErrCannotAdvance 表示当前题目未作答或已在最后一题，无法前进。
	ErrCannotAdvance = errors.New("请先提交当前题目的答案再前进")
	// ErrAtFirstQuestion 表示已在第一题，无法后退。
	ErrAtFirstQuestion = errors.New("已经是第一题")
	// ErrUpstream 表示文本生成服务调用失败，底层原因随错误链一并返回。
	ErrUpstream = errors.New("AI 服务调用失败")
	// ErrEmailExists 表示注册时邮箱已被占用。
	ErrEmailExists = errors.New("邮箱已注册")
	// ErrInvalidCredentials 表示登录凭证不正确。
	ErrInvalidCredentials = errors.New("邮箱或密码不正确")
)
