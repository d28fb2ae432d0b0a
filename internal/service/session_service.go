package service

import (
	"context"

	"course-qa-go/internal/model"
	"course-qa-go/internal/progress"
	"course-qa-go/internal/question"
	"course-qa-go/internal/repository"
	"course-qa-go/pkg/log"
)

// SessionView 是用户当前会话的一份快照：
// 指针所在的题目、已有答案和整体进度。
type SessionView struct {
	QuestionNumber int           `json:"questionNumber"`
	QuestionText   string        `json:"questionText"`
	ExistingAnswer *model.Answer `json:"existingAnswer,omitempty"`
	Progress       *Progress     `json:"progress"`
}

// SessionService 管理每个用户的当前题目指针。
// 指针是显式的会话状态：前进受顺序门控约束，后退到第 0 题为止，
// 指针本身不影响答案存储。
type SessionService interface {
	Current(ctx context.Context, email string) (*SessionView, error)
	Advance(ctx context.Context, email string) (*SessionView, error)
	Retreat(ctx context.Context, email string) (*SessionView, error)
	SyncAfterSubmit(ctx context.Context, email string, submitted int)
}

// sessionService 是 SessionService 接口的实现。
type sessionService struct {
	sessionRepo repository.SessionRepository
	answerSvc   AnswerService
	catalog     *question.Catalog
}

// NewSessionService 创建一个新的 SessionService 实例。
func NewSessionService(sessionRepo repository.SessionRepository, answerSvc AnswerService, catalog *question.Catalog) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		answerSvc:   answerSvc,
		catalog:     catalog,
	}
}

// view 组装指定下标的会话快照。
func (s *sessionService) view(email string, index int) (*SessionView, error) {
	text, err := s.catalog.Get(index)
	if err != nil {
		return nil, ErrQuestionOutOfRange
	}
	existing, err := s.answerSvc.GetAnswerForQuestion(email, index)
	if err != nil {
		return nil, err
	}
	prog, err := s.answerSvc.GetProgress(email)
	if err != nil {
		return nil, err
	}
	return &SessionView{
		QuestionNumber: index,
		QuestionText:   text,
		ExistingAnswer: existing,
		Progress:       prog,
	}, nil
}

// Current 返回用户当前停留的题目及其上下文。
func (s *sessionService) Current(ctx context.Context, email string) (*SessionView, error) {
	index, err := s.sessionRepo.GetCurrentQuestion(ctx, email)
	if err != nil {
		return nil, err
	}
	// 指针可能指向已缩减目录之外，回退到最后一题
	if index >= s.catalog.Count() {
		index = s.catalog.Count() - 1
	}
	return s.view(email, index)
}

// Advance 把指针向前移动一题。
// 只有当前题已作答且后面还有题时才允许。
func (s *sessionService) Advance(ctx context.Context, email string) (*SessionView, error) {
	index, err := s.sessionRepo.GetCurrentQuestion(ctx, email)
	if err != nil {
		return nil, err
	}
	prog, err := s.answerSvc.GetProgress(email)
	if err != nil {
		return nil, err
	}
	if !progress.CanAdvance(index, prog.LastAnswered, s.catalog.Count()) {
		return nil, ErrCannotAdvance
	}
	if err := s.sessionRepo.SetCurrentQuestion(ctx, email, index+1); err != nil {
		return nil, err
	}
	return s.view(email, index+1)
}

// Retreat 把指针向后移动一题，后退不受作答状态限制。
func (s *sessionService) Retreat(ctx context.Context, email string) (*SessionView, error) {
	index, err := s.sessionRepo.GetCurrentQuestion(ctx, email)
	if err != nil {
		return nil, err
	}
	if index <= 0 {
		return nil, ErrAtFirstQuestion
	}
	if err := s.sessionRepo.SetCurrentQuestion(ctx, email, index-1); err != nil {
		return nil, err
	}
	return s.view(email, index-1)
}

// SyncAfterSubmit 在成功提交后把指针推到下一题（最后一题除外）。
// 会话指针是瞬时状态，这里的失败只记日志，不影响已落盘的答案。
func (s *sessionService) SyncAfterSubmit(ctx context.Context, email string, submitted int) {
	if submitted+1 >= s.catalog.Count() {
		return
	}
	current, err := s.sessionRepo.GetCurrentQuestion(ctx, email)
	if err != nil {
		log.Warnf("[SessionService] 读取会话指针失败, email: %s, error: %v", email, err)
		return
	}
	if current != submitted {
		return
	}
	if err := s.sessionRepo.SetCurrentQuestion(ctx, email, submitted+1); err != nil {
		log.Warnf("[SessionService] 推进会话指针失败, email: %s, error: %v", email, err)
	}
}
