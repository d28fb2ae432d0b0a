package service

import (
	"strings"
	"time"

	"course-qa-go/internal/model"
	"course-qa-go/internal/progress"
	"course-qa-go/internal/question"
	"course-qa-go/internal/repository"
	"course-qa-go/pkg/log"
	"course-qa-go/pkg/tasks"
)

// ArchivePublisher 把归档任务投递到消息队列。
// 归档失败只记日志，从不影响提交本身。
type ArchivePublisher interface {
	Publish(task tasks.ArchiveTask) error
}

// Progress 是某个用户的答题进度快照。
type Progress struct {
	LastAnswered   int     `json:"lastAnswered"`
	TotalQuestions int     `json:"totalQuestions"`
	Fraction       float64 `json:"fraction"`
	Completed      bool    `json:"completed"`
}

// AnswerService 接口定义了所有与答案相关的业务操作。
type AnswerService interface {
	SubmitAnswer(email string, questionNumber int, text string) (*model.Answer, error)
	GetAnswers(email string) ([]model.Answer, error)
	GetAnswerForQuestion(email string, questionNumber int) (*model.Answer, error)
	GetProgress(email string) (*Progress, error)
}

// answerService 是 AnswerService 接口的实现。
type answerService struct {
	answerRepo repository.AnswerRepository
	catalog    *question.Catalog
	publisher  ArchivePublisher
}

// NewAnswerService 创建一个新的 AnswerService 实例。
// publisher 可以为 nil，此时不产生归档任务（测试场景）。
func NewAnswerService(answerRepo repository.AnswerRepository, catalog *question.Catalog, publisher ArchivePublisher) AnswerService {
	return &answerService{
		answerRepo: answerRepo,
		catalog:    catalog,
		publisher:  publisher,
	}
}

// SubmitAnswer 处理一次答案提交。
// 1. 校验题号在目录范围内、正文去空白后非空；
// 2. 查出该用户最后作答的题号，按顺序门控拒绝跳题；
// 3. 以 (email, question_number) 为 key 原子 upsert，重复提交覆盖
//    正文并刷新提交时间；
// 4. 投递 CSV 归档任务（尽力而为）。
func (s *answerService) SubmitAnswer(email string, questionNumber int, text string) (*model.Answer, error) {
	if questionNumber < 0 || questionNumber >= s.catalog.Count() {
		return nil, ErrQuestionOutOfRange
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrAnswerEmpty
	}

	lastAnswered, err := s.answerRepo.LastAnsweredNumber(email)
	if err != nil {
		return nil, err
	}
	if !progress.CanSubmit(questionNumber, lastAnswered) {
		return nil, ErrOutOfOrder
	}

	answer := &model.Answer{
		Email:          email,
		QuestionNumber: questionNumber,
		Answer:         trimmed,
		SubmittedAt:    time.Now(),
	}
	if err := s.answerRepo.Upsert(answer); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(tasks.ArchiveTask{Email: email, Kind: tasks.KindAnswers}); err != nil {
			log.Warnf("[AnswerService] 投递答案归档任务失败, email: %s, error: %v", email, err)
		}
	}

	return answer, nil
}

// GetAnswers 按题号升序返回该用户的全部答案。
func (s *answerService) GetAnswers(email string) ([]model.Answer, error) {
	return s.answerRepo.FindAllByEmail(email)
}

// GetAnswerForQuestion 返回该用户对指定题目的已有答案；没有时返回 (nil, nil)。
func (s *answerService) GetAnswerForQuestion(email string, questionNumber int) (*model.Answer, error) {
	if questionNumber < 0 || questionNumber >= s.catalog.Count() {
		return nil, ErrQuestionOutOfRange
	}
	return s.answerRepo.FindByKey(email, questionNumber)
}

// GetProgress 返回该用户的进度快照。
func (s *answerService) GetProgress(email string) (*Progress, error) {
	lastAnswered, err := s.answerRepo.LastAnsweredNumber(email)
	if err != nil {
		return nil, err
	}
	total := s.catalog.Count()
	return &Progress{
		LastAnswered:   lastAnswered,
		TotalQuestions: total,
		Fraction:       progress.Fraction(lastAnswered, total),
		Completed:      lastAnswered >= total-1,
	}, nil
}
