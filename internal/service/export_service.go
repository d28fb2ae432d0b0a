package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"course-qa-go/internal/model"
	"course-qa-go/internal/repository"
	"course-qa-go/pkg/storage"
)

// 归档对象的 key 布局，每个用户一份快照，覆盖写。
const (
	AnswersObjectPrefix      = "answers/"
	InteractionsObjectPrefix = "playground/"
)

// ExportService 把答案和交互记录序列化为可下载的 CSV。
// 导出是对 get_all 结果的纯格式化变换，不产生新的持久状态。
type ExportService interface {
	AnswersCSV(email string) ([]byte, error)
	InteractionsCSV(filterEmail string) ([]byte, error)
	AnswerArchiveURL(email string, expiry time.Duration) (string, error)
}

// exportService 是 ExportService 接口的实现。
type exportService struct {
	answerRepo      repository.AnswerRepository
	interactionRepo repository.InteractionRepository
	bucketName      string
}

// NewExportService 创建一个新的 ExportService 实例。
func NewExportService(answerRepo repository.AnswerRepository, interactionRepo repository.InteractionRepository, bucketName string) ExportService {
	return &exportService{
		answerRepo:      answerRepo,
		interactionRepo: interactionRepo,
		bucketName:      bucketName,
	}
}

// AnswerObjectName 返回某个用户答案快照的对象名。
func AnswerObjectName(email string) string {
	return fmt.Sprintf("%s%s_answers.csv", AnswersObjectPrefix, email)
}

// InteractionObjectName 返回某个用户交互快照的对象名。
func InteractionObjectName(email string) string {
	return fmt.Sprintf("%s%s_interactions.csv", InteractionsObjectPrefix, email)
}

// AnswersCSV 把该用户的全部答案序列化为 CSV。
// 列布局：email, question_number, answer, submitted_at。
func (s *exportService) AnswersCSV(email string) ([]byte, error) {
	answers, err := s.answerRepo.FindAllByEmail(email)
	if err != nil {
		return nil, err
	}
	return MarshalAnswersCSV(answers)
}

// InteractionsCSV 把交互记录序列化为 CSV。
// filterEmail 非空时只导出该用户的记录，为空时导出全部。
// 列布局：email, question_number, prompt, parameters, response, timestamp。
func (s *exportService) InteractionsCSV(filterEmail string) ([]byte, error) {
	var interactions []model.Interaction
	var err error
	if filterEmail != "" {
		interactions, err = s.interactionRepo.FindAllByEmail(filterEmail)
	} else {
		interactions, err = s.interactionRepo.FindAll()
	}
	if err != nil {
		return nil, err
	}
	return MarshalInteractionsCSV(interactions)
}

// AnswerArchiveURL 为该用户最近一次归档的答案快照生成下载链接。
func (s *exportService) AnswerArchiveURL(email string, expiry time.Duration) (string, error) {
	return storage.GetPresignedURL(s.bucketName, AnswerObjectName(email), expiry)
}

// MarshalAnswersCSV 是答案列表到 CSV 的纯变换。
func MarshalAnswersCSV(answers []model.Answer) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"email", "question_number", "answer", "submitted_at"}); err != nil {
		return nil, err
	}
	for _, a := range answers {
		record := []string{
			a.Email,
			strconv.Itoa(a.QuestionNumber),
			a.Answer,
			a.SubmittedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalInteractionsCSV 是交互列表到 CSV 的纯变换。
// parameters 列保持 JSON 序列化的原样。
func MarshalInteractionsCSV(interactions []model.Interaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"email", "question_number", "prompt", "parameters", "response", "timestamp"}); err != nil {
		return nil, err
	}
	for _, in := range interactions {
		record := []string{
			in.Email,
			strconv.Itoa(in.QuestionNumber),
			in.Prompt,
			in.Parameters,
			in.Response,
			in.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
