package service

import (
	"errors"
	"testing"
	"time"

	"course-qa-go/internal/question"
	"course-qa-go/pkg/tasks"
)

func testCatalog(n int) *question.Catalog {
	questions := make([]string, n)
	for i := range questions {
		questions[i] = "question"
	}
	return question.NewCatalog(questions)
}

func TestSubmitAnswerUpsert(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo, testCatalog(5), nil)

	first, err := svc.SubmitAnswer("a@x.com", 0, "first version")
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	time.Sleep(time.Millisecond) // 保证第二次提交的时间戳更晚
	second, err := svc.SubmitAnswer("a@x.com", 0, "second version")
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	// 同 key 两次提交只保留一行，正文和时间戳都来自第二次
	answers, err := svc.GetAnswers("a@x.com")
	if err != nil {
		t.Fatalf("GetAnswers failed: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("expected exactly one answer, got %d", len(answers))
	}
	if answers[0].Answer != "second version" {
		t.Fatalf("expected second text to win, got %q", answers[0].Answer)
	}
	if !answers[0].SubmittedAt.After(first.SubmittedAt) {
		t.Fatalf("expected second timestamp after first")
	}
	if answers[0].SubmittedAt != second.SubmittedAt {
		t.Fatalf("stored timestamp does not match returned answer")
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo, testCatalog(5), nil)

	if _, err := svc.SubmitAnswer("a@x.com", 0, "   \n\t "); !errors.Is(err, ErrAnswerEmpty) {
		t.Fatalf("expected ErrAnswerEmpty for blank text, got %v", err)
	}
	if _, err := svc.SubmitAnswer("a@x.com", 5, "text"); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Fatalf("expected ErrQuestionOutOfRange for index 5, got %v", err)
	}
	if _, err := svc.SubmitAnswer("a@x.com", -1, "text"); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Fatalf("expected ErrQuestionOutOfRange for index -1, got %v", err)
	}

	// 被拒绝的提交不应在存储中留下任何痕迹
	answers, _ := svc.GetAnswers("a@x.com")
	if len(answers) != 0 {
		t.Fatalf("rejected submissions must not be stored, got %d rows", len(answers))
	}
}

func TestSubmitAnswerSequentialGate(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo, testCatalog(5), nil)

	// a@x.com 提交第 0 题的 "42"
	if _, err := svc.SubmitAnswer("a@x.com", 0, "42"); err != nil {
		t.Fatalf("submit question 0 failed: %v", err)
	}
	prog, err := svc.GetProgress("a@x.com")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if prog.LastAnswered != 0 {
		t.Fatalf("last answered = %d, want 0", prog.LastAnswered)
	}

	// 直接提交第 2 题被拒绝
	if _, err := svc.SubmitAnswer("a@x.com", 2, "skip"); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder for question 2, got %v", err)
	}

	// 提交第 1 题成功，进度推进到 1
	if _, err := svc.SubmitAnswer("a@x.com", 1, "next"); err != nil {
		t.Fatalf("submit question 1 failed: %v", err)
	}
	prog, _ = svc.GetProgress("a@x.com")
	if prog.LastAnswered != 1 {
		t.Fatalf("last answered = %d, want 1", prog.LastAnswered)
	}
}

func TestLastAnsweredMatchesGetAll(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo, testCatalog(5), nil)

	// 空状态：-1 且列表为空
	prog, err := svc.GetProgress("new@x.com")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if prog.LastAnswered != -1 {
		t.Fatalf("last answered for fresh user = %d, want -1", prog.LastAnswered)
	}
	answers, _ := svc.GetAnswers("new@x.com")
	if len(answers) != 0 {
		t.Fatalf("fresh user should have no answers")
	}

	// 按序答三题后，最大题号与 get_all 一致且有序
	for i := 0; i < 3; i++ {
		if _, err := svc.SubmitAnswer("new@x.com", i, "answer"); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}
	prog, _ = svc.GetProgress("new@x.com")
	answers, _ = svc.GetAnswers("new@x.com")
	if prog.LastAnswered != 2 || len(answers) != 3 {
		t.Fatalf("last=%d len=%d, want 2 and 3", prog.LastAnswered, len(answers))
	}
	for i, a := range answers {
		if a.QuestionNumber != i {
			t.Fatalf("answers not ordered by question number: %v", answers)
		}
	}
}

func TestGetProgressFraction(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo, testCatalog(5), nil)

	prog, _ := svc.GetProgress("a@x.com")
	if prog.Fraction != 0.2 || prog.Completed {
		t.Fatalf("fresh progress = %+v", prog)
	}

	for i := 0; i < 5; i++ {
		if _, err := svc.SubmitAnswer("a@x.com", i, "answer"); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}
	prog, _ = svc.GetProgress("a@x.com")
	if prog.Fraction != 1.0 || !prog.Completed {
		t.Fatalf("completed progress = %+v", prog)
	}
}

func TestSubmitAnswerPublishesArchiveTask(t *testing.T) {
	repo := newFakeAnswerRepo()
	pub := &fakePublisher{}
	svc := NewAnswerService(repo, testCatalog(5), pub)

	if _, err := svc.SubmitAnswer("a@x.com", 0, "42"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one archive task, got %d", len(pub.published))
	}
	if pub.published[0].Email != "a@x.com" || pub.published[0].Kind != tasks.KindAnswers {
		t.Fatalf("unexpected task: %+v", pub.published[0])
	}

	// 被拒绝的提交不触发归档
	_, _ = svc.SubmitAnswer("a@x.com", 3, "skip")
	if len(pub.published) != 1 {
		t.Fatalf("rejected submission must not publish, got %d tasks", len(pub.published))
	}
}

func TestSubmitAnswerStorageUnavailable(t *testing.T) {
	repo := newFakeAnswerRepo()
	repo.failAll = true
	svc := NewAnswerService(repo, testCatalog(5), nil)

	// 存储故障必须原样上抛，而不是伪装成空结果
	if _, err := svc.SubmitAnswer("a@x.com", 0, "42"); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, err := svc.GetProgress("a@x.com"); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error from GetProgress, got %v", err)
	}
}
