package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"course-qa-go/internal/model"
	"course-qa-go/pkg/llm"
	"course-qa-go/pkg/tasks"
)

// --- fake answer repository ---

// fakeAnswerRepo 是 AnswerRepository 的内存实现，
// 语义与数据库 upsert 一致：同 key 覆盖，不同 key 追加。
type fakeAnswerRepo struct {
	rows map[string]map[int]model.Answer
	// failAll 模拟存储不可用
	failAll bool
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{rows: make(map[string]map[int]model.Answer)}
}

var errStorage = errors.New("storage unavailable")

func (f *fakeAnswerRepo) Upsert(answer *model.Answer) error {
	if f.failAll {
		return errStorage
	}
	if f.rows[answer.Email] == nil {
		f.rows[answer.Email] = make(map[int]model.Answer)
	}
	f.rows[answer.Email][answer.QuestionNumber] = *answer
	return nil
}

func (f *fakeAnswerRepo) FindAllByEmail(email string) ([]model.Answer, error) {
	if f.failAll {
		return nil, errStorage
	}
	var out []model.Answer
	for _, a := range f.rows[email] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionNumber < out[j].QuestionNumber })
	return out, nil
}

func (f *fakeAnswerRepo) FindByKey(email string, questionNumber int) (*model.Answer, error) {
	if f.failAll {
		return nil, errStorage
	}
	if a, ok := f.rows[email][questionNumber]; ok {
		copied := a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAnswerRepo) LastAnsweredNumber(email string) (int, error) {
	if f.failAll {
		return 0, errStorage
	}
	last := -1
	for n := range f.rows[email] {
		if n > last {
			last = n
		}
	}
	return last, nil
}

// --- fake interaction repository ---

type fakeInteractionRepo struct {
	records []model.Interaction
	failAll bool
}

func (f *fakeInteractionRepo) Append(in *model.Interaction) error {
	if f.failAll {
		return errStorage
	}
	f.records = append(f.records, *in)
	return nil
}

func (f *fakeInteractionRepo) FindAllByEmail(email string) ([]model.Interaction, error) {
	if f.failAll {
		return nil, errStorage
	}
	var out []model.Interaction
	for _, r := range f.records {
		if r.Email == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) FindAll() ([]model.Interaction, error) {
	if f.failAll {
		return nil, errStorage
	}
	out := make([]model.Interaction, len(f.records))
	copy(out, f.records)
	return out, nil
}

// --- fake session repository ---

type fakeSessionRepo struct {
	pointers map[string]int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{pointers: make(map[string]int)}
}

func (f *fakeSessionRepo) GetCurrentQuestion(_ context.Context, email string) (int, error) {
	return f.pointers[email], nil
}

func (f *fakeSessionRepo) SetCurrentQuestion(_ context.Context, email string, index int) error {
	f.pointers[email] = index
	return nil
}

// --- mock llm client ---

type mockLLM struct {
	completeFn func(ctx context.Context, model, prompt string, gen llm.GenerationParams) (string, error)
	calls      int
}

func (m *mockLLM) Complete(ctx context.Context, model, prompt string, gen llm.GenerationParams) (string, error) {
	m.calls++
	if m.completeFn != nil {
		return m.completeFn(ctx, model, prompt, gen)
	}
	return fmt.Sprintf("echo: %s", prompt), nil
}

// --- fake archive publisher ---

type fakePublisher struct {
	published []tasks.ArchiveTask
}

func (f *fakePublisher) Publish(task tasks.ArchiveTask) error {
	f.published = append(f.published, task)
	return nil
}
