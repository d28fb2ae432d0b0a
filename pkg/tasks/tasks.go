// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

// 归档任务类型：answers 快照或 playground 交互快照。
const (
	KindAnswers      = "answers"
	KindInteractions = "interactions"
)

// ArchiveTask 表示一次 CSV 快照归档任务。
// 每次成功写入答案或交互后发出，消费端重新生成该用户的
// CSV 快照并上传到对象存储。
type ArchiveTask struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
}
