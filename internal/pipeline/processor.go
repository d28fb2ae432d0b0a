// Package pipeline 实现了 CSV 快照的归档管道。
// 每次答案或交互成功落盘后，Kafka 消费端调用这里的 Processor
// 重新生成该用户的 CSV 快照并覆盖写入对象存储。
// 对象存储只是镜像，MySQL 始终是唯一的数据源。
package pipeline

import (
	"context"
	"fmt"

	"course-qa-go/internal/config"
	"course-qa-go/internal/service"
	"course-qa-go/pkg/log"
	"course-qa-go/pkg/storage"
	"course-qa-go/pkg/tasks"
)

// Processor 消费归档任务并产出 CSV 快照。
type Processor struct {
	exportSvc service.ExportService
	minioCfg  config.MinIOConfig
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(exportSvc service.ExportService, minioCfg config.MinIOConfig) *Processor {
	return &Processor{
		exportSvc: exportSvc,
		minioCfg:  minioCfg,
	}
}

// Process 处理一个归档任务：重新导出 CSV 并上传覆盖旧快照。
// 返回错误时由消费端决定重试。
func (p *Processor) Process(ctx context.Context, task tasks.ArchiveTask) error {
	var data []byte
	var objectName string
	var err error

	switch task.Kind {
	case tasks.KindAnswers:
		data, err = p.exportSvc.AnswersCSV(task.Email)
		objectName = service.AnswerObjectName(task.Email)
	case tasks.KindInteractions:
		data, err = p.exportSvc.InteractionsCSV(task.Email)
		objectName = service.InteractionObjectName(task.Email)
	default:
		return fmt.Errorf("未知的归档任务类型: %s", task.Kind)
	}
	if err != nil {
		return fmt.Errorf("导出 CSV 失败: %w", err)
	}

	if err := storage.PutObject(ctx, p.minioCfg.BucketName, objectName, "text/csv", data); err != nil {
		return fmt.Errorf("上传快照失败: %w", err)
	}

	log.Infof("归档完成: %s (%d bytes)", objectName, len(data))
	return nil
}
