// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"course-qa-go/internal/config"
	"course-qa-go/pkg/database"
	"course-qa-go/pkg/log"
	"course-qa-go/pkg/tasks"

	"github.com/segmentio/kafka-go"
)

// TaskProcessor defines the interface for any service that can process a task.
// This decouples the Kafka consumer from the concrete pipeline implementation.
type TaskProcessor interface {
	Process(ctx context.Context, task tasks.ArchiveTask) error
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者。
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
}

// ProduceArchiveTask 发送一个 CSV 归档任务到 Kafka。
// 归档是尽力而为的镜像，失败由调用方记录日志，不影响用户请求。
func ProduceArchiveTask(task tasks.ArchiveTask) error {
	taskBytes, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return producer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(task.Email),
			Value: taskBytes,
		},
	)
}

// Publisher 以实现业务层投递接口的形式包装 ProduceArchiveTask。
type Publisher struct{}

// NewPublisher 创建一个新的 Publisher 实例。
func NewPublisher() *Publisher { return &Publisher{} }

// Publish 把归档任务写入 Kafka。
func (*Publisher) Publish(task tasks.ArchiveTask) error {
	return ProduceArchiveTask(task)
}

// StartConsumer 启动一个 Kafka 消费者来处理归档任务。
func StartConsumer(cfg config.KafkaConfig, processor TaskProcessor) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  "course-qa-go-consumer",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(context.Background())
		if err != nil {
			log.Error("从 Kafka 读取消息失败", err)
			break
		}

		var task tasks.ArchiveTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			log.Errorf("无法解析 Kafka 消息: %v, value: %s", err, string(m.Value))
			// 消息格式错误，直接提交，避免阻塞队列
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("提交错误消息失败: %v", err)
			}
			continue
		}

		if err := processor.Process(context.Background(), task); err != nil {
			log.Errorf("处理归档任务失败: email=%s, kind=%s, error: %v", task.Email, task.Kind, err)
			// 使用 Redis 计数失败次数，达到阈值后提交 offset 终止重试
			attemptsKey := fmt.Sprintf("kafka:attempts:%s:%s", task.Kind, task.Email)
			attempts, incErr := database.RDB.Incr(context.Background(), attemptsKey).Result()
			if incErr != nil {
				// Redis 异常时保守处理：不提交 offset，让 Kafka 重试
				continue
			}
			_ = database.RDB.Expire(context.Background(), attemptsKey, 24*time.Hour).Err()
			if attempts >= 3 {
				log.Errorf("归档任务多次失败(>=3)，提交 offset 终止重试: email=%s", task.Email)
				if err := r.CommitMessages(context.Background(), m); err != nil {
					log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
				}
			}
		} else {
			// 清理失败计数，任务成功后手动提交 offset
			_ = database.RDB.Del(context.Background(), fmt.Sprintf("kafka:attempts:%s:%s", task.Kind, task.Email)).Err()
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
			}
		}
	}

	if err := r.Close(); err != nil {
		log.Fatalf("关闭 Kafka 消费者失败: %v", err)
	}
}
