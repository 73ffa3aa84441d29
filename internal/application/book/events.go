package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/pkg/logger"
)

// 图书变更事件的routing key
const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
)

// EventPublisher 图书变更事件发布（实现见pkg/mq.Publisher）
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BookEvent 事件内容
type BookEvent struct {
	BookID     uint      `json:"book_id"`
	Name       string    `json:"name,omitempty"`
	GenreID    uint      `json:"genre_id,omitempty"`
	Image      string    `json:"image,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func eventFrom(dto *BookDTO) BookEvent {
	return BookEvent{BookID: dto.ID, Name: dto.Name, GenreID: dto.GenreID, Image: dto.Image}
}

// publish 发布失败只记日志，不影响已提交的结果
func (o Options) publish(ctx context.Context, routingKey string, event BookEvent) {
	if o.Events == nil {
		return
	}
	event.OccurredAt = time.Now()
	if err := o.Events.Publish(ctx, routingKey, event); err != nil {
		logger.Warn("发布图书事件失败", err, map[string]interface{}{
			"routing_key": routingKey,
			"book_id":     event.BookID,
		})
	}
}
