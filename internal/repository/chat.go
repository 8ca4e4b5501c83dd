package repository

import (
	"context"

	"github.com/pep299/video-summarizer/internal/azure"
)

type ChatRepository interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type chatRepository struct {
	client *azure.Client
}

func NewChatRepository(client *azure.Client) ChatRepository {
	return &chatRepository{
		client: client,
	}
}

func (c *chatRepository) Complete(ctx context.Context, system, user string) (string, error) {
	return c.client.Complete(ctx, system, user)
}
