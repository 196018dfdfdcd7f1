package queue

import (
	"github.com/contentdeck/contentdeck/internal/repository"
	"github.com/contentdeck/contentdeck/internal/service"
)

type Queue struct {
	pr    repository.PostRepository
	cache service.PostCache
}

func NewQueue(pr repository.PostRepository, cache service.PostCache) *Queue {
	return &Queue{
		pr:    pr,
		cache: cache,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}
