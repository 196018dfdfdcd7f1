package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	CreateBatch(ctx context.Context, posts []*models.Post) ([]*models.Post, error)
	GetByID(ctx context.Context, id, userID string) (*models.Post, error)
	List(ctx context.Context, userID string, filter transfer.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Remove(ctx context.Context, id, userID string) error
	Schedule(ctx context.Context, id, userID string, at time.Time) (*models.Post, error)
	Unschedule(ctx context.Context, id, userID string) (*models.Post, error)
	MoveToFolder(ctx context.Context, id, userID string, folderID *string) (*models.Post, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.Post, error)
	GetForPublish(ctx context.Context, id string) (*models.Post, error)
	UpdateStatus(ctx context.Context, id, status string, publishedAt *time.Time) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, caption, hashtags, platform, folder_id, image_prompt, image_url, status, scheduled_at, published_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.UserID, &post.Caption, &post.Hashtags, &post.Platform,
		&post.FolderID, &post.ImagePrompt, &post.ImageURL, &post.Status,
		&post.ScheduledAt, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

const insertPostQuery = `
	INSERT INTO posts (id, user_id, caption, hashtags, platform, folder_id, image_prompt, status, scheduled_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + postColumns

func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	created, err := scanPost(r.db.QueryRowContext(ctx, insertPostQuery, id, post.UserID,
		post.Caption, post.Hashtags, post.Platform, post.FolderID, post.ImagePrompt,
		post.Status, post.ScheduledAt))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return created, nil
}

// CreateBatch inserts all posts in one transaction, so a generation batch
// either fully lands or leaves no partial trace.
func (r *postRepository) CreateBatch(ctx context.Context, posts []*models.Post) ([]*models.Post, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	created := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		var id string
		id, err = gonanoid.New()
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}

		var inserted *models.Post
		inserted, err = scanPost(tx.QueryRowContext(ctx, insertPostQuery, id, post.UserID,
			post.Caption, post.Hashtags, post.Platform, post.FolderID, post.ImagePrompt,
			post.Status, post.ScheduledAt))
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		created = append(created, inserted)
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *postRepository) GetByID(ctx context.Context, id, userID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND user_id = $2`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) List(ctx context.Context, userID string, filter transfer.PostFilter) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1`
	args := []any{userID}

	if filter.FolderID != "" {
		args = append(args, filter.FolderID)
		query += fmt.Sprintf(" AND folder_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Platform != "" {
		args = append(args, filter.Platform)
		query += fmt.Sprintf(" AND platform = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND caption ILIKE $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		UPDATE posts
		SET caption = $1,
			hashtags = $2,
			platform = $3,
			folder_id = $4,
			image_prompt = $5,
			status = $6,
			scheduled_at = $7,
			updated_at = $8
		WHERE id = $9 AND user_id = $10
		RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRowContext(ctx, query, post.Caption, post.Hashtags,
		post.Platform, post.FolderID, post.ImagePrompt, post.Status, post.ScheduledAt,
		time.Now(), post.ID, post.UserID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return updated, nil
}

func (r *postRepository) Remove(ctx context.Context, id, userID string) error {
	query := `DELETE FROM posts WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Schedule(ctx context.Context, id, userID string, at time.Time) (*models.Post, error) {
	query := `
		UPDATE posts
		SET scheduled_at = $1, status = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, at, models.PostStatusScheduled, time.Now(), id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) Unschedule(ctx context.Context, id, userID string) (*models.Post, error) {
	query := `
		UPDATE posts
		SET scheduled_at = NULL, status = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, models.PostStatusDraft, time.Now(), id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) MoveToFolder(ctx context.Context, id, userID string, folderID *string) (*models.Post, error) {
	query := `
		UPDATE posts
		SET folder_id = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, folderID, time.Now(), id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 AND scheduled_at <= $2`

	rows, err := r.db.QueryContext(ctx, query, models.PostStatusScheduled, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// GetForPublish looks a post up without the ownership filter. It serves the
// publish worker only and must never back a caller-facing read.
func (r *postRepository) GetForPublish(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, id, status string, publishedAt *time.Time) error {
	query := `
		UPDATE posts
		SET status = $1, published_at = $2, updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, status, publishedAt, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
