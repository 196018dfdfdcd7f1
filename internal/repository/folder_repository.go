package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/contentdeck/contentdeck/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)
	List(ctx context.Context, userID string) ([]*models.Folder, error)
	Update(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	RemoveWithReassign(ctx context.Context, id, userID string, moveToFolderID *string) error
	ExistsByName(ctx context.Context, userID, name, excludeID string) (bool, error)
}

type folderRepository struct {
	db *sql.DB
}

func NewFolderRepository(db *sql.DB) FolderRepository {
	return &folderRepository{db: db}
}

const folderColumns = `id, user_id, name, description, color, created_at, updated_at`

func scanFolder(row interface{ Scan(...any) error }) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(&folder.ID, &folder.UserID, &folder.Name, &folder.Description,
		&folder.Color, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	query := `
		INSERT INTO folders (id, user_id, name, description, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + folderColumns

	created, err := scanFolder(r.db.QueryRowContext(ctx, query, id, folder.UserID,
		folder.Name, folder.Description, folder.Color))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return created, nil
}

func (r *folderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = $1 AND user_id = $2`

	folder, err := scanFolder(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return folder, nil
}

func (r *folderRepository) List(ctx context.Context, userID string) ([]*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, rows.Err()
}

func (r *folderRepository) Update(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	query := `
		UPDATE folders
		SET name = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING ` + folderColumns

	updated, err := scanFolder(r.db.QueryRowContext(ctx, query, folder.Name,
		folder.Description, folder.Color, time.Now(), folder.ID, folder.UserID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return updated, nil
}

// RemoveWithReassign moves every post out of the folder, to the destination
// folder or to no folder at all, then deletes the folder record. Both steps
// run in one transaction so a crash cannot leave a half-migrated folder.
func (r *folderRepository) RemoveWithReassign(ctx context.Context, id, userID string, moveToFolderID *string) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	reassign := `
		UPDATE posts
		SET folder_id = $1, updated_at = $2
		WHERE folder_id = $3 AND user_id = $4
	`
	if _, err = tx.ExecContext(ctx, reassign, moveToFolderID, time.Now(), id, userID); err != nil {
		slog.Info(err.Error())
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM folders WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		slog.Info(err.Error())
		return err
	}

	return tx.Commit()
}

func (r *folderRepository) ExistsByName(ctx context.Context, userID, name, excludeID string) (bool, error) {
	query := `SELECT 1 FROM folders WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3`

	var result int
	err := r.db.QueryRowContext(ctx, query, userID, name, excludeID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}
