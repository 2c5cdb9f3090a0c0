package database

import "novelshelf/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Follow{},
		&models.Novel{},
		&models.NovelSubmission{},
		&models.NovelListEntry{},
		&models.Review{},
		&models.Post{},
		&models.Comment{},
		&models.ReviewLike{},
		&models.PostLike{},
		&models.CommentLike{},
	}
}
