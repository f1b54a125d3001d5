package database

import (
	"errors"

	"gorm.io/gorm"
)

// GetPostWithSlug returns the post with the given slug, or nil if none
// exists.
func GetPostWithSlug(slug string) (*Post, error) {
	var post Post
	result := GetDB().Where("slug = ?", slug).First(&post)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &post, nil
}

// ListPosts returns posts newest-first with their bank relation, filtered
// by category type and status when non-empty.
func ListPosts(categoryType string, status PostStatus) ([]Post, error) {
	q := GetDB().Preload("Bank").Order("created_at DESC")
	if categoryType != "" {
		q = q.Where("category_type = ?", categoryType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var posts []Post
	if result := q.Find(&posts); result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// ListPendingPosts returns moderation drafts newest-first, each with its
// source tweet. Status and category filter by equality when non-empty.
func ListPendingPosts(status PendingStatus, category string) ([]PendingPost, error) {
	q := GetDB().Preload("RawTweet").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var pending []PendingPost
	if result := q.Find(&pending); result.Error != nil {
		return nil, result.Error
	}
	return pending, nil
}

// ListEnabledCardConfigs returns enabled configs ordered by sort order.
func ListEnabledCardConfigs() ([]CardConfig, error) {
	var configs []CardConfig
	result := GetDB().Where("enabled = ?", true).Order("sort_order ASC").Find(&configs)
	if result.Error != nil {
		return nil, result.Error
	}
	return configs, nil
}

// GetCardConfig returns the config for a category type, or nil if none
// exists.
func GetCardConfig(categoryType string) (*CardConfig, error) {
	var config CardConfig
	result := GetDB().Where("category_type = ?", categoryType).First(&config)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &config, nil
}

// ListCategoryTree returns root categories with their children, in
// creation order.
func ListCategoryTree() ([]Category, error) {
	var roots []Category
	result := GetDB().Preload("Children", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("parent_id IS NULL").Order("created_at ASC").Find(&roots)
	if result.Error != nil {
		return nil, result.Error
	}
	return roots, nil
}

// CategoryDepth returns how many ancestors sit above the given category,
// following parent links. An error is returned if the chain loops.
func CategoryDepth(id uint) (int, error) {
	depth := 0
	seen := map[uint]bool{}
	current := id
	for {
		if seen[current] {
			return 0, errors.New("category parent chain contains a cycle")
		}
		seen[current] = true

		var cat Category
		if result := GetDB().First(&cat, current); result.Error != nil {
			return 0, result.Error
		}
		if cat.ParentID == nil {
			return depth, nil
		}
		depth++
		current = *cat.ParentID
	}
}
