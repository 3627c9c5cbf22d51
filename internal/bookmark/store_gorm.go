package bookmark

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormStore persists bookmarks in Postgres. The (user_id, url) unique
// index backstops the service-level existence check.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Insert(ctx context.Context, b *Bookmark) error {
	if b.Tags == nil {
		b.Tags = pq.StringArray{}
	}
	err := s.DB.WithContext(ctx).Create(b).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *GormStore) List(ctx context.Context, userID uint64, tag string) ([]Bookmark, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if tag != "" {
		q = q.Where("? = any(tags)", tag)
	}

	var rows []Bookmark
	if err := q.Order(`"order" asc, id asc`).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) Get(ctx context.Context, userID, id uint64) (*Bookmark, error) {
	var b Bookmark
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *GormStore) ExistsURL(ctx context.Context, userID uint64, url string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&Bookmark{}).
		Where("user_id = ? AND url = ?", userID, url).
		Count(&n).Error
	return n > 0, err
}

func (s *GormStore) MaxOrder(ctx context.Context, userID uint64) (int, error) {
	max := -1
	err := s.DB.WithContext(ctx).Model(&Bookmark{}).
		Where("user_id = ?", userID).
		Select(`coalesce(max("order"), -1)`).
		Scan(&max).Error
	return max, err
}

func (s *GormStore) Update(ctx context.Context, userID, id uint64, tags *[]string, order *int) (*Bookmark, error) {
	updates := map[string]any{}
	if tags != nil {
		updates["tags"] = pq.StringArray(*tags)
	}
	if order != nil {
		updates["order"] = *order
	}

	if len(updates) > 0 {
		res := s.DB.WithContext(ctx).Model(&Bookmark{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return s.Get(ctx, userID, id)
}

func (s *GormStore) Delete(ctx context.Context, userID, id uint64) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) SetOrder(ctx context.Context, userID, id uint64, order int) (bool, error) {
	res := s.DB.WithContext(ctx).Model(&Bookmark{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("order", order)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
