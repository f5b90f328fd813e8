package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// UserService handles user listing, follow relations and account removal.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers lists users with simple pagination.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := s.db.WithContext(ctx).Order("username")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	result := make([]*models.User, len(users))
	for i := range users {
		result[i] = &users[i]
	}
	return result, nil
}

// Follow subscribes the user to the author. Self-follows are invalid;
// duplicate follows are conflicts. Identity is compared by id.
func (s *UserService) Follow(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	if _, err := s.GetUser(ctx, authorID); err != nil {
		return err
	}

	follow := models.Follow{UserID: userID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow removes the subscription; an absent pair is a not-found.
func (s *UserService) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsSubscribed reports whether the requester follows the author. Anonymous
// requesters never hit the store.
func (s *UserService) IsSubscribed(ctx context.Context, requesterID *uuid.UUID, authorID uuid.UUID) (bool, error) {
	if requesterID == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", *requesterID, authorID).
		Count(&count).Error
	return count > 0, err
}

// Subscriptions lists the authors the user follows, preloading each
// author record.
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.User, error) {
	query := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Author")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var follows []models.Follow
	if err := query.Find(&follows).Error; err != nil {
		return nil, err
	}

	authors := make([]*models.User, 0, len(follows))
	for _, f := range follows {
		if f.Author != nil {
			authors = append(authors, f.Author)
		}
	}
	return authors, nil
}

// AuthorRecipes returns up to limit of the author's recipes plus the total
// count, for subscription previews.
func (s *UserService) AuthorRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]models.Recipe, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).Where("author_id = ?", authorID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// DeleteUser removes the account and everything hanging off it: follows in
// both directions, favorites and cart entries the user made, and every
// recipe they authored together with that recipe's dependent rows.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var recipeIDs []uuid.UUID
		if err := tx.Model(&models.Recipe{}).Where("author_id = ?", userID).Pluck("id", &recipeIDs).Error; err != nil {
			return err
		}
		for _, recipeID := range recipeIDs {
			if err := deleteRecipeRows(tx, recipeID); err != nil {
				return err
			}
		}

		steps := []error{
			tx.Where("user_id = ? OR author_id = ?", userID, userID).Delete(&models.Follow{}).Error,
			tx.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error,
			tx.Where("user_id = ?", userID).Delete(&models.ShoppingCart{}).Error,
			tx.Delete(&models.User{}, "id = ?", userID).Error,
		}
		for _, err := range steps {
			if err != nil {
				return err
			}
		}
		return nil
	})
}
