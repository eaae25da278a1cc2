package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return nameConflict(r.db.WithContext(ctx).Create(model.CategoryFromEntity(category)).Error)
}

// CreateBatch inserts the categories in one statement, all or none.
func (r *categoryRepository) CreateBatch(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]*model.CategoryModel, len(categories))
	for i, c := range categories {
		rows[i] = model.CategoryFromEntity(c)
	}
	return nameConflict(r.db.WithContext(ctx).Create(&rows).Error)
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	row, err := first[model.CategoryModel](ctx, r.db, domainerror.ErrCategoryNotFound, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

// FindByUser lists the user's categories oldest first. The auto-tagger
// depends on that order to break keyword ties.
func (r *categoryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var rows []model.CategoryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToEntity()
	}
	return categories, nil
}

func (r *categoryRepository) FindByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (*entity.Category, error) {
	row, err := first[model.CategoryModel](ctx, r.db, domainerror.ErrCategoryNotFound, "name = ? AND user_id = ?", name, userID)
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return nameConflict(r.db.WithContext(ctx).Save(model.CategoryFromEntity(category)).Error)
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	return exists[model.CategoryModel](ctx, r.db, "name = ? AND user_id = ?", name, userID)
}

// nameConflict reports a hit on the per-user name index as ErrCategoryNameExists.
func nameConflict(err error) error {
	if _, ok := uniqueViolation(err); ok {
		return domainerror.ErrCategoryNameExists
	}
	return err
}
