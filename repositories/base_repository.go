package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"uracard.link/pkg/queryparams"
)

// IBaseRepository ortak CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error
	Delete(ctx context.Context, id uint) error
	GetCount(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
}

// BaseRepository generik GORM repository'si. Tablo adını model tipinden alır.
type BaseRepository[T any] struct {
	db             *gorm.DB
	allowedSort    map[string]struct{}
	defaultSortCol string
}

// NewBaseRepository verilen bağlantı (veya transaction) ile çalışan base repo oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:             db,
		allowedSort:    map[string]struct{}{"id": {}, "created_at": {}},
		defaultSortCol: "created_at",
	}
}

// SetAllowedSortColumns sıralamaya izin verilen kolonları belirler.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSort = make(map[string]struct{}, len(columns))
	for _, c := range columns {
		r.allowedSort[c] = struct{}{}
	}
}

// OrderClause parametrelerdeki sıralamayı güvenli bir ORDER BY ifadesine çevirir.
func (r *BaseRepository[T]) OrderClause(params queryparams.ListParams) string {
	col := r.defaultSortCol
	if _, ok := r.allowedSort[params.SortBy]; ok {
		col = params.SortBy
	}
	order := params.OrderBy
	if order != "asc" && order != "desc" {
		order = queryparams.DefaultOrderBy
	}
	return col + " " + order
}

func (r *BaseRepository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *BaseRepository[T]) Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error {
	if updatedBy != 0 {
		data["updated_by"] = updatedBy
	}
	var model T
	result := r.db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	var model T
	result := r.db.WithContext(ctx).Delete(&model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) GetCount(ctx context.Context) (int64, error) {
	var model T
	var count int64
	err := r.db.WithContext(ctx).Model(&model).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
