package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"rwh/entities"
	"rwh/pkg/rainfall/repository"
)

type rainRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RainfallRepository { return &rainRepo{db} }

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r *rainRepo) Upsert(n *entities.RainfallNormal) error {
	n.State, n.City = norm(n.State), norm(n.City)
	var existing entities.RainfallNormal
	err := r.db.Where("state = ? AND city = ?", n.State, n.City).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(n).Error
	}
	if err != nil {
		return err
	}
	n.ID = existing.ID
	return r.db.Save(n).Error
}

func (r *rainRepo) BulkUpsert(ns []entities.RainfallNormal) (int, error) {
	saved := 0
	for i := range ns {
		if err := r.Upsert(&ns[i]); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

func (r *rainRepo) Find(state, city string) (*entities.RainfallNormal, error) {
	var n entities.RainfallNormal
	// city-level normal preferred, state-level row (empty city) as fallback
	err := r.db.Where("state = ? AND city = ?", norm(state), norm(city)).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.Where("state = ? AND city = ''", norm(state)).First(&n).Error
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *rainRepo) List(state string) ([]entities.RainfallNormal, error) {
	var ns []entities.RainfallNormal
	q := r.db.Order("state, city")
	if state != "" {
		q = q.Where("state = ?", norm(state))
	}
	return ns, q.Find(&ns).Error
}
