package repository

import "rwh/entities"

type RainfallRepository interface {
	Upsert(n *entities.RainfallNormal) error
	BulkUpsert(ns []entities.RainfallNormal) (int, error)
	Find(state, city string) (*entities.RainfallNormal, error)
	List(state string) ([]entities.RainfallNormal, error)
}
