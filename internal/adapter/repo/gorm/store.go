package gormrepo

import "gorm.io/gorm"

// Store bundles the postgres repositories into one persistence backend.
type Store struct {
	ScalarRepo
	DeviceRepo
	TxManager
}

func NewStore(db *gorm.DB) Store {
	return Store{
		ScalarRepo: NewScalarRepo(db),
		DeviceRepo: NewDeviceRepo(db),
		TxManager:  NewTxManager(db),
	}
}
