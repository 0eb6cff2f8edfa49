package repo

import "gorm.io/gorm"

// GormRepo borrows a pooled connection per call through DB.WithContext, so
// nothing is held between requests.
type GormRepo struct {
	DB *gorm.DB
}
