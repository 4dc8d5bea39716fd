package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their wire name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Scope narrows a list query to what a caller may see. A zero Scope is
// unrestricted.
type Scope struct {
	OrganizerID uint
	CustomerID  uint
}

type GormRepo struct {
	db *gorm.DB
}

func GormNewRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{
		db: db,
	}
}

type RedisRepo struct {
	redisClient *redis.Client
}

func RedisNewRepo(redisClient *redis.Client) *RedisRepo {
	return &RedisRepo{
		redisClient: redisClient,
	}
}

// AutoMigrate creates or updates every table, including foreign keys with
// their cascade rules and the unique-together indexes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Venue{},
		&Event{},
		&Booking{},
		&Payment{},
		&Review{},
	)
}
