package database

import (
	"fmt"

	"fintrack/config"
	"fintrack/logging"
	"fintrack/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init opens the MySQL connection, migrates the schema and seeds the taxonomy.
func Init(cfg *config.Config, log *logrus.Logger) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logging.NewGormLogger(log),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(
		&models.User{},
		&models.TransactionType{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	if err := SeedTaxonomy(DB); err != nil {
		return err
	}

	log.Info("database initialized")
	return nil
}

// SeedTaxonomy inserts the fixed types and their default categories when the
// type table is empty. Types and categories are never changed afterwards.
func SeedTaxonomy(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.TransactionType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count types: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i, def := range models.GetDefaultTaxonomy() {
			t := models.TransactionType{
				Name:  def.Name,
				Icon:  def.Icon,
				Color: def.Color,
				Sort:  (i + 1) * 10,
			}
			if err := tx.Create(&t).Error; err != nil {
				return fmt.Errorf("seed type %s: %w", def.Name, err)
			}
			cats := make([]models.Category, 0, len(def.Categories))
			for j, c := range def.Categories {
				cats = append(cats, models.Category{
					TypeID: t.ID,
					Name:   c.Name,
					Icon:   c.Icon,
					Color:  c.Color,
					Sort:   (j + 1) * 10,
				})
			}
			if len(cats) > 0 {
				if err := tx.Create(&cats).Error; err != nil {
					return fmt.Errorf("seed categories of %s: %w", def.Name, err)
				}
			}
		}
		return nil
	})
}

// GetDB returns the shared connection
func GetDB() *gorm.DB {
	return DB
}
