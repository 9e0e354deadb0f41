package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Author{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Alias{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&PageTemplate{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&PageTheme{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&ComicArc{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&ComicPage{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&ComicLink{}); err != nil {
		return err
	}

	return db.AutoMigrate(&ForumPost{})
}
