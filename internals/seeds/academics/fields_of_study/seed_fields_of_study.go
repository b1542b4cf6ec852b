package fields_of_study

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/features/academics/fields_of_study/model"
	"schedules_backend/internals/features/academics/fields_of_study/service"
)

type FieldOfStudySeed struct {
	ShortTitle string `json:"short_title"`
	Title      string `json:"title"`
}

// SeedFieldsOfStudyFromJSON inserts fields missing by (short_title, title).
// Short titles alone are not unique, so both columns are matched.
func SeedFieldsOfStudyFromJSON(ctx context.Context, db *gorm.DB, reg *schema.Registry, filePath string) error {
	log.Println("[SEED] fields of study:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []FieldOfStudySeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	svc := service.NewFieldOfStudyService(db, reg)
	created := 0
	for _, data := range inputs {
		var n int64
		if err := db.WithContext(ctx).Model(&model.FieldOfStudyModel{}).
			Where("field_of_study_short_title = ? AND field_of_study_title = ?", data.ShortTitle, data.Title).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if _, err := svc.Create(ctx, service.FieldOfStudyInput{ShortTitle: data.ShortTitle, Title: data.Title}); err != nil {
			return fmt.Errorf("seed field of study %q: %w", data.Title, err)
		}
		created++
	}
	log.Printf("[SEED] fields of study: %d created, %d skipped", created, len(inputs)-created)
	return nil
}
