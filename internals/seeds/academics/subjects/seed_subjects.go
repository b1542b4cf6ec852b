package subjects

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/features/academics/subjects/model"
	"schedules_backend/internals/features/academics/subjects/service"
)

type SubjectSeed struct {
	ShortTitle string `json:"short_title"`
	Title      string `json:"title"`
}

func SeedSubjectsFromJSON(ctx context.Context, db *gorm.DB, reg *schema.Registry, filePath string) error {
	log.Println("[SEED] subjects:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []SubjectSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	svc := service.NewSubjectService(db, reg)
	created := 0
	for _, data := range inputs {
		var n int64
		if err := db.WithContext(ctx).Model(&model.SubjectModel{}).
			Where("subject_title = ?", data.Title).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if _, err := svc.Create(ctx, service.SubjectInput{ShortTitle: data.ShortTitle, Title: data.Title}); err != nil {
			return fmt.Errorf("seed subject %q: %w", data.Title, err)
		}
		created++
	}
	log.Printf("[SEED] subjects: %d created, %d skipped", created, len(inputs)-created)
	return nil
}
