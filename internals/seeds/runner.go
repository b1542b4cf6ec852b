// Package seeds loads reference data from JSON files. Every seeder skips rows
// that already exist, so running it twice is harmless.
package seeds

import (
	"context"
	"log"
	"path/filepath"

	"gorm.io/gorm"

	"schedules_backend/internals/databases/schema"
	accountService "schedules_backend/internals/features/users/accounts/service"
	fieldsOfStudy "schedules_backend/internals/seeds/academics/fields_of_study"
	subjects "schedules_backend/internals/seeds/academics/subjects"
	admins "schedules_backend/internals/seeds/users/admins"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB, reg *schema.Registry, accounts *accountService.AccountService, dir string) error {
	log.Printf("[SEED] reading seed files from %s", dir)

	//* Users
	if err := admins.SeedAdminsFromJSON(ctx, accounts, filepath.Join(dir, "users/admins/data_admins.json")); err != nil {
		return err
	}

	//* Academics
	if err := fieldsOfStudy.SeedFieldsOfStudyFromJSON(ctx, db, reg, filepath.Join(dir, "academics/fields_of_study/data_fields_of_study.json")); err != nil {
		return err
	}
	if err := subjects.SeedSubjectsFromJSON(ctx, db, reg, filepath.Join(dir, "academics/subjects/data_subjects.json")); err != nil {
		return err
	}

	log.Println("[SEED] done")
	return nil
}
