// Package catalog registers every table of the schedule schema.
package catalog

import (
	"schedules_backend/internals/databases/schema"

	termModel "schedules_backend/internals/features/academics/academic_terms/model"
	fosModel "schedules_backend/internals/features/academics/fields_of_study/model"
	groupModel "schedules_backend/internals/features/academics/groups/model"
	subjectModel "schedules_backend/internals/features/academics/subjects/model"
	examModel "schedules_backend/internals/features/schedules/exams/model"
	recordModel "schedules_backend/internals/features/schedules/records/model"
	accountModel "schedules_backend/internals/features/users/accounts/model"
	teacherModel "schedules_backend/internals/features/users/teachers/model"
)

// Entity names, also used as the entity label in typed errors.
const (
	EntitySubject        = "subject"
	EntityTeacher        = "teacher"
	EntityRole           = "role"
	EntityFieldOfStudy   = "field_of_study"
	EntityUser           = "user"
	EntityTokenBlacklist = "token_blacklist"
	EntitySubjectTeacher = "subject_teacher"
	EntityUserRole       = "user_role"
	EntityAcademicTerm   = "academic_term"
	EntityAcademicYear   = "academic_year"
	EntityTermClaim      = "academic_term_claim"
	EntityGroup          = "group"
	EntityRecord         = "record_in_schedule"
	EntityGroupRecord    = "group_record"
	EntityGroupSlot      = "schedule_group_slot"
	EntityTeacherSlot    = "schedule_teacher_slot"
	EntityExam           = "exam"
	EntityGroupExam      = "group_exam"
	EntityExamTeacher    = "exam_teacher"
)

func ref(column, table, idColumn string, policy schema.OnDelete) schema.Ref {
	return schema.Ref{Column: column, Table: table, IDColumn: idColumn, OnDelete: policy}
}

// Build registers entities stage by stage: leaves, links, temporal, composites.
func Build() *schema.Registry {
	r := schema.New()

	// leaves
	r.MustRegister(
		schema.Entity{Name: EntitySubject, Model: &subjectModel.SubjectModel{}},
		schema.Entity{Name: EntityTeacher, Model: &teacherModel.TeacherModel{}},
		schema.Entity{Name: EntityRole, Model: &accountModel.RoleModel{}},
		schema.Entity{Name: EntityFieldOfStudy, Model: &fosModel.FieldOfStudyModel{}},
		schema.Entity{Name: EntityUser, Model: &accountModel.UserModel{}},
		schema.Entity{Name: EntityTokenBlacklist, Model: &accountModel.TokenBlacklistModel{}},
	)

	// links
	r.MustRegister(
		schema.Entity{
			Name: EntitySubjectTeacher, Model: &subjectModel.SubjectTeacherModel{},
			DependsOn: []string{EntitySubject, EntityTeacher},
			Refs: []schema.Ref{
				ref("subject_teacher_subject_id", "subjects", "subject_id", schema.Restrict),
				ref("subject_teacher_teacher_id", "teachers", "teacher_id", schema.Restrict),
			},
		},
		schema.Entity{
			Name: EntityUserRole, Model: &accountModel.UserRoleModel{},
			DependsOn: []string{EntityUser, EntityRole},
			Refs: []schema.Ref{
				ref("user_role_user_id", "users", "id", schema.Cascade),
				ref("user_role_role_id", "roles", "role_id", schema.Restrict),
			},
		},
	)

	// temporal
	r.MustRegister(
		schema.Entity{Name: EntityAcademicTerm, Model: &termModel.AcademicTermModel{}},
		schema.Entity{
			Name: EntityAcademicYear, Model: &termModel.AcademicYearModel{},
			DependsOn: []string{EntityAcademicTerm},
			Refs: []schema.Ref{
				ref("academic_year_term1_id", "academic_terms", "academic_term_id", schema.Restrict),
				ref("academic_year_term2_id", "academic_terms", "academic_term_id", schema.Restrict),
			},
			PostgresDDL: []string{
				`DO $$ BEGIN
  ALTER TABLE academic_years ADD CONSTRAINT chk_academic_years_distinct_terms CHECK (academic_year_term1_id <> academic_year_term2_id);
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`,
			},
		},
		schema.Entity{
			Name: EntityTermClaim, Model: &termModel.AcademicTermClaimModel{},
			DependsOn: []string{EntityAcademicTerm, EntityAcademicYear},
			Refs: []schema.Ref{
				ref("term_id", "academic_terms", "academic_term_id", schema.Restrict),
				ref("academic_year_id", "academic_years", "academic_year_id", schema.Cascade),
			},
		},
	)

	// composites
	r.MustRegister(
		schema.Entity{
			Name: EntityGroup, Model: &groupModel.GroupModel{},
			DependsOn: []string{EntityFieldOfStudy, EntityAcademicTerm},
			Refs: []schema.Ref{
				ref("group_field_of_study_id", "fields_of_study", "field_of_study_id", schema.Restrict),
				ref("group_academic_term_id", "academic_terms", "academic_term_id", schema.Restrict),
			},
		},
		schema.Entity{
			Name: EntityRecord, Model: &recordModel.RecordInScheduleModel{},
			DependsOn: []string{EntitySubjectTeacher},
			Refs: []schema.Ref{
				ref("record_subject_teacher_id", "subject_teachers", "subject_teacher_id", schema.Restrict),
			},
		},
		schema.Entity{
			Name: EntityGroupRecord, Model: &recordModel.GroupRecordModel{},
			DependsOn: []string{EntityGroup, EntityRecord},
			Refs: []schema.Ref{
				ref("group_id", "student_groups", "group_id", schema.Restrict),
				ref("lesson_id", "records_in_schedule", "record_id", schema.Cascade),
			},
		},
		schema.Entity{
			Name: EntityGroupSlot, Model: &recordModel.GroupSlotClaimModel{},
			DependsOn: []string{EntityGroup, EntityRecord},
			Refs: []schema.Ref{
				ref("group_id", "student_groups", "group_id", schema.Restrict),
				ref("record_id", "records_in_schedule", "record_id", schema.Cascade),
			},
		},
		schema.Entity{
			Name: EntityTeacherSlot, Model: &recordModel.TeacherSlotClaimModel{},
			DependsOn: []string{EntityTeacher, EntityRecord},
			Refs: []schema.Ref{
				ref("teacher_id", "teachers", "teacher_id", schema.Restrict),
				ref("record_id", "records_in_schedule", "record_id", schema.Cascade),
			},
		},
		schema.Entity{
			Name: EntityExam, Model: &examModel.ExamModel{},
			DependsOn: []string{EntitySubject},
			Refs: []schema.Ref{
				ref("exam_subject_id", "subjects", "subject_id", schema.Restrict),
			},
		},
		schema.Entity{
			Name: EntityGroupExam, Model: &examModel.GroupExamModel{},
			DependsOn: []string{EntityGroup, EntityExam},
			Refs: []schema.Ref{
				ref("group_id", "student_groups", "group_id", schema.Restrict),
				ref("exam_id", "exams", "exam_id", schema.Cascade),
			},
		},
		schema.Entity{
			Name: EntityExamTeacher, Model: &examModel.ExamTeacherModel{},
			DependsOn: []string{EntityTeacher, EntityExam},
			Refs: []schema.Ref{
				ref("teacher_id", "teachers", "teacher_id", schema.Restrict),
				ref("exam_id", "exams", "exam_id", schema.Cascade),
			},
		},
	)
	return r
}
