package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/databases/store"
	groupModel "schedules_backend/internals/features/academics/groups/model"
	subjectModel "schedules_backend/internals/features/academics/subjects/model"
	model "schedules_backend/internals/features/schedules/records/model"
	"schedules_backend/internals/helpers/apperr"
)

/* ============================================
   Types
============================================ */

// Record is a schedule record with its subject-teacher and groups resolved.
type Record struct {
	model.RecordInScheduleModel
	SubjectID    uuid.UUID              `json:"record_subject_id"`
	TeacherID    uuid.UUID              `json:"record_teacher_id"`
	TypeOfLesson constants.TypeOfLesson `json:"record_type_of_lesson"`
	GroupIDs     []uuid.UUID            `json:"record_group_ids"`
}

type RecordInput struct {
	SubjectTeacherID uuid.UUID
	DayOfWeek        constants.DayOfWeek
	PairNum          constants.PairNum
	TypeOfWeek       constants.TypeOfWeek
	Link             *string
	GroupIDs         []uuid.UUID
}

// RecordPatch: nil fields are left unchanged. An empty Link clears it.
type RecordPatch struct {
	SubjectTeacherID *uuid.UUID
	DayOfWeek        *constants.DayOfWeek
	PairNum          *constants.PairNum
	TypeOfWeek       *constants.TypeOfWeek
	Link             *string
	GroupIDs         []uuid.UUID // nil keeps the current groups
}

type RecordFilter struct {
	GroupID   *uuid.UUID
	TeacherID *uuid.UUID
	DayOfWeek *constants.DayOfWeek
	TermID    *uuid.UUID

	Offset int
	Limit  int // 0 = no limit
}

func (in *RecordInput) normalize() {
	if in.TypeOfWeek == "" {
		in.TypeOfWeek = constants.WeekBoth
	}
	in.TypeOfWeek = constants.TypeOfWeek(strings.ToLower(strings.TrimSpace(string(in.TypeOfWeek))))
	if in.Link != nil {
		l := strings.TrimSpace(*in.Link)
		if l == "" {
			in.Link = nil
		} else {
			in.Link = &l
		}
	}
	in.GroupIDs = store.Unique(in.GroupIDs)
}

func (in RecordInput) validate() error {
	verr := apperr.NewValidation(catalog.EntityRecord)
	if in.SubjectTeacherID == uuid.Nil {
		verr.Add("record_subject_teacher_id", "required")
	}
	if !in.DayOfWeek.Valid() {
		verr.Add("record_day_of_week", "must be between 1 (Monday) and 5 (Friday)")
	}
	if !in.PairNum.Valid() {
		verr.Add("record_pair_num", "must be between 1 and 4")
	}
	if !in.TypeOfWeek.Valid() {
		verr.Add("record_type_of_week", "must be one of both, even, odd")
	}
	if len(in.GroupIDs) == 0 {
		verr.Add("record_group_ids", "at least one group is required")
	}
	return verr.OrNil()
}

func (in RecordInput) key() SlotKey { return SlotKey{Day: in.DayOfWeek, Pair: in.PairNum} }

/* ============================================
   Service
============================================ */

type RecordService struct {
	DB       *gorm.DB
	Registry *schema.Registry
	Locks    *SlotLocker
}

func NewRecordService(db *gorm.DB, reg *schema.Registry) *RecordService {
	return &RecordService{DB: db, Registry: reg, Locks: NewSlotLocker()}
}

// Check runs the conflict rule without writing. excludeID is the record being
// edited, if any.
func (s *RecordService) Check(ctx context.Context, in RecordInput, excludeID *uuid.UUID) error {
	in.normalize()
	if err := in.validate(); err != nil {
		return err
	}
	cand, err := s.candidate(ctx, s.DB, in)
	if err != nil {
		return err
	}
	if excludeID != nil {
		cand.RecordID = *excludeID
	}
	existing, err := loadSlots(ctx, s.DB, in.DayOfWeek, in.PairNum, in.TypeOfWeek)
	if err != nil {
		return err
	}
	return CheckSlot(cand, existing)
}

func (s *RecordService) Create(ctx context.Context, in RecordInput) (*Record, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	unlock := s.Locks.Lock(in.key())
	defer unlock()

	var out *Record
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBuckets(tx, in.key()); err != nil {
			return err
		}
		st, err := loadSubjectTeacher(ctx, tx, in.SubjectTeacherID)
		if err != nil {
			return err
		}
		if err := store.MustExist(ctx, tx, catalog.EntityGroup, "student_groups", "group_id", in.GroupIDs...); err != nil {
			return err
		}

		cand := Slot{Day: in.DayOfWeek, Pair: in.PairNum, Week: in.TypeOfWeek, TeacherID: st.SubjectTeacherTeacherID, GroupIDs: in.GroupIDs}
		existing, err := loadSlots(ctx, tx, in.DayOfWeek, in.PairNum, in.TypeOfWeek)
		if err != nil {
			return err
		}
		if err := CheckSlot(cand, existing); err != nil {
			return err
		}

		rec := model.RecordInScheduleModel{
			RecordSubjectTeacherID: in.SubjectTeacherID,
			RecordPairNum:          in.PairNum,
			RecordDayOfWeek:        in.DayOfWeek,
			RecordTypeOfWeek:       in.TypeOfWeek,
			RecordLink:             in.Link,
		}
		if err := store.Create(ctx, tx, catalog.EntityRecord, &rec); err != nil {
			return err
		}
		if err := writeLinks(ctx, tx, rec, st.SubjectTeacherTeacherID, in.GroupIDs); err != nil {
			return err
		}
		out = toRecord(rec, *st, in.GroupIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Schedule] record created id=%s day=%d pair=%d week=%s groups=%d",
		out.RecordID, out.RecordDayOfWeek, out.RecordPairNum, out.RecordTypeOfWeek, len(out.GroupIDs))
	return out, nil
}

func (s *RecordService) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	rec, err := store.Get[model.RecordInScheduleModel](ctx, s.DB, catalog.EntityRecord, "record_id", id)
	if err != nil {
		return nil, err
	}
	out, err := hydrate(ctx, s.DB, []model.RecordInScheduleModel{*rec})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Query lists records ordered by day, pair, id. All filters combine with AND.
func (s *RecordService) Query(ctx context.Context, f RecordFilter) ([]Record, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.RecordInScheduleModel{})
	if f.GroupID != nil {
		q = q.Where("record_id IN (?)",
			s.DB.Table("group_records").Select("lesson_id").Where("group_id = ?", *f.GroupID))
	}
	if f.TeacherID != nil {
		q = q.Where("record_subject_teacher_id IN (?)",
			s.DB.Table("subject_teachers").Select("subject_teacher_id").Where("subject_teacher_teacher_id = ?", *f.TeacherID))
	}
	if f.DayOfWeek != nil {
		q = q.Where("record_day_of_week = ?", *f.DayOfWeek)
	}
	if f.TermID != nil {
		q = q.Where("record_id IN (?)",
			s.DB.Table("group_records AS gr").
				Select("gr.lesson_id").
				Joins("JOIN student_groups g ON g.group_id = gr.group_id").
				Where("g.group_academic_term_id = ?", *f.TermID))
	}

	var rows []model.RecordInScheduleModel
	total, err := store.Page(ctx, q, f.Offset, f.Limit, "record_day_of_week, record_pair_num, record_id", &rows)
	if err != nil {
		return nil, 0, err
	}
	out, err := hydrate(ctx, s.DB, rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// errBucketMoved: the record changed bucket between the unlocked read and the lock.
var errBucketMoved = errors.New("record moved while waiting for lock")

func (s *RecordService) Update(ctx context.Context, id uuid.UUID, p RecordPatch) (*Record, error) {
	for attempt := 0; attempt < 3; attempt++ {
		out, err := s.update(ctx, id, p)
		if errors.Is(err, errBucketMoved) {
			continue
		}
		return out, err
	}
	return nil, errBucketMoved
}

func (s *RecordService) update(ctx context.Context, id uuid.UUID, p RecordPatch) (*Record, error) {
	cur, err := store.Get[model.RecordInScheduleModel](ctx, s.DB, catalog.EntityRecord, "record_id", id)
	if err != nil {
		return nil, err
	}
	oldKey := SlotKey{Day: cur.RecordDayOfWeek, Pair: cur.RecordPairNum}
	// only the target bucket is taken from the unlocked read
	newKey := applyPatch(*cur, nil, p).key()

	unlock := s.Locks.Lock(oldKey, newKey)
	defer unlock()

	var out *Record
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBuckets(tx, oldKey, newKey); err != nil {
			return err
		}
		locked, err := store.Get[model.RecordInScheduleModel](ctx, tx, catalog.EntityRecord, "record_id", id)
		if err != nil {
			return err
		}
		if locked.RecordDayOfWeek != oldKey.Day || locked.RecordPairNum != oldKey.Pair {
			return errBucketMoved
		}

		// fields the patch leaves alone come from the locked row
		var curGroups []uuid.UUID
		if p.GroupIDs == nil {
			if err := tx.WithContext(ctx).Model(&model.GroupRecordModel{}).
				Where("lesson_id = ?", id).Order("group_id").Pluck("group_id", &curGroups).Error; err != nil {
				return err
			}
		}
		in := applyPatch(*locked, curGroups, p)
		in.normalize()
		if err := in.validate(); err != nil {
			return err
		}

		st, err := loadSubjectTeacher(ctx, tx, in.SubjectTeacherID)
		if err != nil {
			return err
		}
		if err := store.MustExist(ctx, tx, catalog.EntityGroup, "student_groups", "group_id", in.GroupIDs...); err != nil {
			return err
		}
		cand := Slot{RecordID: id, Day: in.DayOfWeek, Pair: in.PairNum, Week: in.TypeOfWeek, TeacherID: st.SubjectTeacherTeacherID, GroupIDs: in.GroupIDs}
		existing, err := loadSlots(ctx, tx, in.DayOfWeek, in.PairNum, in.TypeOfWeek)
		if err != nil {
			return err
		}
		if err := CheckSlot(cand, existing); err != nil {
			return err
		}

		locked.RecordSubjectTeacherID = in.SubjectTeacherID
		locked.RecordDayOfWeek = in.DayOfWeek
		locked.RecordPairNum = in.PairNum
		locked.RecordTypeOfWeek = in.TypeOfWeek
		locked.RecordLink = in.Link
		if err := store.Save(ctx, tx, catalog.EntityRecord, id, locked); err != nil {
			return err
		}
		if err := clearLinks(ctx, tx, id); err != nil {
			return err
		}
		if err := writeLinks(ctx, tx, *locked, st.SubjectTeacherTeacherID, in.GroupIDs); err != nil {
			return err
		}
		out = toRecord(*locked, *st, in.GroupIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Schedule] record updated id=%s day=%d pair=%d week=%s", id, out.RecordDayOfWeek, out.RecordPairNum, out.RecordTypeOfWeek)
	return out, nil
}

// Delete removes the record with its group links and slot claims.
func (s *RecordService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityRecord, "records_in_schedule", "record_id", id)
	})
	if err != nil {
		return err
	}
	log.Printf("[Schedule] record deleted id=%s", id)
	return nil
}

/* ============================================
   Accessors
============================================ */

func (s *RecordService) GroupsForRecord(ctx context.Context, recordID uuid.UUID) ([]groupModel.GroupModel, error) {
	if err := store.MustExist(ctx, s.DB, catalog.EntityRecord, "records_in_schedule", "record_id", recordID); err != nil {
		return nil, err
	}
	var out []groupModel.GroupModel
	err := s.DB.WithContext(ctx).
		Where("group_id IN (?)", s.DB.Table("group_records").Select("group_id").Where("lesson_id = ?", recordID)).
		Order("group_name").
		Find(&out).Error
	return out, err
}

func (s *RecordService) RecordsForGroup(ctx context.Context, groupID uuid.UUID) ([]Record, error) {
	if err := store.MustExist(ctx, s.DB, catalog.EntityGroup, "student_groups", "group_id", groupID); err != nil {
		return nil, err
	}
	out, _, err := s.Query(ctx, RecordFilter{GroupID: &groupID})
	return out, err
}

/* ============================================
   Internals
============================================ */

func (s *RecordService) candidate(ctx context.Context, db *gorm.DB, in RecordInput) (Slot, error) {
	st, err := loadSubjectTeacher(ctx, db, in.SubjectTeacherID)
	if err != nil {
		return Slot{}, err
	}
	if err := store.MustExist(ctx, db, catalog.EntityGroup, "student_groups", "group_id", in.GroupIDs...); err != nil {
		return Slot{}, err
	}
	return Slot{Day: in.DayOfWeek, Pair: in.PairNum, Week: in.TypeOfWeek, TeacherID: st.SubjectTeacherTeacherID, GroupIDs: in.GroupIDs}, nil
}

func applyPatch(cur model.RecordInScheduleModel, curGroups []uuid.UUID, p RecordPatch) RecordInput {
	in := RecordInput{
		SubjectTeacherID: cur.RecordSubjectTeacherID,
		DayOfWeek:        cur.RecordDayOfWeek,
		PairNum:          cur.RecordPairNum,
		TypeOfWeek:       cur.RecordTypeOfWeek,
		Link:             cur.RecordLink,
		GroupIDs:         curGroups,
	}
	if p.SubjectTeacherID != nil {
		in.SubjectTeacherID = *p.SubjectTeacherID
	}
	if p.DayOfWeek != nil {
		in.DayOfWeek = *p.DayOfWeek
	}
	if p.PairNum != nil {
		in.PairNum = *p.PairNum
	}
	if p.TypeOfWeek != nil {
		in.TypeOfWeek = *p.TypeOfWeek
	}
	if p.Link != nil {
		in.Link = p.Link
	}
	if p.GroupIDs != nil {
		in.GroupIDs = p.GroupIDs
	}
	return in
}

func loadSubjectTeacher(ctx context.Context, db *gorm.DB, id uuid.UUID) (*subjectModel.SubjectTeacherModel, error) {
	return store.Get[subjectModel.SubjectTeacherModel](ctx, db, catalog.EntitySubjectTeacher, "subject_teacher_id", id)
}

type slotRow struct {
	RecordID   uuid.UUID
	DayOfWeek  constants.DayOfWeek
	PairNum    constants.PairNum
	TypeOfWeek constants.TypeOfWeek
	TeacherID  uuid.UUID
	GroupID    *uuid.UUID
}

const slotSelect = `r.record_id AS record_id,
	r.record_day_of_week AS day_of_week,
	r.record_pair_num AS pair_num,
	r.record_type_of_week AS type_of_week,
	st.subject_teacher_teacher_id AS teacher_id,
	gr.group_id AS group_id`

func slotQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("records_in_schedule AS r").
		Select(slotSelect).
		Joins("JOIN subject_teachers st ON st.subject_teacher_id = r.record_subject_teacher_id").
		Joins("LEFT JOIN group_records gr ON gr.lesson_id = r.record_id")
}

// loadSlots reads every record in the bucket whose week type overlaps week.
func loadSlots(ctx context.Context, db *gorm.DB, day constants.DayOfWeek, pair constants.PairNum, week constants.TypeOfWeek) ([]Slot, error) {
	var rows []slotRow
	err := slotQuery(ctx, db).
		Where("r.record_day_of_week = ? AND r.record_pair_num = ?", day, pair).
		Where("r.record_type_of_week IN ?", constants.OverlappingWeeks(week)).
		Order("r.record_id, gr.group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return foldSlots(rows), nil
}

// loadAllSlots reads the whole schedule grouped by bucket order.
func loadAllSlots(ctx context.Context, db *gorm.DB) ([]Slot, error) {
	var rows []slotRow
	err := slotQuery(ctx, db).
		Order("r.record_day_of_week, r.record_pair_num, r.record_id, gr.group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return foldSlots(rows), nil
}

// rows must be ordered by record id within a record
func foldSlots(rows []slotRow) []Slot {
	var out []Slot
	for _, r := range rows {
		if n := len(out); n == 0 || out[n-1].RecordID != r.RecordID {
			out = append(out, Slot{
				RecordID:  r.RecordID,
				Day:       r.DayOfWeek,
				Pair:      r.PairNum,
				Week:      r.TypeOfWeek,
				TeacherID: r.TeacherID,
			})
		}
		if r.GroupID != nil {
			last := &out[len(out)-1]
			last.GroupIDs = append(last.GroupIDs, *r.GroupID)
		}
	}
	return out
}

func writeLinks(ctx context.Context, tx *gorm.DB, rec model.RecordInScheduleModel, teacherID uuid.UUID, groupIDs []uuid.UUID) error {
	links := make([]model.GroupRecordModel, 0, len(groupIDs))
	for _, g := range groupIDs {
		links = append(links, model.GroupRecordModel{GroupID: g, LessonID: rec.RecordID})
	}
	if len(links) > 0 {
		if err := tx.WithContext(ctx).Create(&links).Error; err != nil {
			return apperr.FromDB(catalog.EntityGroupRecord, rec.RecordID, err)
		}
	}

	groupClaims, teacherClaims := model.ClaimsFor(rec, teacherID, groupIDs)
	if len(groupClaims) > 0 {
		if err := tx.WithContext(ctx).Create(&groupClaims).Error; err != nil {
			return claimError(rec, err)
		}
	}
	if err := tx.WithContext(ctx).Create(&teacherClaims).Error; err != nil {
		return claimError(rec, err)
	}
	return nil
}

// A claim collision means another writer got past the application check
// (another instance without advisory locks). The transaction is unusable at
// this point, so the conflicting ids are not reported.
func claimError(rec model.RecordInScheduleModel, err error) error {
	if apperr.IsUniqueViolation(err) {
		log.Printf("[Schedule] slot claim collision record=%s day=%d pair=%d", rec.RecordID, rec.RecordDayOfWeek, rec.RecordPairNum)
		return &apperr.ScheduleConflictError{
			DayOfWeek:  int16(rec.RecordDayOfWeek),
			PairNum:    int16(rec.RecordPairNum),
			TypeOfWeek: string(rec.RecordTypeOfWeek),
		}
	}
	return apperr.FromDB(catalog.EntityRecord, rec.RecordID, err)
}

func clearLinks(ctx context.Context, tx *gorm.DB, recordID uuid.UUID) error {
	db := tx.WithContext(ctx)
	if err := db.Where("lesson_id = ?", recordID).Delete(&model.GroupRecordModel{}).Error; err != nil {
		return err
	}
	if err := db.Where("record_id = ?", recordID).Delete(&model.GroupSlotClaimModel{}).Error; err != nil {
		return err
	}
	return db.Where("record_id = ?", recordID).Delete(&model.TeacherSlotClaimModel{}).Error
}

func toRecord(rec model.RecordInScheduleModel, st subjectModel.SubjectTeacherModel, groups []uuid.UUID) *Record {
	return &Record{
		RecordInScheduleModel: rec,
		SubjectID:             st.SubjectTeacherSubjectID,
		TeacherID:             st.SubjectTeacherTeacherID,
		TypeOfLesson:          st.SubjectTeacherTypeOfLesson,
		GroupIDs:              store.Sorted(groups),
	}
}

// hydrate resolves subject-teacher and groups for a page of records.
func hydrate(ctx context.Context, db *gorm.DB, recs []model.RecordInScheduleModel) ([]Record, error) {
	out := make([]Record, 0, len(recs))
	if len(recs) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(recs))
	stIDs := make([]uuid.UUID, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.RecordID)
		stIDs = append(stIDs, r.RecordSubjectTeacherID)
	}

	var links []model.GroupRecordModel
	if err := db.WithContext(ctx).Where("lesson_id IN ?", ids).Order("group_id").Find(&links).Error; err != nil {
		return nil, err
	}
	groups := map[uuid.UUID][]uuid.UUID{}
	for _, l := range links {
		groups[l.LessonID] = append(groups[l.LessonID], l.GroupID)
	}

	var sts []subjectModel.SubjectTeacherModel
	if err := db.WithContext(ctx).Where("subject_teacher_id IN ?", store.Unique(stIDs)).Find(&sts).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]subjectModel.SubjectTeacherModel, len(sts))
	for _, st := range sts {
		byID[st.SubjectTeacherID] = st
	}

	for _, r := range recs {
		out = append(out, *toRecord(r, byID[r.RecordSubjectTeacherID], groups[r.RecordID]))
	}
	return out, nil
}
