package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"schedules_backend/internals/helpers/apperr"
)

// Violation is a pair of stored records that break the conflict rule.
type Violation struct {
	RecordID      uuid.UUID `json:"record_id"`
	OtherRecordID uuid.UUID `json:"other_record_id"`
	Reasons       []string  `json:"reasons"`
}

// Audit re-runs the conflict rule over the whole stored schedule. Each
// offending pair is reported once.
func (s *RecordService) Audit(ctx context.Context) ([]Violation, error) {
	slots, err := loadAllSlots(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return auditSlots(slots), nil
}

// slots must be ordered by bucket
func auditSlots(slots []Slot) []Violation {
	var out []Violation
	for start := 0; start < len(slots); {
		end := start + 1
		for end < len(slots) && slots[end].Day == slots[start].Day && slots[end].Pair == slots[start].Pair {
			end++
		}
		bucket := slots[start:end]
		for i := range bucket {
			for _, c := range FindConflicts(bucket[i], bucket[i+1:]) {
				out = append(out, violationFrom(bucket[i].RecordID, c))
			}
		}
		start = end
	}
	return out
}

func violationFrom(id uuid.UUID, c apperr.Conflict) Violation {
	return Violation{RecordID: id, OtherRecordID: c.RecordID, Reasons: c.Reasons}
}

// StartScheduleAuditor runs Audit on the cron expr and logs every violation.
func StartScheduleAuditor(svc *RecordService, expr string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		started := time.Now()
		violations, err := svc.Audit(ctx)
		if err != nil {
			log.Printf("[SCHEDULE-AUDIT] error: %v", err)
			return
		}
		for _, v := range violations {
			log.Printf("[SCHEDULE-AUDIT] violation record=%s other=%s reasons=%v", v.RecordID, v.OtherRecordID, v.Reasons)
		}
		log.Printf("[SCHEDULE-AUDIT] done violations=%d took=%s", len(violations), time.Since(started))
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[SCHEDULE-AUDIT] started schedule=%q", expr)
	c.Start()
	return c, nil
}
