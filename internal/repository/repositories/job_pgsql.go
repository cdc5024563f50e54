package repositories

import (
	"context"
	"errors"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appErrors "github.com/mover-dashboard/dispatch/internal/errors"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

// @migration
type Job struct {
	ID               string `gorm:"primaryKey"`
	CustomerName     string
	CustomerPhone    string
	ScheduledArrival string
	Time             string
	PickupAddress    string
	DropoffAddress   string
	FromTo           string
	Flags            pq.StringArray `gorm:"type:text[]"`
	Status           string         `gorm:"not null;default:READY"`
	Notes            string
	WarningLevel     string
	WarningNote      string
	WarningMuted     bool
	AssignedTruckID  *string `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (j Job) toDocument() ingest.JobDocument {
	doc := ingest.JobDocument{
		ID:               j.ID,
		CustomerName:     j.CustomerName,
		CustomerPhone:    j.CustomerPhone,
		ScheduledArrival: j.ScheduledArrival,
		Time:             j.Time,
		PickupAddress:    j.PickupAddress,
		DropoffAddress:   j.DropoffAddress,
		FromTo:           j.FromTo,
		Flags:            append([]string{}, j.Flags...),
		Status:           j.Status,
		Notes:            j.Notes,
		WarningLevel:     j.WarningLevel,
		WarningNote:      j.WarningNote,
		WarningMuted:     j.WarningMuted,
		AssignedTruckID:  j.AssignedTruckID,
	}
	if !j.CreatedAt.IsZero() {
		created := j.CreatedAt
		doc.CreatedAt = &created
	}
	if !j.UpdatedAt.IsZero() {
		updated := j.UpdatedAt
		doc.UpdatedAt = &updated
	}
	return doc
}

func jobFromDocument(doc ingest.JobDocument) Job {
	j := Job{
		ID:               doc.ID,
		CustomerName:     doc.CustomerName,
		CustomerPhone:    doc.CustomerPhone,
		ScheduledArrival: doc.ScheduledArrival,
		Time:             doc.Time,
		PickupAddress:    doc.PickupAddress,
		DropoffAddress:   doc.DropoffAddress,
		FromTo:           doc.FromTo,
		Flags:            pq.StringArray(append([]string{}, doc.Flags...)),
		Status:           doc.Status,
		Notes:            doc.Notes,
		WarningLevel:     doc.WarningLevel,
		WarningNote:      doc.WarningNote,
		WarningMuted:     doc.WarningMuted,
		AssignedTruckID:  doc.AssignedTruckID,
	}
	if doc.CreatedAt != nil {
		j.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		j.UpdatedAt = *doc.UpdatedAt
	}
	if j.Status == "" {
		j.Status = "READY"
	}
	return j
}

type JobRepo struct {
	gorm      *gorm.DB
	ctxGetter *trmgorm.CtxGetter
}

func NewJobRepo(grm *gorm.DB, c *trmgorm.CtxGetter) *JobRepo {
	return &JobRepo{
		gorm:      grm,
		ctxGetter: c,
	}
}

func (s *JobRepo) db(ctx context.Context) *gorm.DB {
	return s.ctxGetter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

func (s *JobRepo) FetchAll(ctx context.Context) ([]ingest.JobDocument, error) {
	jobs := []Job{}

	err := s.db(ctx).Order("created_at ASC").Order("id ASC").Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	res := make([]ingest.JobDocument, 0, len(jobs))
	for _, j := range jobs {
		res = append(res, j.toDocument())
	}

	return res, nil
}

func (s *JobRepo) FindById(ctx context.Context, id string) (*ingest.JobDocument, error) {
	var job Job

	err := s.db(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NotFound(err, "job", id)
		}
		return nil, err
	}

	doc := job.toDocument()
	return &doc, nil
}

// Save inserts the document or overwrites an existing row. created_at is
// kept so that load order is stable.
func (s *JobRepo) Save(ctx context.Context, doc ingest.JobDocument) error {
	job := jobFromDocument(doc)

	return s.db(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer_name", "customer_phone", "scheduled_arrival", "time",
			"pickup_address", "dropoff_address", "from_to", "flags", "status", "notes",
			"warning_level", "warning_note", "warning_muted", "assigned_truck_id", "updated_at",
		}),
	}).Create(&job).Error
}

func (s *JobRepo) BatchSave(ctx context.Context, docs []ingest.JobDocument) error {
	if len(docs) == 0 {
		return nil
	}

	jobs := make([]Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, jobFromDocument(d))
	}

	return s.db(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(jobs, 20).Error
}

func (s *JobRepo) Delete(ctx context.Context, id string) error {
	res := s.db(ctx).Where("id = ?", id).Delete(&Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appErrors.NotFound(nil, "job", id)
	}
	return nil
}

func (s *JobRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db(ctx).Model(&Job{}).Count(&n).Error
	return n, err
}
