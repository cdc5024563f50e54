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
type Truck struct {
	ID               string `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	Capacity         int    `gorm:"not null;default:0"`
	FuelLevel        int    `gorm:"not null;default:0"`
	Ready            bool
	CrewIDs          pq.StringArray `gorm:"type:text[]"`
	JobIDs           pq.StringArray `gorm:"type:text[]"`
	PointOfContactID *string
	WarningMuted     bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (t Truck) toDocument() ingest.TruckDocument {
	doc := ingest.TruckDocument{
		ID:               t.ID,
		Name:             t.Name,
		Capacity:         t.Capacity,
		FuelLevel:        t.FuelLevel,
		Ready:            t.Ready,
		CrewIDs:          append([]string{}, t.CrewIDs...),
		JobIDs:           append([]string{}, t.JobIDs...),
		PointOfContactID: t.PointOfContactID,
		WarningMuted:     t.WarningMuted,
	}
	if !t.UpdatedAt.IsZero() {
		updated := t.UpdatedAt
		doc.UpdatedAt = &updated
	}
	return doc
}

func truckFromDocument(doc ingest.TruckDocument) Truck {
	t := Truck{
		ID:               doc.ID,
		Name:             doc.Name,
		Capacity:         doc.Capacity,
		FuelLevel:        doc.FuelLevel,
		Ready:            doc.Ready,
		CrewIDs:          pq.StringArray(append([]string{}, doc.CrewIDs...)),
		JobIDs:           pq.StringArray(append([]string{}, doc.JobIDs...)),
		PointOfContactID: doc.PointOfContactID,
		WarningMuted:     doc.WarningMuted,
	}
	if doc.UpdatedAt != nil {
		t.UpdatedAt = *doc.UpdatedAt
	}
	return t
}

type TruckRepo struct {
	gorm      *gorm.DB
	ctxGetter *trmgorm.CtxGetter
}

func NewTruckRepo(grm *gorm.DB, c *trmgorm.CtxGetter) *TruckRepo {
	return &TruckRepo{
		gorm:      grm,
		ctxGetter: c,
	}
}

func (s *TruckRepo) db(ctx context.Context) *gorm.DB {
	return s.ctxGetter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

func (s *TruckRepo) FetchAll(ctx context.Context) ([]ingest.TruckDocument, error) {
	trucks := []Truck{}

	err := s.db(ctx).Order("created_at ASC").Order("id ASC").Find(&trucks).Error
	if err != nil {
		return nil, err
	}

	res := make([]ingest.TruckDocument, 0, len(trucks))
	for _, t := range trucks {
		res = append(res, t.toDocument())
	}

	return res, nil
}

func (s *TruckRepo) FindById(ctx context.Context, id string) (*ingest.TruckDocument, error) {
	var truck Truck

	err := s.db(ctx).Where("id = ?", id).First(&truck).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NotFound(err, "truck", id)
		}
		return nil, err
	}

	doc := truck.toDocument()
	return &doc, nil
}

func (s *TruckRepo) Save(ctx context.Context, doc ingest.TruckDocument) error {
	t := truckFromDocument(doc)

	return s.db(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "capacity", "fuel_level", "ready", "crew_ids", "job_ids",
			"point_of_contact_id", "warning_muted", "updated_at",
		}),
	}).Create(&t).Error
}

func (s *TruckRepo) BatchSave(ctx context.Context, docs []ingest.TruckDocument) error {
	if len(docs) == 0 {
		return nil
	}

	trucks := make([]Truck, 0, len(docs))
	for _, d := range docs {
		trucks = append(trucks, truckFromDocument(d))
	}

	return s.db(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(trucks, 20).Error
}

// DetachJob removes jobID from the job list of every truck.
func (s *TruckRepo) DetachJob(ctx context.Context, jobID string) error {
	return s.db(ctx).Model(&Truck{}).
		Where("? = ANY(job_ids)", jobID).
		Update("job_ids", gorm.Expr("array_remove(job_ids, ?)", jobID)).
		Error
}

func (s *TruckRepo) Delete(ctx context.Context, id string) error {
	res := s.db(ctx).Where("id = ?", id).Delete(&Truck{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appErrors.NotFound(nil, "truck", id)
	}
	return nil
}

func (s *TruckRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db(ctx).Model(&Truck{}).Count(&n).Error
	return n, err
}
