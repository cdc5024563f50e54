package repositories

import (
	"context"
	"errors"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appErrors "github.com/mover-dashboard/dispatch/internal/errors"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

// @migration
type Employee struct {
	ID            string `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Initials      string
	Phone         string
	Rank          int `gorm:"not null;default:0"`
	HasLicense    bool
	ScheduledOff  bool
	CheckInStatus string
	UpdatedAt     time.Time
}

func (e Employee) toDocument() ingest.EmployeeDocument {
	doc := ingest.EmployeeDocument{
		ID:            e.ID,
		Name:          e.Name,
		Initials:      e.Initials,
		Phone:         e.Phone,
		Rank:          e.Rank,
		HasLicense:    e.HasLicense,
		ScheduledOff:  e.ScheduledOff,
		CheckInStatus: e.CheckInStatus,
	}
	if !e.UpdatedAt.IsZero() {
		updated := e.UpdatedAt
		doc.UpdatedAt = &updated
	}
	return doc
}

func employeeFromDocument(doc ingest.EmployeeDocument) Employee {
	e := Employee{
		ID:            doc.ID,
		Name:          doc.Name,
		Initials:      doc.Initials,
		Phone:         doc.Phone,
		Rank:          doc.Rank,
		HasLicense:    doc.HasLicense,
		ScheduledOff:  doc.ScheduledOff,
		CheckInStatus: doc.CheckInStatus,
	}
	if doc.UpdatedAt != nil {
		e.UpdatedAt = *doc.UpdatedAt
	}
	return e
}

type EmployeeRepo struct {
	gorm      *gorm.DB
	ctxGetter *trmgorm.CtxGetter
}

func NewEmployeeRepo(grm *gorm.DB, c *trmgorm.CtxGetter) *EmployeeRepo {
	return &EmployeeRepo{
		gorm:      grm,
		ctxGetter: c,
	}
}

func (s *EmployeeRepo) db(ctx context.Context) *gorm.DB {
	return s.ctxGetter.DefaultTrOrDB(ctx, s.gorm).WithContext(ctx)
}

// FetchAll returns the roster ordered by rank, highest first.
func (s *EmployeeRepo) FetchAll(ctx context.Context) ([]ingest.EmployeeDocument, error) {
	employees := []Employee{}

	err := s.db(ctx).Order("rank DESC").Order("id ASC").Find(&employees).Error
	if err != nil {
		return nil, err
	}

	res := make([]ingest.EmployeeDocument, 0, len(employees))
	for _, e := range employees {
		res = append(res, e.toDocument())
	}

	return res, nil
}

func (s *EmployeeRepo) FindById(ctx context.Context, id string) (*ingest.EmployeeDocument, error) {
	var employee Employee

	err := s.db(ctx).Where("id = ?", id).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NotFound(err, "employee", id)
		}
		return nil, err
	}

	doc := employee.toDocument()
	return &doc, nil
}

func (s *EmployeeRepo) Save(ctx context.Context, doc ingest.EmployeeDocument) error {
	e := employeeFromDocument(doc)

	return s.db(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&e).Error
}

func (s *EmployeeRepo) BatchSave(ctx context.Context, docs []ingest.EmployeeDocument) error {
	if len(docs) == 0 {
		return nil
	}

	employees := make([]Employee, 0, len(docs))
	for _, d := range docs {
		employees = append(employees, employeeFromDocument(d))
	}

	return s.db(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(employees, 20).Error
}

func (s *EmployeeRepo) Delete(ctx context.Context, id string) error {
	res := s.db(ctx).Where("id = ?", id).Delete(&Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appErrors.NotFound(nil, "employee", id)
	}
	return nil
}

func (s *EmployeeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db(ctx).Model(&Employee{}).Count(&n).Error
	return n, err
}
