package postgres

import (
	"errors"

	leaveDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/leave-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRepository implements the leave.Repository row store using GORM.
// All column access is name-resolved through the datamodel mapping; nothing
// depends on column position.
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

// Append adds one record as the new last row. A duplicate leave_id is
// surfaced as leave.ErrDuplicateLeaveID so the caller can distinguish an
// identifier collision from a transient write failure.
func (r *LeaveRepository) Append(record *leave.LeaveRecord) error {
	row := leave.ToDataModel(record)
	if err := r.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return leave.ErrDuplicateLeaveID
		}
		return err
	}
	record.ID = row.ID
	return nil
}

// ScanAll returns every record in storage order.
func (r *LeaveRepository) ScanAll() ([]leave.LeaveRecord, error) {
	var rows []*leaveDatamodel.LeaveRecord
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(rows), nil
}

// FindByID returns the first row whose leave_id matches.
func (r *LeaveRepository) FindByID(leaveID string) (*leave.LeaveRecord, error) {
	var row leaveDatamodel.LeaveRecord
	err := r.db.Where("leave_id = ?", leaveID).Order("id ASC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leave.ErrLeaveNotFound
		}
		return nil, err
	}
	return leave.FromDataModel(&row), nil
}

// UpdateVerdict overwrites the verdict pair of the matching row and touches
// nothing else.
func (r *LeaveRepository) UpdateVerdict(leaveID, verdict, verdictReason string) error {
	result := r.db.Model(&leaveDatamodel.LeaveRecord{}).
		Where("leave_id = ?", leaveID).
		Updates(map[string]interface{}{
			"verdict":        verdict,
			"verdict_reason": verdictReason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}
