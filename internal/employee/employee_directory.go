package employee

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
)

// Directory adapts the employee repository to the classifier's
// EmployeeDirectory collaborator interface.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) Employee(ctx context.Context, id string) (classify.EmployeeInfo, bool, error) {
	row, err := d.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return classify.EmployeeInfo{}, false, nil
		}
		return classify.EmployeeInfo{}, false, err
	}
	return classify.EmployeeInfo{
		ID:                 row.ID.String(),
		FullName:           row.FullName,
		SchedulePolicyCode: row.SchedulePolicyCode,
	}, true, nil
}
