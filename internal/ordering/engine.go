package ordering

import (
	"errors"

	"gorm.io/gorm"

	"github.com/navdeck/navdeck/internal/models"
)

var (
	// ErrNotInScope means a batch referenced an id that does not exist
	// in the scope being reordered. The whole batch is rolled back.
	ErrNotInScope = errors.New("ordering: assignment targets a row outside the scope")
	// ErrMixedGroups means a site batch spans more than one group.
	ErrMixedGroups = errors.New("ordering: site assignments span multiple groups")
)

// Assignment pairs an entity id with its new position within its scope.
type Assignment struct {
	ID       uint `json:"id" binding:"required"`
	OrderNum int  `json:"order_num"`
}

// Engine maintains the order_num sequence for groups (global scope) and
// for sites within a group. Reorder batches are applied in a single
// transaction: either every assignment lands or none do.
type Engine struct {
	DB *gorm.DB
}

// ReorderGroups rewrites order_num for the listed groups. An empty
// batch is a successful no-op. An unknown id fails the whole batch.
func (e *Engine) ReorderGroups(assignments []Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return e.DB.Transaction(func(tx *gorm.DB) error {
		for _, a := range assignments {
			res := tx.Model(&models.Group{}).Where("id = ?", a.ID).Update("order_num", a.OrderNum)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotInScope
			}
		}
		return nil
	})
}

// ReorderSites rewrites order_num for the listed sites, which must all
// belong to one group. An id outside that group, or an unknown id,
// fails the whole batch and nothing is written.
func (e *Engine) ReorderSites(assignments []Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}
	return e.DB.Transaction(func(tx *gorm.DB) error {
		var groupIDs []uint
		if err := tx.Model(&models.Site{}).Where("id IN ?", ids).
			Distinct("group_id").Pluck("group_id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) == 0 {
			return ErrNotInScope
		}
		if len(groupIDs) > 1 {
			return ErrMixedGroups
		}
		groupID := groupIDs[0]
		for _, a := range assignments {
			res := tx.Model(&models.Site{}).
				Where("id = ? AND group_id = ?", a.ID, groupID).
				Update("order_num", a.OrderNum)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotInScope
			}
		}
		return nil
	})
}

// NextGroupPosition returns the append position for a new group:
// max(order_num)+1, or 0 when there are no groups yet.
func (e *Engine) NextGroupPosition() (int, error) {
	var next int
	err := e.DB.Model(&models.Group{}).
		Select("COALESCE(MAX(order_num), -1) + 1").Scan(&next).Error
	return next, err
}

// NextSitePosition returns the append position within one group.
func (e *Engine) NextSitePosition(groupID uint) (int, error) {
	var next int
	err := e.DB.Model(&models.Site{}).Where("group_id = ?", groupID).
		Select("COALESCE(MAX(order_num), -1) + 1").Scan(&next).Error
	return next, err
}

// ListGroups returns all groups sorted by order_num, ties broken by id
// so the ordering is deterministic.
func (e *Engine) ListGroups() ([]models.Group, error) {
	groups := make([]models.Group, 0)
	err := e.DB.Order("order_num ASC, id ASC").Find(&groups).Error
	return groups, err
}

// ListSites returns sites sorted by order_num then id, filtered to one
// group when groupID is non-nil.
func (e *Engine) ListSites(groupID *uint) ([]models.Site, error) {
	q := e.DB.Order("order_num ASC, id ASC")
	if groupID != nil {
		q = q.Where("group_id = ?", *groupID)
	}
	sites := make([]models.Site, 0)
	err := q.Find(&sites).Error
	return sites, err
}
