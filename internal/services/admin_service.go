package services

import (
	"context"

	"github.com/skillgateway/backend/internal/models"
)

// adminActivityLimit caps the admin activity listing
const adminActivityLimit = 200

// AdminActivityReader is the interface that wraps the cross-user activity read
type AdminActivityReader interface {
	// Method ListAll retrieves the most recent activity across all users,
	// joined with usernames.
	ListAll(ctx context.Context, limit int) ([]models.AdminActivityEntry, error)
}

// adminService implements admin panel reads that do not belong to a richer
// domain service
type adminService struct {
	activityRepo AdminActivityReader
}

// NewAdminService creates a new admin service
func NewAdminService(activityRepo AdminActivityReader) *adminService {
	return &adminService{
		activityRepo: activityRepo,
	}
}

// UserActivity retrieves the most recent activity across all users
func (s *adminService) UserActivity(ctx context.Context) ([]models.AdminActivityEntry, error) {
	return s.activityRepo.ListAll(ctx, adminActivityLimit)
}
