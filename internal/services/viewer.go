// internal/services/viewer.go
package services

import (
	"github.com/google/uuid"

	"github.com/javajoker/foodgram-backend/internal/models"
)

// Viewer is the identity a request acts as. The zero value is anonymous.
type Viewer struct {
	UserID        uuid.UUID
	Role          models.Role
	Authenticated bool
}

func Anonymous() Viewer {
	return Viewer{}
}

// AuthenticatedViewer treats an unknown role as a regular user.
func AuthenticatedViewer(userID uuid.UUID, role models.Role) Viewer {
	if !role.Valid() {
		role = models.RoleUser
	}
	return Viewer{UserID: userID, Role: role, Authenticated: true}
}

// CanModify reports whether the viewer may change content owned by ownerID.
func (v Viewer) CanModify(ownerID uuid.UUID) bool {
	if !v.Authenticated {
		return false
	}
	return v.UserID == ownerID || v.Role.CanModerate()
}
