package domain

import "time"

// CollaboratorRole gates what a collaborator may do with a shared map.
type CollaboratorRole string

const (
	RoleViewer CollaboratorRole = "viewer"
	RoleEditor CollaboratorRole = "editor"
)

func ParseCollaboratorRole(s string) (CollaboratorRole, error) {
	switch CollaboratorRole(s) {
	case RoleViewer:
		return RoleViewer, nil
	case RoleEditor:
		return RoleEditor, nil
	}
	return "", &ValidationError{Field: "role", Reason: "must be viewer or editor"}
}

// Collaborator records one user's access to someone else's map.
type Collaborator struct {
	UserID  string
	Role    CollaboratorRole
	AddedBy string
	AddedAt time.Time
}

// TripMap is the named container for a set of stops. Stops live in their
// own storage namespace keyed by owner+map; the map document itself only
// carries metadata and the collaborator list.
type TripMap struct {
	ID            string
	Name          string
	Owner         string
	CreatedAt     time.Time
	Collaborators []Collaborator
}

// CanRead reports whether uid may open the map: the owner always can, a
// collaborator with any role can.
func (m *TripMap) CanRead(uid string) bool {
	if uid == m.Owner {
		return true
	}
	for _, c := range m.Collaborators {
		if c.UserID == uid {
			return true
		}
	}
	return false
}

// CanWrite reports whether uid may modify the map's stops: the owner, or a
// collaborator with the editor role.
func (m *TripMap) CanWrite(uid string) bool {
	if uid == m.Owner {
		return true
	}
	for _, c := range m.Collaborators {
		if c.UserID == uid && c.Role == RoleEditor {
			return true
		}
	}
	return false
}
