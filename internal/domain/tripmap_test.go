package domain

import "testing"

func TestTripMapAccess(t *testing.T) {
	m := &TripMap{
		ID:    "map-1",
		Owner: "owner",
		Collaborators: []Collaborator{
			{UserID: "viewer", Role: RoleViewer},
			{UserID: "editor", Role: RoleEditor},
		},
	}

	if !m.CanRead("owner") || !m.CanWrite("owner") {
		t.Fatal("owner must have full access")
	}
	if !m.CanRead("viewer") {
		t.Fatal("viewer must be able to read")
	}
	if m.CanWrite("viewer") {
		t.Fatal("viewer must not be able to write")
	}
	if !m.CanRead("editor") || !m.CanWrite("editor") {
		t.Fatal("editor must have full access")
	}
	if m.CanRead("stranger") || m.CanWrite("stranger") {
		t.Fatal("stranger must have no access")
	}
}

func TestParseCollaboratorRole(t *testing.T) {
	if r, err := ParseCollaboratorRole("viewer"); err != nil || r != RoleViewer {
		t.Fatalf("ParseCollaboratorRole(viewer) = %v, %v", r, err)
	}
	if r, err := ParseCollaboratorRole("editor"); err != nil || r != RoleEditor {
		t.Fatalf("ParseCollaboratorRole(editor) = %v, %v", r, err)
	}
	if _, err := ParseCollaboratorRole("admin"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
