package services

import (
	"context"
	"errors"
	"testing"

	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/domain"
)

func newTestRoleService(t *testing.T) (*RoleService, *stubRoleRepo, *stubUserRepo) {
	t.Helper()
	roleRepo := newStubRoleRepo(authz.RoleUser, authz.RoleAdmin, authz.RoleModerator)
	userRepo := newStubUserRepo()
	return NewRoleService(roleRepo, userRepo), roleRepo, userRepo
}

func TestRoleCreateRejectsUnknownName(t *testing.T) {
	svc, _, _ := newTestRoleService(t)

	if _, err := svc.Create(context.Background(), &RoleInput{Name: "SUPERUSER"}); err == nil {
		t.Error("Create() accepted a name outside the fixed role set")
	}
}

func TestRoleCreateRejectsDuplicate(t *testing.T) {
	svc, _, _ := newTestRoleService(t)

	_, err := svc.Create(context.Background(), &RoleInput{Name: authz.RoleAdmin})
	if !errors.Is(err, domain.ErrRoleExists) {
		t.Errorf("error = %v, want ErrRoleExists", err)
	}
}

func TestRoleDeleteInUse(t *testing.T) {
	svc, roleRepo, userRepo := newTestRoleService(t)
	userRole, _ := roleRepo.GetByName(context.Background(), authz.RoleUser)
	seedUser(t, userRepo, "alice", "pass123", *userRole)

	err := svc.Delete(context.Background(), userRole.ID)
	if !errors.Is(err, domain.ErrRoleInUse) {
		t.Fatalf("error = %v, want ErrRoleInUse", err)
	}

	// The refused delete must leave the role untouched.
	if _, err := roleRepo.GetByID(context.Background(), userRole.ID); err != nil {
		t.Error("role disappeared despite the in-use refusal")
	}
}

func TestRoleDeleteUnused(t *testing.T) {
	svc, roleRepo, _ := newTestRoleService(t)
	modRole, _ := roleRepo.GetByName(context.Background(), authz.RoleModerator)

	if err := svc.Delete(context.Background(), modRole.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := roleRepo.GetByID(context.Background(), modRole.ID); err == nil {
		t.Error("role still present after delete")
	}
}

func TestRoleAssignAndRemove(t *testing.T) {
	svc, roleRepo, userRepo := newTestRoleService(t)
	user := seedUser(t, userRepo, "alice", "pass123")
	modRole, _ := roleRepo.GetByName(context.Background(), authz.RoleModerator)

	if err := svc.AssignToUser(context.Background(), user.ID, modRole.ID); err != nil {
		t.Fatalf("AssignToUser() error = %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0].Name != authz.RoleModerator {
		t.Errorf("roles = %v, want [MODERATOR]", user.RoleNames())
	}

	if err := svc.RemoveFromUser(context.Background(), user.ID, modRole.ID); err != nil {
		t.Fatalf("RemoveFromUser() error = %v", err)
	}
	if len(user.Roles) != 0 {
		t.Errorf("roles = %v, want empty", user.RoleNames())
	}
}

func TestRoleGetByIDNotFound(t *testing.T) {
	svc, _, _ := newTestRoleService(t)

	if _, err := svc.GetByID(context.Background(), 999); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Errorf("error = %v, want ErrRoleNotFound", err)
	}
}
