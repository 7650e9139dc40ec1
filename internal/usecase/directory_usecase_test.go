package usecase

import (
	"errors"
	"testing"

	"oa-portal/internal/apperr"
	"oa-portal/internal/model"
	"oa-portal/internal/testfixtures"
)

func newDirectoryFixture(t *testing.T) (*DirectoryUsecase, *testfixtures.UserRepo, *testfixtures.LeaveRepo) {
	t.Helper()
	users := testfixtures.NewUserRepo()
	leaves := testfixtures.NewLeaveRepo()
	return NewDirectoryUsecase(users, leaves), users, leaves
}

func TestCreateUser(t *testing.T) {
	dir, users, _ := newDirectoryFixture(t)
	boss := testfixtures.AddUser(users, "boss", "pw", model.RoleEmployee, nil)

	t.Run("missing required fields", func(t *testing.T) {
		for _, in := range []CreateUserInput{
			{Password: "pw", RealName: "X"},
			{Username: "x", RealName: "X"},
			{Username: "x", Password: "pw"},
		} {
			if _, err := dir.CreateUser(in); !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("input %+v: got %v, want ErrValidation", in, err)
			}
		}
	})

	t.Run("role outside the closed set", func(t *testing.T) {
		in := CreateUserInput{Username: "x", Password: "pw", RealName: "X", Role: "SUPERUSER"}
		if _, err := dir.CreateUser(in); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("got %v, want ErrValidation", err)
		}
	})

	t.Run("unknown manager", func(t *testing.T) {
		in := CreateUserInput{Username: "x", Password: "pw", RealName: "X", ManagerID: testfixtures.UintPtr(777)}
		if _, err := dir.CreateUser(in); !errors.Is(err, apperr.ErrUnknownManager) {
			t.Fatalf("got %v, want ErrUnknownManager", err)
		}
	})

	t.Run("success defaults to EMPLOYEE and hashes the password", func(t *testing.T) {
		created, err := dir.CreateUser(CreateUserInput{
			Username: "carol", Password: "pw", RealName: "Carol",
			ManagerID: testfixtures.UintPtr(boss.ID),
		})
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if !created.HasRole(model.RoleEmployee) {
			t.Fatalf("roles %v, want EMPLOYEE", created.RoleNames())
		}
		if created.Password == "pw" {
			t.Fatal("password stored in plain text")
		}
		if created.Status != model.StatusActive {
			t.Fatalf("status %q, want ACTIVE", created.Status)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := dir.CreateUser(CreateUserInput{Username: "carol", Password: "pw", RealName: "Other"})
		if !errors.Is(err, apperr.ErrDuplicateUsername) {
			t.Fatalf("got %v, want ErrDuplicateUsername", err)
		}
	})
}

func TestUpdateUserManagerCycle(t *testing.T) {
	dir, users, _ := newDirectoryFixture(t)
	a := testfixtures.AddUser(users, "a", "pw", model.RoleEmployee, nil)
	b := testfixtures.AddUser(users, "b", "pw", model.RoleEmployee, testfixtures.UintPtr(a.ID))
	c := testfixtures.AddUser(users, "c", "pw", model.RoleEmployee, testfixtures.UintPtr(b.ID))

	t.Run("self-reference", func(t *testing.T) {
		_, err := dir.UpdateUser(a.ID, UpdateUserInput{ManagerID: testfixtures.UintPtr(a.ID)})
		if !errors.Is(err, apperr.ErrManagerCycle) {
			t.Fatalf("got %v, want ErrManagerCycle", err)
		}
	})

	t.Run("closing a transitive cycle", func(t *testing.T) {
		// a <- b <- c already holds; a reporting to c would close the loop.
		_, err := dir.UpdateUser(a.ID, UpdateUserInput{ManagerID: testfixtures.UintPtr(c.ID)})
		if !errors.Is(err, apperr.ErrManagerCycle) {
			t.Fatalf("got %v, want ErrManagerCycle", err)
		}
	})

	t.Run("legal reassignment", func(t *testing.T) {
		updated, err := dir.UpdateUser(c.ID, UpdateUserInput{ManagerID: testfixtures.UintPtr(a.ID)})
		if err != nil {
			t.Fatalf("UpdateUser: %v", err)
		}
		if updated.ManagerID == nil || *updated.ManagerID != a.ID {
			t.Fatalf("manager %v, want %d", updated.ManagerID, a.ID)
		}
	})

	t.Run("clearing the manager", func(t *testing.T) {
		updated, err := dir.UpdateUser(b.ID, UpdateUserInput{ClearManager: true})
		if err != nil {
			t.Fatalf("UpdateUser: %v", err)
		}
		if updated.ManagerID != nil {
			t.Fatalf("manager %v, want nil", updated.ManagerID)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	dir, users, leaves := newDirectoryFixture(t)
	admin := testfixtures.AddUser(users, "root", "pw", model.RoleAdmin, nil)
	boss := testfixtures.AddUser(users, "boss", "pw", model.RoleEmployee, nil)
	emp := testfixtures.AddUser(users, "alice", "pw", model.RoleEmployee, testfixtures.UintPtr(boss.ID))

	t.Run("deleting yourself is rejected", func(t *testing.T) {
		if err := dir.DeleteUser(admin.ID, admin.ID); !errors.Is(err, apperr.ErrCannotDeleteSelf) {
			t.Fatalf("got %v, want ErrCannotDeleteSelf", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		if err := dir.DeleteUser(admin.ID, 999); !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("referenced by leave history flips to LEFT", func(t *testing.T) {
		_ = leaves.Create(&model.LeaveRequest{
			ApplicantID: emp.ID,
			ApproverID:  testfixtures.UintPtr(boss.ID),
			Status:      model.LeaveApproved,
		})
		if err := dir.DeleteUser(admin.ID, emp.ID); err != nil {
			t.Fatalf("DeleteUser: %v", err)
		}
		kept, err := users.FindByID(emp.ID)
		if err != nil {
			t.Fatalf("user hard-deleted despite leave history")
		}
		if kept.Status != model.StatusLeft {
			t.Fatalf("status %q, want LEFT", kept.Status)
		}
	})

	t.Run("unreferenced user is removed and subordinates unlinked", func(t *testing.T) {
		lone := testfixtures.AddUser(users, "lone", "pw", model.RoleEmployee, nil)
		sub := testfixtures.AddUser(users, "sub", "pw", model.RoleEmployee, testfixtures.UintPtr(lone.ID))

		if err := dir.DeleteUser(admin.ID, lone.ID); err != nil {
			t.Fatalf("DeleteUser: %v", err)
		}
		if _, err := users.FindByID(lone.ID); err == nil {
			t.Fatal("user still present after delete")
		}
		remaining, _ := users.FindByID(sub.ID)
		if remaining.ManagerID != nil {
			t.Fatalf("subordinate still references deleted manager %d", *remaining.ManagerID)
		}
	})
}

func TestManagerCandidatesExcludeLeft(t *testing.T) {
	dir, users, _ := newDirectoryFixture(t)
	testfixtures.AddUser(users, "active", "pw", model.RoleEmployee, nil)
	left := testfixtures.AddUser(users, "gone", "pw", model.RoleEmployee, nil)
	left.Status = model.StatusLeft

	candidates, err := dir.ManagerCandidates()
	if err != nil {
		t.Fatalf("ManagerCandidates: %v", err)
	}
	for _, c := range candidates {
		if c.Username == "gone" {
			t.Fatal("LEFT user offered as manager candidate")
		}
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
}

func TestManagerChain(t *testing.T) {
	dir, users, _ := newDirectoryFixture(t)
	top := testfixtures.AddUser(users, "top", "pw", model.RoleEmployee, nil)
	mid := testfixtures.AddUser(users, "mid", "pw", model.RoleEmployee, testfixtures.UintPtr(top.ID))
	leaf := testfixtures.AddUser(users, "leaf", "pw", model.RoleEmployee, testfixtures.UintPtr(mid.ID))

	chain, err := dir.ManagerChain(leaf.ID)
	if err != nil {
		t.Fatalf("ManagerChain: %v", err)
	}
	if len(chain) != 2 || chain[0] != mid.ID || chain[1] != top.ID {
		t.Fatalf("chain %v, want [%d %d]", chain, mid.ID, top.ID)
	}

	t.Run("cycle fails closed", func(t *testing.T) {
		// Force a cycle directly in storage: top reports to leaf.
		top.ManagerID = testfixtures.UintPtr(leaf.ID)
		if _, err := dir.ManagerChain(leaf.ID); !errors.Is(err, apperr.ErrManagerCycle) {
			t.Fatalf("got %v, want ErrManagerCycle", err)
		}
	})
}
