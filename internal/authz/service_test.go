package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceEditorWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("reviewer", "/admin/posts/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetEditorRoles("e-1", []string{"reviewer"}); err != nil {
		t.Fatalf("set editor roles failed: %v", err)
	}

	allow, err := svc.EnforceEditor("e-1", "/api/v1/admin/posts/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceEditor("e-1", "/api/v1/admin/posts/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetEditorRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := svc.SetEditorRoles("e-2", []string{"editor"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetEditorRoles("e-2")
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:editor" {
		t.Fatalf("roles want [role:editor], got=%v", roles)
	}

	if err := svc.SetEditorRoles("e-2", []string{"viewer"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	allow, err := svc.EnforceEditor("e-2", "/admin/posts", "POST")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected editor permission removed")
	}
	allow, err = svc.EnforceEditor("e-2", "/admin/posts", "GET")
	if err != nil {
		t.Fatalf("enforce viewer failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected viewer read permission")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/posts/:id", want: "/admin/posts/:id"},
		{in: "/admin/posts/:id", want: "/admin/posts/:id"},
		{in: "admin/posts", want: "/admin/posts"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap should be idempotent: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:viewer": true,
		"role:editor": true,
		"role:admin":  true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	if err := svc.SetEditorRoles("e-3", []string{"editor"}); err != nil {
		t.Fatalf("set editor roles failed: %v", err)
	}
	cases := []struct {
		obj   string
		act   string
		allow bool
	}{
		{obj: "/admin/contact-messages", act: "GET", allow: true},
		{obj: "/admin/posts/abc", act: "PUT", allow: true},
		{obj: "/admin/posts/slug", act: "POST", allow: true},
		{obj: "/admin/editors", act: "POST", allow: false},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceEditor("e-3", tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if allow != tc.allow {
			t.Fatalf("enforce %s %s want %v got %v", tc.act, tc.obj, tc.allow, allow)
		}
	}

	if err := svc.SetEditorRoles("e-4", []string{"admin"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	allow, err := svc.EnforceEditor("e-4", "/admin/editors", "POST")
	if err != nil {
		t.Fatalf("enforce admin failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected admin to manage editors")
	}
}

func TestIsBuiltinRole(t *testing.T) {
	if !IsBuiltinRole("editor") || !IsBuiltinRole("role:admin") {
		t.Fatalf("expected builtin roles recognized")
	}
	if IsBuiltinRole("finance") || IsBuiltinRole("") {
		t.Fatalf("unexpected builtin role match")
	}
}
