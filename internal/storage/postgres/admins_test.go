package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
)

func TestAdminRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &adminRepository{storage: storage}
	ctx := context.Background()

	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO admins").WithArgs("admin@bo.example", "hash", model.RoleAdmin).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt),
	)
	admin, err := repo.Upsert(ctx, "admin@bo.example", "hash", model.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.ID != 1 || admin.Email != "admin@bo.example" || !admin.IsAdmin() {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	mock.ExpectQuery("INSERT INTO admins").WithArgs("admin@bo.example", "hash", model.RoleAdmin).WillReturnError(errors.New("insert"))
	if _, err := repo.Upsert(ctx, "admin@bo.example", "hash", model.RoleAdmin); err == nil {
		t.Fatal("expected error")
	}

	columns := []string{"id", "email", "password_hash", "role", "created_at"}

	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM admins WHERE email=").WithArgs("admin@bo.example").WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow(int64(1), "admin@bo.example", "hash", model.RoleAdmin, createdAt))
	if _, err := repo.GetByEmail(ctx, "admin@bo.example"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM admins WHERE email=").WithArgs("missing@bo.example").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByEmail(ctx, "missing@bo.example"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM admins WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow(int64(1), "admin@bo.example", "hash", "viewer", createdAt))
	admin, err = repo.GetByID(ctx, 1)
	if err != nil || admin.IsAdmin() {
		t.Fatalf("unexpected admin: %+v err=%v", admin, err)
	}

	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM admins WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(ctx, 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM admins WHERE id=").WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(ctx, 3); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
