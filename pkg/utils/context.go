package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	TenantIDKey contextKey = "tenant_id"
	StaffIDKey  contextKey = "staff_id"
	RoleKey     contextKey = "role"
)

func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantVal := ctx.Value(TenantIDKey)
	if tenantVal == nil {
		return uuid.Nil, false
	}

	tenantStr, ok := tenantVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	tenantID, err := uuid.Parse(tenantStr)
	if err != nil {
		return uuid.Nil, false
	}

	return tenantID, true
}

func GetStaffIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	staffVal := ctx.Value(StaffIDKey)
	if staffVal == nil {
		return uuid.Nil, false
	}

	staffStr, ok := staffVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	staffID, err := uuid.Parse(staffStr)
	if err != nil {
		return uuid.Nil, false
	}

	return staffID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetStaffContext(ctx context.Context, tenantID, staffID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, TenantIDKey, tenantID.String())
	ctx = context.WithValue(ctx, StaffIDKey, staffID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}
