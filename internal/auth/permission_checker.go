package auth

import "context"

type PermissionChecker interface {
	CanManageAssets(userPermissions []string) bool
	CanManageUsers(userPermissions []string) bool
	CanResolveRequests(userPermissions []string) bool
	CanManageMaintenance(userPermissions []string) bool
	HasAnyPermission(userPermissions []string, requiredPermissions []string) bool
	IsAssetManager(userPermissions []string) bool
	IsAdmin(userPermissions []string) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

func (c *DefaultPermissionChecker) HasPermission(ctx context.Context, userPermissions []string, permission string) (bool, error) {
	return c.HasAnyPermission(userPermissions, []string{permission}), nil
}

func (c *DefaultPermissionChecker) CanManageAssetsCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanManageAssets(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanManageUsersCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanManageUsers(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanResolveRequestsCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanResolveRequests(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanManageMaintenanceCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanManageMaintenance(userPermissions), nil
}

func (c *DefaultPermissionChecker) IsAdminCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.IsAdmin(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanManageAssets(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"manage_assets", "admin"})
}

func (c *DefaultPermissionChecker) CanManageUsers(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"manage_users", "admin"})
}

func (c *DefaultPermissionChecker) CanResolveRequests(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"resolve_requests", "admin"})
}

func (c *DefaultPermissionChecker) CanManageMaintenance(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"manage_maintenance", "admin"})
}

func (c *DefaultPermissionChecker) HasAnyPermission(userPermissions []string, requiredPermissions []string) bool {
	for _, userPerm := range userPermissions {
		for _, requiredPerm := range requiredPermissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (c *DefaultPermissionChecker) IsAssetManager(userPermissions []string) bool {
	managerPerms := []string{"manage_assets", "resolve_requests", "manage_maintenance", "admin"}
	return c.HasAnyPermission(userPermissions, managerPerms)
}

func (c *DefaultPermissionChecker) IsAdmin(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"admin"})
}
