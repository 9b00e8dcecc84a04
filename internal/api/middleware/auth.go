package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
	branchIDKey contextKey = "branchID"
)

// Заголовки, проставляемые API gateway после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderBranchID = "X-Branch-ID"
)

// Auth извлекает идентичность вызывающего из заголовков и кладет в контекст
// X-User-ID обязателен; X-User-Role и X-Branch-ID опциональны —
// их валидирует доменный слой при сборке Actor
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)

		if role := r.Header.Get(HeaderUserRole); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, domain.Role(role))
		}

		if branchIDStr := r.Header.Get(HeaderBranchID); branchIDStr != "" {
			branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
			if err != nil || branchID <= 0 {
				handlers.RespondUnauthorized(w, "некорректный заголовок X-Branch-ID")
				return
			}
			ctx = context.WithValue(ctx, branchIDKey, branchID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole извлекает роль пользователя из контекста
func GetUserRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.Role)
	return role, ok
}

// GetBranchID извлекает ID филиала пользователя из контекста
func GetBranchID(ctx context.Context) (int64, bool) {
	branchID, ok := ctx.Value(branchIDKey).(int64)
	return branchID, ok
}

// GetActor собирает Actor из контекста запроса
// Возвращает false, если не хватает идентичности или роли
func GetActor(ctx context.Context) (domain.Actor, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return domain.Actor{}, false
	}

	role, ok := GetUserRole(ctx)
	if !ok {
		return domain.Actor{}, false
	}

	// BranchID опционален для admin
	branchID, _ := GetBranchID(ctx)
	if role != domain.RoleAdmin && branchID <= 0 {
		return domain.Actor{}, false
	}

	return domain.Actor{
		UserID:   userID,
		Role:     role,
		BranchID: branchID,
	}, true
}
