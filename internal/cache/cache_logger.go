package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// SafeSet safely stores a cache entry with logging
func SafeSet(ctx context.Context, helper *CacheHelper, key string, value interface{}, ttl time.Duration) {
	if err := helper.Set(ctx, key, value, ttl); err != nil {
		slog.ErrorContext(ctx, "Failed to set cache key",
			"error", err,
			"key", key)
	}
}

// InvalidateStudent drops the full list, the by-id entry and the student's
// relationship views. relationshipsChanged additionally drops every
// course-student-set entry. Coarse on purpose, computing the exact set of
// affected courses is not worth the bookkeeping.
func InvalidateStudent(ctx context.Context, cm *CacheManager, studentID uint, relationshipsChanged bool) {
	SafeDelete(ctx, cm.Student, "list", fmt.Sprintf("id:%d", studentID))
	SafeInvalidatePattern(ctx, cm.Relation, fmt.Sprintf("student:%d:*", studentID))
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("student:%d", studentID))

	if relationshipsChanged {
		SafeInvalidatePattern(ctx, cm.Relation, "course:*")
	}
}

// InvalidateCourse drops the course entries. Title/description updates do not
// touch student caches; course deletion does (cascade strips enrollments), so
// callers pass relationshipsChanged accordingly. The cascade also drops every
// by-id student entry: those aggregates embed their course set and would keep
// serving the deleted course otherwise.
func InvalidateCourse(ctx context.Context, cm *CacheManager, code string, relationshipsChanged bool) {
	SafeDelete(ctx, cm.Course, "list", fmt.Sprintf("code:%s", code))
	SafeInvalidatePattern(ctx, cm.Relation, fmt.Sprintf("course:%s:*", code))
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("course:%s", code))

	if relationshipsChanged {
		SafeDelete(ctx, cm.Student, "list")
		SafeInvalidatePattern(ctx, cm.Student, "id:*")
		SafeInvalidatePattern(ctx, cm.Relation, "*")
	}
}
