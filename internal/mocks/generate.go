// Package mocks provides mock implementations for testing service orchestration.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository ports. The mocks are generated using go:generate directives.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/ports.
// This creates MockUserRepository with methods:
// FindByEmail, FindByID, Put
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/datalabs-io/platform-api/internal/ports UserRepository

// Generate mock for SessionRepository interface from internal/ports.
// This creates MockSessionRepository with methods:
// PutAuthSession, AuthSessionsForUser, DeleteAuthSession, PutSession, FindSessionByID, DeleteSession
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_repository_mock.go github.com/datalabs-io/platform-api/internal/ports SessionRepository

// Generate mock for ExpiryReaper interface from internal/ports.
// This creates MockExpiryReaper with methods:
// ReapExpired
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=expiry_reaper_mock.go github.com/datalabs-io/platform-api/internal/ports ExpiryReaper
