//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vbote/auth-server/internal/model"
	repo "github.com/vbote/auth-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "vbote_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/vbote_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newTestUser(username string) model.User {
	now := time.Now()
	return model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "digest",
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	sr := repo.NewSessionRepository(conn)

	t.Run("user_repository", func(t *testing.T) {
		u := newTestUser("alice")
		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		byUsername, err := ur.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, u.ID, byUsername.ID)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", byID.Username)

		exists, err := ur.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = ur.ExistsByUsername(ctx, "nobody")
		require.NoError(t, err)
		require.False(t, exists)

		saved.Blocked = true
		saved.UpdatedAt = time.Now()
		updated, err := ur.Update(ctx, saved)
		require.NoError(t, err)
		require.True(t, updated.Blocked)

		_, err = ur.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = ur.Update(ctx, newTestUser("ghost"))
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("user_repository_filters", func(t *testing.T) {
		_, err := ur.Create(ctx, newTestUser("filter-bob"))
		require.NoError(t, err)
		admin := newTestUser("filter-admin")
		admin.Role = model.RoleAdmin
		_, err = ur.Create(ctx, admin)
		require.NoError(t, err)

		username := "filter-"
		list, err := ur.FindAllWithFilters(ctx, model.UserFilter{Username: &username})
		require.NoError(t, err)
		require.Len(t, list, 2)

		role := model.RoleAdmin
		list, err = ur.FindAllWithFilters(ctx, model.UserFilter{Username: &username, Role: &role})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "filter-admin", list[0].Username)
	})

	t.Run("session_repository", func(t *testing.T) {
		owner, err := ur.Create(ctx, newTestUser("session-owner"))
		require.NoError(t, err)

		s := model.Session{
			ID:        uuid.New(),
			UserID:    owner.ID,
			Token:     "tok-" + uuid.NewString(),
			IPAddress: "127.0.0.1",
			CreatedAt: time.Now(),
			Active:    true,
		}
		saved, err := sr.Create(ctx, s)
		require.NoError(t, err)
		require.Equal(t, s.ID, saved.ID)

		byToken, err := sr.GetByToken(ctx, s.Token)
		require.NoError(t, err)
		require.Equal(t, owner.ID, byToken.UserID)

		_, err = sr.GetByToken(ctx, "missing")
		require.ErrorIs(t, err, model.ErrNotFound)

		active, err := sr.FindAllActiveByUserID(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, active, 1)

		saved.Active = false
		updated, err := sr.Update(ctx, saved)
		require.NoError(t, err)
		require.False(t, updated.Active)

		active, err = sr.FindAllActiveByUserID(ctx, owner.ID)
		require.NoError(t, err)
		require.Empty(t, active)
	})

	t.Run("session_repository_deactivate_all", func(t *testing.T) {
		owner, err := ur.Create(ctx, newTestUser("bulk-owner"))
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := sr.Create(ctx, model.Session{
				ID:        uuid.New(),
				UserID:    owner.ID,
				Token:     "bulk-" + uuid.NewString(),
				IPAddress: "127.0.0.1",
				CreatedAt: time.Now(),
				Active:    true,
			})
			require.NoError(t, err)
		}

		closed, err := sr.DeactivateAllByUserID(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, int64(3), closed)

		closed, err = sr.DeactivateAllByUserID(ctx, owner.ID)
		require.NoError(t, err)
		require.Zero(t, closed)
	})
}
