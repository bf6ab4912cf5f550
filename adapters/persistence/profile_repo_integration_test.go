package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/internal/domain/user"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger
	profileRepo profile.Repository
	projectRepo project.Repository
	userRepo    user.Repository
	testOwner   *user.User
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	s.testLogger = logger.NewNop()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profileRepo = NewPostgresProfileRepo(s.dbPool, s.testLogger)
	s.projectRepo = NewPostgresProjectRepo(s.dbPool, s.testLogger)
	s.userRepo = NewPostgresUserRepo(s.dbPool)

	s.testOwner = &user.User{
		ID:           uuid.New(),
		Email:        "testowner@example.com",
		Name:         "Test Owner",
		Username:     "testowner1234",
		AuthProvider: "local",
		PasswordHash: "hashedpassword",
	}
	if err := s.userRepo.Create(ctx, s.testOwner); err != nil {
		s.T().Fatalf("Failed to seed owner: %s", err)
	}
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) Test_Profile_Create_Save_Get() {
	ctx := context.Background()

	p := profile.Default(s.testOwner.ID, s.testOwner.Username, "http://localhost:5173/portfolio/testowner1234")
	p.DisplayName = "Test Owner"
	p.UpdatedAt = time.Now().UTC()
	s.NoError(s.profileRepo.Create(ctx, p))

	p.Tagline = "I build things"
	p.Skills = append(p.Skills, profile.Skill{
		ID:    uuid.New(),
		Name:  "Go",
		Level: profile.LevelAdvanced,
		Icon:  profile.Icon{Kind: profile.IconGlyph, Glyph: "code"},
	})
	p.UpdatedAt = time.Now().UTC()
	s.NoError(s.profileRepo.Save(ctx, p))

	got, err := s.profileRepo.GetByOwner(ctx, s.testOwner.ID)
	s.NoError(err)
	s.Equal("I build things", got.Tagline)
	s.Len(got.Skills, 1)
	s.Equal("Go", got.Skills[0].Name)

	byName, err := s.profileRepo.GetByUsername(ctx, s.testOwner.Username)
	s.NoError(err)
	s.Equal(s.testOwner.ID, byName.OwnerID)
}

func (s *RepoIntegrationTestSuite) Test_Profile_Save_FullReplace() {
	ctx := context.Background()

	got, err := s.profileRepo.GetByOwner(ctx, s.testOwner.ID)
	s.NoError(err)

	got.Skills = []profile.Skill{}
	got.UpdatedAt = time.Now().UTC()
	s.NoError(s.profileRepo.Save(ctx, got))

	reread, err := s.profileRepo.GetByOwner(ctx, s.testOwner.ID)
	s.NoError(err)
	s.Empty(reread.Skills)
}

func (s *RepoIntegrationTestSuite) Test_Profile_NotFound() {
	_, err := s.profileRepo.GetByOwner(context.Background(), uuid.New())
	s.ErrorIs(err, apperror.ErrNotFound)

	missing := profile.Default(uuid.New(), "nobody9999", "")
	err = s.profileRepo.Save(context.Background(), missing)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *RepoIntegrationTestSuite) Test_Project_CRUD() {
	ctx := context.Background()
	now := time.Now().UTC()

	p := &project.Project{
		ID:          uuid.New(),
		OwnerID:     s.testOwner.ID,
		Title:       "Showcase",
		Description: "A project worth showing off to visitors",
		GithubLink:  "https://github.com/testowner/showcase",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.NoError(s.projectRepo.Save(ctx, p))

	found, err := s.projectRepo.FindByID(ctx, p.ID, s.testOwner.ID)
	s.NoError(err)
	s.Equal(p.Title, found.Title)

	found.Title = "Showcase v2"
	found.UpdatedAt = time.Now().UTC()
	s.NoError(s.projectRepo.Update(ctx, found))

	list, err := s.projectRepo.ListByOwner(ctx, s.testOwner.ID)
	s.NoError(err)
	s.Len(list, 1)
	s.Equal("Showcase v2", list[0].Title)

	s.NoError(s.projectRepo.Delete(ctx, p.ID, s.testOwner.ID))
	err = s.projectRepo.Delete(ctx, p.ID, s.testOwner.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
}
