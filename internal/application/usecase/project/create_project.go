package project

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/gourav132/Show-IT/adapters/event"
	"github.com/gourav132/Show-IT/internal/application/service"
	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/logger"
)

var tracer = otel.Tracer("project_usecase")

func coverFolder(ownerID uuid.UUID) string {
	return fmt.Sprintf("users/%s/projects", ownerID.String())
}

type CreateProjectUseCase struct {
	projectRepo project.Repository
	uploader    service.Uploader
	producer    *event.Producer
	notifier    project.ChangeNotifier
	logger      logger.Logger
}

func NewCreateProjectUseCase(
	repo project.Repository,
	uploader service.Uploader,
	producer *event.Producer,
	notifier project.ChangeNotifier,
	log logger.Logger,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: repo,
		uploader:    uploader,
		producer:    producer,
		notifier:    notifier,
		logger:      log,
	}
}

type CreateProjectInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	About       string
	GithubLink  string
	ProjectLink string
	File        io.Reader
}

// Execute uploads the cover first and writes the document only after the
// upload succeeded; an upload failure leaves no document behind. When the
// document write fails after the upload, the orphaned blob is destroyed in
// the background.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*project.Project, error) {

	ctx, span := tracer.Start(ctx, "CreateProject")
	defer span.End()

	now := time.Now().UTC()
	newProject := &project.Project{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		About:       input.About,
		GithubLink:  input.GithubLink,
		ProjectLink: input.ProjectLink,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := newProject.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	if input.File != nil {
		fileURL, err := uc.uploader.Upload(ctx, input.File, coverFolder(input.OwnerID), newProject.ID.String())
		if err != nil {
			span.RecordError(err)
			return nil, apperror.NewUploadFailed("failed to upload project cover", err)
		}
		newProject.FileURL = fileURL
	}

	if err := uc.projectRepo.Save(ctx, newProject); err != nil {
		if newProject.FileURL != "" {
			go uc.uploader.Delete(context.Background(), coverFolder(input.OwnerID)+"/"+newProject.ID.String())
		}
		span.RecordError(err)
		return nil, apperror.NewWriteFailed("project", err)
	}

	fanOutChange(uc.notifier, uc.producer, uc.logger, newProject, event.ProjectEventCreated)
	return newProject, nil
}

// fanOutChange wakes the owner's live watchers and publishes the kafka event.
// Both are post-commit and best-effort; the document write already succeeded.
func fanOutChange(notifier project.ChangeNotifier, producer *event.Producer, log logger.Logger, p *project.Project, eventType string) {
	if notifier != nil {
		if err := notifier.Notify(context.Background(), p.OwnerID); err != nil {
			log.Warn("failed to notify project watchers", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		}
	}
	if producer != nil {
		go func() {
			err := producer.PublishProjectEvent(context.Background(), event.ProjectEventPayload{
				EventType: eventType,
				ProjectID: p.ID,
				OwnerID:   p.OwnerID,
			})
			if err != nil {
				log.Error("failed to publish project event", err, zap.String("project_id", p.ID.String()))
			}
		}()
	}
}
