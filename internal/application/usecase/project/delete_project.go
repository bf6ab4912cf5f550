package project

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gourav132/Show-IT/adapters/event"
	"github.com/gourav132/Show-IT/internal/application/service"
	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/pkg/logger"
)

type DeleteProjectUseCase struct {
	projectRepo project.Repository
	uploader    service.Uploader
	producer    *event.Producer
	notifier    project.ChangeNotifier
	logger      logger.Logger
}

func NewDeleteProjectUseCase(
	repo project.Repository,
	uploader service.Uploader,
	producer *event.Producer,
	notifier project.ChangeNotifier,
	log logger.Logger,
) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projectRepo: repo,
		uploader:    uploader,
		producer:    producer,
		notifier:    notifier,
		logger:      log,
	}
}

// Execute removes the document, then destroys the cover blob in the
// background. The document is the source of truth; a leaked blob after a
// crashed cleanup is acceptable, a dangling document reference is not.
func (uc *DeleteProjectUseCase) Execute(ctx context.Context, id, ownerID uuid.UUID) error {

	ctx, span := tracer.Start(ctx, "DeleteProject")
	defer span.End()

	existing, err := uc.projectRepo.FindByID(ctx, id, ownerID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := uc.projectRepo.Delete(ctx, id, ownerID); err != nil {
		span.RecordError(err)
		return err
	}

	if existing.FileURL != "" {
		go func() {
			publicID := coverFolder(ownerID) + "/" + id.String()
			if err := uc.uploader.Delete(context.Background(), publicID); err != nil {
				uc.logger.Warn("failed to destroy project cover", zap.String("public_id", publicID), zap.Error(err))
			}
		}()
	}

	fanOutChange(uc.notifier, uc.producer, uc.logger, existing, event.ProjectEventDeleted)
	return nil
}
