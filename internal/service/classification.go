package service

import (
	"context"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/repository"
)

type classificationService struct {
	classificationRepository repository.Classifications
}

func newClassificationService(classificationRepository repository.Classifications) *classificationService {
	return &classificationService{
		classificationRepository: classificationRepository,
	}
}

func (s *classificationService) GetMap(ctx context.Context) (domain.Classifications, error) {
	list, err := s.classificationRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewClassifications(list), nil
}
