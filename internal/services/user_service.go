package services

import (
	"context"
	"fmt"
	"log"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type userService struct {
	users     storage.UserRepository
	jobs      storage.JobRepository
	apps      storage.ApplicationRepository
	txManager storage.TxManager
}

// NewUserService creates a new instance of UserService.
func NewUserService(users storage.UserRepository, jobs storage.JobRepository, apps storage.ApplicationRepository, txManager storage.TxManager) UserService {
	return &userService{
		users:     users,
		jobs:      jobs,
		apps:      apps,
		txManager: txManager,
	}
}

func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, mapRepoError(err, "listing users")
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting user")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.User, error) {
	req.Skills = cleanStrings(req.Skills)
	user, err := s.users.UpdateProfile(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating profile")
	}
	return user, nil
}

// Delete removes a user. Applications to jobs the user posted are flagged
// as job-removed before the jobs disappear with the account.
func (s *userService) Delete(ctx context.Context, req *dto.DeleteUserRequest) error {
	if req.ID == req.UserID {
		return fmt.Errorf("%w: admins cannot delete their own account", ErrValidation)
	}

	return s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		jobIDs, err := s.jobs.WithTx(tx).ListIDsByOwner(ctx, req.ID)
		if err != nil {
			return mapRepoError(err, "listing jobs of deleted user")
		}
		txApps := s.apps.WithTx(tx)
		for _, jobID := range jobIDs {
			if _, err := txApps.MarkJobRemoved(ctx, jobID); err != nil {
				return mapRepoError(err, "flagging applications")
			}
		}
		if err := s.users.WithTx(tx).Delete(ctx, req.ID); err != nil {
			return mapRepoError(err, "deleting user")
		}
		log.Printf("UserService: User %s deleted by %s (%d jobs removed)", req.ID, req.UserID, len(jobIDs))
		return nil
	})
}
