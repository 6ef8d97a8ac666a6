package services

import (
	"context"
	"log"
	"strings"
	"time"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"
)

const leadAlertTimeout = 5 * time.Second

type leadService struct {
	repo    storage.LeadRepository
	alerter LeadAlerter
}

// NewLeadService creates a new instance of LeadService.
func NewLeadService(repo storage.LeadRepository, alerter LeadAlerter) LeadService {
	return &leadService{repo: repo, alerter: alerter}
}

// Create stores the lead and alerts admins. Alert failures are only logged.
func (s *leadService) Create(ctx context.Context, req *dto.CreateLeadRequest) (*models.Lead, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	lead, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating lead")
	}

	alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leadAlertTimeout)
	defer cancel()
	if err := s.alerter.NotifyLead(alertCtx, lead); err != nil {
		log.Printf("LeadService: Failed to alert admins about lead %s: %v", lead.ID, err)
	}
	return lead, nil
}

func (s *leadService) List(ctx context.Context, req *dto.ListLeadsRequest) ([]models.Lead, error) {
	leads, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing leads")
	}
	return leads, nil
}

func (s *leadService) Delete(ctx context.Context, req *dto.DeleteLeadRequest) error {
	if err := s.repo.Delete(ctx, req.ID); err != nil {
		return mapRepoError(err, "deleting lead")
	}
	return nil
}
