package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"apthire/internal/mocks"
	"apthire/internal/models"
	"apthire/internal/services"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadService_Create(t *testing.T) {
	tests := []struct {
		name     string
		alertErr error
	}{
		{name: "Success - admins alerted"},
		{name: "Success - alert failure does not fail the submission", alertErr: errors.New("telegram unreachable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newRepoMocks(t)
			alerter := mocks.NewMockLeadAlerter(m.ctrl)
			svc := services.NewLeadService(m.leads, alerter)

			m.leads.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, req *dto.CreateLeadRequest) (*models.Lead, error) {
					assert.Equal(t, "ann@example.com", req.Email)
					assert.Equal(t, "Ann", req.Name)
					return &models.Lead{ID: uuid.New(), Name: req.Name, Email: req.Email, Message: req.Message, CreatedAt: time.Now()}, nil
				})
			alerter.EXPECT().NotifyLead(gomock.Any(), gomock.Any()).Return(tt.alertErr)

			lead, err := svc.Create(context.Background(), &dto.CreateLeadRequest{Name: " Ann ", Email: "Ann@Example.com", Message: "Hi"})

			require.NoError(t, err)
			assert.Equal(t, "Hi", lead.Message)
		})
	}
}

func TestLeadService_Create_StoreFailureSkipsAlert(t *testing.T) {
	m := newRepoMocks(t)
	alerter := mocks.NewMockLeadAlerter(m.ctrl)
	svc := services.NewLeadService(m.leads, alerter)

	m.leads.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	alerter.EXPECT().NotifyLead(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Create(context.Background(), &dto.CreateLeadRequest{Name: "Ann", Email: "ann@example.com", Message: "Hi"})
	require.Error(t, err)
}

func TestLeadService_ListAndDelete(t *testing.T) {
	m := newRepoMocks(t)
	svc := services.NewLeadService(m.leads, mocks.NewMockLeadAlerter(m.ctrl))
	req := &dto.ListLeadsRequest{Limit: 10}
	id := uuid.New()

	m.leads.EXPECT().List(gomock.Any(), req).Return([]models.Lead{{ID: id}}, nil)
	m.leads.EXPECT().Delete(gomock.Any(), id).Return(storage.ErrNotFound)

	leads, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, leads, 1)

	err = svc.Delete(context.Background(), &dto.DeleteLeadRequest{ID: id})
	assert.True(t, errors.Is(err, services.ErrNotFound))
}
