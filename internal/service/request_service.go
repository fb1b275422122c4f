package service

import (
	"context"
	"strings"

	"procurehub/internal/dto"
	"procurehub/internal/infra"
	"procurehub/internal/model"
	"procurehub/internal/repository"
	"procurehub/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 100
)

type RequestService interface {
	Create(ctx context.Context, req dto.CreateRequestRequest) (*dto.RequestResponse, error)
	List(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.RequestResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	ExportPDF(ctx context.Context, id uint) (string, error)
}

type requestService struct {
	repo       repository.RequestRepository
	classifier Classifier
	dispatcher *worker.Dispatcher // nil disables notifications
	notifyTo   string
	pdfPath    string
}

func NewRequestService(
	repo repository.RequestRepository,
	classifier Classifier,
	dispatcher *worker.Dispatcher,
	notifyTo string,
	pdfPath string,
) RequestService {
	return &requestService{
		repo:       repo,
		classifier: classifier,
		dispatcher: dispatcher,
		notifyTo:   notifyTo,
		pdfPath:    pdfPath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Create stores a request with its order lines.
//  1. Classification gate: an empty commodity_group_id is predicted by the
//     classifier; a caller-supplied value is stored verbatim, without
//     taxonomy validation.
//  2. Request row and all order-line rows (in input order) are inserted in
//     one transaction — either all rows become visible or none.
func (s *requestService) Create(ctx context.Context, req dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	groupID := strings.TrimSpace(req.CommodityGroupID)
	if groupID == "" {
		groupID = s.classifier.Predict(ctx, req)
	}

	m := model.Request{
		RequestorName:    req.RequestorName,
		Department:       req.Department,
		Title:            req.Title,
		VendorName:       req.VendorName,
		VatID:            req.VatID,
		CommodityGroupID: groupID,
		TotalCost:        req.TotalCost,
		Status:           model.StatusOpen,
	}
	for _, line := range req.OrderLines {
		m.OrderLines = append(m.OrderLines, model.OrderLine{
			Description: line.Description,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
			Unit:        line.Unit,
			TotalPrice:  line.TotalPrice,
		})
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &m)
	})
	if err != nil {
		return nil, err
	}
	return requestToResponse(&m), nil
}

func (s *requestService) List(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestResponse, error) {
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	reqs, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, *requestToResponse(&reqs[i]))
	}
	return out, nil
}

func (s *requestService) GetByID(ctx context.Context, id uint) (*dto.RequestResponse, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return requestToResponse(req), nil
}

// UpdateStatus overwrites the status field verbatim; any string is accepted.
// Returns repository.ErrNotFound for unknown ids with no store mutation.
// A committed change optionally enqueues an email notification; the update
// itself never waits on, or fails because of, the notification path.
func (s *requestService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if s.dispatcher != nil && s.notifyTo != "" {
		req, err := s.repo.FindByID(ctx, id)
		if err != nil {
			log.Error().Err(err).Uint("id", id).Msg("status notification lookup failed")
			return nil
		}
		payload := worker.NotifyPayload{
			ToEmail:   s.notifyTo,
			RequestID: req.ID,
			Title:     req.Title,
			NewStatus: status,
		}
		if err := s.dispatcher.EnqueueNotification(ctx, payload); err != nil {
			log.Error().Err(err).Uint("id", id).Msg("status notification enqueue failed")
		}
	}
	return nil
}

func (s *requestService) ExportPDF(ctx context.Context, id uint) (string, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return infra.GenerateRequestPDF(req, s.pdfPath)
}

func requestToResponse(m *model.Request) *dto.RequestResponse {
	lines := make([]dto.OrderLineResponse, 0, len(m.OrderLines))
	for _, l := range m.OrderLines {
		lines = append(lines, dto.OrderLineResponse{
			ID:          l.ID,
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
			Unit:        l.Unit,
			TotalPrice:  l.TotalPrice,
		})
	}
	return &dto.RequestResponse{
		ID:               m.ID,
		RequestorName:    m.RequestorName,
		Department:       m.Department,
		Title:            m.Title,
		VendorName:       m.VendorName,
		VatID:            m.VatID,
		CommodityGroupID: m.CommodityGroupID,
		TotalCost:        m.TotalCost,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
		OrderLines:       lines,
	}
}
