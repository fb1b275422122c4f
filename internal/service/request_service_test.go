package service

import (
	"context"
	"errors"
	"testing"

	"procurehub/internal/dto"
	"procurehub/internal/model"
	"procurehub/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubRequestRepo is an in-memory RequestRepository for testing.
type stubRequestRepo struct {
	requests   []*model.Request
	nextID     uint
	nextLineID uint
	failCreate error
}

func newStubRequestRepo() *stubRequestRepo { return &stubRequestRepo{} }

func (r *stubRequestRepo) Create(_ context.Context, _ *gorm.DB, req *model.Request) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.nextID++
	req.ID = r.nextID
	for i := range req.OrderLines {
		r.nextLineID++
		req.OrderLines[i].ID = r.nextLineID
		req.OrderLines[i].RequestID = req.ID
	}
	stored := *req
	r.requests = append(r.requests, &stored)
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id uint) (*model.Request, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubRequestRepo) List(_ context.Context, skip, limit int) ([]model.Request, error) {
	var out []model.Request
	for i := skip; i < len(r.requests) && len(out) < limit; i++ {
		out = append(out, *r.requests[i])
	}
	return out, nil
}

func (r *stubRequestRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	for _, req := range r.requests {
		if req.ID == id {
			req.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubRequestRepo) DB() *gorm.DB { return nil }

var _ repository.RequestRepository = (*stubRequestRepo)(nil)

// stubClassifier records whether Predict was invoked.
type stubClassifier struct {
	code    string
	invoked int
}

func (s *stubClassifier) Predict(_ context.Context, _ dto.CreateRequestRequest) string {
	s.invoked++
	return s.code
}

var _ Classifier = (*stubClassifier)(nil)

func newTestService(repo repository.RequestRepository, cls Classifier) RequestService {
	return NewRequestService(repo, cls, nil, "", "")
}

func createPayload(groupID string) dto.CreateRequestRequest {
	return dto.CreateRequestRequest{
		RequestorName:    "Ada Lovelace",
		Department:       "Engineering",
		Title:            "Adobe Licenses",
		VendorName:       "Adobe Inc",
		VatID:            "DE123456789",
		CommodityGroupID: groupID,
		TotalCost:        decimal.NewFromInt(1200),
		OrderLines: []dto.OrderLineInput{
			{Description: "Creative Cloud", UnitPrice: decimal.NewFromInt(60), Amount: decimal.NewFromInt(20), Unit: "licenses", TotalPrice: decimal.NewFromInt(1200)},
			{Description: "Acrobat Pro", UnitPrice: decimal.NewFromInt(30), Amount: decimal.NewFromInt(5), Unit: "licenses", TotalPrice: decimal.NewFromInt(150)},
			{Description: "Stock credits", UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10), Unit: "packs", TotalPrice: decimal.NewFromInt(100)},
		},
	}
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreateStoresCallerGroupVerbatim(t *testing.T) {
	repo := newStubRequestRepo()
	cls := &stubClassifier{code: "031"}
	svc := newTestService(repo, cls)

	// Not a taxonomy code on purpose: caller-supplied values are not validated.
	resp, err := svc.Create(context.Background(), createPayload("custom-group"))
	require.NoError(t, err)
	assert.Equal(t, "custom-group", resp.CommodityGroupID)
	assert.Zero(t, cls.invoked, "classifier must not be invoked when a group is supplied")
}

func TestCreateClassifiesWhenGroupMissing(t *testing.T) {
	for _, groupID := range []string{"", "   "} {
		repo := newStubRequestRepo()
		cls := &stubClassifier{code: "029"}
		svc := newTestService(repo, cls)

		resp, err := svc.Create(context.Background(), createPayload(groupID))
		require.NoError(t, err)
		assert.Equal(t, 1, cls.invoked)
		assert.Equal(t, "029", resp.CommodityGroupID)
		assert.Equal(t, "029", repo.requests[0].CommodityGroupID)
	}
}

func TestCreateStoresClassifierDefaultOnFailure(t *testing.T) {
	// Compose the real classifier over a failing AI client: creation must
	// still succeed and store the default group.
	repo := newStubRequestRepo()
	cls := NewClassifier(&fakeAI{textErr: errors.New("network down")}, nil, 0)
	svc := newTestService(repo, cls)

	resp, err := svc.Create(context.Background(), createPayload(""))
	require.NoError(t, err)
	assert.Equal(t, "009", resp.CommodityGroupID)
}

func TestCreateStoresOrderLinesInInputOrder(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestService(repo, &stubClassifier{code: "029"})

	resp, err := svc.Create(context.Background(), createPayload("029"))
	require.NoError(t, err)
	require.Len(t, resp.OrderLines, 3)
	assert.Equal(t, "Creative Cloud", resp.OrderLines[0].Description)
	assert.Equal(t, "Acrobat Pro", resp.OrderLines[1].Description)
	assert.Equal(t, "Stock credits", resp.OrderLines[2].Description)

	stored := repo.requests[0]
	require.Len(t, stored.OrderLines, 3)
	for _, line := range stored.OrderLines {
		assert.Equal(t, stored.ID, line.RequestID)
	}
}

func TestCreateReturnsGeneratedFields(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestService(repo, &stubClassifier{code: "029"})

	resp, err := svc.Create(context.Background(), createPayload("029"))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, model.StatusOpen, resp.Status)
}

func TestCreatePersistenceFailureStoresNothing(t *testing.T) {
	repo := newStubRequestRepo()
	repo.failCreate = errors.New("connection lost")
	svc := newTestService(repo, &stubClassifier{code: "029"})

	_, err := svc.Create(context.Background(), createPayload("029"))
	require.Error(t, err)
	assert.Empty(t, repo.requests)
}

// ── List ──────────────────────────────────────────────────────────────────────

func TestListPagination(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestService(repo, &stubClassifier{code: "029"})

	first := createPayload("029")
	first.Title = "First"
	second := createPayload("029")
	second.Title = "Second"
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	page, err := svc.List(context.Background(), dto.RequestFilter{Skip: 0, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "First", page[0].Title)

	rest, err := svc.List(context.Background(), dto.RequestFilter{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "Second", rest[0].Title)
}

func TestListDefaults(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestService(repo, &stubClassifier{code: "029"})
	_, err := svc.Create(context.Background(), createPayload("029"))
	require.NoError(t, err)

	// Zero-value filter falls back to skip=0, limit=100.
	page, err := svc.List(context.Background(), dto.RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

// ── UpdateStatus ──────────────────────────────────────────────────────────────

func TestUpdateStatusOverwritesVerbatim(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestService(repo, &stubClassifier{code: "029"})
	resp, err := svc.Create(context.Background(), createPayload("029"))
	require.NoError(t, err)

	// Any string is accepted; there is no status enum.
	require.NoError(t, svc.UpdateStatus(context.Background(), resp.ID, "Waiting for CFO"))
	assert.Equal(t, "Waiting for CFO", repo.requests[0].Status)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestService(repo, &stubClassifier{code: "029"})
	_, err := svc.Create(context.Background(), createPayload("029"))
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), 999999, model.StatusClosed)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, model.StatusOpen, repo.requests[0].Status, "store must be unchanged")
}

// ── Round trip ────────────────────────────────────────────────────────────────

func TestCreateThenListRoundTrip(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestService(repo, &stubClassifier{code: "029"})

	payload := createPayload("029")
	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), dto.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got := listed[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, payload.RequestorName, got.RequestorName)
	assert.Equal(t, payload.Department, got.Department)
	assert.Equal(t, payload.Title, got.Title)
	assert.Equal(t, payload.VendorName, got.VendorName)
	assert.Equal(t, payload.VatID, got.VatID)
	assert.Equal(t, payload.CommodityGroupID, got.CommodityGroupID)
	assert.True(t, payload.TotalCost.Equal(got.TotalCost))
	assert.Equal(t, model.StatusOpen, got.Status)
	require.Len(t, got.OrderLines, len(payload.OrderLines))
	for i, line := range got.OrderLines {
		assert.Equal(t, payload.OrderLines[i].Description, line.Description)
		assert.True(t, payload.OrderLines[i].UnitPrice.Equal(line.UnitPrice))
		assert.True(t, payload.OrderLines[i].Amount.Equal(line.Amount))
		assert.Equal(t, payload.OrderLines[i].Unit, line.Unit)
		assert.True(t, payload.OrderLines[i].TotalPrice.Equal(line.TotalPrice))
	}
}
