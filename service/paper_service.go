package service

import (
	"context"
	"errors"
	"io"
	"time"

	"scholarspace-backend/errs"
	"scholarspace-backend/models"
	"scholarspace-backend/storage"

	"github.com/google/uuid"
)

// topTagsLimit is the number of tags reported by Stats
const topTagsLimit = 5

// PaperStore is the persistence surface PaperService depends on
type PaperStore interface {
	Create(ctx context.Context, paper *models.Paper) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Paper, error)
	List(ctx context.Context) ([]*models.Paper, error)
	Filter(ctx context.Context, filter models.PaperFilter) ([]*models.Paper, error)
	ToggleFavorite(ctx context.Context, id uuid.UUID) (*models.Paper, error)
	SetDocumentPath(ctx context.Context, id uuid.UUID, path string) error
	CountAll(ctx context.Context) (int, error)
	CountByYear(ctx context.Context, year int) (int, error)
	TopTags(ctx context.Context, limit int) ([]models.TagCount, error)
}

// PaperService handles business logic for papers
type PaperService struct {
	papers    PaperStore
	documents storage.Storage
}

// PaperServiceOption is a functional option for PaperService
type PaperServiceOption func(*PaperService)

// WithPaperStore sets the paper store
func WithPaperStore(store PaperStore) PaperServiceOption {
	return func(s *PaperService) {
		s.papers = store
	}
}

// WithDocumentStorage sets the backend for attached documents
func WithDocumentStorage(docs storage.Storage) PaperServiceOption {
	return func(s *PaperService) {
		s.documents = docs
	}
}

// NewPaperService creates a new paper service
func NewPaperService(opts ...PaperServiceOption) *PaperService {
	s := &PaperService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadPaperRequest represents a request to add a paper to the collection
type UploadPaperRequest struct {
	Title    string
	Author   string
	Year     int
	Tags     []string
	Abstract string
}

// UploadPaperResult represents the result of uploading a paper
type UploadPaperResult struct {
	Paper *models.Paper
}

// Upload creates a new paper. Favorite always starts false and the upload
// timestamp is assigned by the store. Missing fields are stored as given,
// not rejected.
func (s *PaperService) Upload(ctx context.Context, req UploadPaperRequest) (*UploadPaperResult, error) {
	if s.papers == nil {
		return nil, errors.New("paper store not set")
	}

	paper := &models.Paper{
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Tags:     req.Tags,
		Abstract: req.Abstract,
		Favorite: false,
	}
	if paper.Tags == nil {
		paper.Tags = []string{}
	}

	if err := s.papers.Create(ctx, paper); err != nil {
		return nil, err
	}

	return &UploadPaperResult{Paper: paper}, nil
}

// ListPapersResult represents the result of listing papers
type ListPapersResult struct {
	Papers []*models.Paper
}

// List returns every paper in store order
func (s *PaperService) List(ctx context.Context) (*ListPapersResult, error) {
	if s.papers == nil {
		return nil, errors.New("paper store not set")
	}

	papers, err := s.papers.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ListPapersResult{Papers: papers}, nil
}

// FilterPapersRequest represents a request to filter papers
type FilterPapersRequest struct {
	Year   *int
	Tag    string
	Author string
}

// Filter returns papers matching all provided criteria; with no criteria it
// behaves like List.
func (s *PaperService) Filter(ctx context.Context, req FilterPapersRequest) (*ListPapersResult, error) {
	if s.papers == nil {
		return nil, errors.New("paper store not set")
	}

	papers, err := s.papers.Filter(ctx, models.PaperFilter{
		Year:   req.Year,
		Tag:    req.Tag,
		Author: req.Author,
	})
	if err != nil {
		return nil, err
	}

	return &ListPapersResult{Papers: papers}, nil
}

// GetPaperResult represents the result of fetching a single paper
type GetPaperResult struct {
	Paper *models.Paper
}

// Get retrieves a paper by id
func (s *PaperService) Get(ctx context.Context, id uuid.UUID) (*GetPaperResult, error) {
	if s.papers == nil {
		return nil, errors.New("paper store not set")
	}

	paper, err := s.papers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GetPaperResult{Paper: paper}, nil
}

// ToggleFavorite flips the paper's favorite flag. Two consecutive calls
// restore the original value.
func (s *PaperService) ToggleFavorite(ctx context.Context, id uuid.UUID) (*GetPaperResult, error) {
	if s.papers == nil {
		return nil, errors.New("paper store not set")
	}

	paper, err := s.papers.ToggleFavorite(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GetPaperResult{Paper: paper}, nil
}

// StatsResult represents the collection analytics
type StatsResult struct {
	Analytics models.Analytics
}

// Stats computes the total paper count, the count for the current calendar
// year evaluated at call time, and the top tags by frequency.
func (s *PaperService) Stats(ctx context.Context) (*StatsResult, error) {
	if s.papers == nil {
		return nil, errors.New("paper store not set")
	}

	total, err := s.papers.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	thisYear, err := s.papers.CountByYear(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}

	topTags, err := s.papers.TopTags(ctx, topTagsLimit)
	if err != nil {
		return nil, err
	}
	if topTags == nil {
		topTags = []models.TagCount{}
	}

	return &StatsResult{Analytics: models.Analytics{
		TotalPapers:    total,
		PapersThisYear: thisYear,
		TopTags:        topTags,
	}}, nil
}

// AttachDocument stores the paper's document through the storage backend and
// records its path.
func (s *PaperService) AttachDocument(ctx context.Context, id uuid.UUID, filename string, data io.Reader) (*GetPaperResult, error) {
	if s.papers == nil {
		return nil, errors.New("paper store not set")
	}
	if s.documents == nil {
		return nil, errors.New("document storage not set")
	}

	paper, err := s.papers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.documents.Save(ctx, paper.ID, filename, data)
	if err != nil {
		return nil, err
	}

	if err := s.papers.SetDocumentPath(ctx, paper.ID, path); err != nil {
		return nil, err
	}
	paper.DocumentPath = &path

	return &GetPaperResult{Paper: paper}, nil
}

// OpenDocument streams back the paper's attached document
func (s *PaperService) OpenDocument(ctx context.Context, id uuid.UUID) (io.ReadCloser, *models.Paper, error) {
	if s.papers == nil {
		return nil, nil, errors.New("paper store not set")
	}
	if s.documents == nil {
		return nil, nil, errors.New("document storage not set")
	}

	paper, err := s.papers.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if paper.DocumentPath == nil {
		return nil, nil, errs.ErrNoDocument
	}

	rc, err := s.documents.Open(ctx, *paper.DocumentPath)
	if err != nil {
		return nil, nil, err
	}

	return rc, paper, nil
}
