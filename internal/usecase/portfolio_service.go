package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	idgen "github.com/riskibarqy/creator-booking/internal/platform/id"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
)

const (
	defaultPortfolioUploadWorkers = 4
	defaultPortfolioMaxFileBytes  = 50 << 20

	advisoryPortfolio = "upload at least 6 portfolio items"
)

type PortfolioConfig struct {
	MaxFileBytes  int64
	UploadWorkers int
}

// UploadFile is one file of a bulk upload. Open is called from a pool
// worker and the returned reader is closed after the upload.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type UploadFailure struct {
	Index  int
	Name   string
	Reason string
}

type PortfolioView struct {
	Items      []portfolio.Item
	Created    []portfolio.Item
	Failures   []UploadFailure
	Advisories []string
}

type PortfolioService struct {
	profileRepo onboarding.Repository
	repo        portfolio.Repository
	storage     portfolio.Storage
	idGen       idgen.Generator
	cfg         PortfolioConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewPortfolioService(
	profileRepo onboarding.Repository,
	repo portfolio.Repository,
	storage portfolio.Storage,
	idGen idgen.Generator,
	cfg PortfolioConfig,
	logger *logging.Logger,
) *PortfolioService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = defaultPortfolioMaxFileBytes
	}
	if cfg.UploadWorkers <= 0 {
		cfg.UploadWorkers = defaultPortfolioUploadWorkers
	}

	return &PortfolioService{
		profileRepo: profileRepo,
		repo:        repo,
		storage:     storage,
		idGen:       idGen,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *PortfolioService) List(ctx context.Context, userID string) (PortfolioView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortfolioService.List", userAttr(userID))
	defer span.End()

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return PortfolioView{}, err
	}
	items, err := s.repo.ListByCreator(ctx, profile.ID)
	if err != nil {
		return PortfolioView{}, fmt.Errorf("list portfolio items: %w", err)
	}
	return portfolioView(items, nil, nil), nil
}

type uploadTask struct {
	index     int
	file      UploadFile
	itemID    string
	path      string
	mediaType portfolio.MediaType
	err       error
}

// Upload stores a batch of files. The whole batch is rejected up front if
// it would push the creator past the item cap; after that, files fail
// individually without aborting the rest.
func (s *PortfolioService) Upload(ctx context.Context, userID string, files []UploadFile) (PortfolioView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortfolioService.Upload", userAttr(userID))
	defer span.End()

	if len(files) == 0 {
		return PortfolioView{}, fmt.Errorf("%w: at least one file is required", ErrInvalidInput)
	}

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return PortfolioView{}, err
	}

	existing, err := s.repo.ListByCreator(ctx, profile.ID)
	if err != nil {
		return PortfolioView{}, fmt.Errorf("list portfolio items: %w", err)
	}
	if len(existing)+len(files) > portfolio.MaxItems {
		return PortfolioView{}, fmt.Errorf("%w: %w: have %d, adding %d, max %d",
			ErrInvalidInput, portfolio.ErrTooManyItems, len(existing), len(files), portfolio.MaxItems)
	}

	failures := make([]UploadFailure, 0)
	tasks := make([]*uploadTask, 0, len(files))
	for i, file := range files {
		task, reason := s.prepareUpload(profile.UserID, i, file)
		if reason != "" {
			failures = append(failures, UploadFailure{Index: i, Name: file.Name, Reason: reason})
			continue
		}
		tasks = append(tasks, task)
	}

	if err := s.runUploads(ctx, tasks); err != nil {
		return PortfolioView{}, err
	}

	nextPosition := 0
	for _, item := range existing {
		if item.Position >= nextPosition {
			nextPosition = item.Position + 1
		}
	}

	created := make([]portfolio.Item, 0, len(tasks))
	for _, task := range tasks {
		if task.err != nil {
			s.logger.WarnContext(ctx, "portfolio upload failed",
				"creator_id", profile.ID,
				"file", task.file.Name,
				"error", task.err,
			)
			failures = append(failures, UploadFailure{Index: task.index, Name: task.file.Name, Reason: task.err.Error()})
			continue
		}

		item := portfolio.Item{
			ID:          task.itemID,
			CreatorID:   profile.ID,
			StoragePath: task.path,
			MediaURL:    s.storage.PublicURL(task.path),
			MediaType:   task.mediaType,
			ContentType: task.file.ContentType,
			Position:    nextPosition,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.repo.Insert(ctx, item); err != nil {
			s.logger.WarnContext(ctx, "portfolio record insert failed, removing object",
				"creator_id", profile.ID,
				"path", task.path,
				"error", err,
			)
			if delErr := s.storage.Delete(ctx, task.path); delErr != nil && !errors.Is(delErr, portfolio.ErrObjectNotFound) {
				s.logger.ErrorContext(ctx, "orphaned portfolio object", "path", task.path, "error", delErr)
			}
			failures = append(failures, UploadFailure{Index: task.index, Name: task.file.Name, Reason: "save portfolio record failed"})
			continue
		}
		created = append(created, item)
		nextPosition++
	}

	items, err := s.repo.ListByCreator(ctx, profile.ID)
	if err != nil {
		return PortfolioView{}, fmt.Errorf("list portfolio items: %w", err)
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].Index < failures[j].Index })

	s.logger.InfoContext(ctx, "portfolio batch processed",
		"creator_id", profile.ID,
		"requested", len(files),
		"created", len(created),
		"failed", len(failures),
	)
	return portfolioView(items, created, failures), nil
}

// Remove deletes the stored object and then the record. An object that is
// already gone does not block removing the record.
func (s *PortfolioService) Remove(ctx context.Context, userID, itemID string) (PortfolioView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortfolioService.Remove")
	defer span.End()

	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return PortfolioView{}, fmt.Errorf("%w: item id is required", ErrInvalidInput)
	}

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return PortfolioView{}, err
	}

	item, exists, err := s.repo.GetByID(ctx, profile.ID, itemID)
	if err != nil {
		return PortfolioView{}, fmt.Errorf("get portfolio item: %w", err)
	}
	if !exists {
		return PortfolioView{}, fmt.Errorf("%w: portfolio item %s", ErrNotFound, itemID)
	}

	if err := s.storage.Delete(ctx, item.StoragePath); err != nil && !errors.Is(err, portfolio.ErrObjectNotFound) {
		return PortfolioView{}, fmt.Errorf("%w: delete portfolio object: %w", ErrDependencyUnavailable, err)
	}
	if _, err := s.repo.Delete(ctx, profile.ID, item.ID); err != nil {
		return PortfolioView{}, fmt.Errorf("delete portfolio item: %w", err)
	}

	items, err := s.repo.ListByCreator(ctx, profile.ID)
	if err != nil {
		return PortfolioView{}, fmt.Errorf("list portfolio items: %w", err)
	}
	return portfolioView(items, nil, nil), nil
}

func (s *PortfolioService) prepareUpload(userID string, index int, file UploadFile) (*uploadTask, string) {
	mediaType, ext, err := portfolio.ClassifyContentType(file.ContentType)
	if err != nil {
		return nil, err.Error()
	}
	if file.Size <= 0 {
		return nil, "file is empty"
	}
	if file.Size > s.cfg.MaxFileBytes {
		return nil, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileBytes)
	}
	if file.Open == nil {
		return nil, "file body is missing"
	}

	itemID, err := s.idGen.NewID()
	if err != nil {
		return nil, "generate item id failed"
	}
	return &uploadTask{
		index:     index,
		file:      file,
		itemID:    itemID,
		path:      portfolioObjectPath(userID, itemID, ext),
		mediaType: mediaType,
	}, ""
}

func (s *PortfolioService) runUploads(ctx context.Context, tasks []*uploadTask) error {
	if len(tasks) == 0 {
		return nil
	}

	workers := s.cfg.UploadWorkers
	if workers > len(tasks) {
		workers = len(tasks)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create upload pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			task.err = s.uploadOne(ctx, task)
		}); err != nil {
			wg.Done()
			task.err = fmt.Errorf("submit upload: %w", err)
		}
	}
	wg.Wait()
	return nil
}

func (s *PortfolioService) uploadOne(ctx context.Context, task *uploadTask) error {
	body, err := task.file.Open()
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer body.Close()

	if err := s.storage.Upload(ctx, task.path, task.file.ContentType, task.file.Size, body); err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	return nil
}

func portfolioObjectPath(userID, itemID, ext string) string {
	return strings.TrimSpace(userID) + "/portfolio/" + itemID + ext
}

func portfolioView(items, created []portfolio.Item, failures []UploadFailure) PortfolioView {
	if items == nil {
		items = []portfolio.Item{}
	}
	if created == nil {
		created = []portfolio.Item{}
	}
	if failures == nil {
		failures = []UploadFailure{}
	}
	view := PortfolioView{
		Items:      items,
		Created:    created,
		Failures:   failures,
		Advisories: []string{},
	}
	if len(items) < portfolio.RecommendedItems {
		view.Advisories = append(view.Advisories, advisoryPortfolio)
	}
	return view
}
