package Services

import (
	"context"
	"errors"
	"strings"

	"IranElaj/Config"
	"IranElaj/Models"
	"IranElaj/Repositories"
	"IranElaj/Whatsapp"

	"go.uber.org/zap"
)

type FileInput struct {
	FileName string
	FilePath string
}

type CreateRequestInput struct {
	UserID      string
	Condition   string
	Specialties []string
	Files       []FileInput
}

type Stats struct {
	Total    int64                          `json:"total"`
	ByStatus map[Models.RequestStatus]int64 `json:"byStatus"`
}

type RequestService struct {
	cfg      *Config.Config
	requests Repositories.RequestRepository
	users    Repositories.UserRepository
	notifier *Notifier
	logger   *zap.Logger
}

func NewRequestService(cfg *Config.Config, requests Repositories.RequestRepository, users Repositories.UserRepository, notifier *Notifier, logger *zap.Logger) *RequestService {
	return &RequestService{
		cfg:      cfg,
		requests: requests,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Create stores the request with status new, then notifies the admin. A failed
// notification never fails the creation.
func (s *RequestService) Create(ctx context.Context, input CreateRequestInput) (*Models.MedicalRequest, NotifyResult, error) {
	input.Condition = strings.TrimSpace(input.Condition)
	if input.UserID == "" {
		return nil, NotifyResult{}, validationError("user is required")
	}
	if input.Condition == "" {
		return nil, NotifyResult{}, validationError("condition is required")
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, Repositories.ErrNotFound) {
			return nil, NotifyResult{}, ErrUserNotFound
		}
		return nil, NotifyResult{}, internalError("failed to create request", err)
	}

	request := &Models.MedicalRequest{
		UserID:    user.ID,
		Condition: input.Condition,
		Status:    Models.StatusNew,
	}
	if err := request.SetSpecialties(input.Specialties); err != nil {
		return nil, NotifyResult{}, internalError("failed to create request", err)
	}
	for _, file := range input.Files {
		if strings.TrimSpace(file.FilePath) == "" {
			return nil, NotifyResult{}, validationError("file path is required")
		}
		request.Files = append(request.Files, Models.RequestFile{
			FileName: strings.TrimSpace(file.FileName),
			FilePath: strings.TrimSpace(file.FilePath),
		})
	}

	if err := s.requests.Create(ctx, request); err != nil {
		s.logger.Error("Failed to store medical request", zap.String("user_id", user.ID), zap.Error(err))
		return nil, NotifyResult{}, internalError("failed to create request", err)
	}
	user.PrepareGive()
	request.User = *user

	s.logger.Info("Medical request created",
		zap.String("request_id", request.ID),
		zap.String("user_id", user.ID),
		zap.Strings("specialties", input.Specialties),
	)

	result := s.notifier.Notify(ctx, s.payload(request))
	return request, result, nil
}

func (s *RequestService) payload(request *Models.MedicalRequest) Whatsapp.Payload {
	ids := request.SpecialtyIDs()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, Models.SpecialtyName(id, "en"))
	}

	links := make([]string, 0, len(request.Files))
	for _, file := range request.Files {
		links = append(links, s.absoluteURL(file.FilePath))
	}

	var adminLink string
	if s.cfg.PublicBaseURL != "" {
		adminLink = s.cfg.PublicBaseURL + "/admin"
	}

	return Whatsapp.Payload{
		Name:      request.User.FullName,
		WhatsApp:  request.User.WhatsApp,
		Specialty: strings.Join(names, ", "),
		Condition: request.Condition,
		FileLinks: links,
		AdminLink: adminLink,
	}
}

func (s *RequestService) absoluteURL(path string) string {
	if s.cfg.PublicBaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.cfg.PublicBaseURL + path
}

// List returns requests newest first. An empty status lists every request.
func (s *RequestService) List(ctx context.Context, status string) ([]Models.MedicalRequest, error) {
	filter := Repositories.ListFilter{}
	if strings.TrimSpace(status) != "" {
		parsed, err := Models.ParseStatus(status)
		if err != nil {
			return nil, validationError("invalid status %q", status)
		}
		filter.Status = parsed
	}
	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list medical requests", zap.Error(err))
		return nil, internalError("failed to list requests", err)
	}
	return requests, nil
}

func (s *RequestService) ListForUser(ctx context.Context, userID string) ([]Models.MedicalRequest, error) {
	requests, err := s.requests.List(ctx, Repositories.ListFilter{UserID: userID})
	if err != nil {
		s.logger.Error("Failed to list user requests", zap.String("user_id", userID), zap.Error(err))
		return nil, internalError("failed to list requests", err)
	}
	return requests, nil
}

func (s *RequestService) Get(ctx context.Context, id string) (*Models.MedicalRequest, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, Repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, internalError("failed to load request", err)
	}
	return request, nil
}

// UpdateStatus accepts any member of the status enumeration from any current status.
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) (*Models.MedicalRequest, error) {
	parsed, err := Models.ParseStatus(status)
	if err != nil {
		return nil, validationError("invalid status %q", status)
	}

	request, err := s.requests.UpdateStatus(ctx, id, parsed)
	if err != nil {
		if errors.Is(err, Repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("Failed to update request status", zap.String("request_id", id), zap.Error(err))
		return nil, internalError("failed to update status", err)
	}

	s.logger.Info("Request status updated", zap.String("request_id", id), zap.String("status", string(parsed)))
	return request, nil
}

// Stats counts requests per status. Every status is present in ByStatus.
func (s *RequestService) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.requests.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Failed to count requests", zap.Error(err))
		return nil, internalError("failed to load stats", err)
	}

	stats := &Stats{ByStatus: make(map[Models.RequestStatus]int64, len(Models.AllStatuses))}
	for _, status := range Models.AllStatuses {
		stats.ByStatus[status] = counts[status]
	}
	for _, count := range counts {
		stats.Total += count
	}
	return stats, nil
}

// ContactLink opens a WhatsApp chat with the patient behind a request, prefilled with a greeting.
func (s *RequestService) ContactLink(ctx context.Context, id string) (string, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if request.User.WhatsApp == "" {
		return "", ErrUserNotFound
	}
	return Whatsapp.BuildLink(request.User.WhatsApp, Whatsapp.GreetingMessage(request.User.FullName)), nil
}
