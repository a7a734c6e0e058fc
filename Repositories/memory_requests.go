package Repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"IranElaj/Models"

	"github.com/google/uuid"
)

type MemoryRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]Models.MedicalRequest
	users    UserRepository
}

// NewMemoryRequestRepository resolves request owners through users when listing.
func NewMemoryRequestRepository(users UserRepository) *MemoryRequestRepository {
	return &MemoryRequestRepository{
		requests: map[string]Models.MedicalRequest{},
		users:    users,
	}
}

func (r *MemoryRequestRepository) Create(_ context.Context, request *Models.MedicalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = Models.StatusNew
	}
	now := time.Now()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now
	for i := range request.Files {
		if request.Files[i].ID == "" {
			request.Files[i].ID = uuid.NewString()
		}
		request.Files[i].RequestID = request.ID
		request.Files[i].CreatedAt = now
	}

	stored := *request
	stored.User = Models.User{}
	stored.Files = append([]Models.RequestFile(nil), request.Files...)
	r.requests[stored.ID] = stored
	return nil
}

func (r *MemoryRequestRepository) List(ctx context.Context, filter ListFilter) ([]Models.MedicalRequest, error) {
	r.mu.RLock()
	output := make([]Models.MedicalRequest, 0, len(r.requests))
	for _, request := range r.requests {
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && request.UserID != filter.UserID {
			continue
		}
		output = append(output, request)
	}
	r.mu.RUnlock()

	// Newest first; ID breaks ties so map order never leaks into the result.
	sort.SliceStable(output, func(i, j int) bool {
		if !output[i].CreatedAt.Equal(output[j].CreatedAt) {
			return output[i].CreatedAt.After(output[j].CreatedAt)
		}
		return output[i].ID < output[j].ID
	})
	for i := range output {
		if err := r.attach(ctx, &output[i]); err != nil {
			return nil, err
		}
	}
	return output, nil
}

func (r *MemoryRequestRepository) FindByID(ctx context.Context, id string) (*Models.MedicalRequest, error) {
	r.mu.RLock()
	request, ok := r.requests[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if err := r.attach(ctx, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *MemoryRequestRepository) UpdateStatus(ctx context.Context, id string, status Models.RequestStatus) (*Models.MedicalRequest, error) {
	r.mu.Lock()
	request, ok := r.requests[id]
	if ok {
		request.Status = status
		request.UpdatedAt = time.Now()
		r.requests[id] = request
	}
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MemoryRequestRepository) CountByStatus(_ context.Context) (map[Models.RequestStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[Models.RequestStatus]int64{}
	for _, request := range r.requests {
		counts[request.Status]++
	}
	return counts, nil
}

func (r *MemoryRequestRepository) attach(ctx context.Context, request *Models.MedicalRequest) error {
	request.Files = append([]Models.RequestFile(nil), request.Files...)
	if r.users == nil {
		return nil
	}
	user, err := r.users.FindByID(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	user.PrepareGive()
	request.User = *user
	return nil
}
