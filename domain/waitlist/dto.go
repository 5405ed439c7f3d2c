package waitlist

import (
	"github.com/storytimehq/storytime-api/internal/models"
	"github.com/storytimehq/storytime-api/pkg/constants"
)

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Name  string `json:"name" binding:"required,min=1,max=255"`
}

type SubscribeResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type EntryResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type PaginationMeta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

type PaginatedEntriesResponse struct {
	Entries    []EntryResponse `json:"entries"`
	Pagination PaginationMeta  `json:"pagination"`
}

// ========================================
// Mappers
// ========================================

func ToWaitlistEntryModel(req *SubscribeRequest) *models.WaitlistEntry {
	if req == nil {
		return nil
	}
	return &models.WaitlistEntry{
		Email: req.Email,
		Name:  req.Name,
	}
}

func ToSubscribeResponse(entry *models.WaitlistEntry) SubscribeResponse {
	if entry == nil {
		return SubscribeResponse{}
	}
	return SubscribeResponse{
		Email: entry.Email,
		Name:  entry.Name,
	}
}

func ToEntryResponse(entry *models.WaitlistEntry) EntryResponse {
	if entry == nil {
		return EntryResponse{}
	}
	return EntryResponse{
		ID:        entry.ID,
		Email:     entry.Email,
		Name:      entry.Name,
		CreatedAt: entry.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}

func ToEntryResponses(entries []*models.WaitlistEntry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToEntryResponse(entry))
	}
	return responses
}
