package Controllers

import (
	"net/http"

	"IranElaj/Services"
	"IranElaj/Utils/Token"

	"github.com/gin-gonic/gin"
)

type FileInput struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath" binding:"required"`
}

type CreateRequestInput struct {
	Condition   string      `json:"condition" binding:"required"`
	Specialties []string    `json:"specialties"`
	Files       []FileInput `json:"files" binding:"dive"`
}

func (h *Handler) CreateRequest(c *gin.Context) {
	userID, err := Token.ExtractTokenID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "condition is required"})
		return
	}

	files := make([]Services.FileInput, 0, len(input.Files))
	for _, file := range input.Files {
		files = append(files, Services.FileInput{FileName: file.FileName, FilePath: file.FilePath})
	}

	request, notification, err := h.requests.Create(c.Request.Context(), Services.CreateRequestInput{
		UserID:      userID,
		Condition:   input.Condition,
		Specialties: input.Specialties,
		Files:       files,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request, "notification": notification})
}

func (h *Handler) MyRequests(c *gin.Context) {
	userID, err := Token.ExtractTokenID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	requests, err := h.requests.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) ListRequests(c *gin.Context) {
	requests, err := h.requests.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) RequestStats(c *gin.Context) {
	stats, err := h.requests.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateRequestStatus(c *gin.Context) {
	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	request, err := h.requests.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) ContactLink(c *gin.Context) {
	link, err := h.requests.ContactLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"whatsappLink": link})
}
