package Controllers

import (
	"net/http"

	"IranElaj/Models"

	"github.com/gin-gonic/gin"
)

type statusEntry struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type specialtyEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Statuses lists the request statuses in workflow order, labelled for ?locale= (ar, fa, en).
func (h *Handler) Statuses(c *gin.Context) {
	locale := c.DefaultQuery("locale", "en")
	output := make([]statusEntry, 0, len(Models.AllStatuses))
	for _, status := range Models.AllStatuses {
		output = append(output, statusEntry{
			Value: string(status),
			Label: status.LocalizedName(locale),
			Color: status.Label().Color,
		})
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) Specialties(c *gin.Context) {
	locale := c.DefaultQuery("locale", "en")
	output := make([]specialtyEntry, 0, len(Models.Specialties))
	for _, specialty := range Models.Specialties {
		output = append(output, specialtyEntry{ID: specialty.ID, Name: specialty.Name(locale)})
	}
	c.JSON(http.StatusOK, output)
}
