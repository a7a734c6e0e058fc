package Models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MedicalRequest struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"type:uuid;not null;index" json:"userId"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	Condition   string         `gorm:"type:text;not null" json:"condition"`
	Specialties datatypes.JSON `gorm:"type:jsonb" json:"specialties"`
	Status      RequestStatus  `gorm:"size:32;not null;default:new;index" json:"status"`
	Files       []RequestFile  `gorm:"foreignKey:RequestID" json:"files"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type RequestFile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID string    `gorm:"type:uuid;not null;index" json:"requestId"`
	FileName  string    `gorm:"size:255;not null" json:"fileName"`
	FilePath  string    `gorm:"size:512;not null" json:"filePath"`
	CreatedAt time.Time `json:"createdAt"`
}

func (request *MedicalRequest) BeforeCreate(tx *gorm.DB) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = StatusNew
	}
	return nil
}

func (file *RequestFile) BeforeCreate(tx *gorm.DB) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	return nil
}

func (request *MedicalRequest) SetSpecialties(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	request.Specialties = datatypes.JSON(encoded)
	return nil
}

// SpecialtyIDs decodes the stored list; a malformed column yields an empty list.
func (request *MedicalRequest) SpecialtyIDs() []string {
	var ids []string
	if len(request.Specialties) == 0 {
		return ids
	}
	if err := json.Unmarshal(request.Specialties, &ids); err != nil {
		return nil
	}
	return ids
}
