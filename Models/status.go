package Models

import (
	"fmt"
	"strings"
)

type RequestStatus string

// Listed in workflow order; any status may follow any other.
const (
	StatusNew            RequestStatus = "new"
	StatusUnderReview    RequestStatus = "under_review"
	StatusNeedDocuments  RequestStatus = "need_documents"
	StatusApproved       RequestStatus = "approved"
	StatusRejected       RequestStatus = "rejected"
	StatusTravelPlanning RequestStatus = "travel_planning"
	StatusCompleted      RequestStatus = "completed"
)

var AllStatuses = []RequestStatus{
	StatusNew,
	StatusUnderReview,
	StatusNeedDocuments,
	StatusApproved,
	StatusRejected,
	StatusTravelPlanning,
	StatusCompleted,
}

type StatusLabel struct {
	Ar    string `json:"ar"`
	Fa    string `json:"fa"`
	En    string `json:"en"`
	Color string `json:"color"`
}

var statusLabels = map[RequestStatus]StatusLabel{
	StatusNew:            {Ar: "جدید", Fa: "جدید", En: "New", Color: "blue"},
	StatusUnderReview:    {Ar: "قید بررسی", Fa: "در حال بررسی", En: "Under Review", Color: "yellow"},
	StatusNeedDocuments:  {Ar: "نیاز به مدارک", Fa: "نیاز به مدارک", En: "Need Documents", Color: "orange"},
	StatusApproved:       {Ar: "تایید شده", Fa: "تایید شده", En: "Approved", Color: "green"},
	StatusRejected:       {Ar: "رد شده", Fa: "رد شده", En: "Rejected", Color: "red"},
	StatusTravelPlanning: {Ar: "برنامه‌ریزی سفر", Fa: "برنامه‌ریزی سفر", En: "Travel Planning", Color: "purple"},
	StatusCompleted:      {Ar: "تکمیل شده", Fa: "تکمیل شده", En: "Completed", Color: "gray"},
}

func (s RequestStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s RequestStatus) Label() StatusLabel {
	return statusLabels[s]
}

// LocalizedName falls back to the raw value with underscores replaced for unknown statuses.
func (s RequestStatus) LocalizedName(locale string) string {
	label, ok := statusLabels[s]
	if !ok {
		return strings.ReplaceAll(string(s), "_", " ")
	}
	return pickLocale(locale, label.Ar, label.Fa, label.En)
}

// ParseStatus accepts only members of the status enumeration.
func ParseStatus(raw string) (RequestStatus, error) {
	s := RequestStatus(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status %q", raw)
	}
	return s, nil
}

func pickLocale(locale, ar, fa, en string) string {
	switch strings.ToLower(locale) {
	case "ar":
		return ar
	case "fa":
		return fa
	default:
		return en
	}
}
