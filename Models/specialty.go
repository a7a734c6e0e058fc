package Models

type Specialty struct {
	ID     string `json:"id"`
	NameAr string `json:"nameAr"`
	NameFa string `json:"nameFa"`
	NameEn string `json:"nameEn"`
}

var Specialties = []Specialty{
	{ID: "cosmetic", NameAr: "جراحی زیبایی", NameFa: "جراحی زیبایی", NameEn: "Cosmetic Surgery"},
	{ID: "cardiology", NameAr: "قلب و عروق", NameFa: "قلب و عروق", NameEn: "Cardiology"},
	{ID: "orthopedics", NameAr: "ارتوپدی", NameFa: "ارتوپدی", NameEn: "Orthopedics"},
	{ID: "dentistry", NameAr: "دندان‌پزشکی", NameFa: "دندان‌پزشکی", NameEn: "Dentistry"},
	{ID: "ophthalmology", NameAr: "چشم پزشکی", NameFa: "چشم پزشکی", NameEn: "Eye Surgery"},
	{ID: "other", NameAr: "سایر تخصص‌ها", NameFa: "سایر تخصص‌ها", NameEn: "Other Specialties"},
}

func (s Specialty) Name(locale string) string {
	return pickLocale(locale, s.NameAr, s.NameFa, s.NameEn)
}

// SpecialtyName returns the localized name for id, or id itself when it is not in the catalog.
func SpecialtyName(id, locale string) string {
	for _, s := range Specialties {
		if s.ID == id {
			return s.Name(locale)
		}
	}
	return id
}
