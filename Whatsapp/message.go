package Whatsapp

import (
	"fmt"
	"strings"
)

// Payload is what the admin needs to know about a freshly submitted request.
type Payload struct {
	Name      string
	WhatsApp  string
	Specialty string
	Condition string
	FileLinks []string
	AdminLink string
}

func AdminNotificationMessage(data Payload) string {
	var b strings.Builder
	b.WriteString("🏥 *New IranElaj.com Medical Request*\n\n")
	fmt.Fprintf(&b, "👤 *Name:* %s\n", data.Name)
	fmt.Fprintf(&b, "📱 *WhatsApp:* %s\n", data.WhatsApp)
	fmt.Fprintf(&b, "🏥 *Specialty:* %s\n", data.Specialty)
	fmt.Fprintf(&b, "📋 *Condition:* %s\n", data.Condition)

	if len(data.FileLinks) > 0 {
		fmt.Fprintf(&b, "\n📎 *Files:*\n%s\n", strings.Join(data.FileLinks, "\n"))
	}
	if data.AdminLink != "" {
		fmt.Fprintf(&b, "\n🔗 *Admin Panel:* %s", data.AdminLink)
	}
	return b.String()
}

func OTPMessage(code string) string {
	return fmt.Sprintf("Your IranElaj verification code is: %s\n\nThis code expires in 10 minutes.", code)
}

// GreetingMessage is the opener an admin sends when contacting a patient.
func GreetingMessage(name string) string {
	return fmt.Sprintf("سلام %s، این تیم ایران‌علاج است.", name)
}
